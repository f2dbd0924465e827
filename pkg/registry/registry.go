package registry

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/aretw0/datatree/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"github.com/mohae/deepcopy"
	"gopkg.in/yaml.v3"
)

// ComponentType describes the tree-relevant shape of a widget type.
type ComponentType struct {
	Type string `yaml:"type" mapstructure:"type"`

	// MetaProperties is the default transient state of a fresh instance.
	MetaProperties map[string]any `yaml:"meta" mapstructure:"meta"`

	// DerivedProperties maps property names to formula templates using "this".
	DerivedProperties map[string]string `yaml:"derived" mapstructure:"derived"`
}

// Registry manages the available component types.
// Lookups return copies, so callers can never mutate registered definitions.
type Registry struct {
	mu    sync.RWMutex
	types map[string]ComponentType
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		types: make(map[string]ComponentType),
	}
}

// Register adds a component type to the registry.
// If a type with the same name exists, it is overwritten.
func (r *Registry) Register(ct ComponentType) {
	ct = clone(ct)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[ct.Type] = ct
}

// Lookup returns a copy of the definition registered for widgetType.
func (r *Registry) Lookup(widgetType string) (ComponentType, error) {
	r.mu.RLock()
	ct, ok := r.types[widgetType]
	r.mu.RUnlock()

	if !ok {
		return ComponentType{}, fmt.Errorf("%w: %s", domain.ErrUnknownWidgetType, widgetType)
	}
	return clone(ct), nil
}

// MetaProperties implements ports.ComponentRegistry.
func (r *Registry) MetaProperties(widgetType string) (map[string]any, error) {
	ct, err := r.Lookup(widgetType)
	if err != nil {
		return nil, err
	}
	return ct.MetaProperties, nil
}

// DerivedProperties implements ports.ComponentRegistry.
func (r *Registry) DerivedProperties(widgetType string) (map[string]string, error) {
	ct, err := r.Lookup(widgetType)
	if err != nil {
		return nil, err
	}
	return ct.DerivedProperties, nil
}

// Types returns the registered type names in lexical order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns an independent copy of the registry.
func (r *Registry) Snapshot() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := New()
	for name, ct := range r.types {
		snap.types[name] = clone(ct)
	}
	return snap
}

// Load decodes a YAML document of the form
//
//	components:
//	  - type: TABLE_WIDGET
//	    meta: {selectedRowIndex: -1}
//	    derived: {selectedRow: "{{this.tableData[this.selectedRowIndex]}}"}
//
// into a new registry.
func Load(r io.Reader) (*Registry, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}

	var doc struct {
		Components []ComponentType `mapstructure:"components"`
	}
	if err := mapstructure.Decode(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode registry: %w", err)
	}

	reg := New()
	for i, ct := range doc.Components {
		if ct.Type == "" {
			return nil, fmt.Errorf("component %d: missing type", i)
		}
		reg.Register(ct)
	}
	return reg, nil
}

// LoadFile reads a YAML registry from path.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func clone(ct ComponentType) ComponentType {
	out := ComponentType{
		Type:              ct.Type,
		MetaProperties:    map[string]any{},
		DerivedProperties: make(map[string]string, len(ct.DerivedProperties)),
	}
	if ct.MetaProperties != nil {
		out.MetaProperties = deepcopy.Copy(ct.MetaProperties).(map[string]any)
	}
	for k, v := range ct.DerivedProperties {
		out.DerivedProperties[k] = v
	}
	return out
}
