package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// EntityKind is the explicit discriminant carried by every entity in a Tree.
type EntityKind string

const (
	KindAction   EntityKind = "ACTION"
	KindWidget   EntityKind = "WIDGET"
	KindPageList EntityKind = "PAGE_LIST"
	KindAppState EntityKind = "APPSMITH"
)

// Reserved top-level keys and wire field names.
const (
	KeyPageList   = "pageList"
	KeyAppState   = "appsmith"
	KeyEntityType = "ENTITY_TYPE"

	keyDynamicBindings = "dynamicBindings"
)

// Entity is the tagged union stored under each name of a Tree.
// The set of implementations is closed: *Action, *Widget, *PageList and *AppState.
type Entity interface {
	Kind() EntityKind
	entity()
}

// Action is a data source (query/API) normalized for the evaluator.
type Action struct {
	ActionID   string
	Name       string
	PluginType string

	// Config holds the action configuration, exposed as "<name>.config".
	Config map[string]any

	// Data is the body of the last response, or an empty object.
	Data any

	// Run is only set when run dispatchers are enabled on the factory.
	Run *Capability

	// DynamicBindingPathList paths are relative to the entity root ("config.*").
	DynamicBindingPathList []Property

	// Extra carries the remaining fields of the action record (e.g. isLoading).
	Extra map[string]any
}

func (a *Action) Kind() EntityKind { return KindAction }
func (a *Action) entity()          {}

// MarshalJSON flattens the action into the evaluator wire form.
func (a *Action) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(a.Extra)+7)
	for k, v := range a.Extra {
		out[k] = v
	}
	paths := a.DynamicBindingPathList
	if paths == nil {
		paths = []Property{}
	}
	out["actionId"] = a.ActionID
	out["name"] = a.Name
	out["pluginType"] = a.PluginType
	out["config"] = a.Config
	out["data"] = a.Data
	out["dynamicBindingPathList"] = paths
	out[KeyEntityType] = a.Kind()
	return marshalJSON(out)
}

// Widget is a UI component instance with its meta and derived properties merged in.
type Widget struct {
	WidgetID string
	Name     string
	Type     string

	// Properties is the merged property set, including widgetId, widgetName and type.
	Properties map[string]any

	// DynamicBindings marks which properties hold expressions.
	DynamicBindings map[string]bool
}

func (w *Widget) Kind() EntityKind { return KindWidget }
func (w *Widget) entity()          {}

// Get returns a merged property value.
func (w *Widget) Get(property string) (any, bool) {
	v, ok := w.Properties[property]
	return v, ok
}

// MarshalJSON flattens the widget into the evaluator wire form.
func (w *Widget) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(w.Properties)+2)
	for k, v := range w.Properties {
		out[k] = v
	}
	bindings := w.DynamicBindings
	if bindings == nil {
		bindings = map[string]bool{}
	}
	out[keyDynamicBindings] = bindings
	out[KeyEntityType] = w.Kind()
	return marshalJSON(out)
}

// PageList is passed through opaquely. On the wire it is a bare array.
type PageList struct {
	Pages []any
}

func (p *PageList) Kind() EntityKind { return KindPageList }
func (p *PageList) entity()          {}

func (p *PageList) MarshalJSON() ([]byte, error) {
	if p.Pages == nil {
		return []byte("[]"), nil
	}
	return marshalJSON(p.Pages)
}

// AppState is the application-level global state (user, URL, store...).
type AppState struct {
	Data map[string]any
}

func (s *AppState) Kind() EntityKind { return KindAppState }
func (s *AppState) entity()          {}

func (s *AppState) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Data)+1)
	for k, v := range s.Data {
		out[k] = v
	}
	out[KeyEntityType] = s.Kind()
	return marshalJSON(out)
}

// Tree is the flat namespace consumed by the expression evaluator.
type Tree map[string]Entity

// Names returns the entity names in lexical order.
func (t Tree) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Action returns the action entity stored under name, if any.
func (t Tree) Action(name string) (*Action, bool) {
	a, ok := t[name].(*Action)
	return a, ok
}

// Widget returns the widget entity stored under name, if any.
func (t Tree) Widget(name string) (*Widget, bool) {
	w, ok := t[name].(*Widget)
	return w, ok
}

// Encode returns the wire form of the tree without HTML escaping.
func (t Tree) Encode() ([]byte, error) {
	return marshalJSON(t)
}

// UnmarshalJSON restores a Tree from its wire form using the ENTITY_TYPE tag.
func (t *Tree) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	tree := make(Tree, len(raw))
	for name, msg := range raw {
		e, err := decodeEntity(name, msg)
		if err != nil {
			return fmt.Errorf("entity %q: %w", name, err)
		}
		tree[name] = e
	}
	*t = tree
	return nil
}

func decodeEntity(name string, msg json.RawMessage) (Entity, error) {
	if name == KeyPageList {
		var pages []any
		if err := decodeJSON(msg, &pages); err != nil {
			return nil, err
		}
		return &PageList{Pages: pages}, nil
	}

	var fields map[string]any
	if err := decodeJSON(msg, &fields); err != nil {
		return nil, err
	}
	kind, _ := fields[KeyEntityType].(string)
	delete(fields, KeyEntityType)

	switch EntityKind(kind) {
	case KindAction:
		return decodeAction(fields)
	case KindWidget:
		return decodeWidget(fields)
	case KindAppState:
		return &AppState{Data: fields}, nil
	default:
		return nil, fmt.Errorf("unknown %s %q", KeyEntityType, kind)
	}
}

func decodeAction(fields map[string]any) (*Action, error) {
	var wire struct {
		ActionID               string         `mapstructure:"actionId"`
		Name                   string         `mapstructure:"name"`
		PluginType             string         `mapstructure:"pluginType"`
		Config                 map[string]any `mapstructure:"config"`
		Data                   any            `mapstructure:"data"`
		DynamicBindingPathList []Property     `mapstructure:"dynamicBindingPathList"`
		Extra                  map[string]any `mapstructure:",remain"`
	}
	if err := mapstructure.Decode(fields, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode action: %w", err)
	}
	paths := wire.DynamicBindingPathList
	if paths == nil {
		paths = []Property{}
	}
	return &Action{
		ActionID:               wire.ActionID,
		Name:                   wire.Name,
		PluginType:             wire.PluginType,
		Config:                 wire.Config,
		Data:                   wire.Data,
		DynamicBindingPathList: paths,
		Extra:                  wire.Extra,
	}, nil
}

func decodeWidget(fields map[string]any) (*Widget, error) {
	bindings := make(map[string]bool)
	if raw, ok := fields[keyDynamicBindings]; ok {
		if err := mapstructure.Decode(raw, &bindings); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", keyDynamicBindings, err)
		}
		delete(fields, keyDynamicBindings)
	}
	w := &Widget{Properties: fields, DynamicBindings: bindings}
	w.WidgetID, _ = fields["widgetId"].(string)
	w.Name, _ = fields["widgetName"].(string)
	w.Type, _ = fields["type"].(string)
	return w, nil
}

// decodeJSON keeps numbers as json.Number so large integers survive a round trip.
func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// marshalJSON encodes without HTML escaping; expressions routinely contain && and <.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalText serializes a composite value the way bound properties are stored:
// compact JSON, sorted keys, no HTML escaping.
func MarshalText(v any) (string, error) {
	b, err := marshalJSON(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
