package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/aretw0/datatree/pkg/domain"
	"github.com/aretw0/datatree/pkg/ports"
	"github.com/mohae/deepcopy"
)

// Mask replaces the value of every masked key.
const Mask = "***"

type piiMiddleware struct {
	next     ports.SnapshotStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks values of keys matching the
// patterns before a snapshot is persisted. Widget properties (including bound
// properties holding JSON text), action records and the app state are all
// walked. Entity identity fields are never masked.
func NewPIIMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid mask pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.SnapshotStore) ports.SnapshotStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *piiMiddleware) Save(ctx context.Context, id string, tree domain.Tree) error {
	if len(m.patterns) == 0 {
		return m.next.Save(ctx, id, tree)
	}

	// The caller keeps using its tree, so only a copy is masked.
	masked := make(domain.Tree, len(tree))
	for name, e := range tree {
		masked[name] = m.maskEntity(e)
	}
	return m.next.Save(ctx, id, masked)
}

func (m *piiMiddleware) Load(ctx context.Context, id string) (domain.Tree, error) {
	return m.next.Load(ctx, id)
}

func (m *piiMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *piiMiddleware) maskEntity(e domain.Entity) domain.Entity {
	switch v := e.(type) {
	case *domain.Widget:
		out := *v
		out.Properties = m.maskMap(v.Properties, identityKeys)
		for k, bound := range v.DynamicBindings {
			if text, ok := out.Properties[k].(string); ok && bound {
				out.Properties[k] = m.maskText(text)
			}
		}
		return &out
	case *domain.Action:
		out := *v
		out.Config = m.maskMap(v.Config, nil)
		out.Data = m.maskValue(v.Data)
		out.Extra = m.maskMap(v.Extra, nil)
		return &out
	case *domain.AppState:
		return &domain.AppState{Data: m.maskMap(v.Data, nil)}
	default:
		return e
	}
}

var identityKeys = map[string]bool{"widgetId": true, "widgetName": true, "type": true}

func (m *piiMiddleware) maskMap(in map[string]any, keep map[string]bool) map[string]any {
	if in == nil {
		return nil
	}
	out := deepcopy.Copy(in).(map[string]any)
	m.walk(out, keep)
	return out
}

func (m *piiMiddleware) maskValue(v any) any {
	cp := deepcopy.Copy(v)
	m.walkValue(cp)
	return cp
}

// maskText masks a bound property whose text is a JSON object or array.
// Expressions and plain strings are returned unchanged.
func (m *piiMiddleware) maskText(text string) string {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return text
	}
	if err := dec.Decode(new(any)); !errors.Is(err, io.EOF) {
		return text
	}
	switch v.(type) {
	case map[string]any, []any:
	default:
		return text
	}
	if !m.walkValue(v) {
		return text
	}
	masked, err := domain.MarshalText(v)
	if err != nil {
		return text
	}
	return masked
}

// walk reports whether any value was masked.
func (m *piiMiddleware) walk(obj map[string]any, keep map[string]bool) bool {
	changed := false
	for k, v := range obj {
		if !keep[k] && m.matches(k) {
			obj[k] = Mask
			changed = true
			continue
		}
		if m.walkValue(v) {
			changed = true
		}
	}
	return changed
}

func (m *piiMiddleware) walkValue(v any) bool {
	changed := false
	switch val := v.(type) {
	case map[string]any:
		changed = m.walk(val, nil)
	case []any:
		for _, item := range val {
			if m.walkValue(item) {
				changed = true
			}
		}
	}
	return changed
}

func (m *piiMiddleware) matches(key string) bool {
	for _, p := range m.patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}
