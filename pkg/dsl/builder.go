package dsl

import (
	"github.com/aretw0/datatree/pkg/domain"
)

// Builder accumulates the parts of a seed.
type Builder struct {
	actions []*ActionBuilder
	widgets map[string]*WidgetBuilder
	order   []string
	meta    map[string]domain.MetaState
	pages   []any
	appData map[string]any
}

// New creates a new seed builder.
func New() *Builder {
	return &Builder{
		widgets: make(map[string]*WidgetBuilder),
		meta:    make(map[string]domain.MetaState),
		appData: make(map[string]any),
	}
}

// Action appends a new action. Actions keep their insertion order.
// The ID defaults to the name.
func (b *Builder) Action(name string) *ActionBuilder {
	ab := &ActionBuilder{
		record: domain.ActionRecord{
			Config: domain.ActionConfig{ID: name, Name: name},
		},
		builder: b,
	}
	b.actions = append(b.actions, ab)
	return ab
}

// Widget adds a widget keyed by id.
// If the widget already exists, it returns the existing builder.
func (b *Builder) Widget(id, name, widgetType string) *WidgetBuilder {
	if wb, ok := b.widgets[id]; ok {
		return wb
	}
	wb := &WidgetBuilder{
		record: domain.WidgetRecord{
			ID:   id,
			Name: name,
			Type: widgetType,
		},
		builder: b,
	}
	b.widgets[id] = wb
	b.order = append(b.order, id)
	return wb
}

// Page appends an entry to the page list.
func (b *Builder) Page(id, name string, isDefault bool) *Builder {
	b.pages = append(b.pages, map[string]any{
		"pageId":    id,
		"pageName":  name,
		"isDefault": isDefault,
	})
	return b
}

// App sets an application-level value (user, URL, store...).
func (b *Builder) App(key string, value any) *Builder {
	b.appData[key] = value
	return b
}

// Build returns the seed described so far.
// The builder can keep being used; later calls do not affect returned seeds.
func (b *Builder) Build() domain.Seed {
	s := domain.Seed{
		Actions:     make([]domain.ActionRecord, 0, len(b.actions)),
		Widgets:     make(map[string]domain.WidgetRecord, len(b.widgets)),
		WidgetsMeta: make(map[string]domain.MetaState, len(b.meta)),
		PageList:    append([]any(nil), b.pages...),
		AppData:     copyMap(b.appData),
	}
	for _, ab := range b.actions {
		s.Actions = append(s.Actions, ab.Build())
	}
	for _, id := range b.order {
		s.Widgets[id] = b.widgets[id].Build()
	}
	for id, m := range b.meta {
		s.WidgetsMeta[id] = domain.MetaState(copyMap(m))
	}
	return s
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
