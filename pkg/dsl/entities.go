package dsl

import "github.com/aretw0/datatree/pkg/domain"

// ActionBuilder provides a fluent API for configuring an action.
type ActionBuilder struct {
	record  domain.ActionRecord
	builder *Builder
}

// ID overrides the action ID.
func (a *ActionBuilder) ID(id string) *ActionBuilder {
	a.record.Config.ID = id
	return a
}

// Plugin sets the plugin type (API, DB, ...).
func (a *ActionBuilder) Plugin(pluginType string) *ActionBuilder {
	a.record.Config.PluginType = pluginType
	return a
}

// Config sets a key of the action configuration.
func (a *ActionBuilder) Config(key string, value any) *ActionBuilder {
	if a.record.Config.ActionConfiguration == nil {
		a.record.Config.ActionConfiguration = make(map[string]any)
	}
	a.record.Config.ActionConfiguration[key] = value
	return a
}

// Bind marks configuration keys as holding expressions.
func (a *ActionBuilder) Bind(keys ...string) *ActionBuilder {
	for _, k := range keys {
		a.record.Config.DynamicBindingPathList = append(a.record.Config.DynamicBindingPathList, domain.Property{Key: k})
	}
	return a
}

// Respond records the body of the last execution.
func (a *ActionBuilder) Respond(body any) *ActionBuilder {
	a.record.Data = &domain.ActionResponse{Body: body, StatusCode: "200"}
	return a
}

// Set stores an extra record field such as isLoading.
func (a *ActionBuilder) Set(key string, value any) *ActionBuilder {
	if a.record.Extra == nil {
		a.record.Extra = make(map[string]any)
	}
	a.record.Extra[key] = value
	return a
}

// Action starts the next action on the same seed.
func (a *ActionBuilder) Action(name string) *ActionBuilder {
	return a.builder.Action(name)
}

// Widget starts a widget on the same seed.
func (a *ActionBuilder) Widget(id, name, widgetType string) *WidgetBuilder {
	return a.builder.Widget(id, name, widgetType)
}

// Seed builds the whole seed.
func (a *ActionBuilder) Seed() domain.Seed {
	return a.builder.Build()
}

// Build returns a copy of the underlying record.
func (a *ActionBuilder) Build() domain.ActionRecord {
	rec := a.record
	rec.Config.ActionConfiguration = copyMap(a.record.Config.ActionConfiguration)
	rec.Config.DynamicBindingPathList = append([]domain.Property(nil), a.record.Config.DynamicBindingPathList...)
	rec.Extra = copyMap(a.record.Extra)
	if a.record.Data != nil {
		data := *a.record.Data
		rec.Data = &data
	}
	return rec
}

// WidgetBuilder provides a fluent API for configuring a widget.
type WidgetBuilder struct {
	record  domain.WidgetRecord
	builder *Builder
}

// Prop sets a static instance property.
func (w *WidgetBuilder) Prop(key string, value any) *WidgetBuilder {
	if w.record.Properties == nil {
		w.record.Properties = make(map[string]any)
	}
	w.record.Properties[key] = value
	return w
}

// Bind sets an instance property holding an expression and marks it bound.
func (w *WidgetBuilder) Bind(key, expression string) *WidgetBuilder {
	w.Prop(key, expression)
	if w.record.DynamicBindings == nil {
		w.record.DynamicBindings = make(map[string]bool)
	}
	w.record.DynamicBindings[key] = true
	return w
}

// Meta sets a transient meta state value for this widget.
func (w *WidgetBuilder) Meta(key string, value any) *WidgetBuilder {
	m := w.builder.meta[w.record.ID]
	if m == nil {
		m = make(domain.MetaState)
		w.builder.meta[w.record.ID] = m
	}
	m[key] = value
	return w
}

// Widget starts the next widget on the same seed.
func (w *WidgetBuilder) Widget(id, name, widgetType string) *WidgetBuilder {
	return w.builder.Widget(id, name, widgetType)
}

// Action starts an action on the same seed.
func (w *WidgetBuilder) Action(name string) *ActionBuilder {
	return w.builder.Action(name)
}

// Seed builds the whole seed.
func (w *WidgetBuilder) Seed() domain.Seed {
	return w.builder.Build()
}

// Build returns a copy of the underlying record.
func (w *WidgetBuilder) Build() domain.WidgetRecord {
	rec := w.record
	rec.Properties = copyMap(w.record.Properties)
	if w.record.DynamicBindings != nil {
		rec.DynamicBindings = make(map[string]bool, len(w.record.DynamicBindings))
		for k, v := range w.record.DynamicBindings {
			rec.DynamicBindings[k] = v
		}
	}
	return rec
}
