package domain

// Seed is the input of a tree build. It is treated as read-only.
type Seed struct {
	Actions     []ActionRecord          `json:"actions" mapstructure:"actions"`
	Widgets     map[string]WidgetRecord `json:"widgets" mapstructure:"widgets"`
	WidgetsMeta map[string]MetaState    `json:"widgetsMeta" mapstructure:"widgetsMeta"`
	PageList    []any                   `json:"pageList" mapstructure:"pageList"`
	AppData     map[string]any          `json:"appData" mapstructure:"appData"`
}

// ActionRecord is an action as held by the data-fetching layer.
type ActionRecord struct {
	Config ActionConfig    `json:"config" mapstructure:"config"`
	Data   *ActionResponse `json:"data,omitempty" mapstructure:"data"`

	// Extra holds any other field of the record (isLoading, ...).
	Extra map[string]any `json:"-" mapstructure:",remain"`
}

// ActionConfig is the persisted definition of an action.
type ActionConfig struct {
	ID                     string         `json:"id" mapstructure:"id"`
	Name                   string         `json:"name" mapstructure:"name"`
	PluginType             string         `json:"pluginType" mapstructure:"pluginType"`
	ActionConfiguration    map[string]any `json:"actionConfiguration" mapstructure:"actionConfiguration"`
	DynamicBindingPathList []Property     `json:"dynamicBindingPathList" mapstructure:"dynamicBindingPathList"`
}

// ActionResponse is the wrapper returned by the last execution of an action.
// Only Body reaches the tree.
type ActionResponse struct {
	Body       any            `json:"body" mapstructure:"body"`
	Headers    map[string]any `json:"headers,omitempty" mapstructure:"headers"`
	StatusCode string         `json:"statusCode,omitempty" mapstructure:"statusCode"`
	Duration   string         `json:"duration,omitempty" mapstructure:"duration"`
	Size       string         `json:"size,omitempty" mapstructure:"size"`
}

// Property is a path descriptor, e.g. {"key": "body"}.
type Property struct {
	Key   string `json:"key" mapstructure:"key"`
	Value any    `json:"value,omitempty" mapstructure:"value"`
}

// WidgetRecord is a widget instance from the canvas.
type WidgetRecord struct {
	ID              string          `json:"widgetId" mapstructure:"widgetId"`
	Name            string          `json:"widgetName" mapstructure:"widgetName"`
	Type            string          `json:"type" mapstructure:"type"`
	DynamicBindings map[string]bool `json:"dynamicBindings,omitempty" mapstructure:"dynamicBindings"`

	// Properties holds every other instance property (text, tableData, ...).
	Properties map[string]any `json:"-" mapstructure:",remain"`
}

// MetaState is the transient state override of one widget.
type MetaState map[string]any
