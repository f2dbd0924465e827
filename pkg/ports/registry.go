package ports

// ComponentRegistry supplies per-widget-type tree metadata.
// Implementations must return copies; the builder treats results as owned.
type ComponentRegistry interface {
	// MetaProperties returns the default transient state of widgetType.
	// Unknown types return an error wrapping domain.ErrUnknownWidgetType.
	MetaProperties(widgetType string) (map[string]any, error)

	// DerivedProperties returns property name -> formula template for widgetType.
	DerivedProperties(widgetType string) (map[string]string, error)
}
