package builder

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/datatree/pkg/domain"
	"github.com/aretw0/datatree/pkg/formula"
)

// Widget merges a widget instance with its type defaults, its meta state and
// its derived properties. Layers are applied in this order, later ones winning:
// instance properties, default meta, meta override, derived properties.
func (b *Builder) Widget(rec domain.WidgetRecord, meta domain.MetaState) (*domain.Widget, error) {
	if rec.Name == "" {
		return nil, &domain.ValidationError{Entity: rec.ID, Kind: domain.KindWidget, Reason: "missing widgetName"}
	}
	if rec.Type == "" {
		return nil, &domain.ValidationError{Entity: rec.Name, Kind: domain.KindWidget, Reason: "missing type"}
	}

	props, err := b.instanceProperties(rec)
	if err != nil {
		return nil, err
	}

	defaults, derived, err := b.typeLayers(rec)
	if err != nil {
		return nil, err
	}

	for k, v := range defaults {
		props[k] = cloneValue(v)
	}

	if err := checkAcyclic(map[string]any(meta)); err != nil {
		return nil, &domain.ValidationError{Entity: rec.Name, Kind: domain.KindWidget, Reason: "cyclic meta state", Err: err}
	}
	for k, v := range meta {
		props[k] = cloneValue(v)
	}

	bindings := make(map[string]bool, len(rec.DynamicBindings)+len(derived))
	for k, v := range rec.DynamicBindings {
		bindings[k] = v
	}

	// Sorted so that the first failing formula is the same on every build.
	names := make([]string, 0, len(derived))
	for name := range derived {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		expr, err := formula.Rewrite(derived[name], rec.Name)
		if err != nil {
			return nil, &domain.ValidationError{
				Entity: rec.Name,
				Kind:   domain.KindWidget,
				Reason: fmt.Sprintf("derived property %q", name),
				Err:    err,
			}
		}
		props[name] = expr
		bindings[name] = true
	}

	b.logger.Debug("Built widget entity",
		"name", rec.Name,
		"type", rec.Type,
		"derived", len(derived),
		"bindings", len(bindings),
	)

	return &domain.Widget{
		WidgetID:        rec.ID,
		Name:            rec.Name,
		Type:            rec.Type,
		Properties:      props,
		DynamicBindings: bindings,
	}, nil
}

// instanceProperties copies the instance layer, storing bound composite values as text.
func (b *Builder) instanceProperties(rec domain.WidgetRecord) (map[string]any, error) {
	props := make(map[string]any, len(rec.Properties)+3)
	for k, v := range rec.Properties {
		if _, bound := rec.DynamicBindings[k]; bound && isComposite(v) {
			text, err := domain.MarshalText(v)
			if err != nil {
				return nil, &domain.SerializationError{Widget: rec.Name, Property: k, Err: err}
			}
			props[k] = text
			continue
		}
		if err := checkAcyclic(v); err != nil {
			return nil, &domain.ValidationError{
				Entity: rec.Name,
				Kind:   domain.KindWidget,
				Reason: fmt.Sprintf("property %q", k),
				Err:    err,
			}
		}
		props[k] = cloneValue(v)
	}

	props["widgetId"] = rec.ID
	props["widgetName"] = rec.Name
	props["type"] = rec.Type
	return props, nil
}

// typeLayers resolves the default meta state and derived formulas of the widget type.
func (b *Builder) typeLayers(rec domain.WidgetRecord) (map[string]any, map[string]string, error) {
	defaults, err := b.registry.MetaProperties(rec.Type)
	if err == nil {
		var derived map[string]string
		derived, err = b.registry.DerivedProperties(rec.Type)
		if err == nil {
			return defaults, derived, nil
		}
	}

	if errors.Is(err, domain.ErrUnknownWidgetType) && b.allowUnknownTypes {
		b.logger.Debug("Unregistered widget type, skipping type layers", "name", rec.Name, "type", rec.Type)
		return nil, nil, nil
	}
	return nil, nil, &domain.ValidationError{
		Entity: rec.Name,
		Kind:   domain.KindWidget,
		Reason: fmt.Sprintf("unregistered type %q", rec.Type),
		Err:    err,
	}
}
