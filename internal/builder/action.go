package builder

import (
	"github.com/aretw0/datatree/pkg/domain"
)

// configPrefix is the namespace the action configuration lives under in the tree.
const configPrefix = "config."

// Action normalizes one action record.
func (b *Builder) Action(rec domain.ActionRecord) (*domain.Action, error) {
	cfg := rec.Config
	if err := validateActionConfig(cfg); err != nil {
		return nil, err
	}

	var body any
	if rec.Data != nil {
		body = rec.Data.Body
	}
	for _, v := range []any{cfg.ActionConfiguration, body, rec.Extra} {
		if err := checkAcyclic(v); err != nil {
			return nil, &domain.ValidationError{Entity: cfg.Name, Kind: domain.KindAction, Reason: "cyclic value", Err: err}
		}
	}

	paths := make([]domain.Property, 0, len(cfg.DynamicBindingPathList))
	for _, p := range cfg.DynamicBindingPathList {
		paths = append(paths, domain.Property{
			Key:   configPrefix + p.Key,
			Value: cloneValue(p.Value),
		})
	}

	data := any(map[string]any{})
	if body != nil {
		data = cloneValue(body)
	}

	config := cloneMap(cfg.ActionConfiguration)
	if config == nil {
		config = map[string]any{}
	}

	a := &domain.Action{
		ActionID:               cfg.ID,
		Name:                   cfg.Name,
		PluginType:             cfg.PluginType,
		Config:                 config,
		Data:                   data,
		DynamicBindingPathList: paths,
		Extra:                  cloneMap(rec.Extra),
	}
	if b.runDispatchers {
		a.Run = domain.NewRunCapability(cfg.ID)
	}

	b.logger.Debug("Built action entity",
		"name", a.Name,
		"plugin_type", a.PluginType,
		"binding_paths", len(paths),
	)
	return a, nil
}

func validateActionConfig(cfg domain.ActionConfig) error {
	entity := cfg.Name
	if entity == "" {
		entity = cfg.ID
	}
	switch {
	case cfg.Name == "":
		return &domain.ValidationError{Entity: entity, Kind: domain.KindAction, Reason: "missing name"}
	case cfg.ID == "":
		return &domain.ValidationError{Entity: entity, Kind: domain.KindAction, Reason: "missing id"}
	case cfg.PluginType == "":
		return &domain.ValidationError{Entity: entity, Kind: domain.KindAction, Reason: "missing pluginType"}
	}
	return nil
}
