package builder

import (
	"time"

	"github.com/aretw0/datatree/pkg/domain"
)

// Assemble inserts actions, then widgets, then the page list and the app state.
// A later insertion under an existing name replaces it; the collision is
// reported, and fails the build in strict mode.
func (b *Builder) Assemble(actions []*domain.Action, widgets []*domain.Widget, pageList []any, appData map[string]any) (domain.Tree, error) {
	tree := make(domain.Tree, len(actions)+len(widgets)+2)

	for _, a := range actions {
		if err := b.insert(tree, a.Name, a); err != nil {
			return nil, err
		}
	}
	for _, w := range widgets {
		if err := b.insert(tree, w.Name, w); err != nil {
			return nil, err
		}
	}

	if err := checkAcyclic(pageList); err != nil {
		return nil, &domain.ValidationError{Entity: domain.KeyPageList, Kind: domain.KindPageList, Reason: "cyclic value", Err: err}
	}
	var pages []any
	if pageList != nil {
		pages = cloneValue(pageList).([]any)
	}
	if err := b.insert(tree, domain.KeyPageList, &domain.PageList{Pages: pages}); err != nil {
		return nil, err
	}

	if err := checkAcyclic(appData); err != nil {
		return nil, &domain.ValidationError{Entity: domain.KeyAppState, Kind: domain.KindAppState, Reason: "cyclic value", Err: err}
	}
	data := cloneMap(appData)
	if data == nil {
		data = map[string]any{}
	}
	if err := b.insert(tree, domain.KeyAppState, &domain.AppState{Data: data}); err != nil {
		return nil, err
	}

	return tree, nil
}

func (b *Builder) insert(tree domain.Tree, name string, e domain.Entity) error {
	if existing, ok := tree[name]; ok {
		warning := &domain.CollisionWarning{Name: name, Existing: existing.Kind(), Incoming: e.Kind()}
		if b.strict {
			return warning
		}
		b.logger.Warn("Entity name collision, keeping the later entity",
			"name", name,
			"existing", existing.Kind(),
			"incoming", e.Kind(),
		)
		if b.hooks.OnCollision != nil {
			b.hooks.OnCollision(warning)
		}
	}

	tree[name] = e
	if b.hooks.OnEntityBuilt != nil {
		b.hooks.OnEntityBuilt(&domain.EntityEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventEntityBuilt},
			Name:      name,
			Kind:      e.Kind(),
		})
	}
	return nil
}
