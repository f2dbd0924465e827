package builder

import (
	"log/slog"
	"sort"
	"time"

	"github.com/aretw0/datatree/internal/logging"
	"github.com/aretw0/datatree/pkg/domain"
	"github.com/aretw0/datatree/pkg/ports"
)

// Builder turns a seed into an entity tree. It holds no per-build state, so
// one Builder can serve concurrent builds as long as its registry is read-only.
type Builder struct {
	registry          ports.ComponentRegistry
	logger            *slog.Logger
	hooks             domain.LifecycleHooks
	strict            bool
	allowUnknownTypes bool
	runDispatchers    bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(b *Builder) {
		b.hooks = hooks
	}
}

// WithStrictNames turns name collisions into build failures.
func WithStrictNames(strict bool) Option {
	return func(b *Builder) {
		b.strict = strict
	}
}

// WithUnknownWidgetTypes lets widgets of unregistered types through with no
// meta or derived layer instead of failing the build.
func WithUnknownWidgetTypes(allow bool) Option {
	return func(b *Builder) {
		b.allowUnknownTypes = allow
	}
}

// WithRunDispatchers attaches a run capability to every action entity.
func WithRunDispatchers(enabled bool) Option {
	return func(b *Builder) {
		b.runDispatchers = enabled
	}
}

// New creates a Builder backed by registry.
func New(registry ports.ComponentRegistry, opts ...Option) *Builder {
	b := &Builder{
		registry: registry,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build produces a fresh tree from seed. On error no tree is returned.
func (b *Builder) Build(seed domain.Seed) (domain.Tree, error) {
	start := time.Now()

	tree, err := b.build(seed)
	if err != nil {
		b.logger.Debug("Tree build failed", "err", err)
		if b.hooks.OnBuildError != nil {
			b.hooks.OnBuildError(&domain.BuildErrorEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventBuildError},
				Err:       err,
			})
		}
		return nil, err
	}

	elapsed := time.Since(start)
	b.logger.Debug("Tree built",
		"actions", len(seed.Actions),
		"widgets", len(seed.Widgets),
		"entities", len(tree),
		"duration", elapsed,
	)
	if b.hooks.OnTreeBuilt != nil {
		b.hooks.OnTreeBuilt(&domain.TreeEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventTreeBuilt},
			Actions:   len(seed.Actions),
			Widgets:   len(seed.Widgets),
			Entities:  len(tree),
			Duration:  elapsed,
		})
	}
	return tree, nil
}

func (b *Builder) build(seed domain.Seed) (domain.Tree, error) {
	actions := make([]*domain.Action, 0, len(seed.Actions))
	for _, rec := range seed.Actions {
		a, err := b.Action(rec)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}

	// Widget IDs are visited in order so that duplicate names resolve the same way on every build.
	ids := make([]string, 0, len(seed.Widgets))
	for id := range seed.Widgets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	widgets := make([]*domain.Widget, 0, len(ids))
	for _, id := range ids {
		rec := seed.Widgets[id]
		if rec.ID == "" {
			rec.ID = id
		}
		w, err := b.Widget(rec, seed.WidgetsMeta[id])
		if err != nil {
			return nil, err
		}
		widgets = append(widgets, w)
	}

	return b.Assemble(actions, widgets, seed.PageList, seed.AppData)
}
