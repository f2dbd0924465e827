package datatree

import (
	"log/slog"

	"github.com/aretw0/datatree/internal/builder"
	"github.com/aretw0/datatree/internal/logging"
	"github.com/aretw0/datatree/pkg/domain"
	"github.com/aretw0/datatree/pkg/ports"
	"github.com/aretw0/datatree/pkg/registry"
)

// Factory is the high-level entry point for building entity trees.
// It wraps the internal builder and provides a simplified API for consumers.
type Factory struct {
	builder           *builder.Builder
	registry          ports.ComponentRegistry
	hooks             domain.LifecycleHooks
	logger            *slog.Logger
	strict            bool
	allowUnknownTypes bool
	runDispatchers    bool
}

// Option defines a functional option for configuring the Factory.
type Option func(*Factory)

// WithRegistry injects the component-type registry. Defaults to registry.Builtin().
func WithRegistry(r ports.ComponentRegistry) Option {
	return func(f *Factory) {
		f.registry = r
	}
}

// WithLogger sets a custom structured logger for the factory.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(f *Factory) {
		f.hooks = hooks
	}
}

// WithStrictNames makes name collisions fail the build instead of overwriting.
func WithStrictNames(strict bool) Option {
	return func(f *Factory) {
		f.strict = strict
	}
}

// WithUnknownWidgetTypes accepts widgets whose type is missing from the registry.
func WithUnknownWidgetTypes(allow bool) Option {
	return func(f *Factory) {
		f.allowUnknownTypes = allow
	}
}

// WithRunDispatchers attaches the run capability to action entities.
func WithRunDispatchers(enabled bool) Option {
	return func(f *Factory) {
		f.runDispatchers = enabled
	}
}

// New initializes a new Factory.
func New(opts ...Option) *Factory {
	f := &Factory{}
	for _, opt := range opts {
		opt(f)
	}

	if f.registry == nil {
		f.registry = registry.Builtin()
	}
	// Ensure logger is initialized so the builder never sees nil.
	if f.logger == nil {
		f.logger = logging.NewNop()
	}
	f.logger = f.logger.With("component", "datatree")

	f.builder = builder.New(f.registry,
		builder.WithLogger(f.logger),
		builder.WithLifecycleHooks(f.hooks),
		builder.WithStrictNames(f.strict),
		builder.WithUnknownWidgetTypes(f.allowUnknownTypes),
		builder.WithRunDispatchers(f.runDispatchers),
	)
	return f
}

// Create builds a new entity tree from seed.
// The seed is only read; the returned tree shares no memory with it.
func (f *Factory) Create(seed domain.Seed) (domain.Tree, error) {
	return f.builder.Build(seed)
}

// Validate reports the first problem a strict build of seed would hit.
func (f *Factory) Validate(seed domain.Seed) error {
	strict := builder.New(f.registry,
		builder.WithLogger(f.logger),
		builder.WithStrictNames(true),
		builder.WithUnknownWidgetTypes(f.allowUnknownTypes),
	)
	_, err := strict.Build(seed)
	return err
}

// Registry returns the component registry used by the factory.
func (f *Factory) Registry() ports.ComponentRegistry {
	return f.registry
}
