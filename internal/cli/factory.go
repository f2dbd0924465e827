package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/datatree"
	"github.com/aretw0/datatree/internal/config"
	"github.com/aretw0/datatree/pkg/adapters/memory"
	"github.com/aretw0/datatree/pkg/adapters/redis"
	"github.com/aretw0/datatree/pkg/domain"
	"github.com/aretw0/datatree/pkg/observability"
	"github.com/aretw0/datatree/pkg/persistence/middleware"
	"github.com/aretw0/datatree/pkg/ports"
	"github.com/aretw0/datatree/pkg/registry"
)

// NewFactory initializes a Factory with standard CLI conventions.
// Extra hook sets (metrics, ...) run after the debug hooks.
func NewFactory(cfg config.Config, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*datatree.Factory, error) {
	reg, err := LoadRegistry(cfg.Registry)
	if err != nil {
		return nil, err
	}

	sets := append([]domain.LifecycleHooks{createDebugHooks(logger)}, hooks...)
	return datatree.New(
		datatree.WithRegistry(reg),
		datatree.WithLogger(logger),
		datatree.WithLifecycleHooks(observability.Combine(sets...)),
		datatree.WithStrictNames(cfg.Strict),
		datatree.WithUnknownWidgetTypes(cfg.AllowUnknownTypes),
		datatree.WithRunDispatchers(cfg.RunDispatchers),
	), nil
}

// LoadRegistry returns the builtin registry, extended (and overridden per
// type) by the component file at path when one is given.
func LoadRegistry(path string) (*registry.Registry, error) {
	reg := registry.Builtin()
	if path == "" {
		return reg, nil
	}

	custom, err := registry.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error loading registry: %w", err)
	}
	for _, name := range custom.Types() {
		ct, err := custom.Lookup(name)
		if err != nil {
			return nil, err
		}
		reg.Register(ct)
	}
	return reg, nil
}

// NewStore opens the snapshot store selected by cfg.Driver, masking
// cfg.MaskKeys on save when any are configured.
// The returned close function releases any connection.
func NewStore(cfg config.StoreConfig) (ports.SnapshotStore, func() error, error) {
	var (
		store     ports.SnapshotStore
		closeFunc = func() error { return nil }
	)
	switch cfg.Driver {
	case config.DriverMemory, "":
		store = memory.NewStore()
	case config.DriverRedis:
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		store, closeFunc = rs, rs.Close
	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}

	if len(cfg.MaskKeys) == 0 {
		return store, closeFunc, nil
	}
	mw, err := middleware.NewPIIMiddleware(cfg.MaskKeys)
	if err != nil {
		closeFunc()
		return nil, nil, err
	}
	return middleware.Chain(store, mw), closeFunc, nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnEntityBuilt: func(e *domain.EntityEvent) {
			logger.Debug("Entity built", "name", e.Name, "kind", e.Kind)
		},
		OnTreeBuilt: func(e *domain.TreeEvent) {
			logger.Debug("Tree built", "entities", e.Entities, "duration", e.Duration)
		},
		OnBuildError: func(e *domain.BuildErrorEvent) {
			logger.Debug("Tree build failed", "err", e.Err)
		},
	}
}
