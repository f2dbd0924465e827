package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/datatree/internal/config"
	httpAdapter "github.com/aretw0/datatree/pkg/adapters/http"
	"github.com/aretw0/datatree/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ShutdownTimeout bounds how long in-flight requests get on shutdown.
const ShutdownTimeout = 5 * time.Second

// NewServer wires the tree API, build metrics and /metrics into one server.
// The caller owns the returned close function (snapshot store connection).
func NewServer(cfg config.Config, logger *slog.Logger) (*http.Server, func() error, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, nil, err
	}

	factory, err := NewFactory(cfg, logger, metrics.Hooks())
	if err != nil {
		return nil, nil, err
	}

	store, closeStore, err := NewStore(cfg.Store)
	if err != nil {
		return nil, nil, err
	}

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Mount("/", httpAdapter.NewHandler(factory, store, logger))

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv, closeStore, nil
}

// Serve runs srv until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("Starting datatree server", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("Start shutdown", "cause", context.Cause(ctx))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown did not complete", "timeout", ShutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("Datatree server stopped gracefully")
		return nil
	}
}
