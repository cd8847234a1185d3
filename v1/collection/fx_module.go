package collection

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/jsondb/v1/logger"
	"github.com/Aleph-Alpha/jsondb/v1/metrics"
	"github.com/Aleph-Alpha/jsondb/v1/tracer"
)

// FXModule provides *Store, exposed as Client, and loads the backend's
// collections when the application starts. A Backend must be provided by
// one of the backend modules or by the application.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    filestore.FXModule,
//	    collection.FXModule,
//	    fx.Provide(func() collection.Config { return collection.Config{} }),
//	)
var FXModule = fx.Module("collection",
	fx.Provide(
		NewStoreWithDI,
		func(s *Store) Client { return s },
	),
	fx.Invoke(RegisterStoreLifecycle),
)

// StoreParams groups the dependencies of a store built by Fx.
type StoreParams struct {
	fx.In

	Config  Config
	Backend Backend
	Logger  *logger.Logger
	Metrics metrics.MetricsCollector `optional:"true"`
	Tracer  *tracer.Tracer           `optional:"true"`
}

// NewStoreWithDI creates a store from Fx dependencies, attaching metrics and
// tracing when those modules are present.
func NewStoreWithDI(p StoreParams) *Store {
	var opts []Option
	if p.Metrics != nil {
		opts = append(opts, WithMetrics(p.Metrics))
	}
	if p.Tracer != nil {
		opts = append(opts, WithTracer(p.Tracer))
	}
	return NewStore(p.Config, p.Backend, p.Logger, opts...)
}

// RegisterStoreLifecycle loads all collections on start.
func RegisterStoreLifecycle(lc fx.Lifecycle, store *Store) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return store.Load(ctx)
		},
	})
}
