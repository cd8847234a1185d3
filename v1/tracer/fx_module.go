package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/jsondb/v1/logger"
)

// FXModule provides *Tracer and flushes it on shutdown.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracer.FXModule,
//	    fx.Provide(func() tracer.Config { return tracer.Config{ServiceName: "jsondb"} }),
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		newClientWithDI,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

func newClientWithDI(cfg Config, log *logger.Logger) *Tracer {
	return NewClient(cfg, log)
}

func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			tracer.logger.Info("shutting down tracer...", nil, nil)
			if tracer.tracer == nil {
				tracer.logger.Warn("tracer was nil during shutdown", nil, nil)
				return nil
			}
			return tracer.tracer.Shutdown(ctx)
		},
	})
}
