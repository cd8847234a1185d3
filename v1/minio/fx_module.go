package minio

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/jsondb/v1/collection"
	"github.com/Aleph-Alpha/jsondb/v1/logger"
)

// FXModule provides *Minio, exposed as collection.Backend, and runs the
// connection monitor for the lifetime of the application.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    minio.FXModule,
//	    collection.FXModule,
//	    fx.Provide(func() minio.Config { return cfg.MinIO }),
//	)
var FXModule = fx.Module("minio",
	fx.Provide(
		newClientWithDI,
		func(m *Minio) collection.Backend { return m },
	),
	fx.Invoke(RegisterLifecycle),
)

func newClientWithDI(cfg Config, log *logger.Logger) (*Minio, error) {
	return NewClient(cfg, log)
}

// RegisterLifecycle starts the connection monitor and retry loop on start
// and stops both on shutdown.
func RegisterLifecycle(lc fx.Lifecycle, mi *Minio) {
	wg := &sync.WaitGroup{}
	monitorCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			wg.Add(2)
			go func() {
				defer wg.Done()
				mi.monitorConnection(monitorCtx)
			}()
			go func() {
				defer wg.Done()
				mi.retryConnection(monitorCtx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			mi.logger.Info("closing minio client...", nil, nil)
			mi.Close()
			cancel()
			wg.Wait()
			return nil
		},
	})
}
