package postgres

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/jsondb/v1/collection"
	"github.com/Aleph-Alpha/jsondb/v1/logger"
)

// FXModule provides *Postgres, exposed as collection.Backend, and runs the
// connection monitor while the application is up.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    postgres.FXModule,
//	    collection.FXModule,
//	    fx.Provide(func() postgres.Config { return cfg.Postgres }),
//	)
var FXModule = fx.Module("postgres",
	fx.Provide(
		NewPostgresClientWithDI,
		func(p *Postgres) collection.Backend { return p },
	),
	fx.Invoke(RegisterPostgresLifecycle),
)

// PostgresParams groups the dependencies of a Postgres backend built by Fx.
type PostgresParams struct {
	fx.In

	Config Config
	Logger *logger.Logger
}

func NewPostgresClientWithDI(params PostgresParams) (*Postgres, error) {
	return NewPostgres(params.Config, params.Logger)
}

// RegisterPostgresLifecycle starts the monitor loops and closes the pool on stop.
func RegisterPostgresLifecycle(lifecycle fx.Lifecycle, pg *Postgres) {
	wg := &sync.WaitGroup{}
	monitorCtx, cancel := context.WithCancel(context.Background())

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			wg.Add(2)
			go func() {
				defer wg.Done()
				pg.MonitorConnection(monitorCtx)
			}()
			go func() {
				defer wg.Done()
				pg.RetryConnection(monitorCtx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			err := pg.Close()
			cancel()
			wg.Wait()
			return err
		},
	})
}
