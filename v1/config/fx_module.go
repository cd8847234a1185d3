package config

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/jsondb/v1/collection"
	"github.com/Aleph-Alpha/jsondb/v1/filestore"
	"github.com/Aleph-Alpha/jsondb/v1/logger"
	"github.com/Aleph-Alpha/jsondb/v1/metrics"
	"github.com/Aleph-Alpha/jsondb/v1/minio"
	"github.com/Aleph-Alpha/jsondb/v1/postgres"
	"github.com/Aleph-Alpha/jsondb/v1/redis"
	"github.com/Aleph-Alpha/jsondb/v1/tracer"
)

// Options assembles the Fx modules for cfg: logger, the selected backend,
// the collection store and, when enabled, metrics and tracing.
//
// Usage:
//
//	cfg, err := config.Load("jsondb.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fx.New(config.Options(cfg), fx.Invoke(func(s collection.Client) { ... })).Run()
func Options(cfg Config) fx.Option {
	opts := []fx.Option{
		fx.Supply(cfg.Logger, cfg.Collection),
		logger.FXModule,
		backendModule(cfg),
		collection.FXModule,
	}
	if cfg.EnableMetrics {
		opts = append(opts, fx.Supply(cfg.Metrics), metrics.FXModule)
	}
	if cfg.EnableTracing {
		opts = append(opts, fx.Supply(cfg.Tracer), tracer.FXModule)
	}
	return fx.Options(opts...)
}

func backendModule(cfg Config) fx.Option {
	switch cfg.Backend {
	case BackendFile:
		return fx.Options(fx.Supply(cfg.FileStore), filestore.FXModule)
	case BackendMinio:
		return fx.Options(fx.Supply(cfg.MinIO), minio.FXModule)
	case BackendPostgres:
		return fx.Options(fx.Supply(cfg.Postgres), postgres.FXModule)
	case BackendRedis:
		return fx.Options(fx.Supply(cfg.Redis), redis.FXModule)
	default:
		return fx.Provide(func() collection.Backend { return collection.NewMemoryBackend() })
	}
}
