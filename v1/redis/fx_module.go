package redis

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/jsondb/v1/collection"
	"github.com/Aleph-Alpha/jsondb/v1/logger"
)

// FXModule provides *RedisClient, exposed as collection.Backend, and closes
// it on shutdown.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    redis.FXModule,
//	    collection.FXModule,
//	    fx.Provide(func() redis.Config { return redis.Config{Host: "localhost"} }),
//	)
var FXModule = fx.Module("redis",
	fx.Provide(
		newClientWithDI,
		func(r *RedisClient) collection.Backend { return r },
	),
	fx.Invoke(RegisterRedisLifecycle),
)

func newClientWithDI(cfg Config, log *logger.Logger) (*RedisClient, error) {
	return NewClient(cfg, log)
}

func RegisterRedisLifecycle(lc fx.Lifecycle, client *RedisClient) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
