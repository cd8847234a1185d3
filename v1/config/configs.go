package config

import (
	"github.com/Aleph-Alpha/jsondb/v1/collection"
	"github.com/Aleph-Alpha/jsondb/v1/filestore"
	"github.com/Aleph-Alpha/jsondb/v1/logger"
	"github.com/Aleph-Alpha/jsondb/v1/metrics"
	"github.com/Aleph-Alpha/jsondb/v1/minio"
	"github.com/Aleph-Alpha/jsondb/v1/postgres"
	"github.com/Aleph-Alpha/jsondb/v1/redis"
	"github.com/Aleph-Alpha/jsondb/v1/tracer"
)

// Backend names accepted in Config.Backend.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendMinio    = "minio"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config is the complete service configuration, one section per package.
type Config struct {
	ServiceName string `yaml:"service_name"`

	// Backend selects where collections are persisted: memory, file, minio,
	// postgres or redis. Default: memory
	Backend string `yaml:"backend"`

	Logger     logger.Config     `yaml:"logger"`
	Metrics    metrics.Config    `yaml:"metrics"`
	Tracer     tracer.Config     `yaml:"tracer"`
	Collection collection.Config `yaml:"collection"`
	FileStore  filestore.Config  `yaml:"filestore"`
	MinIO      minio.Config      `yaml:"minio"`
	Postgres   postgres.Config   `yaml:"postgres"`
	Redis      redis.Config      `yaml:"redis"`

	// EnableMetrics starts the Prometheus endpoint and reports store metrics.
	EnableMetrics bool `yaml:"enable_metrics"`

	// EnableTracing creates spans for store operations.
	EnableTracing bool `yaml:"enable_tracing"`
}
