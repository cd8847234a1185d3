package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Aleph-Alpha/jsondb/v1/logger"
)

var (
	// ErrUnknownBackend is returned for a Backend value that names no backend.
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrMissingSetting is returned when the selected backend lacks a required setting.
	ErrMissingSetting = errors.New("missing required setting")
)

// Load reads and validates the YAML configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML document, applies defaults and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Parse(data []byte) (Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyDefaults fills settings left empty. ServiceName propagates to the
// logger, metrics and tracer sections.
func (c *Config) applyDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "jsondb"
	}
	if c.Backend == "" {
		c.Backend = BackendMemory
	}
	if c.Logger.Level == "" {
		c.Logger.Level = logger.Info
	}
	if c.Logger.ServiceName == "" {
		c.Logger.ServiceName = c.ServiceName
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = c.ServiceName
	}
	if c.Tracer.ServiceName == "" {
		c.Tracer.ServiceName = c.ServiceName
	}
	if c.EnableTracing {
		c.Logger.EnableTracing = true
	}
}

// Validate checks that the selected backend is known and configured.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
		return nil
	case BackendFile:
		if c.FileStore.Directory == "" {
			return fmt.Errorf("%w: filestore.directory", ErrMissingSetting)
		}
	case BackendMinio:
		if c.MinIO.Connection.Endpoint == "" {
			return fmt.Errorf("%w: minio.connection.endpoint", ErrMissingSetting)
		}
		if c.MinIO.Connection.BucketName == "" {
			return fmt.Errorf("%w: minio.connection.bucket_name", ErrMissingSetting)
		}
	case BackendPostgres:
		if c.Postgres.Connection.Host == "" {
			return fmt.Errorf("%w: postgres.connection.host", ErrMissingSetting)
		}
		if c.Postgres.Connection.DbName == "" {
			return fmt.Errorf("%w: postgres.connection.db_name", ErrMissingSetting)
		}
	case BackendRedis:
		if c.Redis.TLS.ClientCertPath != "" && c.Redis.TLS.ClientKeyPath == "" {
			return fmt.Errorf("%w: redis.tls.client_key_path", ErrMissingSetting)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	return nil
}
