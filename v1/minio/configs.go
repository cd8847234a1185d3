package minio

import "time"

const (
	unknownSize                   int64 = -1
	connectionHealthCheckInterval       = 3 * time.Second
	defaultSmallFileThreshold     int64 = 1024 * 1024
	defaultInitialBufferSize            = 256 * 1024
	defaultObjectExtension              = ".json"
)

// Config defines the top-level configuration for the MinIO backend.
type Config struct {
	Connection     ConnectionConfig `yaml:"connection"`
	DownloadConfig DownloadConfig   `yaml:"download"`

	// Prefix is prepended to every collection object key, e.g. "jsondb/".
	Prefix string `yaml:"prefix" envconfig:"JSONDB_MINIO_PREFIX"`
}

// ConnectionConfig contains MinIO server connection details.
type ConnectionConfig struct {
	Endpoint        string `yaml:"endpoint" envconfig:"JSONDB_MINIO_ENDPOINT"`                   // e.g. "localhost:9000"
	AccessKeyID     string `yaml:"access_key_id" envconfig:"JSONDB_MINIO_ACCESS_KEY_ID"`         // MinIO access key
	SecretAccessKey string `yaml:"secret_access_key" envconfig:"JSONDB_MINIO_SECRET_ACCESS_KEY"` // MinIO secret key
	UseSSL          bool   `yaml:"use_ssl" envconfig:"JSONDB_MINIO_USE_SSL"`
	BucketName      string `yaml:"bucket_name" envconfig:"JSONDB_MINIO_BUCKET_NAME"`
	Region          string `yaml:"region" envconfig:"JSONDB_MINIO_REGION"`
}

// DownloadConfig tunes how collection objects are read.
type DownloadConfig struct {
	SmallFileThreshold int64 `yaml:"small_file_threshold"` // below this size a buffer of exact size is allocated
	InitialBufferSize  int   `yaml:"initial_buffer_size"`  // starting capacity for pooled buffers
}

func (c Config) withDefaults() Config {
	if c.DownloadConfig.SmallFileThreshold <= 0 {
		c.DownloadConfig.SmallFileThreshold = defaultSmallFileThreshold
	}
	if c.DownloadConfig.InitialBufferSize <= 0 {
		c.DownloadConfig.InitialBufferSize = defaultInitialBufferSize
	}
	return c
}
