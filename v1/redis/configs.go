package redis

import "time"

const (
	DefaultHost            = "localhost"
	DefaultPort            = 6379
	DefaultKeyPrefix       = "jsondb:"
	DefaultMaxRetries      = 3
	DefaultMinRetryBackoff = 8 * time.Millisecond
	DefaultMaxRetryBackoff = 512 * time.Millisecond
	DefaultDialTimeout     = 5 * time.Second
	DefaultReadTimeout     = 3 * time.Second
	DefaultIdleTimeout     = 5 * time.Minute
)

// Config defines the connection to a standalone Redis server.
type Config struct {
	// Default: "localhost"
	Host string `yaml:"host" envconfig:"JSONDB_REDIS_HOST"`

	// Default: 6379
	Port int `yaml:"port" envconfig:"JSONDB_REDIS_PORT"`

	// Username is used for ACL authentication (Redis 6.0+).
	Username string `yaml:"username" envconfig:"JSONDB_REDIS_USERNAME"`
	Password string `yaml:"password" envconfig:"JSONDB_REDIS_PASSWORD"`
	DB       int    `yaml:"db" envconfig:"JSONDB_REDIS_DB"`

	// KeyPrefix namespaces every key written by the backend.
	// Default: "jsondb:"
	KeyPrefix string `yaml:"key_prefix" envconfig:"JSONDB_REDIS_KEY_PREFIX"`

	PoolSize     int `yaml:"pool_size"`
	MinIdleConns int `yaml:"min_idle_conns"`

	// MaxRetries is the number of retries before giving up; -1 disables retries.
	// Default: 3
	MaxRetries      int           `yaml:"max_retries"`
	MinRetryBackoff time.Duration `yaml:"min_retry_backoff"`
	MaxRetryBackoff time.Duration `yaml:"max_retry_backoff"`

	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`

	TLS TLSConfig `yaml:"tls"`
}

// TLSConfig contains TLS/SSL configuration parameters.
type TLSConfig struct {
	Enabled bool `yaml:"enabled"`

	CACertPath     string `yaml:"ca_cert_path"`
	ClientCertPath string `yaml:"client_cert_path"`
	ClientKeyPath  string `yaml:"client_key_path"`

	// InsecureSkipVerify disables server certificate checks. Tests only.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`

	// ServerName overrides Host for certificate verification.
	ServerName string `yaml:"server_name"`
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = DefaultKeyPrefix
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.MinRetryBackoff == 0 {
		c.MinRetryBackoff = DefaultMinRetryBackoff
	}
	if c.MaxRetryBackoff == 0 {
		c.MaxRetryBackoff = DefaultMaxRetryBackoff
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = DefaultDialTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = DefaultIdleTimeout
	}
	return c
}
