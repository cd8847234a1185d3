package postgres

import "time"

const (
	defaultMaxOpenConns    = 50
	defaultMaxIdleConns    = 25
	defaultConnMaxLifetime = time.Minute
	defaultBatchSize       = 500
	healthCheckInterval    = 10 * time.Second
)

// Config defines the PostgreSQL backend settings.
type Config struct {
	Connection        Connection        `yaml:"connection"`
	ConnectionDetails ConnectionDetails `yaml:"connection_details"`

	// BatchSize is the number of documents inserted per statement when a
	// collection is saved. Default: 500
	BatchSize int `yaml:"batch_size" envconfig:"JSONDB_POSTGRES_BATCH_SIZE"`
}

type Connection struct {
	Host     string `yaml:"host" envconfig:"JSONDB_POSTGRES_HOST"`
	Port     string `yaml:"port" envconfig:"JSONDB_POSTGRES_PORT"`
	User     string `yaml:"user" envconfig:"JSONDB_POSTGRES_USER"`
	Password string `yaml:"password" envconfig:"JSONDB_POSTGRES_PASSWORD"`
	DbName   string `yaml:"db_name" envconfig:"JSONDB_POSTGRES_DB_NAME"`
	SSLMode  string `yaml:"ssl_mode" envconfig:"JSONDB_POSTGRES_SSL_MODE"`
}

// ConnectionDetails configures the connection pool. Zero values fall back
// to 50 open connections, 25 idle connections and a one minute lifetime.
type ConnectionDetails struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// DSN returns the key/value connection string for cfg.
func (c Config) DSN() string {
	sslMode := c.Connection.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return "host=" + c.Connection.Host +
		" port=" + c.Connection.Port +
		" user=" + c.Connection.User +
		" password=" + c.Connection.Password +
		" dbname=" + c.Connection.DbName +
		" sslmode=" + sslMode
}

func (d ConnectionDetails) withDefaults() ConnectionDetails {
	if d.MaxOpenConns == 0 {
		d.MaxOpenConns = defaultMaxOpenConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = defaultConnMaxLifetime
	}
	return d
}

func (c Config) batchSize() int {
	if c.BatchSize <= 0 {
		return defaultBatchSize
	}
	return c.BatchSize
}
