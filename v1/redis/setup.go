package redis

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Logger defines the logging methods used by the Redis backend.
//
//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=redis
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// RedisClient stores collections in Redis. Each collection is one string
// key holding the JSON array of its documents, and a set tracks the names.
type RedisClient struct {
	client redis.UniversalClient
	cfg    Config
	logger Logger

	closeOnce sync.Once
}

// NewClient connects to Redis and verifies the connection with PING.
//
// Example:
//
//	client, err := redis.NewClient(redis.Config{Host: "localhost"}, log)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
func NewClient(cfg Config, logger Logger) (*RedisClient, error) {
	cfg = cfg.withDefaults()

	var tlsConfig *tls.Config
	if cfg.TLS.Enabled {
		var err error
		if tlsConfig, err = createTLSConfig(cfg.TLS, cfg.Host); err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:            net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Username:        cfg.Username,
		Password:        cfg.Password,
		DB:              cfg.DB,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		ConnMaxIdleTime: cfg.IdleTimeout,
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: cfg.MinRetryBackoff,
		MaxRetryBackoff: cfg.MaxRetryBackoff,
		DialTimeout:     cfg.DialTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		TLSConfig:       tlsConfig,
	})

	return newWithClient(client, cfg, logger)
}

func newWithClient(client redis.UniversalClient, cfg Config, logger Logger) (*RedisClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		logger.Error("failed to connect to redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("Redis client initialized", nil, map[string]interface{}{
		"host":   cfg.Host,
		"port":   cfg.Port,
		"db":     cfg.DB,
		"prefix": cfg.KeyPrefix,
	})
	return &RedisClient{client: client, cfg: cfg, logger: logger}, nil
}

func createTLSConfig(cfg TLSConfig, defaultServerName string) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
		ServerName:         defaultServerName,
	}
	if cfg.ServerName != "" {
		tlsConfig.ServerName = cfg.ServerName
	}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert")
		}
		tlsConfig.RootCAs = pool
	}

	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// Client returns the underlying go-redis client.
func (r *RedisClient) Client() redis.UniversalClient {
	return r.client
}

// Close releases the connection pool. Calls after the first are no-ops.
func (r *RedisClient) Close() error {
	var err error
	r.closeOnce.Do(func() {
		r.logger.Info("Closing Redis client", nil, nil)
		err = r.client.Close()
	})
	return err
}
