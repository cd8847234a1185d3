package minio

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Logger defines the interface for logging operations within the MinIO client.
//
//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=minio
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Minio wraps a MinIO client with connection monitoring and reconnection.
// It persists collections as objects and implements collection.Backend.
type Minio struct {
	// Client is the standard MinIO client. Guarded by mu after startup since
	// the retry loop may replace it.
	Client *minio.Client

	cfg    Config
	logger Logger

	mu sync.RWMutex

	shutdownSignal  chan struct{}
	reconnectSignal chan error
	shutdownOnce    sync.Once

	bufferPool *BufferPool
}

// BufferPool is a pool of bytes.Buffers used when reading large objects.
type BufferPool struct {
	pool sync.Pool
}

// NewBufferPool creates an empty BufferPool.
func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new(bytes.Buffer)
			},
		},
	}
}

func (bp *BufferPool) Get() *bytes.Buffer {
	return bp.pool.Get().(*bytes.Buffer)
}

func (bp *BufferPool) Put(b *bytes.Buffer) {
	bp.pool.Put(b)
}

// NewClient creates a MinIO client, validates the connection and makes sure
// the configured bucket exists.
//
// Example:
//
//	client, err := minio.NewClient(cfg, log)
//	if err != nil {
//	    return fmt.Errorf("failed to initialize MinIO client: %w", err)
//	}
func NewClient(cfg Config, logger Logger) (*Minio, error) {
	cfg = cfg.withDefaults()

	client, err := connectToMinio(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to minio", err, connectionFields(cfg))
		return nil, err
	}

	m := &Minio{
		Client:          client,
		cfg:             cfg,
		logger:          logger,
		shutdownSignal:  make(chan struct{}),
		reconnectSignal: make(chan error, 1),
		bufferPool:      NewBufferPool(),
	}

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := m.validateConnection(timeoutCtx); err != nil {
		logger.Error("failed to validate minio connection", err, connectionFields(cfg))
		return nil, err
	}
	if err := m.ensureBucketExists(timeoutCtx); err != nil {
		logger.Error("failed to verify bucket", err, connectionFields(cfg))
		return nil, err
	}

	return m, nil
}

func connectionFields(cfg Config) map[string]interface{} {
	return map[string]interface{}{
		"endpoint": cfg.Connection.Endpoint,
		"region":   cfg.Connection.Region,
		"secure":   cfg.Connection.UseSSL,
		"bucket":   cfg.Connection.BucketName,
	}
}

// client returns the current MinIO client.
func (m *Minio) client() *minio.Client {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Client
}

// Close stops the connection monitor and retry loop.
func (m *Minio) Close() {
	m.shutdownOnce.Do(func() { close(m.shutdownSignal) })
}

// monitorConnection periodically checks the connection and signals the
// retry loop when the check fails.
func (m *Minio) monitorConnection(ctx context.Context) {
	ticker := time.NewTicker(connectionHealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := m.validateConnection(checkCtx)
			cancel()

			if err != nil {
				m.logger.Error("MinIO connection health check failed", err, map[string]interface{}{
					"endpoint": m.cfg.Connection.Endpoint,
				})
				select {
				case m.reconnectSignal <- err:
				default:
				}
			}

		case <-m.shutdownSignal:
			return

		case <-ctx.Done():
			return
		}
	}
}

// retryConnection rebuilds the client whenever the monitor reports a
// failed health check, retrying every second until it succeeds.
func (m *Minio) retryConnection(ctx context.Context) {
	for {
		select {
		case <-m.shutdownSignal:
			m.logger.Info("Stopping MinIO connection retry loop due to shutdown signal", nil, nil)
			return

		case <-ctx.Done():
			m.logger.Info("Stopping MinIO connection retry loop due to context cancellation", nil, nil)
			return

		case err := <-m.reconnectSignal:
			m.logger.Warn("MinIO connection issue detected, attempting reconnection", err, map[string]interface{}{
				"endpoint": m.cfg.Connection.Endpoint,
			})
			if !m.reconnect(ctx) {
				return
			}
		}
	}
}

// reconnect loops until a new client is healthy. It returns false when
// shutdown was requested first.
func (m *Minio) reconnect(ctx context.Context) bool {
	for {
		select {
		case <-m.shutdownSignal:
			return false
		case <-ctx.Done():
			return false
		default:
		}

		if err := m.tryReconnect(); err != nil {
			m.logger.Error("MinIO reconnection failed", err, map[string]interface{}{
				"endpoint":      m.cfg.Connection.Endpoint,
				"will_retry_in": "1 second",
			})
			time.Sleep(time.Second)
			continue
		}

		m.logger.Info("Successfully reconnected to MinIO", nil, map[string]interface{}{
			"endpoint": m.cfg.Connection.Endpoint,
			"bucket":   m.cfg.Connection.BucketName,
		})
		return true
	}
}

func (m *Minio) tryReconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	newClient, err := connectToMinio(m.cfg, m.logger)
	if err != nil {
		return err
	}
	if _, err := newClient.ListBuckets(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	m.Client = newClient
	m.mu.Unlock()

	return m.ensureBucketExists(ctx)
}

func connectToMinio(cfg Config, logger Logger) (*minio.Client, error) {
	if cfg.Connection.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint cannot be empty")
	}

	logger.Info("Connecting to MinIO", nil, map[string]interface{}{
		"endpoint": cfg.Connection.Endpoint,
		"region":   cfg.Connection.Region,
		"secure":   cfg.Connection.UseSSL,
	})

	return minio.New(cfg.Connection.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Connection.AccessKeyID, cfg.Connection.SecretAccessKey, ""),
		Secure: cfg.Connection.UseSSL,
		Region: cfg.Connection.Region,
	})
}

// validateConnection lists buckets to check connectivity and credentials.
func (m *Minio) validateConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := m.client().ListBuckets(ctx)
	return err
}

// ensureBucketExists creates the configured bucket when it is missing.
func (m *Minio) ensureBucketExists(ctx context.Context) error {
	bucketName := m.cfg.Connection.BucketName
	if bucketName == "" {
		return fmt.Errorf("bucket name is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := m.client().BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists, bucket: %v, err: %w", bucketName, err)
	}
	if exists {
		return nil
	}

	m.logger.Info("Bucket does not exist, creating it", nil, map[string]interface{}{
		"bucket": bucketName,
		"region": m.cfg.Connection.Region,
	})
	if err := m.client().MakeBucket(ctx, bucketName, minio.MakeBucketOptions{
		Region: m.cfg.Connection.Region,
	}); err != nil {
		return err
	}
	m.logger.Info("Successfully created bucket", nil, map[string]interface{}{
		"bucket": bucketName,
	})
	return nil
}
