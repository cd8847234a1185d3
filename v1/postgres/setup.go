package postgres

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Logger defines the logging methods used by the postgres backend.
//
//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=postgres
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Postgres stores collections in PostgreSQL through gorm. It monitors the
// connection and swaps in a new *gorm.DB after failures without blocking
// readers.
type Postgres struct {
	cfg             Config
	logger          Logger
	client          atomic.Pointer[gorm.DB]
	shutdownSignal  chan struct{}
	retryChanSignal chan error

	closeShutdownOnce sync.Once
}

// NewPostgres connects to PostgreSQL and migrates the document tables.
func NewPostgres(cfg Config, logger Logger) (*Postgres, error) {
	conn, err := connectToPostgres(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("error in connecting to postgres: %w", err)
	}

	pg := &Postgres{
		cfg:             cfg,
		logger:          logger,
		shutdownSignal:  make(chan struct{}),
		retryChanSignal: make(chan error, 1),
	}
	pg.client.Store(conn)

	if err := pg.Migrate(context.Background()); err != nil {
		return nil, err
	}
	return pg, nil
}

// DB returns the current connection.
func (p *Postgres) DB() *gorm.DB {
	return p.client.Load()
}

// Migrate creates or updates the collection and document tables.
func (p *Postgres) Migrate(ctx context.Context) error {
	if err := p.DB().WithContext(ctx).AutoMigrate(&collectionRecord{}, &documentRecord{}); err != nil {
		return fmt.Errorf("failed to migrate document tables: %w", err)
	}
	return nil
}

func connectToPostgres(cfg Config, logger Logger) (*gorm.DB, error) {
	database, err := gorm.Open(
		postgres.Open(cfg.DSN()),
		&gorm.Config{
			TranslateError: true,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgresSQL database: %w", err)
	}

	databaseInstance, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get PostgresSQL database instance: %w", err)
	}

	pool := cfg.ConnectionDetails.withDefaults()
	databaseInstance.SetMaxOpenConns(pool.MaxOpenConns)
	databaseInstance.SetMaxIdleConns(pool.MaxIdleConns)
	databaseInstance.SetConnMaxLifetime(pool.ConnMaxLifetime)

	logger.Info("Successfully connected to PostgresSQL database", nil, map[string]interface{}{
		"host":     cfg.Connection.Host,
		"database": cfg.Connection.DbName,
	})
	return database, nil
}

// RetryConnection reconnects whenever MonitorConnection reports a failed
// health check, retrying every second until a connection succeeds.
func (p *Postgres) RetryConnection(ctx context.Context) {
outerLoop:
	for {
		select {
		case <-p.shutdownSignal:
			p.logger.Info("Stopping RetryConnection loop due to shutdown signal", nil, nil)
			return
		case <-ctx.Done():
			return
		case err := <-p.retryChanSignal:
			p.logger.Warn("PostgresSQL connection lost, reconnecting", err, nil)
		innerLoop:
			for {
				select {
				case <-p.shutdownSignal:
					return
				case <-ctx.Done():
					return
				default:
					newConn, err := connectToPostgres(p.cfg, p.logger)
					if err != nil {
						p.logger.Error("PostgresSQL reconnection failed", err, nil)
						time.Sleep(time.Second)
						continue innerLoop
					}
					p.client.Store(newConn)
					p.logger.Info("Successfully reconnected to PostgresSQL database", nil, nil)
					continue outerLoop
				}
			}
		}
	}
}

// MonitorConnection pings the database every ten seconds and signals
// RetryConnection when a ping fails.
func (p *Postgres) MonitorConnection(ctx context.Context) {
	ticker := time.NewTicker(healthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.shutdownSignal:
			p.logger.Info("Stopping MonitorConnection loop due to shutdown signal", nil, nil)
			return
		case <-ticker.C:
			if err := p.healthCheck(ctx); err != nil {
				select {
				case p.retryChanSignal <- err:
				default:
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

func (p *Postgres) healthCheck(ctx context.Context) error {
	dbConn := p.DB()
	if dbConn == nil {
		return fmt.Errorf("database Client is not initialized")
	}

	db, err := dbConn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance during health check: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed during health check: %w", err)
	}
	return nil
}

// Close stops the monitor loops and closes the connection pool.
func (p *Postgres) Close() error {
	p.closeShutdownOnce.Do(func() {
		close(p.shutdownSignal)
	})

	db, err := p.DB().DB()
	if err != nil {
		return err
	}
	return db.Close()
}
