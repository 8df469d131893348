package db

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/weiluntsai/backoffice-backend/pkg/config"
	"github.com/weiluntsai/backoffice-backend/pkg/logger"
)

// Client owns the shared GORM connection. The connection is dialed lazily on
// first use; concurrent first-uses coalesce behind the mutex so exactly one
// caller dials while the rest wait. A failed dial leaves the client
// unconnected, so the next request triggers a fresh attempt.
type Client struct {
	cfg  config.DBConfig
	logg *logger.Logger

	mu   sync.Mutex
	conn *gorm.DB
}

// Pinger exposes the health check surface.
type Pinger interface {
	Ping(ctx context.Context) error
	Connected() bool
}

// NewLazy builds a client without dialing the database.
func NewLazy(cfg config.DBConfig, logg *logger.Logger) *Client {
	return &Client{cfg: cfg, logg: logg}
}

// DB returns the shared GORM connection, dialing it on first use.
func (c *Client) DB(ctx context.Context) (*gorm.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return c.conn, nil
	}

	conn, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return c.conn, nil
}

func (c *Client) dial(ctx context.Context) (*gorm.DB, error) {
	if c.cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}

	dialector := postgres.New(postgres.Config{
		DSN:                  c.cfg.DSN,
		PreferSimpleProtocol: true,
	})

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening db connection: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db handle: %w", err)
	}
	applyPoolSettings(sqlDB, c.cfg)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if c.logg != nil {
		c.logg.Info(ctx, "database connection established")
	}
	return conn, nil
}

func applyPoolSettings(sqlDB *sql.DB, cfg config.DBConfig) {
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}

// Connected reports whether the connection has been established. It never
// triggers a dial, so the health endpoint can answer while the database is
// still down.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Ping verifies the established connection is still reachable. An unconnected
// client fails the ping without dialing.
func (c *Client) Ping(ctx context.Context) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return fmt.Errorf("database not connected")
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close shuts down the pooled connections.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	sqlDB, err := c.conn.DB()
	if err != nil {
		return err
	}
	c.conn = nil
	return sqlDB.Close()
}
