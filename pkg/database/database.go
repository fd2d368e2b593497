package database

import (
	"context"
	"fmt"
	"highscores/pkg/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connector hands out a single store connection for the duration of a callback.
type Connector interface {
	WithConnection(ctx context.Context, fn func(db *gorm.DB) error) error
}

// connector opens a fresh connection on every call and closes it when the callback returns.
type connector struct {
	cfg config.DatabaseConfiguration
}

// NewConnector creates a connector for the given database configuration.
func NewConnector(cfg config.DatabaseConfiguration) Connector {
	return &connector{cfg: cfg}
}

// WithConnection opens the connection, runs fn and always closes the connection,
// even when fn fails or panics.
func (c *connector) WithConnection(ctx context.Context, fn func(db *gorm.DB) error) error {
	db, err := NewConnection(ctx, c.cfg)
	if err != nil {
		return err
	}

	sqlDb, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get the sql connection: %w", err)
	}
	defer sqlDb.Close()

	// One invocation, one connection.
	sqlDb.SetMaxOpenConns(1)
	sqlDb.SetMaxIdleConns(1)

	return fn(db)
}

// dialector returns the gorm dialector for the configured driver.
func dialector(cfg config.DatabaseConfiguration) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DriverMySQL:
		return mysql.New(mysql.Config{
			DSN:                       cfg.DSN(),
			SkipInitializeWithVersion: true,
		}), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// NewConnection opens the store and pings it.
func NewConnection(ctx context.Context, cfg config.DatabaseConfiguration) (*gorm.DB, error) {
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	// Create the database instance, the ping below is the only round trip.
	db, err := gorm.Open(dial, &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get the SQL database itself.
	sqlDb, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get the sql connection: %w", err)
	}

	// Test the connection
	if err := sqlDb.PingContext(ctx); err != nil {
		sqlDb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
