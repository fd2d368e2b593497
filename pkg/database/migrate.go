package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"highscores/pkg/config"
	"log"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const migrationsLockKey = "highscores_migrations_lock"

// RunMigrations applies all pending migrations to the database.
func RunMigrations(cfg config.DatabaseConfiguration, db *sql.DB) error {
	driver, err := migrationDriver(cfg.Driver, db)
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cfg.MigrationsPath),
		cfg.Database,
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	// The mysql driver already takes a GET_LOCK during Up.
	if cfg.Driver != config.DriverPostgres {
		return up(m)
	}

	// Advisory locks belong to a session, lock and unlock share one connection.
	conn, err := db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("could not get a connection for the migrations lock: %w", err)
	}
	defer conn.Close()

	// Acquire an advisory lock to prevent concurrent migrations between services.
	var lockAcquired bool
	err = conn.QueryRowContext(context.Background(), "SELECT pg_try_advisory_lock(hashtext($1))", migrationsLockKey).Scan(&lockAcquired)
	if err != nil {
		return err
	}

	if !lockAcquired {
		log.Println("Another process is already running migrations, skipping...")
		return nil
	}

	return withReleasedLock(conn, func() error { return up(m) })
}

// withReleasedLock runs fn and releases the migrations advisory lock afterwards,
// whether fn failed or not.
func withReleasedLock(conn *sql.Conn, fn func() error) (err error) {
	defer func() {
		var lockReleased bool
		unlockErr := conn.QueryRowContext(context.Background(), "SELECT pg_advisory_unlock(hashtext($1))", migrationsLockKey).Scan(&lockReleased)

		switch {
		case err != nil:
			if unlockErr != nil {
				log.Printf("Couldn't release the migrations lock: %v", unlockErr)
			}
		case unlockErr != nil:
			err = fmt.Errorf("could not release advisory lock: %w", unlockErr)
		case !lockReleased:
			err = errors.New("could not release advisory lock: lock was not held")
		}
	}()

	return fn()
}

// up runs the pending migrations, ignoring the no change error.
func up(m *migrate.Migrate) error {
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

// migrationDriver wraps the open connection into the golang-migrate driver.
func migrationDriver(driver string, db *sql.DB) (migratedb.Driver, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.WithInstance(db, &postgres.Config{})
	case config.DriverMySQL:
		return mysql.WithInstance(db, &mysql.Config{})
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}
