package testutil

import (
	"context"
	"highscores/pkg/config"
	"highscores/pkg/database"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// migrationsPath resolves the repository migrations folder from this file.
func migrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
}

// NewTestConnection starts a postgres container, applies the migrations and
// returns a connection to it with its cleanup.
func NewTestConnection(t *testing.T) (*gorm.DB, config.DatabaseConfiguration, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container backed test in short mode")
	}

	ctx := context.Background()

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	cfg := config.DatabaseConfiguration{
		Driver:         config.DriverPostgres,
		Host:           host,
		Port:           port.Port(),
		User:           "test",
		Password:       "test",
		Database:       "testdb",
		SSLMode:        "disable",
		ConnectTimeout: 10 * time.Second,
		MigrationsPath: migrationsPath(),
	}

	db, err := database.NewConnection(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to open gorm connection: %v", err)
	}

	// Get the SQL database itself.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get SQL DB: %v", err)
	}

	// Run the migrations to replicate the full schema.
	if err := database.RunMigrations(cfg, sqlDB); err != nil {
		sqlDB.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	cleanup := func() {
		sqlDB.Close()
		tc.CleanupContainer(t, container)
	}

	return db, cfg, cleanup
}
