package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// DatabaseConfiguration holds the connection parameters of the relational store.
type DatabaseConfiguration struct {
	Driver         string
	Host           string
	Port           string
	User           string
	Password       string
	Database       string
	SSLMode        string
	ConnectTimeout time.Duration
	MigrationsPath string
}

// Redis configuration struct.
type RedisConfiguration struct {
	Host     string
	Port     string
	Password string
}

// Enabled reports if a Redis host was configured.
func (r RedisConfiguration) Enabled() bool {
	return r.Host != ""
}

// Addr returns the host:port pair of the Redis server.
func (r RedisConfiguration) Addr() string {
	return net.JoinHostPort(r.Host, r.Port)
}

// LeaderboardConfiguration holds the leaderboard tunables.
type LeaderboardConfiguration struct {
	// Time a country top list is kept on Redis. Zero disables the cache.
	CacheTTL time.Duration
}

// BucketConfiguration is the S3 compatible bucket used for shipping the logs.
type BucketConfiguration struct {
	Region       string
	Endpoint     string
	AccessKey    string
	AccessSecret string
	LogBucket    string
}

// Enabled reports if the logs should be uploaded.
func (b BucketConfiguration) Enabled() bool {
	return b.LogBucket != ""
}

// ServerConfiguration is used only by the local HTTP server.
type ServerConfiguration struct {
	Addr string
}

// Config is the whole application configuration.
type Config struct {
	Environment string
	Database    DatabaseConfiguration
	Redis       RedisConfiguration
	Leaderboard LeaderboardConfiguration
	Bucket      BucketConfiguration
	Server      ServerConfiguration
}

// Load reads the configuration from the environment.
// Outside of docker and lambda a local .env file is loaded first, if present.
func Load() (*Config, error) {
	env := os.Getenv("ENVIRONMENT")
	if env != "docker" && env != "lambda" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("couldn't load the .env file: %w", err)
		}
	}

	connectTimeout, err := getDuration("DB_CONNECT_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	cacheTTL, err := getDuration("LEADERBOARD_CACHE_TTL", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Environment: env,
		Database: DatabaseConfiguration{
			Driver:         getEnv("DB_DRIVER", DriverPostgres),
			Host:           getEnv("DB_HOST", "localhost"),
			User:           os.Getenv("DB_USER"),
			Password:       os.Getenv("DB_PASSWORD"),
			Database:       os.Getenv("DB_NAME"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			ConnectTimeout: connectTimeout,
			MigrationsPath: getEnv("DB_MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfiguration{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Leaderboard: LeaderboardConfiguration{
			CacheTTL: cacheTTL,
		},
		Bucket: BucketConfiguration{
			Region:       os.Getenv("BUCKET_REGION"),
			Endpoint:     os.Getenv("BUCKET_ENDPOINT"),
			AccessKey:    os.Getenv("BUCKET_ACCESS_KEY"),
			AccessSecret: os.Getenv("BUCKET_ACCESS_SECRET"),
			LogBucket:    os.Getenv("BUCKET_LOG_BUCKET"),
		},
		Server: ServerConfiguration{
			Addr: getEnv("SERVER_ADDR", ":8080"),
		},
	}

	switch cfg.Database.Driver {
	case DriverPostgres:
		cfg.Database.Port = getEnv("DB_PORT", "5432")
	case DriverMySQL:
		cfg.Database.Port = getEnv("DB_PORT", "3306")
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	return cfg, nil
}

// DSN builds the driver specific data source name.
func (d DatabaseConfiguration) DSN() string {
	timeout := int(d.ConnectTimeout.Seconds())
	if timeout <= 0 {
		timeout = 5
	}

	if d.Driver == DriverMySQL {
		return fmt.Sprintf(
			"%s:%s@tcp(%s)/%s?parseTime=true&multiStatements=true&timeout=%ds",
			d.User, d.Password, net.JoinHostPort(d.Host, d.Port), d.Database, timeout,
		)
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode, timeout,
	)
}

// getEnv returns the variable or the fallback when empty.
func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getDuration parses a duration variable, accepting plain seconds too.
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration on %s: %w", key, err)
	}
	return d, nil
}
