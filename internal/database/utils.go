package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"contrib.go.opencensus.io/integrations/ocsql"
	"github.com/lib/pq"

	"github.com/reachsuite/emailbuilder/config"
)

// GetConnectionPoolSettings returns connection pool settings based on environment
func GetConnectionPoolSettings(environment string) (maxOpen, maxIdle int, maxLifetime time.Duration) {
	if environment == "test" || environment == "development" {
		return 10, 5, 2 * time.Minute
	}
	return 25, 25, 20 * time.Minute
}

func dsn(cfg *config.DatabaseConfig, dbName string) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     "/" + dbName,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}

// GetDSN returns the DSN for the application database
func GetDSN(cfg *config.DatabaseConfig) string {
	return dsn(cfg, cfg.DBName)
}

// GetPostgresDSN returns the DSN for the server maintenance database
func GetPostgresDSN(cfg *config.DatabaseConfig) string {
	return dsn(cfg, "postgres")
}

// EnsureDatabaseExists creates dbName through an open maintenance connection
func EnsureDatabaseExists(ctx context.Context, db *sql.DB, dbName string) error {
	var exists bool
	err := db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := db.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(dbName)); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return nil
}

// Connect opens the application database, creating it and its tables when missing.
// With traced set the driver is wrapped by ocsql.
// codecov:ignore:start
func Connect(ctx context.Context, cfg *config.DatabaseConfig, environment string, traced bool) (*sql.DB, error) {
	driverName := "postgres"
	if traced {
		var err error
		driverName, err = ocsql.Register(driverName, ocsql.WithAllTraceOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to register opencensus sql driver: %w", err)
		}
	}

	admin, err := sql.Open(driverName, GetPostgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL server: %w", err)
	}
	err = EnsureDatabaseExists(ctx, admin, cfg.DBName)
	admin.Close()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, GetDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := InitializeDatabase(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	maxOpen, maxIdle, maxLifetime := GetConnectionPoolSettings(environment)
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)
	db.SetConnMaxIdleTime(maxLifetime / 2)

	return db, nil
}

// codecov:ignore:end
