package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"planet-designer/internal/shared/config"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
	Driver string
}

type Tx struct {
	*sql.Tx
}

type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (db *DB) BeginTxContext(ctx context.Context) (*Tx, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{tx}, nil
}

// Connect opens the database described by the global configuration
func Connect() (*DB, error) {
	cfg := config.GlobalConfig
	logger := slog.With("component", "database", "operation", "connect")
	logger.Debug("Initializing database connection")

	if cfg.Database.Driver == config.DriverPostgres {
		logger.Info("Connecting to database",
			"driver", cfg.Database.Driver,
			"host", cfg.Database.Host,
			"port", cfg.Database.Port,
			"user", cfg.Database.User,
			"database", cfg.Database.Name,
			"sslmode", cfg.Database.SSLMode,
			"max_open_conns", cfg.Database.MaxOpenConns,
			"max_idle_conns", cfg.Database.MaxIdleConns,
		)
	} else {
		logger.Info("Connecting to database",
			"driver", cfg.Database.Driver,
			"path", cfg.Database.SQLitePath,
		)
	}

	db, err := Open(cfg.Database.Driver, cfg.DataSourceName())
	if err != nil {
		return nil, err
	}

	if cfg.Database.Driver == config.DriverPostgres {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	logger.Info("Database connection established successfully", "driver", cfg.Database.Driver)
	return db, nil
}

// Open opens and pings a database for the given driver and data source name
func Open(driver, dsn string) (*DB, error) {
	logger := slog.With("component", "database", "operation", "open", "driver", driver)

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		logger.Error("Failed to open database connection", "error", err)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == config.DriverSQLite {
		// a single connection keeps in-memory databases alive and serialises writers
		sqlDB.SetMaxOpenConns(1)
	}

	logger.Debug("Testing database connection with ping")
	if err := sqlDB.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		if closeErr := sqlDB.Close(); closeErr != nil {
			logger.Error("Failed to close database after ping failure", "close_error", closeErr, "ping_error", err)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: sqlDB, Driver: driver}, nil
}
