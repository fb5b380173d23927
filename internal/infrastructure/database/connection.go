package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/andrescamacho/dbmigrate/internal/domain/connection"
	"github.com/andrescamacho/dbmigrate/internal/infrastructure/config"
)

// NewConnection opens a pooled connection for a resolved descriptor
func NewConnection(desc *connection.Descriptor, cfg *config.DatabaseConfig) (*gorm.DB, error) {
	if desc == nil {
		return nil, fmt.Errorf("no connection descriptor")
	}

	var dialector gorm.Dialector

	switch desc.Driver {
	case connection.DriverSQLite:
		// Path can be a file path or ":memory:"
		path := desc.Path
		if path == "" {
			path = ":memory:"
		}
		dialector = sqlite.Open(path)

	case connection.DriverPostgres:
		if desc.Postgres == nil {
			return nil, fmt.Errorf("postgres descriptor has no connection")
		}
		connConfig, err := PgxConfig(desc.Postgres)
		if err != nil {
			return nil, err
		}
		if cfg != nil && connConfig.ConnectTimeout == 0 {
			connConfig.ConnectTimeout = cfg.ConnectTimeout
		}
		dialector = postgres.New(postgres.Config{Conn: stdlib.OpenDB(*connConfig)})

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", desc.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool (only for PostgreSQL)
	if desc.Driver == connection.DriverPostgres && cfg != nil {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying db: %w", err)
		}

		sqlDB.SetMaxOpenConns(cfg.Pool.MaxOpen)
		sqlDB.SetMaxIdleConns(cfg.Pool.MaxIdle)
		sqlDB.SetConnMaxLifetime(cfg.Pool.MaxLifetime)
	}

	return db, nil
}

// PgxConfig parses the descriptor's connection string or discrete fields and
// replaces the TLS settings with ones built from the attached material
func PgxConfig(conn *connection.PostgresConnection) (*pgx.ConnConfig, error) {
	connConfig, err := pgx.ParseConfig(conn.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres connection: %w", err)
	}

	if conn.TLS == nil {
		return connConfig, nil
	}

	tlsConfig, err := NewTLSConfig(conn.TLS, connConfig.Host)
	if err != nil {
		return nil, err
	}
	connConfig.TLSConfig = tlsConfig
	// no plaintext fallback once material is supplied
	connConfig.Fallbacks = nil

	return connConfig, nil
}

// Ping verifies the connection is reachable
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
