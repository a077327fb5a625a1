package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hospitalsupply/supplyrecon/internal/config"
	"github.com/hospitalsupply/supplyrecon/internal/logger"
	"github.com/hospitalsupply/supplyrecon/migrations"
	"github.com/jmoiron/sqlx"
	"go.uber.org/fx"
)

// IClient defines the transaction boundary the services depend on
type IClient interface {
	// WithTx wraps the given function in a transaction
	WithTx(ctx context.Context, fn func(context.Context) error) error
}

var _ IClient = (*DB)(nil)

// Module provides an fx.Option to integrate the connection pool with the application
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			NewDB,
			func(db *DB) IClient { return db },
		),
	)
}

// NewDB opens the postgres pool, applies the embedded schema when
// auto_migrate is set and closes the pool on shutdown.
func NewDB(lc fx.Lifecycle, cfg *config.Configuration, logger *logger.Logger) (*DB, error) {
	db, err := Open(cfg, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("closing database pool")
			return db.Close()
		},
	})

	return db, nil
}

// Open connects to postgres with the configured pool settings
func Open(cfg *config.Configuration, logger *logger.Logger) (*DB, error) {
	conn, err := sqlx.Connect("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	conn.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	conn.SetConnMaxLifetime(time.Duration(cfg.Postgres.ConnMaxLifetimeMinutes) * time.Minute)

	if cfg.Postgres.AutoMigrate {
		applied, err := migrations.Apply(context.Background(), conn.DB, conn.DriverName())
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed applying schema: %w", err)
		}
		logger.Infow("schema applied", "migrations", applied)
	}

	return New(conn, logger, sql.LevelReadCommitted), nil
}
