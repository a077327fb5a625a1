package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hospitalsupply/supplyrecon/internal/config"
	"github.com/hospitalsupply/supplyrecon/internal/logger"
	"github.com/hospitalsupply/supplyrecon/migrations"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

func main() {
	var dryRun bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply the embedded postgres schema",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dryRun {
				return printMigrations()
			}
			return runMigrations(cmd.Context(), timeout)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print migration SQL without executing it")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Time allowed for the whole run")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func printMigrations() error {
	list, err := migrations.List("postgres")
	if err != nil {
		return err
	}
	for _, m := range list {
		fmt.Printf("-- %s\n%s\n", m.Name, m.SQL)
	}
	return nil
}

func runMigrations(ctx context.Context, timeout time.Duration) error {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)
	conn, err := sqlx.Connect("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		logger.Errorw("Failed to connect to postgres", "error", err)
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.Info("Running database migrations...")
	applied, err := migrations.Apply(ctx, conn.DB, "postgres")
	if err != nil {
		logger.Errorw("Failed to apply migrations", "error", err)
		return err
	}

	logger.Infow("Migration completed successfully", "applied", applied)
	return nil
}
