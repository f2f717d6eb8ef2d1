package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fekuna/omnipos-rental-service/config"
	"github.com/fekuna/omnipos-rental-service/migrations"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/fekuna/omnipos-rental-service/pkg/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the rental service database schema",
		SilenceUsage: true,
	}
	root.AddCommand(upCmd(), statusCmd())
	return root
}

func connect() (*sqlx.DB, logger.ZapLogger, error) {
	cfg := config.LoadEnv()
	log := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment: true,
		Encoding:      "console",
		Level:         cfg.Logger.Level,
	})

	db, err := postgres.NewPostgres(&postgres.Config{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		DBName:   cfg.Postgres.DBName,
		SSLMode:  cfg.Postgres.SSLMode,
	})
	if err != nil {
		return nil, nil, err
	}
	return db, log, nil
}

func newMigrator() (*migrations.Migrator, func(), error) {
	migs, err := migrations.Load()
	if err != nil {
		return nil, nil, err
	}
	db, log, err := connect()
	if err != nil {
		return nil, nil, err
	}
	return migrations.NewMigrator(db, migs, log), func() {
		db.Close()
		_ = log.Sync()
	}, nil
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeFn, err := newMigrator()
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := m.Up(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", n)
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			migs, err := migrations.Load()
			if err != nil {
				return err
			}
			db, log, err := connect()
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := migrations.NewMigrator(db, migs, log).Applied(context.Background())
			if err != nil {
				log.Error("read migration status", zap.Error(err))
				return err
			}

			for _, mig := range migs {
				state := "pending"
				if applied[mig.Version] {
					state = "applied"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%04d %-20s %s\n", mig.Version, mig.Name, state)
			}
			return nil
		},
	}
}
