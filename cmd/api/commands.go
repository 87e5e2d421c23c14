package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fundmatch-backend/internal/config"
	"fundmatch-backend/internal/infrastructure/database"
	"fundmatch-backend/internal/interfaces/router"
	"fundmatch-backend/internal/logging"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fundmatch-api",
		Short:         "Investor and project matching API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("env", "", "environment (development, test, production)")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	mustBind("APP_ENV", root.PersistentFlags().Lookup("env"))
	mustBind("LOG_LEVEL", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().String("port", "", "port to listen on")
	cmd.Flags().Bool("auto-migrate", false, "create or update tables on startup")
	mustBind("PORT", cmd.Flags().Lookup("port"))
	mustBind("AUTO_MIGRATE", cmd.Flags().Lookup("auto-migrate"))
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return router.ErrNoDatabase
			}
			db, err := database.Open(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			log.Info().Str("env", cfg.Env).Msg("Database migrated")
			return nil
		},
	}
}

func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic("bind flag " + flag.Name + ": " + err.Error())
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.Env, cfg.LogLevel)
	return cfg, nil
}

// serve verifies the database and Redis, then listens until ctx is done or
// SIGINT/SIGTERM arrives.
func serve(ctx context.Context, cfg *config.Config) error {
	app, db, rdb, err := router.CreateApp(cfg)
	if err != nil {
		return err
	}
	if err := (&database.Pinger{DB: db}).Ping(); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	log.Info().Msg("Database connected")
	if rdb != nil {
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
		log.Info().Msg("Redis connected")
	} else {
		log.Warn().Msg("REDIS_URL not set, health counters disabled")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(":" + cfg.Port)
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Server running")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("Shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return err
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	return nil
}
