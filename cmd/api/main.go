package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pftracker/internal/infrastructure/postgres"
	"pftracker/internal/shared/config"
	"pftracker/internal/shared/logging"
	"pftracker/internal/shared/telemetry"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(os.Stdout, logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	appLogger := logging.Component(logger, logging.ComponentApp)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
			ServiceName:  cfg.Telemetry.ServiceName,
			OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
			MetricsPort:  cfg.Telemetry.MetricsPort,
		}, logger)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTelemetry(shutdownCtx); err != nil {
				appLogger.Error("telemetry shutdown failed", logging.Err(err))
			}
		}()
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(cfg.Database.ConnectionString()); err != nil {
			return err
		}
		logging.Component(logger, logging.ComponentMigrate).Info("database schema up to date")
	}

	deps, err := NewDependencies(cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	if deps.DemoSeeder != nil {
		demoLogger := logging.Component(logger, logging.ComponentDemo)
		res, err := deps.DemoSeeder.Ensure(ctx)
		if err != nil {
			// The API still serves real users; demo login reports 503 until seeded.
			demoLogger.Error("demo bootstrap failed", logging.Err(err))
		} else {
			demoLogger.Info("demo data ready",
				logging.FieldUserID, res.UserID,
				"user_created", res.UserCreated,
				"categories_created", res.CategoriesCreated,
				"transactions_created", res.TransactionsCreated,
			)
		}
	}

	handler := SetupRoutes(deps, cfg, logging.Component(logger, logging.ComponentHTTP))
	srv, redirectSrv, serveErrs := StartServers(NewServerConfigFromConfig(handler, cfg), appLogger)

	select {
	case <-ctx.Done():
	case err := <-serveErrs:
		GracefulShutdown(appLogger, shutdownTimeout, srv, redirectSrv)
		return fmt.Errorf("server error: %w", err)
	}

	GracefulShutdown(appLogger, shutdownTimeout, srv, redirectSrv)
	return nil
}
