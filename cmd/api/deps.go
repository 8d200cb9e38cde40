package main

import (
	"log/slog"

	"pftracker/internal/domain/category"
	"pftracker/internal/domain/dashboard"
	"pftracker/internal/domain/demo"
	"pftracker/internal/domain/report"
	"pftracker/internal/domain/transaction"
	"pftracker/internal/domain/user"
	"pftracker/internal/infrastructure/postgres"
	httphandlers "pftracker/internal/interfaces/http"
	"pftracker/internal/shared/auth"
	"pftracker/internal/shared/config"
	"pftracker/internal/shared/logging"
	"pftracker/internal/shared/middleware"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	HealthHandler      *httphandlers.HealthHandler
	AuthHandler        *httphandlers.AuthHandler
	UserHandler        *httphandlers.UserHandler
	CategoryHandler    *httphandlers.CategoryHandler
	TransactionHandler *httphandlers.TransactionHandler
	ReportHandler      *httphandlers.ReportHandler
	DashboardHandler   *httphandlers.DashboardHandler

	// Auth
	Users       *user.Service
	AuthLimiter *middleware.RateLimiter

	// Demo bootstrap, nil when demo mode is off
	DemoSeeder *demo.Seeder
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	db, err := postgres.New(cfg.Database.ConnectionString(), postgres.Options{
		MaxOpenConns:     cfg.Database.MaxOpenConns,
		StatementTimeout: cfg.Database.StatementTimeout,
	})
	if err != nil {
		return nil, err
	}
	logging.Component(logger, logging.ComponentStorage).Info("connected to database",
		"host", cfg.Database.Host,
		"database", cfg.Database.DBName,
	)

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	// Initialize domain services
	jwt := auth.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	userService := user.NewService(userRepo, jwt, user.DemoConfig{
		Enabled: cfg.Demo.Enabled,
		Email:   cfg.Demo.Email,
	})
	categoryService := category.NewService(categoryRepo)
	transactionService := transaction.NewService(transactionRepo, categoryRepo)
	reportService := report.NewService(reportRepo)
	dashboardService := dashboard.NewService(reportService, transactionService)

	var seeder *demo.Seeder
	if cfg.Demo.Enabled {
		seeder = demo.NewSeeder(userRepo, categoryRepo, transactionRepo, demo.Config{
			Name:     cfg.Demo.Name,
			Email:    cfg.Demo.Email,
			Password: cfg.Demo.Password,
		})
	}

	return &Dependencies{
		DB:                 db,
		HealthHandler:      httphandlers.NewHealthHandler(db),
		AuthHandler:        httphandlers.NewAuthHandler(userService, cfg.JWT.AccessTTL),
		UserHandler:        httphandlers.NewUserHandler(userService),
		CategoryHandler:    httphandlers.NewCategoryHandler(categoryService),
		TransactionHandler: httphandlers.NewTransactionHandler(transactionService),
		ReportHandler:      httphandlers.NewReportHandler(reportService),
		DashboardHandler:   httphandlers.NewDashboardHandler(dashboardService),
		Users:              userService,
		AuthLimiter:        middleware.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxyHeaders),
		DemoSeeder:         seeder,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.AuthLimiter != nil {
		d.AuthLimiter.Stop()
	}
	if d.DB != nil {
		d.DB.Close()
	}
}
