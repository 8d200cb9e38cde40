package main

import (
	"log/slog"
	"net/http"

	"pftracker/internal/shared/config"
	"pftracker/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", deps.HealthHandler.HandleHealth)

	// Public auth routes, throttled per client IP
	limit := deps.AuthLimiter.Middleware
	mux.Handle("POST /api/auth/register", limit(http.HandlerFunc(deps.AuthHandler.HandleRegister)))
	mux.Handle("POST /api/auth/login", limit(http.HandlerFunc(deps.AuthHandler.HandleLogin)))
	mux.Handle("POST /api/auth/refresh", limit(http.HandlerFunc(deps.AuthHandler.HandleRefresh)))
	mux.Handle("POST /api/auth/demo", limit(http.HandlerFunc(deps.AuthHandler.HandleDemo)))
	mux.HandleFunc("POST /api/auth/logout", deps.AuthHandler.HandleLogout)

	// Protected routes
	authMiddleware := middleware.Auth(deps.Users)
	protect := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authMiddleware(h))
	}

	protect("GET /api/users/me", deps.UserHandler.HandleMe)

	protect("GET /api/categories", deps.CategoryHandler.HandleList)
	protect("POST /api/categories", deps.CategoryHandler.HandleCreate)
	protect("DELETE /api/categories/{id}", deps.CategoryHandler.HandleDelete)

	protect("GET /api/transactions", deps.TransactionHandler.HandleList)
	protect("POST /api/transactions", deps.TransactionHandler.HandleCreate)
	protect("GET /api/transactions/export", deps.TransactionHandler.HandleExport)
	protect("GET /api/transactions/{id}", deps.TransactionHandler.HandleGet)
	protect("PUT /api/transactions/{id}", deps.TransactionHandler.HandleUpdate)
	protect("DELETE /api/transactions/{id}", deps.TransactionHandler.HandleDelete)

	protect("GET /api/reports/summary", deps.ReportHandler.HandleSummary)
	protect("GET /api/reports/by-category", deps.ReportHandler.HandleByCategory)
	protect("GET /api/reports/monthly", deps.ReportHandler.HandleMonthly)

	protect("GET /api/dashboard", deps.DashboardHandler.HandleGet)

	// Apply global middleware. Tracing sits directly outside the mux (CORS
	// passes the request through untouched) so it can read the matched pattern.
	var handler http.Handler = middleware.CORS(cfg.Server.CORSOrigins)(mux)
	handler = middleware.Tracing(handler)
	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(cfg.Telemetry.ServiceName)(handler)
	}
	handler = middleware.Logging(handler)
	handler = middleware.RequestID(logger)(handler)

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		logger.Info("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
