package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/kintai-system/attendance-api/internal/api/http/handlers"
	"github.com/kintai-system/attendance-api/internal/auth"
	"github.com/kintai-system/attendance-api/internal/domain"
	"github.com/kintai-system/attendance-api/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Attendance     *handlers.AttendanceHandler
	Users          *handlers.UsersHandler
	Notifications  *handlers.NotificationsHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health", cfg.Health.Live)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	api := app.Group("/api")
	authenticated := cfg.AuthMiddleware.Handle

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", cfg.Auth.Me)
	authGroup.Post("/password/reset", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/change", cfg.Auth.ChangePassword)

	attendance := api.Group("/attendance", authenticated, auth.RequireAuthenticated())
	attendance.Get("/clock", cfg.Attendance.ClockStatus)
	attendance.Post("/clock-in", cfg.Attendance.ClockIn)
	attendance.Post("/clock-out", cfg.Attendance.ClockOut)
	attendance.Get("/history", cfg.Attendance.History)

	api.Get("/notifications", authenticated, cfg.Notifications.List)

	admin := auth.RequireRole(domain.RoleAdmin)
	api.Get("/users", authenticated, admin, cfg.Users.List)
	api.Get("/reports", authenticated, admin, cfg.Reports.List)
}
