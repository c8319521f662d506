package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/leave-service/internal/api/http/handlers"
	"github.com/spec-kit/leave-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Leaves         *handlers.LeavesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/users/register", cfg.Users.Register)
	app.Post("/auth/login", cfg.Users.Login)
	app.Post("/auth/password/reset/request", cfg.Users.RequestPasswordReset)
	app.Post("/auth/password/reset/confirm", cfg.Users.ConfirmPasswordReset)

	authed := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authed.Get("/users", cfg.Users.List)
	authed.Post("/auth/password/change", cfg.Users.ChangePassword)

	authed.Post("/leaves", cfg.Leaves.Create)
	authed.Get("/leaves/me", cfg.Leaves.ListMine)
	authed.Get("/leaves/:id", cfg.Leaves.Get)

	admin := authed.Group("", auth.RequireAdmin())
	admin.Get("/leaves", cfg.Leaves.ListAll)
	admin.Put("/leaves/:id/status", cfg.Leaves.SetStatus)
}
