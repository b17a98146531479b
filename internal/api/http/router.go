package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pharmacy-pos/internal/api/http/handlers"
	"github.com/spec-kit/pharmacy-pos/internal/auth"
	"github.com/spec-kit/pharmacy-pos/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Accounts       *handlers.AccountsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Every route under the request gate is also
// enforced server-side regardless of what the dashboard lets a user click.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	protected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/me", cfg.Auth.Me)
	protected.Post("/password/change", cfg.Auth.ChangePassword)

	accounts := app.Group("/accounts", cfg.AuthMiddleware.Handle, auth.RequireRoles(domain.RoleAdmin))
	accounts.Get("/", cfg.Accounts.List)
	accounts.Post("/", cfg.Accounts.Create)
	accounts.Patch("/:id/status", cfg.Accounts.SetStatus)
}
