package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/incident-service/internal/api/http/handlers"
	"github.com/spec-kit/incident-service/internal/auth"
	"github.com/spec-kit/incident-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Incidents      *handlers.IncidentsHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Health and metrics are public;
// everything else requires a verified bearer token, and user management
// writes additionally require the admin authority.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	authGroup := app.Group("/api/auth", cfg.AuthMiddleware.Handle)
	authGroup.Get("/user", cfg.Auth.CurrentUser)
	authGroup.Post("/logout", cfg.Auth.Logout)

	incidents := app.Group("/api/incidents", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	incidents.Get("/", cfg.Incidents.List)
	incidents.Post("/", cfg.Incidents.Create)
	incidents.Get("/status/:status", cfg.Incidents.ListByStatus)
	incidents.Get("/priority/:priority", cfg.Incidents.ListByPriority)
	incidents.Get("/reporter/:reportedBy", cfg.Incidents.ListByReporter)
	incidents.Get("/assigned/:assignedTo", cfg.Incidents.ListByAssignee)
	incidents.Get("/:id", cfg.Incidents.Get)
	incidents.Put("/:id", cfg.Incidents.Update)
	incidents.Delete("/:id", cfg.Incidents.Delete)

	users := app.Group("/api/users", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	users.Get("/", cfg.Users.List)
	users.Post("/", auth.RequireRole(auth.RoleAdmin), cfg.Users.Create)
	users.Get("/email/:email", cfg.Users.GetByEmail)
	users.Get("/role/:role", cfg.Users.ListByRole)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", auth.RequireRole(auth.RoleAdmin), cfg.Users.Update)
	users.Delete("/:id", auth.RequireRole(auth.RoleAdmin), cfg.Users.Delete)

	// Registration entry points kept on their historical paths.
	app.Post("/incident", cfg.AuthMiddleware.Handle, cfg.Incidents.Register)
	app.Post("/user-registration", cfg.AuthMiddleware.Handle, cfg.Users.Register)
}
