package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusclubs/club-blog-service/internal/api/http/handlers"
	"github.com/campusclubs/club-blog-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Admin          *handlers.AdminHandler
	Blogs          *handlers.BlogsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Protected groups compose the guard chain
// explicitly: Authenticate, then the status or role check.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/activate", cfg.Auth.Activate)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.CompleteReset)

	blogs := app.Group("/blogs")
	blogs.Get("/", cfg.Blogs.ListPublished)

	member := blogs.Group("", cfg.AuthMiddleware.Authenticate, auth.RequireVerified())
	member.Post("/", cfg.Blogs.Create)
	member.Get("/mine", cfg.Blogs.ListMine)
	member.Post("/:id/submit", cfg.Blogs.Submit)

	blogs.Get("/:id", cfg.Blogs.GetPublished)

	admin := app.Group("/admin", cfg.AuthMiddleware.Authenticate, auth.RequireAdmin())
	admin.Get("/pending-users", cfg.Admin.PendingUsers)
	admin.Post("/approve-user", cfg.Admin.ApproveUser)
	admin.Post("/reject-user", cfg.Admin.RejectUser)
	admin.Get("/pending-blogs", cfg.Admin.PendingBlogs)
	admin.Post("/review-blog", cfg.Admin.ReviewBlog)
}
