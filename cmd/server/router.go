package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/taskhq/taskhq-api/internal/api"
	"github.com/taskhq/taskhq-api/internal/domain"

	apiMiddleware "github.com/taskhq/taskhq-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.authService)
	taskHandler := api.NewTaskHandler(app.taskService)
	userHandler := api.NewUserHandler(app.userService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService)

	anyRole := apiMiddleware.RequireRoles(domain.RoleUser, domain.RoleAdmin)
	adminOnly := apiMiddleware.RequireRoles(domain.RoleAdmin)

	// Authentication endpoints (public)
	r.Post("/auth/signup", authHandler.SignUp)
	r.Post("/auth/login", authHandler.SignIn)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/auth/profile", authHandler.Profile)

		// Task endpoints
		r.Route("/task", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(anyRole)
				r.Post("/", taskHandler.Create)
				r.Post("/assign", taskHandler.Assign)
				r.Post("/{id}/complete", taskHandler.MarkComplete)
				r.Get("/", taskHandler.FindAll)
				r.Get("/completed", taskHandler.FindCompleted)
				r.Get("/pending", taskHandler.FindPending)
				r.Get("/{id}", taskHandler.FindOne)
				r.Patch("/{id}", taskHandler.Update)
			})
			r.With(adminOnly).Delete("/{id}", taskHandler.Delete)
		})

		// User endpoints
		r.Route("/user", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(anyRole)
				r.Get("/", userHandler.FindAll)
				r.Get("/{id}", userHandler.FindOne)
				r.Patch("/{id}", userHandler.Update)
			})
			r.With(adminOnly).Delete("/{id}", userHandler.Delete)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
