package rest

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ardiansn/employee-management/internal"
	"github.com/ardiansn/employee-management/internal/auth"
	"github.com/ardiansn/employee-management/internal/employee"
	"github.com/ardiansn/employee-management/internal/task"
	"github.com/ardiansn/employee-management/internal/transport/middleware"
	"github.com/ardiansn/employee-management/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// RegisterAllRoutes wires every endpoint under /api. Reads require a valid
// bearer token; writes additionally require the admin role.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, cfg *internal.Config, authHandler *auth.Handler, employeeHandler *employee.Handler, taskHandler *task.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS(cfg.Server.Origins()))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// API index at root
	router.Get("/", apiIndexHandler)

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", authHandler.Register)
			sr.Post("/login", authHandler.Login)

			sr.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)
				pr.Get("/profile", authHandler.Profile)
			})
		})

		// Everything below requires authentication
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Route("/employees", func(er chi.Router) {
				er.Get("/stats", employeeHandler.Stats)
				er.Get("/", employeeHandler.List)
				er.Get("/{id}", employeeHandler.Get)

				// Admin-only mutations
				er.Group(func(ar chi.Router) {
					ar.Use(authHandler.RequireAdmin)
					ar.Post("/", employeeHandler.Create)
					ar.Put("/{id}", employeeHandler.Update)
					ar.Delete("/{id}", employeeHandler.Delete)
				})
			})

			pr.Route("/tasks", func(tr chi.Router) {
				tr.Get("/stats", taskHandler.Stats)
				tr.Get("/employee/{employeeId}", taskHandler.ListByEmployee)
				tr.Get("/", taskHandler.List)
				tr.Get("/{id}", taskHandler.Get)

				// Admin-only mutations (includes the kanban status change)
				tr.Group(func(ar chi.Router) {
					ar.Use(authHandler.RequireAdmin)
					ar.Post("/", taskHandler.Create)
					ar.Put("/{id}", taskHandler.Update)
					ar.Delete("/{id}", taskHandler.Delete)
				})
			})
		})
	})
}

func apiIndexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Employee Management API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"auth":      "/api/auth",
			"employees": "/api/employees",
			"tasks":     "/api/tasks",
		},
	})
}
