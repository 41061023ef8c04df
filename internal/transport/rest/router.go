package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/docuvault/docuvault/internal/auth"
	"github.com/docuvault/docuvault/internal/comment"
	"github.com/docuvault/docuvault/internal/department"
	"github.com/docuvault/docuvault/internal/file"
	"github.com/docuvault/docuvault/internal/stats"
	"github.com/docuvault/docuvault/internal/transport/middleware"
	"github.com/docuvault/docuvault/internal/transport/swagger"
	"github.com/go-chi/chi"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, fileHandler *file.Handler, departmentHandler *department.Handler, commentHandler *comment.Handler, statsHandler *stats.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Stored blobs are served by their opaque stored name
	if fileHandler != nil {
		router.Get("/uploads/{storedFilename}", fileHandler.Download)
	}

	router.Route("/api", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if authHandler != nil {
			r.Post("/auth/login", authHandler.Login)
			r.Post("/auth/refresh", authHandler.RefreshToken)
			r.Post("/auth/logout", authHandler.Logout)
		}

		if authHandler != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				pr.Get("/auth/user", authHandler.CurrentUser)

				if departmentHandler != nil {
					pr.Get("/departments", departmentHandler.GetDepartments)
					pr.Post("/departments", departmentHandler.CreateDepartment)
				}
				if statsHandler != nil {
					pr.Get("/stats", statsHandler.GlobalStats)
					pr.Get("/departments/{id}/stats", statsHandler.DepartmentStats)
				}

				if fileHandler != nil {
					pr.Route("/files", func(fr chi.Router) {
						fr.Get("/", fileHandler.ListFiles)
						fr.Post("/", fileHandler.UploadFile)
						fr.Patch("/{id}/status", fileHandler.UpdateStatus)
						fr.Delete("/{id}", fileHandler.DeleteFile)

						if commentHandler != nil {
							fr.Get("/{id}/comments", commentHandler.ListComments)
							fr.Post("/{id}/comments", commentHandler.CreateComment)
						}
					})
				}
			})
		}
	})
}
