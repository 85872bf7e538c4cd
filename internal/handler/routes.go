package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devconnector/devconnector-go/internal/middleware"
)

// NewRouter wires the auth and profile endpoint groups under /api.
func NewRouter(auth *AuthHandler, profiles *ProfileHandler, jwtSecret string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger(logger))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Home route running"))
	})

	gate := middleware.TokenAuth(jwtSecret)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/", auth.HandleLogin)
		r.With(gate).Get("/", auth.HandleMe)
	})

	r.Route("/api/profile", func(r chi.Router) {
		r.Get("/", profiles.HandleList)
		r.Get("/user/{user_id}", profiles.HandleGetByUserID)

		r.Group(func(r chi.Router) {
			r.Use(gate)
			r.Get("/me", profiles.HandleGetOwn)
			r.Post("/", profiles.HandleUpsert)
			r.Delete("/", profiles.HandleDelete)
			r.Put("/experience", profiles.HandleAddExperience)
			r.Delete("/experience/{exp_id}", profiles.HandleDeleteExperience)
			r.Put("/education", profiles.HandleAddEducation)
			r.Delete("/education/{edu_id}", profiles.HandleDeleteEducation)
		})
	})

	return r
}
