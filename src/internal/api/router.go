package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a new HTTP router with all API endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(Recovery)
	r.Use(Logger)
	r.Use(PrivateSubnetOnly)

	r.Route("/api/v1", func(r chi.Router) {
		r.With(RequireContentType("text/plain")).Post("/normalize", h.Normalize)
		r.With(RequireContentType("application/json")).Post("/parse", h.Parse)
		r.Get("/health", h.CheckHealth)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, NewAPIError(ErrCodeInvalidRequest, "Route not found: "+r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, NewAPIError(ErrCodeInvalidRequest, "Method not allowed: "+r.Method))
	})

	registerPprof(r)

	return r
}
