package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router.
//
//	POST   /api/auth/register
//	POST   /api/auth/login
//	GET    /api/health
//	GET    /api/version
//	GET    /api/users/{userID}/entries/        (auth)
//	PUT    /api/users/{userID}/entries/{id}    (auth)
//	DELETE /api/users/{userID}/entries/{id}    (auth)
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/health", h.health)
		r.Get("/api/version", h.getServerVersion)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/api/users/{userID}/entries", func(r chi.Router) {
			r.Get("/", h.listEntries)
			r.Put("/{id}", h.putEntry)
			r.Delete("/{id}", h.deleteEntry)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
