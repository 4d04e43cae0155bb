// Package http provides HTTP routing and middleware configuration for the
// leaderboard service.
package http

import (
	"net/http"

	"github.com/atelier-filial/filial/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// leaderboard API. It applies JSON content-type enforcement and request
// logging globally, and bearer-token authentication on the protected group.
//
// Routes:
//
//	POST /api/register               → authHandler.Register (public)
//	POST /api/login                  → authHandler.Login (public)
//	GET  /api/scores/{eventID}/top   → scoresHandler.Top (public)
//	POST /api/scores                 → scoresHandler.Submit (token)
//	GET  /api/scores/{eventID}/me    → scoresHandler.MyBest (token)
//	POST /api/events/retire          → scoresHandler.Retire (token)
func NewRouter(
	authHandler *AuthHandler,
	scoresHandler *ScoresHandler,
	tokenSecret string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Get("/scores/{eventID}/top", scoresHandler.Top)

		// Protected group: requires a valid API token
		r.Group(func(r chi.Router) {
			r.Use(middleware.TokenAuth(tokenSecret))
			r.Post("/scores", scoresHandler.Submit)
			r.Get("/scores/{eventID}/me", scoresHandler.MyBest)
			r.Post("/events/retire", scoresHandler.Retire)
		})
	})

	return r
}
