// Package api exposes the versioned REST surface of the draw service.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"santas-draw/auth"
	"santas-draw/observability"
	"santas-draw/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	authService services.IAuthService
	drawService services.IDrawService
	tokens      *auth.TokenManager
	monitoring  *observability.MonitoringManager
	log         *slog.Logger
}

func NewServer(
	authService services.IAuthService,
	drawService services.IDrawService,
	tokens *auth.TokenManager,
	monitoring *observability.MonitoringManager,
	log *slog.Logger,
) *Server {
	return &Server{
		authService: authService,
		drawService: drawService,
		tokens:      tokens,
		monitoring:  monitoring,
		log:         log,
	}
}

// Router builds the full route tree. Draw routes run behind the optional
// auth middleware: anonymous callers pass through, a valid token binds
// the draw to its creator.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/api/v1", func(api chi.Router) {
		api.Post("/auth/register", s.handleRegister)
		api.Post("/auth/login", s.handleLogin)

		api.Get("/status", s.handleStatus)

		api.Group(func(draws chi.Router) {
			draws.Use(auth.Middleware(s.tokens, false))

			draws.Post("/draws", s.handleCreateDraw)
			draws.Get("/draws/{draw_id}", s.handleGetDraw)
			draws.Post("/draws/{draw_id}/execute", s.handleExecuteDraw)
			draws.Post("/draws/{draw_id}/cancel", s.handleCancelDraw)
			draws.Get("/draws/{draw_id}/results", s.handleGetResults)
			draws.Get("/draws/{draw_id}/participants/{participant_id}/match", s.handleGetMatch)

			draws.Get("/invites/{code}", s.handleGetInvite)
			draws.Post("/invites/{code}/join", s.handleJoin)
		})
	})

	return r
}
