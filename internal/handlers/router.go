package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"whodunit/internal/config"
	localMiddleware "whodunit/internal/middleware"
)

// RouterOptions allows customization of router setup for tests.
type RouterOptions struct {
	DisableRateLimiting  bool
	DisableRequestLogger bool
}

// SetupRouter creates the application router with all routes and middleware.
func SetupRouter(h *Handler, cfg *config.ServerConfig, opts *RouterOptions) *chi.Mux {
	if opts == nil {
		opts = &RouterOptions{}
	}

	r := chi.NewRouter()

	if !opts.DisableRequestLogger {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	r.Use(localMiddleware.RequestSizeLimiter(cfg.Server.MaxRequestSize))
	r.Use(localMiddleware.SecurityHeaders())

	if !opts.DisableRateLimiting {
		rateLimiter := localMiddleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateLimitBurst)
		r.Use(rateLimiter.Middleware())
	}

	// Command surface: one verb per transition.
	r.Route("/api/room", func(r chi.Router) {
		r.Post("/", h.CreateRoom)
		r.Route("/{code}", func(r chi.Router) {
			r.Get("/", h.GetRoom)
			r.Post("/join", h.JoinRoom)
			r.Post("/rejoin", h.RejoinRoom)
			r.Post("/start", h.StartGame)
			r.Post("/proceed", h.Proceed)
			r.Post("/solution", h.SelectSolution)
			r.Post("/tile", h.SelectTileOption)
			r.Post("/tile/replace", h.ReplaceTile)
			r.Post("/confirm", h.ConfirmClues)
			r.Post("/accuse", h.Accuse)
			r.Post("/next-round", h.NextRound)
			r.Post("/reset", h.ResetRoom)
		})
	})

	// Join QR code for sharing on a host screen.
	r.Get("/room/{code}/qr", h.RoomQR)

	// Health check endpoints (no auth required).
	r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
