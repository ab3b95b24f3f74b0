package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/santhosh-ovd/indian-dishes/server/internal/auth"
	"github.com/santhosh-ovd/indian-dishes/server/internal/config"
	"github.com/santhosh-ovd/indian-dishes/server/internal/handlers"
	"github.com/santhosh-ovd/indian-dishes/server/internal/middleware"
	"github.com/santhosh-ovd/indian-dishes/server/internal/service"
)

const defaultRequestTimeout = 10 * time.Second

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *slog.Logger
	Dishes      *service.DishService
	Auth        *auth.Service
	Metrics     *middleware.Metrics
	RateLimiter *middleware.RateLimiter
}

// NewRouter builds the HTTP routes:
//
//	GET  /health, /metrics
//	POST /api/auth/register, /api/auth/login   (rate limited)
//	     /api/dishes/...                       (bearer token required)
func NewRouter(d Deps) http.Handler {
	healthHandler := handlers.NewHealthHandler(d.Dishes, d.Logger)
	dishHandler := handlers.NewDishHandler(d.Dishes, d.Logger)
	authHandler := handlers.NewAuthHandler(d.Auth, d.Logger)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(d.Logger))
	r.Use(d.Metrics.Instrument)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout(d.Config)))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(handlers.NotFound(d.Logger))

	r.Get("/health", healthHandler.ServeHTTP)
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(d.RateLimiter.Handler)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/dishes", func(r chi.Router) {
			r.Use(middleware.BearerAuth(d.Auth, d.Logger))
			dishHandler.Routes(r)
		})
	})

	return r
}

// requestTimeout is the handler deadline. It falls back below the default
// write timeout when unset so the 504 is written before the connection is cut.
func requestTimeout(cfg *config.Config) time.Duration {
	if cfg.Server.RequestTimeout <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(cfg.Server.RequestTimeout) * time.Second
}
