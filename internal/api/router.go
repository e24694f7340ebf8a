package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/shindesiddhant-415/Honeypot/internal/api/middleware"
	"github.com/shindesiddhant-415/Honeypot/internal/auth"
	"github.com/shindesiddhant-415/Honeypot/internal/engage"
	"github.com/shindesiddhant-415/Honeypot/internal/handlers"
	"github.com/shindesiddhant-415/Honeypot/internal/store"
	"github.com/shindesiddhant-415/Honeypot/internal/voice"
)

// Deps carries everything the router wires together. RedisClient and
// Voice may be nil; Archive may be nil when archiving is disabled.
type Deps struct {
	Keys               *auth.Keyring
	Engine             *engage.Engine
	Sessions           store.SessionStore
	Archive            store.ReportArchive
	Voice              *voice.Client
	RedisClient        *redis.Client
	RateLimitWhitelist []string
}

// NewRouter creates and configures the HTTP router.
func NewRouter(logger zerolog.Logger, deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	// Security middleware (order matters!)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(2 * 1024 * 1024)) // room for base64 audio
	r.Use(middleware.ValidateRequest)

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// Rate limiting (only when Redis is available)
	if deps.RedisClient != nil {
		limiter := middleware.NewRateLimiter(deps.RedisClient, logger, deps.RateLimitWhitelist)
		r.Use(limiter.Middleware)
	}

	// CORS - evaluation harness and operator tooling call from anywhere
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.APIKeyHeader},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Create handler and auth middleware
	h := handlers.NewHandler(deps.Engine, deps.Sessions, deps.Archive, deps.Voice, logger)
	authmw := middleware.NewAuthMiddleware(deps.Keys)

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// Public routes (no auth required)
	r.Get("/", h.Root)
	r.Get("/health", h.Health)

	// Authenticated routes (require API key, checked before any
	// session state is touched)
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth)

		r.Post("/api/chat", h.Chat)
		r.Post("/api/voice-detection", h.VoiceDetection)
		r.Get("/api/sessions/{id}", h.GetSession)
		r.Get("/api/stats", h.Stats)
	})

	return r
}
