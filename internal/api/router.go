package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/cocoa-beans/simple-node-backend/internal/api/middleware"
	"github.com/cocoa-beans/simple-node-backend/internal/config"
	"github.com/cocoa-beans/simple-node-backend/internal/handlers"
	"github.com/cocoa-beans/simple-node-backend/internal/store"
)

// NewRouter creates and configures the HTTP router.
// redisStore may be nil, in which case rate limiting is disabled.
func NewRouter(logger zerolog.Logger, cfg *config.Config, rooms store.RoomStore, redisStore *store.RedisStore) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	// Security middleware (order matters!)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(cfg.MaxBodyBytes))
	r.Use(middleware.ValidateRequest)

	// Standard middleware
	r.Use(chimw.RequestID)
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.StripSlashes)

	if redisStore != nil {
		limiter := middleware.NewRateLimiter(redisStore.Client(), logger, middleware.RateLimiterConfig{
			Whitelist:        cfg.RateLimitWhitelist,
			AutoBlockEnabled: cfg.AutoBlockEnabled,
		})
		r.Use(limiter.Middleware)
	} else {
		logger.Info().Msg("redis not configured, rate limiting disabled")
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteEmpty(w, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteEmpty(w, http.StatusMethodNotAllowed)
	})

	h := handlers.NewHandler(rooms, redisStore, cfg.InstanceID)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/api", h.Root)
	r.Get("/health", h.Health)
	r.Get("/stats", h.Stats)

	r.Route("/rooms", func(r chi.Router) {
		r.Get("/", h.SearchRooms)
		r.Post("/", h.CreateRoom)
		r.Get("/{roomId}/messages", h.GetRoomMessages)
		r.Post("/{roomId}/messages", h.PostMessage)
	})

	return r
}
