package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/heartmarshall/safetylog-backend/internal/config"
	"github.com/heartmarshall/safetylog-backend/internal/transport/middleware"
)

// RouterDeps groups everything the HTTP router mounts.
type RouterDeps struct {
	Logger         *slog.Logger
	CORS           config.CORSConfig
	Auth           middleware.Middleware
	Metrics        *middleware.HTTPMetrics
	Gatherer       prometheus.Gatherer
	RateLimiter    *middleware.RateLimiter // nil disables limiting
	RateLimit      int
	Health         *HealthHandler
	Establishments *EstablishmentHandler
}

// NewRouter builds the API handler. Probes and /metrics sit outside the
// authenticated group and are not access-logged.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(deps.Metrics.Middleware())
	r.Use(middleware.CORS(deps.CORS))

	r.Get("/live", deps.Health.Live)
	r.Get("/ready", deps.Health.Ready)
	r.Get("/health", deps.Health.Health)
	r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		if deps.RateLimiter != nil && deps.RateLimit > 0 {
			r.Use(deps.RateLimiter.Limit(deps.RateLimit))
		}
		r.Use(deps.Auth)
		r.Use(middleware.Logger(deps.Logger))

		r.Route("/establishments", deps.Establishments.Routes)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrorPayload{Code: "NOT_FOUND", Message: "not found"}})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: ErrorPayload{Code: "METHOD_NOT_ALLOWED", Message: "method not allowed"}})
	})

	return otelhttp.NewHandler(r, "http.server",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
