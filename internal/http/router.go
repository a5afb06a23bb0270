// Package httpapi assembles the public HTTP surface: platform middleware,
// feature routers, and the operational endpoints.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"scanid/internal/platform/metrics"
	"scanid/internal/platform/middleware"
	"scanid/internal/platform/ratelimit"
	"scanid/internal/transport/http/shared"
)

// Registrar is implemented by feature handlers that mount their own routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports the health of one backing dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router needs. Postgres and Redis are optional;
// nil checkers report as disabled rather than unhealthy.
type Deps struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Validator middleware.JWTValidator
	Limiter   *ratelimit.Limiter

	ScanHandler    Registrar
	BarcodeHandler Registrar

	Postgres HealthChecker
	Redis    HealthChecker

	RequestTimeout time.Duration
}

// NewRouter wires all endpoints. Operational endpoints stay outside the auth
// and rate-limit chain; everything else requires a bearer token.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.LatencyMiddleware(deps.Metrics))

	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r.Get("/healthz", healthz(deps))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(api chi.Router) {
		api.Use(middleware.Timeout(timeout))
		api.Use(middleware.ContentTypeJSON)
		api.Use(middleware.Device)
		api.Use(middleware.RequireAuth(deps.Validator, deps.Logger))
		if deps.Limiter != nil {
			api.Use(ratelimit.Middleware(deps.Limiter))
		}

		if deps.ScanHandler != nil {
			deps.ScanHandler.Register(api)
		}
		if deps.BarcodeHandler != nil {
			deps.BarcodeHandler.Register(api)
		}
	})

	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func healthz(deps Deps) http.HandlerFunc {
	check := func(ctx context.Context, hc HealthChecker) string {
		if hc == nil {
			return "disabled"
		}
		if err := hc.Health(ctx); err != nil {
			return "unhealthy"
		}
		return "ok"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{
			Status: "ok",
			Checks: map[string]string{
				"postgres": check(ctx, deps.Postgres),
				"redis":    check(ctx, deps.Redis),
			},
		}

		status := http.StatusOK
		for _, state := range resp.Checks {
			if state == "unhealthy" {
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
			}
		}

		shared.WriteJSON(w, status, resp)
	}
}
