// Package httptransport assembles the HTTP router. Transport concerns only:
// middleware ordering, the public health and metrics endpoints and the
// authenticated /api group. Business logic stays in the module services.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"minehub/pkg/platform/middleware/auth"
	"minehub/pkg/platform/middleware/request"
)

// Registrar mounts a module's endpoints on a router group.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter wires middleware and module handlers. Everything under /api
// requires a bearer token; health and metrics stay public.
func NewRouter(signingKey string, logger *slog.Logger, modules ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(request.ID)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(auth.RequireAuth(signingKey, logger))
		for _, m := range modules {
			m.Register(api)
		}
	})

	return r
}
