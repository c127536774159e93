// Package httptransport assembles the HTTP router from the feature handlers
// and the operational endpoints.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	memberhandler "guild/internal/member/handler"
)

// NewRouter wires the membership routes plus health and metrics.
func NewRouter(member *memberhandler.Handler, registry *prometheus.Registry) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	member.Register(r)
	return r
}
