// Package server wires the relay's HTTP endpoints into a chi router.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter returns the relay's route table: the WebSocket endpoint, a
// liveness check, and Prometheus metrics.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", h.Health)
	r.Get("/ws", h.ServeWS)
	r.Handle("/metrics", promhttp.Handler())
	return r
}
