package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sprudeel/nextPFF/internal/httpserver/deps"
	"github.com/Sprudeel/nextPFF/internal/httpserver/handlers"
)

func init() { Register(registerInfra) }

func registerInfra(r chi.Router, d deps.Deps) {
	r.Get("/api/healthz", handlers.Healthz(d))
	r.Get("/api/readyz", handlers.Readyz(d))
	r.Method("GET", "/metrics", promhttp.HandlerFor(d.PromGatherer, promhttp.HandlerOpts{}))
}
