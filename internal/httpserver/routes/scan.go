package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/Sprudeel/nextPFF/internal/httpserver/deps"
	"github.com/Sprudeel/nextPFF/internal/httpserver/handlers"
	"github.com/Sprudeel/nextPFF/internal/httpserver/mw"
)

func init() { Register(registerScan) }

func registerScan(r chi.Router, d deps.Deps) {
	r.With(mw.AllowOnlyCIDRS(d.ScanAllowedCIDRS, d.TrustProxy, d.Logger)).Post("/api/scan", handlers.Scan(d))
}
