package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/Sprudeel/nextPFF/internal/httpserver/deps"
	"github.com/Sprudeel/nextPFF/internal/httpserver/handlers"
)

func init() { Register(registerStatus) }

func registerStatus(r chi.Router, d deps.Deps) {
	r.Get("/api/snapshot", handlers.Snapshot(d))
	r.Get("/api/history", handlers.History(d))
}
