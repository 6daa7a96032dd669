package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Sprudeel/nextPFF/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
}

// Readyz reports ready once at least one scan cycle has populated the
// in-memory cache.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, ready := d.Index.Snapshot()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(readyzResponse{
			Ready: ready,
		})
	}
}
