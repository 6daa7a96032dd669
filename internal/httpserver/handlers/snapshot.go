package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Sprudeel/nextPFF/internal/httpserver/deps"
)

// Snapshot serves the latest scan snapshot. A missing snapshot is served
// as an empty-but-valid document, never as an error: the dashboard read
// path must not fail on absent data.
func Snapshot(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := d.Index.Snapshot()
		if !ok {
			snap = d.Store.LoadSnapshot()
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(snap)
	}
}
