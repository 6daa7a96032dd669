package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Sprudeel/nextPFF/internal/httpserver/deps"
)

// History serves the status transition log. Same contract as Snapshot:
// absent or partial data comes back as an empty valid document.
func History(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hist, ok := d.Index.History()
		if !ok {
			hist = d.Store.LoadHistory()
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(hist)
	}
}
