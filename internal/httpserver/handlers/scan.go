package handlers

import (
	"net/http"

	"github.com/Sprudeel/nextPFF/internal/httpserver/deps"
	"github.com/Sprudeel/nextPFF/internal/logger"
)

// Scan triggers a manual scan run. The trigger channel is buffered with
// size one; a scan already waiting to run answers 409 instead of queueing
// further runs.
func Scan(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		select {
		case d.ScanTrigger <- struct{}{}:
			d.Logger.Info("manual scan triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte(`{"status":"scan triggered"}`))
		default:
			d.Logger.Warn("scan already pending",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"status":"scan already pending"}`))
		}
	}
}
