package handlers

import (
	"net/http"

	"github.com/pilldeck/pilldeck/internal/httpserver/deps"
	"github.com/pilldeck/pilldeck/internal/logger"
)

// Tick triggers an immediate dispense evaluation outside the regular
// interval. The send is non-blocking: if an evaluation is already
// pending, the request is rejected rather than queued.
func Tick(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.TickTrigger <- struct{}{}:
			d.Logger.Info("manual evaluation triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusAccepted)
		default:
			d.Logger.Warn("evaluation already pending",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusTooManyRequests)
		}
	}
}
