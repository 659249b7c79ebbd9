package handlers

import (
	"net/http"

	"github.com/pilldeck/pilldeck/internal/domain"
	"github.com/pilldeck/pilldeck/internal/httpserver/deps"
)

// NextDose returns the nearest future scheduled dose across all slots,
// or 204 when no assigned slot has an eligible schedule.
func NextDose(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dose, ok := domain.NextDose(d.Registry.All(), d.TimeNow())
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, dose)
	}
}
