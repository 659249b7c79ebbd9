package handlers

import (
	"net/http"
	"sort"

	"github.com/pilldeck/pilldeck/internal/domain"
	"github.com/pilldeck/pilldeck/internal/httpserver/deps"
)

type alarmsResponse struct {
	Alarms []string `json:"alarms"`
}

// Alarms returns the sorted unique schedule times across all slots.
// Consumed by the hardware, which rings at each alarm time regardless of
// which slot it belongs to.
func Alarms(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seen := make(map[domain.TimeOfDay]bool)
		for _, slot := range d.Registry.All() {
			if slot.IsEmpty() {
				continue
			}
			for _, entry := range slot.Schedules {
				seen[entry.Time] = true
			}
		}

		alarms := make([]string, 0, len(seen))
		for tod := range seen {
			alarms = append(alarms, tod.String())
		}
		sort.Strings(alarms)

		writeJSON(w, http.StatusOK, alarmsResponse{Alarms: alarms})
	}
}
