package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pilldeck/pilldeck/internal/domain"
	"github.com/pilldeck/pilldeck/internal/httpserver/deps"
	"github.com/pilldeck/pilldeck/internal/logger"
)

type appendLogRequest struct {
	SlotNumber int                   `json:"slot_number"`
	Dosage     int                   `json:"dosage"`
	Status     domain.DispenseStatus `json:"status"`
}

// ListLogs returns the dispense history, newest first.
func ListLogs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := d.Store.LoadLogs(r.Context())
		if err != nil {
			d.Logger.Error("failed to load dispense logs", logger.Error(err))
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

// AppendLog records a manual Taken/Skipped entry, e.g. when the user takes
// a dose by hand or marks one as missed. A manual Taken also decrements
// the slot's stock.
func AppendLog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req appendLogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
			return
		}
		if !domain.ValidStatus(req.Status) {
			writeError(w, fmt.Errorf("%w: status must be %q or %q", domain.ErrValidation,
				domain.StatusTaken, domain.StatusSkipped))
			return
		}
		if req.Dosage < 1 {
			writeError(w, fmt.Errorf("%w: dosage must be >= 1, got %d", domain.ErrValidation, req.Dosage))
			return
		}

		slot, err := d.Registry.Get(req.SlotNumber)
		if err != nil {
			writeError(w, err)
			return
		}

		if req.Status == domain.StatusTaken {
			slot, err = d.Registry.ApplyDispense(req.SlotNumber, req.Dosage)
			if err != nil {
				writeError(w, err)
				return
			}
			if err := d.Store.SaveSlot(r.Context(), slot); err != nil {
				d.Logger.Warn("failed to persist slot after manual dispense",
					logger.Int("slot", req.SlotNumber),
					logger.Error(err))
			}
		}

		record := domain.NewDispenseLogRecord(slot, req.Dosage, d.TimeNow(), req.Status)
		if err := d.Store.AppendLog(r.Context(), record); err != nil {
			d.Logger.Error("failed to append dispense log record", logger.Error(err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, record)
	}
}
