package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pilldeck/pilldeck/internal/domain"
	"github.com/pilldeck/pilldeck/internal/httpserver/deps"
	"github.com/pilldeck/pilldeck/internal/logger"
)

// slotView is a slot plus its stock classification for display.
type slotView struct {
	domain.Slot
	Stock domain.StockLevel `json:"stock"`
}

type updateSlotRequest struct {
	MedicineName string                 `json:"medicine_name"`
	TotalTablets int                    `json:"total_tablets"`
	Schedules    []domain.ScheduleEntry `json:"schedules"`
}

// ListSlots returns every slot with its stock level.
func ListSlots(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slots := d.Registry.All()

		views := make([]slotView, 0, len(slots))
		for _, slot := range slots {
			views = append(views, slotView{
				Slot:  slot,
				Stock: domain.ClassifyStock(slot, d.LowStockThreshold),
			})
		}
		writeJSON(w, http.StatusOK, views)
	}
}

// GetSlot returns a single slot with its stock level.
func GetSlot(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slotNumber, err := slotNumberParam(r)
		if err != nil {
			writeError(w, err)
			return
		}

		slot, err := d.Registry.Get(slotNumber)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, slotView{
			Slot:  slot,
			Stock: domain.ClassifyStock(slot, d.LowStockThreshold),
		})
	}
}

// UpdateSlot applies a user edit to a slot and persists the result.
func UpdateSlot(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slotNumber, err := slotNumberParam(r)
		if err != nil {
			writeError(w, err)
			return
		}

		var req updateSlotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
			return
		}

		slot, err := d.Registry.Update(slotNumber, req.MedicineName, req.TotalTablets, req.Schedules)
		if err != nil {
			writeError(w, err)
			return
		}

		// Store write is best effort; the registry already holds the edit
		// and full-slot writes are idempotent on the next mutation.
		if err := d.Store.SaveSlot(r.Context(), slot); err != nil {
			d.Logger.Warn("failed to persist slot update",
				logger.Int("slot", slotNumber),
				logger.Error(err))
		}

		d.Logger.Info("slot updated",
			logger.Int("slot", slotNumber),
			logger.String("medicine", slot.MedicineName),
			logger.Int("total_tablets", slot.TotalTablets))

		writeJSON(w, http.StatusOK, slotView{
			Slot:  slot,
			Stock: domain.ClassifyStock(slot, d.LowStockThreshold),
		})
	}
}

// ClearSlot resets a slot to blank defaults.
func ClearSlot(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slotNumber, err := slotNumberParam(r)
		if err != nil {
			writeError(w, err)
			return
		}

		slot, err := d.Registry.Clear(slotNumber)
		if err != nil {
			writeError(w, err)
			return
		}

		if err := d.Store.ClearSlot(r.Context(), slotNumber); err != nil {
			d.Logger.Warn("failed to persist slot clear",
				logger.Int("slot", slotNumber),
				logger.Error(err))
		}

		d.Logger.Info("slot cleared", logger.Int("slot", slotNumber))

		writeJSON(w, http.StatusOK, slotView{Slot: slot, Stock: domain.StockEmpty})
	}
}

func slotNumberParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "slotNumber")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid slot number %q", domain.ErrValidation, raw)
	}
	return n, nil
}
