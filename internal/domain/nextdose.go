package domain

import "time"

// UpcomingDose is the projection of the nearest future scheduled dose.
type UpcomingDose struct {
	SlotNumber   int       `json:"slot_number"`
	MedicineName string    `json:"medicine_name"`
	Time         TimeOfDay `json:"time"`
	Dosage       int       `json:"dosage"`
	At           time.Time `json:"at"`
}

// NextDose finds the single nearest future dose across all assigned,
// non-depleted slots. A schedule time at or before now rolls to the same
// time tomorrow. Ties on the timestamp go to the lowest slot number.
//
// Pure query over a slot snapshot; safe to call at any frequency.
func NextDose(slots []Slot, now time.Time) (UpcomingDose, bool) {
	var best UpcomingDose
	found := false

	for _, slot := range slots {
		if slot.IsEmpty() || slot.TabletsLeft <= 0 {
			continue
		}
		for _, entry := range slot.Schedules {
			occ := entry.Time.NextAfter(now)
			if found {
				if occ.After(best.At) {
					continue
				}
				if occ.Equal(best.At) && slot.SlotNumber >= best.SlotNumber {
					continue
				}
			}
			best = UpcomingDose{
				SlotNumber:   slot.SlotNumber,
				MedicineName: slot.MedicineName,
				Time:         entry.Time,
				Dosage:       entry.Dosage,
				At:           occ,
			}
			found = true
		}
	}

	return best, found
}
