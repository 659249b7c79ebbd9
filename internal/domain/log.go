package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DispenseStatus records the outcome of a scheduled dose.
type DispenseStatus string

const (
	// StatusTaken means the dose was dispensed.
	StatusTaken DispenseStatus = "Taken"
	// StatusSkipped means the dose was not dispensed (manual skip or
	// depleted slot).
	StatusSkipped DispenseStatus = "Skipped"
)

// ValidStatus reports whether s is a recognized dispense status.
func ValidStatus(s DispenseStatus) bool {
	return s == StatusTaken || s == StatusSkipped
}

// DispenseLogRecord is one entry in the dispense history. The engine
// produces records and hands them to the persistence gateway; it never
// reads them back for its own logic.
type DispenseLogRecord struct {
	ID           string         `json:"id"`
	SlotNumber   int            `json:"slot_number"`
	MedicineName string         `json:"medicine_name"`
	Dosage       int            `json:"dosage"`
	Timestamp    time.Time      `json:"timestamp"`
	Status       DispenseStatus `json:"status"`
}

// FiredMark is the canonical marker for a (slot, schedule time) pair that
// already fired on a given day, used both by the evaluator's in-memory set
// and by the persisted per-day markers. Format: "slot:HH:MM".
func FiredMark(slotNumber int, tod TimeOfDay) string {
	return fmt.Sprintf("%d:%s", slotNumber, tod)
}

// NewDispenseLogRecord builds a record for a dose that fired at ts.
func NewDispenseLogRecord(slot Slot, dosage int, ts time.Time, status DispenseStatus) DispenseLogRecord {
	return DispenseLogRecord{
		ID:           uuid.New().String(),
		SlotNumber:   slot.SlotNumber,
		MedicineName: slot.MedicineName,
		Dosage:       dosage,
		Timestamp:    ts,
		Status:       status,
	}
}
