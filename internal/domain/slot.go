package domain

import (
	"fmt"
	"time"
)

// TimeOfDay is a recurring daily wall-clock time with minute resolution.
// It has no date component; the wire format is "HH:MM".
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (24h) into a TimeOfDay.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var tod TimeOfDay
	if _, err := fmt.Sscanf(s, "%02d:%02d", &tod.Hour, &tod.Minute); err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: invalid time %q", ErrValidation, s)
	}
	if tod.Hour < 0 || tod.Hour > 23 || tod.Minute < 0 || tod.Minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: time %q out of range", ErrValidation, s)
	}
	return tod, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Before reports whether t is earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	return t.Minute < other.Minute
}

// Matches reports whether now, truncated to minute resolution, falls on t.
func (t TimeOfDay) Matches(now time.Time) bool {
	return now.Hour() == t.Hour && now.Minute() == t.Minute
}

// NextAfter returns the next occurrence of t strictly after now.
// If today's occurrence is at or before now, it rolls to tomorrow.
func (t TimeOfDay) NextAfter(now time.Time) time.Time {
	occ := time.Date(now.Year(), now.Month(), now.Day(), t.Hour, t.Minute, 0, 0, now.Location())
	if !occ.After(now) {
		occ = occ.AddDate(0, 0, 1)
	}
	return occ
}

// MarshalText implements encoding.TextMarshaler ("HH:MM").
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ScheduleEntry is a single daily dosing time attached to a slot.
type ScheduleEntry struct {
	Time   TimeOfDay `json:"time"`
	Dosage int       `json:"dosage"` // tablets to dispense, always >= 1
}

// Slot represents one physical dispenser compartment.
//
// The registry exclusively owns all Slot values; collaborators receive
// copies, never shared references.
type Slot struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// SlotNumber is the physical position, 1..N. Never changes after
	// creation, including on Clear.
	SlotNumber int `json:"slot_number"`

	// ─────────────────────────────
	// Contents
	// ─────────────────────────────

	// MedicineName is a free-text label. Empty means the slot is
	// unassigned.
	MedicineName string `json:"medicine_name"`

	// TotalTablets is the capacity loaded at the last refill.
	TotalTablets int `json:"total_tablets"`

	// TabletsLeft is the remaining count. Never negative, never above
	// TotalTablets.
	TabletsLeft int `json:"tablets_left"`

	// Schedules is ordered by time of day; no two entries share a time.
	Schedules []ScheduleEntry `json:"schedules"`

	// UpdatedAt is set on any mutation.
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// EmptySlot returns a blank slot for the given position.
func EmptySlot(number int) Slot {
	return Slot{SlotNumber: number}
}

// IsEmpty reports whether the slot holds no medicine assignment.
func (s Slot) IsEmpty() bool {
	return s.MedicineName == ""
}

// Clone returns a deep copy of the slot, including its schedule list.
func (s Slot) Clone() Slot {
	out := s
	if s.Schedules != nil {
		out.Schedules = make([]ScheduleEntry, len(s.Schedules))
		copy(out.Schedules, s.Schedules)
	}
	return out
}
