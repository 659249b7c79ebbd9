package domain

import (
	"fmt"
	"sort"
)

// NormalizeSchedules validates entries, merges duplicate times by summing
// their dosages and sorts the result by time of day. Merging (rather than
// rejecting) keeps the total daily intake a user entered across duplicate
// rows.
func NormalizeSchedules(schedules []ScheduleEntry) ([]ScheduleEntry, error) {
	if len(schedules) == 0 {
		return nil, nil
	}

	merged := make(map[TimeOfDay]int, len(schedules))
	for _, entry := range schedules {
		if entry.Time.Hour < 0 || entry.Time.Hour > 23 || entry.Time.Minute < 0 || entry.Time.Minute > 59 {
			return nil, fmt.Errorf("%w: time %s out of range", ErrValidation, entry.Time)
		}
		if entry.Dosage < 1 {
			return nil, fmt.Errorf("%w: dosage must be >= 1, got %d at %s",
				ErrValidation, entry.Dosage, entry.Time)
		}
		merged[entry.Time] += entry.Dosage
	}

	out := make([]ScheduleEntry, 0, len(merged))
	for tod, dosage := range merged {
		out = append(out, ScheduleEntry{Time: tod, Dosage: dosage})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out, nil
}
