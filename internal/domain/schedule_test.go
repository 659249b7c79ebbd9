package domain

import (
	"errors"
	"testing"
)

func TestNormalizeSchedulesSortsByTime(t *testing.T) {
	in := []ScheduleEntry{
		{Time: TimeOfDay{Hour: 21}, Dosage: 2},
		{Time: TimeOfDay{Hour: 7, Minute: 30}, Dosage: 1},
		{Time: TimeOfDay{Hour: 12}, Dosage: 1},
	}

	out, err := NormalizeSchedules(in)
	if err != nil {
		t.Fatalf("NormalizeSchedules() failed: %v", err)
	}

	want := []TimeOfDay{{Hour: 7, Minute: 30}, {Hour: 12}, {Hour: 21}}
	if len(out) != len(want) {
		t.Fatalf("got %d entries, want %d", len(out), len(want))
	}
	for i, tod := range want {
		if out[i].Time != tod {
			t.Errorf("entry %d at %s, want %s", i, out[i].Time, tod)
		}
	}
}

func TestNormalizeSchedulesMergesDuplicates(t *testing.T) {
	in := []ScheduleEntry{
		{Time: TimeOfDay{Hour: 9}, Dosage: 1},
		{Time: TimeOfDay{Hour: 9}, Dosage: 2},
		{Time: TimeOfDay{Hour: 9}, Dosage: 1},
	}

	out, err := NormalizeSchedules(in)
	if err != nil {
		t.Fatalf("NormalizeSchedules() failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d entries, want 1", len(out))
	}
	if out[0].Dosage != 4 {
		t.Errorf("merged dosage = %d, want 4", out[0].Dosage)
	}
}

func TestNormalizeSchedulesRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   []ScheduleEntry
	}{
		{name: "zero dosage", in: []ScheduleEntry{{Time: TimeOfDay{Hour: 9}, Dosage: 0}}},
		{name: "negative dosage", in: []ScheduleEntry{{Time: TimeOfDay{Hour: 9}, Dosage: -1}}},
		{name: "hour out of range", in: []ScheduleEntry{{Time: TimeOfDay{Hour: 24}, Dosage: 1}}},
		{name: "minute out of range", in: []ScheduleEntry{{Time: TimeOfDay{Hour: 9, Minute: 60}, Dosage: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NormalizeSchedules(tt.in); !errors.Is(err, ErrValidation) {
				t.Errorf("NormalizeSchedules() = %v, want ErrValidation", err)
			}
		})
	}
}

func TestNormalizeSchedulesEmpty(t *testing.T) {
	out, err := NormalizeSchedules(nil)
	if err != nil {
		t.Fatalf("NormalizeSchedules(nil) failed: %v", err)
	}
	if out != nil {
		t.Errorf("NormalizeSchedules(nil) = %v, want nil", out)
	}
}
