package domain

import (
	"testing"
	"time"
)

func testSlot(number int, name string, left int, times ...TimeOfDay) Slot {
	schedules := make([]ScheduleEntry, 0, len(times))
	for _, tod := range times {
		schedules = append(schedules, ScheduleEntry{Time: tod, Dosage: 2})
	}
	return Slot{
		SlotNumber:   number,
		MedicineName: name,
		TotalTablets: left,
		TabletsLeft:  left,
		Schedules:    schedules,
	}
}

func TestNextDoseEmptyRegistry(t *testing.T) {
	slots := []Slot{EmptySlot(1), EmptySlot(2), EmptySlot(3)}

	if _, ok := NextDose(slots, time.Now()); ok {
		t.Error("NextDose() on blank slots returned a dose, want none")
	}
}

func TestNextDoseTodayVersusTomorrow(t *testing.T) {
	slots := []Slot{
		testSlot(1, "Aspirin", 4, TimeOfDay{Hour: 9}, TimeOfDay{Hour: 21}),
	}

	day := time.Date(2025, 6, 11, 0, 0, 0, 0, time.Local)

	// At 10:00 the 21:00 dose today is nearest
	dose, ok := NextDose(slots, day.Add(10*time.Hour))
	if !ok {
		t.Fatal("NextDose() returned none")
	}
	if dose.Time.Hour != 21 || dose.At.Day() != 11 {
		t.Errorf("at 10:00 got %s on day %d, want 21:00 today", dose.Time, dose.At.Day())
	}

	// At 22:00 both times have passed; 09:00 tomorrow is nearest
	dose, ok = NextDose(slots, day.Add(22*time.Hour))
	if !ok {
		t.Fatal("NextDose() returned none")
	}
	if dose.Time.Hour != 9 || dose.At.Day() != 12 {
		t.Errorf("at 22:00 got %s on day %d, want 09:00 tomorrow", dose.Time, dose.At.Day())
	}
}

func TestNextDoseSkipsDepletedAndEmptySlots(t *testing.T) {
	depleted := testSlot(1, "Aspirin", 0, TimeOfDay{Hour: 9})
	slots := []Slot{
		depleted,
		EmptySlot(2),
		testSlot(3, "Metformin", 5, TimeOfDay{Hour: 12}),
	}

	now := time.Date(2025, 6, 11, 8, 0, 0, 0, time.Local)
	dose, ok := NextDose(slots, now)
	if !ok {
		t.Fatal("NextDose() returned none")
	}
	if dose.SlotNumber != 3 {
		t.Errorf("NextDose() picked slot %d, want 3 (slot 1 is depleted)", dose.SlotNumber)
	}
}

func TestNextDoseTieGoesToLowestSlot(t *testing.T) {
	slots := []Slot{
		testSlot(2, "Aspirin", 5, TimeOfDay{Hour: 9}),
		testSlot(5, "Metformin", 5, TimeOfDay{Hour: 9}),
	}

	now := time.Date(2025, 6, 11, 8, 0, 0, 0, time.Local)
	dose, ok := NextDose(slots, now)
	if !ok {
		t.Fatal("NextDose() returned none")
	}
	if dose.SlotNumber != 2 {
		t.Errorf("tie broke to slot %d, want 2", dose.SlotNumber)
	}
}

func TestNextDoseIsPure(t *testing.T) {
	slots := []Slot{testSlot(1, "Aspirin", 5, TimeOfDay{Hour: 9})}
	now := time.Date(2025, 6, 11, 8, 0, 0, 0, time.Local)

	first, _ := NextDose(slots, now)
	for i := 0; i < 10; i++ {
		again, _ := NextDose(slots, now)
		if again != first {
			t.Fatalf("NextDose() not stable across calls: %+v vs %+v", again, first)
		}
	}
	if slots[0].TabletsLeft != 5 {
		t.Error("NextDose() mutated the snapshot")
	}
}
