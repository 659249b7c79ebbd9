package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/pilldeck/pilldeck/internal/domain"
)

func mustTime(t *testing.T, s string) domain.TimeOfDay {
	t.Helper()
	tod, err := domain.ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q) failed: %v", s, err)
	}
	return tod
}

func TestNewCreatesBlankSlots(t *testing.T) {
	reg := New(8)

	slots := reg.All()
	if len(slots) != 8 {
		t.Fatalf("New(8) created %d slots, want 8", len(slots))
	}
	for i, slot := range slots {
		if slot.SlotNumber != i+1 {
			t.Errorf("slot at index %d has number %d, want %d", i, slot.SlotNumber, i+1)
		}
		if !slot.IsEmpty() || slot.TotalTablets != 0 || slot.TabletsLeft != 0 {
			t.Errorf("slot %d not blank: %+v", slot.SlotNumber, slot)
		}
	}
}

func TestGetOutOfRange(t *testing.T) {
	reg := New(8)

	for _, n := range []int{0, -1, 9} {
		if _, err := reg.Get(n); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Get(%d) = %v, want ErrNotFound", n, err)
		}
	}
}

func TestUpdateAppliesEdit(t *testing.T) {
	reg := New(8)

	schedules := []domain.ScheduleEntry{
		{Time: mustTime(t, "21:00"), Dosage: 2},
		{Time: mustTime(t, "09:00"), Dosage: 1},
	}

	slot, err := reg.Update(3, "Aspirin", 30, schedules)
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	if slot.MedicineName != "Aspirin" {
		t.Errorf("MedicineName = %q, want Aspirin", slot.MedicineName)
	}
	if slot.TotalTablets != 30 || slot.TabletsLeft != 30 {
		t.Errorf("totals = %d/%d, want 30/30", slot.TabletsLeft, slot.TotalTablets)
	}
	// Schedules come back sorted by time of day
	if len(slot.Schedules) != 2 {
		t.Fatalf("got %d schedules, want 2", len(slot.Schedules))
	}
	if slot.Schedules[0].Time.Hour != 9 || slot.Schedules[1].Time.Hour != 21 {
		t.Errorf("schedules not sorted: %+v", slot.Schedules)
	}
}

func TestUpdateRefillPolicy(t *testing.T) {
	reg := New(8)

	if _, err := reg.Update(1, "Metformin", 10, nil); err != nil {
		t.Fatalf("initial Update() failed: %v", err)
	}
	for i := 0; i < 7; i++ {
		if _, err := reg.ApplyDispense(1, 1); err != nil {
			t.Fatalf("ApplyDispense() failed: %v", err)
		}
	}

	// Same total: tablets_left stays at its decremented value
	slot, err := reg.Update(1, "Metformin", 10, nil)
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if slot.TabletsLeft != 3 {
		t.Errorf("unchanged total reset tablets_left to %d, want 3", slot.TabletsLeft)
	}

	// Changed total: operator reloaded the slot, tablets_left resets
	slot, err = reg.Update(1, "Metformin", 30, nil)
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if slot.TabletsLeft != 30 {
		t.Errorf("changed total left tablets_left at %d, want 30", slot.TabletsLeft)
	}
}

func TestUpdateRejectsNegativeTotal(t *testing.T) {
	reg := New(8)

	if _, err := reg.Update(1, "X", -1, nil); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Update(total=-1) = %v, want ErrValidation", err)
	}
}

func TestUpdateRejectsBadDosage(t *testing.T) {
	reg := New(8)

	schedules := []domain.ScheduleEntry{{Time: mustTime(t, "09:00"), Dosage: 0}}
	if _, err := reg.Update(1, "X", 10, schedules); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Update(dosage=0) = %v, want ErrValidation", err)
	}

	// A failed update must not half-apply
	slot, _ := reg.Get(1)
	if !slot.IsEmpty() {
		t.Errorf("failed update mutated the slot: %+v", slot)
	}
}

func TestUpdateMergesDuplicateTimes(t *testing.T) {
	reg := New(8)

	schedules := []domain.ScheduleEntry{
		{Time: mustTime(t, "09:00"), Dosage: 1},
		{Time: mustTime(t, "09:00"), Dosage: 2},
	}
	slot, err := reg.Update(1, "Aspirin", 30, schedules)
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	if len(slot.Schedules) != 1 {
		t.Fatalf("got %d schedules, want 1 (merged)", len(slot.Schedules))
	}
	if slot.Schedules[0].Dosage != 3 {
		t.Errorf("merged dosage = %d, want 3", slot.Schedules[0].Dosage)
	}
}

func TestClearKeepsSlotNumber(t *testing.T) {
	reg := New(8)

	if _, err := reg.Update(5, "Aspirin", 30, []domain.ScheduleEntry{{Time: mustTime(t, "09:00"), Dosage: 1}}); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	slot, err := reg.Clear(5)
	if err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if slot.SlotNumber != 5 {
		t.Errorf("Clear() changed slot number to %d, want 5", slot.SlotNumber)
	}
	if slot.MedicineName != "" || slot.TotalTablets != 0 || slot.TabletsLeft != 0 || len(slot.Schedules) != 0 {
		t.Errorf("Clear() left state behind: %+v", slot)
	}
}

func TestApplyDispenseDecrements(t *testing.T) {
	reg := New(8)

	if _, err := reg.Update(2, "Aspirin", 4, nil); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	slot, err := reg.ApplyDispense(2, 2)
	if err != nil {
		t.Fatalf("ApplyDispense() failed: %v", err)
	}
	if slot.TabletsLeft != 2 {
		t.Errorf("TabletsLeft = %d, want 2", slot.TabletsLeft)
	}
}

func TestApplyDispenseInsufficientStock(t *testing.T) {
	reg := New(8)

	if _, err := reg.Update(2, "Aspirin", 1, nil); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	if _, err := reg.ApplyDispense(2, 2); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("ApplyDispense(dosage > left) = %v, want ErrInsufficientStock", err)
	}

	// The failed dispense must leave the count unchanged
	slot, _ := reg.Get(2)
	if slot.TabletsLeft != 1 {
		t.Errorf("failed dispense changed tablets_left to %d, want 1", slot.TabletsLeft)
	}
}

func TestApplyDispenseNeverGoesNegative(t *testing.T) {
	reg := New(8)

	if _, err := reg.Update(1, "Aspirin", 5, nil); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		_, _ = reg.ApplyDispense(1, 2)
	}

	slot, _ := reg.Get(1)
	if slot.TabletsLeft < 0 || slot.TabletsLeft > slot.TotalTablets {
		t.Errorf("tablets_left = %d out of [0, %d]", slot.TabletsLeft, slot.TotalTablets)
	}
}

func TestReplaceAllValidatesSlotSet(t *testing.T) {
	reg := New(4)

	tests := []struct {
		name    string
		numbers []int
		wantErr bool
	}{
		{name: "dense set", numbers: []int{1, 2, 3, 4}, wantErr: false},
		{name: "any order", numbers: []int{4, 2, 1, 3}, wantErr: false},
		{name: "too few", numbers: []int{1, 2, 3}, wantErr: true},
		{name: "duplicate", numbers: []int{1, 2, 3, 3}, wantErr: true},
		{name: "out of range", numbers: []int{1, 2, 3, 5}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := make([]domain.Slot, 0, len(tt.numbers))
			for _, n := range tt.numbers {
				slots = append(slots, domain.EmptySlot(n))
			}

			err := reg.ReplaceAll(slots)
			if tt.wantErr && !errors.Is(err, domain.ErrInvalidState) {
				t.Errorf("ReplaceAll(%v) = %v, want ErrInvalidState", tt.numbers, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ReplaceAll(%v) = %v, want nil", tt.numbers, err)
			}
		})
	}
}

func TestAllReturnsCopies(t *testing.T) {
	reg := New(8)

	if _, err := reg.Update(1, "Aspirin", 10, []domain.ScheduleEntry{{Time: mustTime(t, "09:00"), Dosage: 1}}); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	snapshot := reg.All()
	snapshot[0].MedicineName = "tampered"
	snapshot[0].Schedules[0].Dosage = 99

	slot, _ := reg.Get(1)
	if slot.MedicineName != "Aspirin" {
		t.Error("mutating a snapshot leaked into the registry")
	}
	if slot.Schedules[0].Dosage != 1 {
		t.Error("mutating a snapshot schedule leaked into the registry")
	}
}

func TestConcurrentDispenseAndEdit(t *testing.T) {
	reg := New(8)

	if _, err := reg.Update(1, "Aspirin", 1000, nil); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = reg.ApplyDispense(1, 1)
		}()
	}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = reg.All()
		}()
	}
	wg.Wait()

	slot, _ := reg.Get(1)
	if slot.TabletsLeft != 900 {
		t.Errorf("concurrent dispenses left %d tablets, want 900", slot.TabletsLeft)
	}
}
