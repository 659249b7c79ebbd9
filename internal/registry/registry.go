package registry

import (
	"fmt"
	"sync"
	"time"

	"github.com/pilldeck/pilldeck/internal/domain"
)

// Registry is the authoritative in-memory store of the dispenser's slots.
// All reads and writes to slot state go through it; one mutex serializes
// mutations so a manual edit and an automatic dispense cannot race.
type Registry struct {
	mu    sync.RWMutex
	slots []domain.Slot // index i holds slot number i+1
}

// New creates a registry with slotCount blank slots numbered 1..slotCount.
func New(slotCount int) *Registry {
	slots := make([]domain.Slot, slotCount)
	for i := range slots {
		slots[i] = domain.EmptySlot(i + 1)
	}
	return &Registry{slots: slots}
}

// SlotCount returns the fixed number of slots.
func (r *Registry) SlotCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.slots)
}

// Get returns a copy of the slot with the given number.
func (r *Registry) Get(slotNumber int) (domain.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.checkRange(slotNumber); err != nil {
		return domain.Slot{}, err
	}
	return r.slots[slotNumber-1].Clone(), nil
}

// All returns a consistent snapshot of every slot, ordered by slot number.
func (r *Registry) All() []domain.Slot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Slot, len(r.slots))
	for i, slot := range r.slots {
		out[i] = slot.Clone()
	}
	return out
}

// ReplaceAll bulk-loads the registry, typically from persistence at
// startup. The supplied slots must cover exactly the numbers 1..N.
func (r *Registry) ReplaceAll(slots []domain.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(slots) != len(r.slots) {
		return fmt.Errorf("%w: got %d slots, want %d", domain.ErrInvalidState, len(slots), len(r.slots))
	}

	replacement := make([]domain.Slot, len(r.slots))
	seen := make(map[int]bool, len(slots))
	for _, slot := range slots {
		n := slot.SlotNumber
		if n < 1 || n > len(r.slots) {
			return fmt.Errorf("%w: slot number %d out of range", domain.ErrInvalidState, n)
		}
		if seen[n] {
			return fmt.Errorf("%w: duplicate slot number %d", domain.ErrInvalidState, n)
		}
		seen[n] = true
		replacement[n-1] = slot.Clone()
	}

	r.slots = replacement
	return nil
}

// Update applies a user edit to a slot: name, capacity and schedules.
//
// Schedules are validated (dosage >= 1), duplicate times are merged with
// their dosages summed, and the result is sorted by time of day.
//
// Refill policy: a changed TotalTablets means the operator physically
// reloaded the slot, so TabletsLeft resets to the new total. An unchanged
// total leaves TabletsLeft untouched.
func (r *Registry) Update(slotNumber int, name string, totalTablets int, schedules []domain.ScheduleEntry) (domain.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkRange(slotNumber); err != nil {
		return domain.Slot{}, err
	}
	if totalTablets < 0 {
		return domain.Slot{}, fmt.Errorf("%w: total_tablets must be >= 0, got %d", domain.ErrValidation, totalTablets)
	}

	normalized, err := domain.NormalizeSchedules(schedules)
	if err != nil {
		return domain.Slot{}, err
	}

	slot := &r.slots[slotNumber-1]
	slot.MedicineName = name
	slot.Schedules = normalized
	if totalTablets != slot.TotalTablets {
		slot.TotalTablets = totalTablets
		slot.TabletsLeft = totalTablets
	}
	slot.UpdatedAt = time.Now()

	return slot.Clone(), nil
}

// Clear resets a slot to blank defaults, keeping its number.
func (r *Registry) Clear(slotNumber int) (domain.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkRange(slotNumber); err != nil {
		return domain.Slot{}, err
	}

	slot := domain.EmptySlot(slotNumber)
	slot.UpdatedAt = time.Now()
	r.slots[slotNumber-1] = slot
	return slot.Clone(), nil
}

// ApplyDispense decrements a slot's remaining count by dosage. The check
// and the decrement happen under the same lock, so a concurrent edit can
// never drive TabletsLeft negative.
func (r *Registry) ApplyDispense(slotNumber, dosage int) (domain.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkRange(slotNumber); err != nil {
		return domain.Slot{}, err
	}
	if dosage < 1 {
		return domain.Slot{}, fmt.Errorf("%w: dosage must be >= 1, got %d", domain.ErrValidation, dosage)
	}

	slot := &r.slots[slotNumber-1]
	if dosage > slot.TabletsLeft {
		return domain.Slot{}, fmt.Errorf("%w: slot %d has %d tablets, need %d",
			domain.ErrInsufficientStock, slotNumber, slot.TabletsLeft, dosage)
	}

	slot.TabletsLeft -= dosage
	slot.UpdatedAt = time.Now()
	return slot.Clone(), nil
}

// checkRange must be called with the lock held.
func (r *Registry) checkRange(slotNumber int) error {
	if slotNumber < 1 || slotNumber > len(r.slots) {
		return fmt.Errorf("%w: slot %d not in 1..%d", domain.ErrNotFound, slotNumber, len(r.slots))
	}
	return nil
}
