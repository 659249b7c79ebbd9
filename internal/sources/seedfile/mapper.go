package seedfile

import (
	"fmt"
	"time"

	"github.com/pilldeck/pilldeck/internal/domain"
)

// Mapper converts a SeedConfig into the full dense slot set.
type Mapper struct {
	slotCount int
}

// NewMapper creates a mapper for a dispenser with slotCount positions.
func NewMapper(slotCount int) *Mapper {
	return &Mapper{slotCount: slotCount}
}

// MapSlots converts the provisioning entries into exactly slotCount
// slots, back-filling blanks for positions the file does not mention.
// Provisioned slots start full: tablets_left equals the loaded total.
func (m *Mapper) MapSlots(config SeedConfig) ([]domain.Slot, error) {
	slots := make([]domain.Slot, m.slotCount)
	for i := range slots {
		slots[i] = domain.EmptySlot(i + 1)
	}

	now := time.Now()

	for _, props := range config.Slots {
		if props.Slot < 1 || props.Slot > m.slotCount {
			return nil, fmt.Errorf("seed slot %d not in 1..%d", props.Slot, m.slotCount)
		}
		if props.Tablets < 0 {
			return nil, fmt.Errorf("seed slot %d: tablets must be >= 0, got %d", props.Slot, props.Tablets)
		}

		schedules := make([]domain.ScheduleEntry, 0, len(props.Schedules))
		for _, sched := range props.Schedules {
			tod, err := domain.ParseTimeOfDay(sched.Time)
			if err != nil {
				return nil, fmt.Errorf("seed slot %d: %w", props.Slot, err)
			}
			schedules = append(schedules, domain.ScheduleEntry{Time: tod, Dosage: sched.Dosage})
		}
		schedules, err := domain.NormalizeSchedules(schedules)
		if err != nil {
			return nil, fmt.Errorf("seed slot %d: %w", props.Slot, err)
		}

		slots[props.Slot-1] = domain.Slot{
			SlotNumber:   props.Slot,
			MedicineName: props.Medicine,
			TotalTablets: props.Tablets,
			TabletsLeft:  props.Tablets,
			Schedules:    schedules,
			UpdatedAt:    now,
		}
	}

	return slots, nil
}
