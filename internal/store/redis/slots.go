package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pilldeck/pilldeck/internal/domain"
)

// Store is the persistence gateway: slot records, the dispense history
// and fired-dose markers live in Redis. The in-memory registry remains
// the authoritative source while the process runs; the store exists so
// state survives restarts.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// SaveSlot stores one slot record.
func (s *Store) SaveSlot(ctx context.Context, slot domain.Slot) error {
	data, err := json.Marshal(slot)
	if err != nil {
		return fmt.Errorf("failed to marshal slot: %w", err)
	}

	if err := s.client.Set(ctx, SlotKey(slot.SlotNumber), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save slot %d: %w", slot.SlotNumber, err)
	}
	return nil
}

// GetSlot retrieves one slot record. A missing key yields a blank slot,
// mirroring the fixed hardware: every position exists even when nothing
// was ever stored for it.
func (s *Store) GetSlot(ctx context.Context, slotNumber int) (domain.Slot, error) {
	data, err := s.client.Get(ctx, SlotKey(slotNumber)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.EmptySlot(slotNumber), nil
		}
		return domain.Slot{}, fmt.Errorf("failed to get slot %d: %w", slotNumber, err)
	}

	var slot domain.Slot
	if err := json.Unmarshal(data, &slot); err != nil {
		return domain.Slot{}, fmt.Errorf("failed to unmarshal slot %d: %w", slotNumber, err)
	}
	return slot, nil
}

// LoadSlots retrieves all slotCount slots, back-filling blanks for
// positions with no stored record.
func (s *Store) LoadSlots(ctx context.Context, slotCount int) ([]domain.Slot, error) {
	slots := make([]domain.Slot, 0, slotCount)
	for n := 1; n <= slotCount; n++ {
		slot, err := s.GetSlot(ctx, n)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// SaveSlotsMany stores multiple slot records in one pipeline.
func (s *Store) SaveSlotsMany(ctx context.Context, slots []domain.Slot) error {
	pipe := s.client.Pipeline()

	for _, slot := range slots {
		data, err := json.Marshal(slot)
		if err != nil {
			return fmt.Errorf("failed to marshal slot %d: %w", slot.SlotNumber, err)
		}
		pipe.Set(ctx, SlotKey(slot.SlotNumber), data, 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save slots: %w", err)
	}
	return nil
}

// ClearSlot overwrites a slot record with blank defaults.
func (s *Store) ClearSlot(ctx context.Context, slotNumber int) error {
	return s.SaveSlot(ctx, domain.EmptySlot(slotNumber))
}
