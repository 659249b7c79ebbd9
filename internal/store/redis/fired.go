package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/pilldeck/pilldeck/internal/domain"
)

// DefaultFiredTTL is how long a day's fired-dose markers are kept.
// Long enough to survive a restart inside a matching minute, short
// enough not to accumulate.
const DefaultFiredTTL = 48 * time.Hour

// MarkFired records that a (slot, schedule time) pair fired on the given
// calendar day.
func (s *Store) MarkFired(ctx context.Context, day string, slotNumber int, tod domain.TimeOfDay) error {
	key := FiredKey(day)
	member := domain.FiredMark(slotNumber, tod)

	pipe := s.client.Pipeline()
	pipe.SAdd(ctx, key, member)
	pipe.Expire(ctx, key, DefaultFiredTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to mark fired dose: %w", err)
	}
	return nil
}

// LoadFiredMarks returns all fired markers for a calendar day as
// "slot:HH:MM" members.
func (s *Store) LoadFiredMarks(ctx context.Context, day string) ([]string, error) {
	members, err := s.client.SMembers(ctx, FiredKey(day)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load fired marks: %w", err)
	}
	return members, nil
}
