package scheduler

import (
	"context"
	"fmt"

	"github.com/pilldeck/pilldeck/internal/logger"
	"github.com/pilldeck/pilldeck/internal/registry"
	"github.com/pilldeck/pilldeck/internal/sources/seedfile"
	redisstore "github.com/pilldeck/pilldeck/internal/store/redis"
)

// Seeder applies a slots provisioning file on first boot. It only acts
// when every slot in the registry is blank, so an already-provisioned
// dispenser never gets overwritten by a stale file.
type Seeder struct {
	loader   *seedfile.Loader
	mapper   *seedfile.Mapper
	store    *redisstore.Store
	registry *registry.Registry
	logger   logger.Logger
}

// NewSeeder creates a seeder for the given provisioning file.
func NewSeeder(
	seedFile string,
	store *redisstore.Store,
	reg *registry.Registry,
	log logger.Logger,
) *Seeder {
	return &Seeder{
		loader:   seedfile.NewLoader(seedFile),
		mapper:   seedfile.NewMapper(reg.SlotCount()),
		store:    store,
		registry: reg,
		logger:   log,
	}
}

// Apply loads the seed file and provisions the registry and store.
// A no-op when any slot already holds a medicine.
func (s *Seeder) Apply(ctx context.Context) error {
	for _, slot := range s.registry.All() {
		if !slot.IsEmpty() {
			s.logger.Info("slots already provisioned, skipping seed file")
			return nil
		}
	}

	config, err := s.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load seed file: %w", err)
	}

	slots, err := s.mapper.MapSlots(config)
	if err != nil {
		return fmt.Errorf("failed to map seed slots: %w", err)
	}

	if err := s.registry.ReplaceAll(slots); err != nil {
		return fmt.Errorf("failed to apply seed slots: %w", err)
	}

	// Store write is best effort; memory is the runtime source of truth.
	if err := s.store.SaveSlotsMany(ctx, slots); err != nil {
		s.logger.Warn("failed to persist seeded slots",
			logger.Error(err))
	}

	assigned := 0
	for _, slot := range slots {
		if !slot.IsEmpty() {
			assigned++
		}
	}
	s.logger.Info("slots provisioned from seed file",
		logger.Int("assigned", assigned))

	return nil
}
