package scheduler

import (
	"context"

	"github.com/pilldeck/pilldeck/internal/logger"
	"github.com/pilldeck/pilldeck/internal/registry"
	redisstore "github.com/pilldeck/pilldeck/internal/store/redis"
)

// StoreSyncer seeds the registry from Redis at startup.
type StoreSyncer struct {
	store    *redisstore.Store
	registry *registry.Registry
	logger   logger.Logger
}

// NewStoreSyncer creates a new store syncer.
func NewStoreSyncer(
	store *redisstore.Store,
	reg *registry.Registry,
	log logger.Logger,
) *StoreSyncer {
	return &StoreSyncer{
		store:    store,
		registry: reg,
		logger:   log,
	}
}

// Sync loads all slot records from the store and bulk-loads the registry.
// Positions with no stored record come back blank, so the result is
// always the full dense slot set.
func (ss *StoreSyncer) Sync(ctx context.Context) error {
	ss.logger.Info("syncing slots from redis to memory")

	slots, err := ss.store.LoadSlots(ctx, ss.registry.SlotCount())
	if err != nil {
		return err
	}

	if err := ss.registry.ReplaceAll(slots); err != nil {
		return err
	}

	assigned := 0
	for _, slot := range slots {
		if !slot.IsEmpty() {
			assigned++
		}
	}

	ss.logger.Info("synced slots from redis",
		logger.Int("slots", len(slots)),
		logger.Int("assigned", assigned))

	return nil
}
