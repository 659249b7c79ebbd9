package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pilldeck/pilldeck/internal/domain"
	"github.com/pilldeck/pilldeck/internal/logger"
	"github.com/pilldeck/pilldeck/internal/registry"
)

// Gateway is the slice of the persistence gateway the evaluator needs.
// Writes are best effort: a failed save never rolls back the in-memory
// decrement, because the physical tablet already left the slot.
type Gateway interface {
	SaveSlot(ctx context.Context, slot domain.Slot) error
	AppendLog(ctx context.Context, record domain.DispenseLogRecord) error
	MarkFired(ctx context.Context, day string, slotNumber int, tod domain.TimeOfDay) error
	LoadFiredMarks(ctx context.Context, day string) ([]string, error)
}

// Dispenser periodically evaluates wall-clock time against every slot's
// schedules and fires due doses: decrement stock, emit a log record,
// persist. One evaluation per matching minute per (slot, time) pair.
type Dispenser struct {
	registry      *registry.Registry
	gateway       Gateway
	logger        logger.Logger
	interval      time.Duration
	nowFn         func() time.Time
	manualTrigger chan struct{}
	stopCh        chan struct{}

	// inFlight collapses overlapping ticks to a single evaluation.
	inFlight atomic.Bool

	// fired holds the (slot, time) pairs already dispensed today.
	// Guarded by mu; reset on day rollover.
	mu       sync.Mutex
	firedDay string
	fired    map[string]struct{}
}

// NewDispenser creates the evaluator. nowFn is the clock source; pass
// time.Now in production.
func NewDispenser(
	reg *registry.Registry,
	gateway Gateway,
	log logger.Logger,
	interval time.Duration,
	nowFn func() time.Time,
	manualTrigger chan struct{},
) *Dispenser {
	return &Dispenser{
		registry:      reg,
		gateway:       gateway,
		logger:        log,
		interval:      interval,
		nowFn:         nowFn,
		manualTrigger: manualTrigger,
		stopCh:        make(chan struct{}),
		fired:         make(map[string]struct{}),
	}
}

// Start primes the fired markers for today from the gateway and begins
// the periodic evaluation loop.
func (d *Dispenser) Start(ctx context.Context) error {
	d.primeFired(ctx, d.nowFn())

	ticker := time.NewTicker(d.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				d.Tick(ctx, d.nowFn())
			case <-d.manualTrigger:
				d.logger.Info("manual evaluation triggered")
				d.Tick(ctx, d.nowFn())
			case <-d.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the evaluation loop.
func (d *Dispenser) Stop() {
	close(d.stopCh)
}

// Tick runs one evaluation pass for the given instant. Overlapping calls
// are collapsed: if an evaluation is already in flight, the tick is
// dropped. Safe to call directly from tests and from the manual trigger.
func (d *Dispenser) Tick(ctx context.Context, now time.Time) {
	if !d.inFlight.CompareAndSwap(false, true) {
		d.logger.Warn("tick overlapped a running evaluation, skipping")
		return
	}
	defer d.inFlight.Store(false)

	now = now.Truncate(time.Minute)
	day := now.Format(time.DateOnly)
	d.rollover(day)

	// Snapshot first, then apply: the evaluation never observes a slot
	// mid-edit.
	slots := d.registry.All()

	for _, slot := range slots {
		if slot.IsEmpty() {
			continue
		}
		for _, entry := range slot.Schedules {
			if !entry.Time.Matches(now) {
				continue
			}
			d.fire(ctx, slot, entry, now, day)
		}
	}
}

// fire dispenses one due dose. Insufficient stock is a warning, never
// fatal: the rest of the scan continues.
func (d *Dispenser) fire(ctx context.Context, slot domain.Slot, entry domain.ScheduleEntry, now time.Time, day string) {
	mark := domain.FiredMark(slot.SlotNumber, entry.Time)
	if d.alreadyFired(mark) {
		d.logger.Debug("dose already fired today, skipping",
			logger.Int("slot", slot.SlotNumber),
			logger.String("time", entry.Time.String()))
		return
	}

	if entry.Dosage > slot.TabletsLeft {
		d.logger.Warn("due dose skipped, not enough tablets",
			logger.Int("slot", slot.SlotNumber),
			logger.String("medicine", slot.MedicineName),
			logger.Int("dosage", entry.Dosage),
			logger.Int("tablets_left", slot.TabletsLeft))
		return
	}

	updated, err := d.registry.ApplyDispense(slot.SlotNumber, entry.Dosage)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			// Raced with a concurrent manual edit since the snapshot.
			d.logger.Warn("due dose skipped, stock changed under evaluation",
				logger.Int("slot", slot.SlotNumber),
				logger.Error(err))
			return
		}
		d.logger.Error("failed to apply dispense",
			logger.Int("slot", slot.SlotNumber),
			logger.Error(err))
		return
	}

	d.markFired(mark)

	record := domain.NewDispenseLogRecord(updated, entry.Dosage, now, domain.StatusTaken)

	// Persistence is best effort from here on; the tablet is out of the
	// slot whether or not the writes succeed.
	if err := d.gateway.AppendLog(ctx, record); err != nil {
		d.logger.Warn("failed to persist dispense log record",
			logger.Int("slot", slot.SlotNumber),
			logger.Error(err))
	}
	if err := d.gateway.SaveSlot(ctx, updated); err != nil {
		d.logger.Warn("failed to persist slot after dispense",
			logger.Int("slot", slot.SlotNumber),
			logger.Error(err))
	}
	if err := d.gateway.MarkFired(ctx, day, slot.SlotNumber, entry.Time); err != nil {
		d.logger.Warn("failed to persist fired marker",
			logger.Int("slot", slot.SlotNumber),
			logger.Error(err))
	}

	d.logger.Info("dose dispensed",
		logger.Int("slot", slot.SlotNumber),
		logger.String("medicine", updated.MedicineName),
		logger.Int("dosage", entry.Dosage),
		logger.Int("tablets_left", updated.TabletsLeft),
		logger.Time("at", now))
}

// primeFired loads today's fired markers from the gateway so a restart
// inside a matching minute cannot double-fire.
func (d *Dispenser) primeFired(ctx context.Context, now time.Time) {
	day := now.Format(time.DateOnly)

	d.mu.Lock()
	d.firedDay = day
	d.mu.Unlock()

	marks, err := d.gateway.LoadFiredMarks(ctx, day)
	if err != nil {
		d.logger.Warn("failed to load fired markers, starting with empty set",
			logger.Error(err))
		return
	}

	d.mu.Lock()
	for _, mark := range marks {
		d.fired[mark] = struct{}{}
	}
	d.mu.Unlock()

	if len(marks) > 0 {
		d.logger.Info("restored fired markers",
			logger.String("day", day),
			logger.Int("count", len(marks)))
	}
}

// rollover resets the fired set when the calendar day changes.
func (d *Dispenser) rollover(day string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if day != d.firedDay {
		d.firedDay = day
		d.fired = make(map[string]struct{})
	}
}

func (d *Dispenser) alreadyFired(mark string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, ok := d.fired[mark]
	return ok
}

func (d *Dispenser) markFired(mark string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.fired[mark] = struct{}{}
}
