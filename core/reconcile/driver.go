package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hotel-inventory/core/lock"
	"hotel-inventory/core/logger"
	"hotel-inventory/core/upstream"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Poller fetches a batch of pending events.
type Poller interface {
	Poll(ctx context.Context, maxMessages int) ([]upstream.InboundEvent, error)
}

// Archiver stores a raw batch and returns its object key.
type Archiver interface {
	Archive(ctx context.Context, cycleID string, at time.Time, body []byte) (string, error)
}

// Driver runs poll cycles. It keeps no state between cycles.
type Driver struct {
	poller     Poller
	reconciler *Reconciler
	batchSize  int
	logger     *zap.Logger
	archiver   Archiver
	locker     lock.Locker
	newID      func() string
	now        func() time.Time
}

// NewDriver creates a driver polling up to cfg.BatchSize events per cycle.
func NewDriver(poller Poller, reconciler *Reconciler, cfg Config, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 10
	}
	return &Driver{
		poller:     poller,
		reconciler: reconciler,
		batchSize:  batch,
		logger:     logger,
		newID:      uuid.NewString,
		now:        time.Now,
	}
}

// WithArchiver stores every non-empty raw batch before it is applied.
func (d *Driver) WithArchiver(a Archiver) *Driver {
	d.archiver = a
	return d
}

// WithLocker serializes cycles across processes.
func (d *Driver) WithLocker(l lock.Locker) *Driver {
	d.locker = l
	return d
}

// RunCycle performs one poll-reconcile-acknowledge pass. Errors are returned
// only when the cycle could not start (upstream unavailable or malformed);
// per-event failures are in the summary.
func (d *Driver) RunCycle(ctx context.Context) (*Summary, error) {
	cycleID := d.newID()
	started := d.now()
	l := logger.WithCycle(d.logger, cycleID)

	if d.locker != nil {
		lease, err := d.locker.Acquire(ctx)
		switch {
		case err != nil:
			l.Warn("Cycle lock unavailable, continuing without it", zap.Error(err))
		case lease == nil:
			l.Info("Another cycle is running, skipping")
			return &Summary{CycleID: cycleID, StartedAt: started, FinishedAt: d.now(), Busy: true}, nil
		default:
			defer func() {
				if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
					l.Warn("Failed to release cycle lock", zap.Error(err))
				}
			}()
		}
	}

	batch, err := d.poller.Poll(ctx, d.batchSize)
	if err != nil {
		l.Error("Poll failed", zap.Error(err))
		return nil, fmt.Errorf("poll: %w", err)
	}
	if len(batch) == 0 {
		l.Debug("No pending events")
		return &Summary{CycleID: cycleID, StartedAt: started, FinishedAt: d.now(), NoWork: true, Results: []Result{}}, nil
	}

	l.Info("Polled events", zap.Int("count", len(batch)))

	var archiveKey string
	if d.archiver != nil {
		archiveKey = d.archive(ctx, l, cycleID, started, batch)
	}

	summary := d.reconciler.Apply(ctx, cycleID, BuildPlan(batch))
	summary.StartedAt = started
	summary.ArchiveKey = archiveKey
	return summary, nil
}

// Preview polls and classifies without applying or acknowledging anything.
// The upstream redelivers the previewed events.
func (d *Driver) Preview(ctx context.Context) (*Plan, error) {
	batch, err := d.poller.Poll(ctx, d.batchSize)
	if err != nil {
		return nil, fmt.Errorf("poll: %w", err)
	}
	return BuildPlan(batch), nil
}

func (d *Driver) archive(ctx context.Context, l *zap.Logger, cycleID string, at time.Time, batch []upstream.InboundEvent) string {
	body, err := rawBatch(batch)
	if err != nil {
		l.Warn("Failed to encode batch for archive", zap.Error(err))
		return ""
	}
	key, err := d.archiver.Archive(ctx, cycleID, at, body)
	if err != nil {
		l.Warn("Failed to archive batch", zap.Error(err))
		return ""
	}
	l.Debug("Archived batch", zap.String("key", key))
	return key
}

func rawBatch(batch []upstream.InboundEvent) ([]byte, error) {
	raw := make([]json.RawMessage, 0, len(batch))
	for _, ev := range batch {
		if len(ev.Raw) > 0 {
			raw = append(raw, ev.Raw)
			continue
		}
		b, err := json.Marshal(ev.Payload)
		if err != nil {
			return nil, err
		}
		raw = append(raw, b)
	}
	return json.Marshal(raw)
}
