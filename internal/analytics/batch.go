package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/rahulj/polypost/internal/types"
)

// PublishSource is where the batch runner finds records to measure.
type PublishSource interface {
	List(ctx context.Context) ([]types.PublishRecord, error)
}

// Batch collects engagement for published records on a fixed cadence.
// A failed window is skipped, not retried in place; the affected records
// are still unmeasured and get picked up on the next tick.
//
// Dedup lives in the metric store, keyed by publish ID, so independent
// Batch instances over the same store never double-measure a record.
type Batch struct {
	pubs    PublishSource
	metrics MetricStore
	window  time.Duration

	mu sync.Mutex // serializes collection passes
}

// NewBatch builds a Batch over the given sources with a window duration.
func NewBatch(pubs PublishSource, metrics MetricStore, window time.Duration) *Batch {
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &Batch{
		pubs:    pubs,
		metrics: metrics,
		window:  window,
	}
}

// CollectOnce measures every published-but-unmeasured record into the
// window ending at now. Returns how many metrics were recorded.
func (b *Batch) CollectOnce(ctx context.Context, now time.Time) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	records, err := b.pubs.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list publish records: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(records))
	for _, rec := range records {
		if rec.Status == types.StatusPublished {
			ids = append(ids, rec.ID)
		}
	}
	measured, err := b.metrics.Measured(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to check measured records: %w", err)
	}

	start := now.Add(-b.window)
	collected := 0
	for _, rec := range records {
		if rec.Status != types.StatusPublished || measured[rec.ID] {
			continue
		}
		metric := Simulate(rec, start, now)
		if err := b.metrics.Insert(ctx, metric); err != nil {
			// Skip the rest of this window; everything unmeasured is
			// retried next tick.
			return collected, fmt.Errorf("failed to store metric for %s: %w", rec.ID, err)
		}
		collected++
	}
	return collected, nil
}

// Schedule registers CollectOnce on the given cron spec (e.g. "@hourly")
// and returns the started scheduler. A pass that outlasts the cadence
// makes the next tick skip instead of stacking. Callers own Stop.
func (b *Batch) Schedule(ctx context.Context, spec string, onErr func(error)) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(spec, func() {
		if _, err := b.CollectOnce(ctx, time.Now().UTC()); err != nil && onErr != nil {
			onErr(err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid collection schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
