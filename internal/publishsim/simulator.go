package publishsim

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rahulj/polypost/internal/collab"
	"github.com/rahulj/polypost/internal/types"
)

// Simulator performs publish attempts against a Store.
type Simulator struct {
	store Store
	kill  collab.KillSwitch
}

// NewSimulator builds a Simulator. A nil kill switch means always on.
func NewSimulator(store Store, kill collab.KillSwitch) *Simulator {
	if kill == nil {
		kill = collab.StaticKillSwitch{}
	}
	return &Simulator{store: store, kill: kill}
}

// Publish records one publish attempt for variant. Re-publishing an already
// processed variant returns the existing record unchanged. The kill switch
// is polled immediately before commit; if it is active the record lands as
// aborted rather than published. Aborts are recorded outcomes, not errors.
func (s *Simulator) Publish(ctx context.Context, runID uuid.UUID, variant types.ContentVariant) (types.PublishRecord, error) {
	rec := types.PublishRecord{
		ID:         uuid.New(),
		RunID:      runID,
		VariantKey: variant.Fingerprint(),
		Platform:   variant.Platform,
		Language:   variant.Language,
		Tone:       variant.Tone,
		Status:     types.StatusScheduled,
		TextLength: len([]rune(variant.Text)),
		CreatedAt:  time.Now().UTC(),
	}

	stored, created, err := s.store.CreateScheduled(ctx, rec)
	if err != nil {
		return types.PublishRecord{}, fmt.Errorf("failed to schedule publish: %w", err)
	}
	if !created {
		// Idempotence: someone already owns this variant key.
		return stored, nil
	}

	// Poll at the last moment so a switch flipped mid-run still halts
	// everything not yet committed.
	if s.kill.Active() {
		if err := s.store.Finalize(ctx, stored.ID, types.StatusAborted, "kill switch active", nil); err != nil {
			return types.PublishRecord{}, fmt.Errorf("failed to abort publish: %w", err)
		}
		stored.Status = types.StatusAborted
		stored.Reason = "kill switch active"
		return stored, nil
	}

	now := time.Now().UTC()
	if err := s.store.Finalize(ctx, stored.ID, types.StatusPublished, "", &now); err != nil {
		return types.PublishRecord{}, fmt.Errorf("failed to commit publish: %w", err)
	}
	stored.Status = types.StatusPublished
	stored.PublishedAt = &now
	return stored, nil
}
