// Package publishsim simulates publishing to external platforms. Publishes
// are idempotent on the variant's fingerprint and gated by the kill switch
// right up to the commit point.
package publishsim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rahulj/polypost/internal/types"
)

// Store persists publish records. CreateScheduled must be atomic: under
// concurrent calls for one key, exactly one caller creates the record and
// the rest observe it.
type Store interface {
	// CreateScheduled inserts rec if no record exists for its VariantKey.
	// Returns the stored record and whether this call created it.
	CreateScheduled(ctx context.Context, rec types.PublishRecord) (types.PublishRecord, bool, error)
	// Finalize moves a record out of scheduled. Illegal transitions fail.
	Finalize(ctx context.Context, id uuid.UUID, status types.PublishStatus, reason string, publishedAt *time.Time) error
	// Get fetches the record for a variant key.
	Get(ctx context.Context, variantKey string) (types.PublishRecord, bool, error)
	// List returns all records, newest first.
	List(ctx context.Context) ([]types.PublishRecord, error)
}

// MemoryStore is the in-process Store used by the CLI preview path and tests.
type MemoryStore struct {
	mu   sync.Mutex
	byKey map[string]*types.PublishRecord
	byID  map[uuid.UUID]*types.PublishRecord
	order []string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byKey: make(map[string]*types.PublishRecord),
		byID:  make(map[uuid.UUID]*types.PublishRecord),
	}
}

// CreateScheduled inserts rec unless its key is already present.
func (m *MemoryStore) CreateScheduled(_ context.Context, rec types.PublishRecord) (types.PublishRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.byKey[rec.VariantKey]; ok {
		return *existing, false, nil
	}

	stored := rec
	stored.Status = types.StatusScheduled
	m.byKey[rec.VariantKey] = &stored
	m.byID[rec.ID] = &stored
	m.order = append(m.order, rec.VariantKey)
	return stored, true, nil
}

// Finalize transitions a scheduled record to its terminal status.
func (m *MemoryStore) Finalize(_ context.Context, id uuid.UUID, status types.PublishStatus, reason string, publishedAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("publish record %s not found", id)
	}
	if !rec.Status.CanTransition(status) {
		return fmt.Errorf("illegal transition %s -> %s for record %s", rec.Status, status, id)
	}
	rec.Status = status
	rec.Reason = reason
	rec.PublishedAt = publishedAt
	return nil
}

// Get fetches the record for a variant key.
func (m *MemoryStore) Get(_ context.Context, variantKey string) (types.PublishRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.byKey[variantKey]
	if !ok {
		return types.PublishRecord{}, false, nil
	}
	return *rec, true, nil
}

// List returns all records, newest first.
func (m *MemoryStore) List(_ context.Context) ([]types.PublishRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.PublishRecord, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		out = append(out, *m.byKey[m.order[i]])
	}
	return out, nil
}
