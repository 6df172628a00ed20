package publishsim

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulj/polypost/internal/collab"
	"github.com/rahulj/polypost/internal/types"
)

func testVariant() types.ContentVariant {
	return types.ContentVariant{
		ID:        uuid.New(),
		ContentID: uuid.New(),
		Platform:  "twitter",
		Language:  "en",
		Tone:      types.ToneNeutral,
		Text:      "Stay strong, the storm will pass",
	}
}

func TestPublishHappyPath(t *testing.T) {
	sim := NewSimulator(NewMemoryStore(), nil)

	rec, err := sim.Publish(context.Background(), uuid.New(), testVariant())
	require.NoError(t, err)
	assert.Equal(t, types.StatusPublished, rec.Status)
	require.NotNil(t, rec.PublishedAt)
	assert.Equal(t, "twitter", rec.Platform)
	assert.Equal(t, len([]rune("Stay strong, the storm will pass")), rec.TextLength)
}

func TestPublishIdempotent(t *testing.T) {
	store := NewMemoryStore()
	sim := NewSimulator(store, nil)
	runID := uuid.New()
	variant := testVariant()

	first, err := sim.Publish(context.Background(), runID, variant)
	require.NoError(t, err)

	second, err := sim.Publish(context.Background(), runID, variant)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same variant key returns the original record")

	all, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPublishConcurrentSameKey(t *testing.T) {
	store := NewMemoryStore()
	sim := NewSimulator(store, nil)
	variant := testVariant()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := sim.Publish(context.Background(), uuid.New(), variant)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1, "concurrent publishes of one key yield one record")
	assert.Equal(t, types.StatusPublished, all[0].Status)
}

func TestPublishKillSwitchAborts(t *testing.T) {
	sim := NewSimulator(NewMemoryStore(), collab.StaticKillSwitch{Engaged: true})

	rec, err := sim.Publish(context.Background(), uuid.New(), testVariant())
	require.NoError(t, err, "abort is a recorded outcome, not an error")
	assert.Equal(t, types.StatusAborted, rec.Status)
	assert.Equal(t, "kill switch active", rec.Reason)
	assert.Nil(t, rec.PublishedAt)
}

func TestPublishDistinctVariantsDistinctRecords(t *testing.T) {
	store := NewMemoryStore()
	sim := NewSimulator(store, nil)
	runID := uuid.New()

	a := testVariant()
	b := testVariant()
	b.Platform = "linkedin"

	_, err := sim.Publish(context.Background(), runID, a)
	require.NoError(t, err)
	_, err = sim.Publish(context.Background(), runID, b)
	require.NoError(t, err)

	all, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMemoryStoreTransitionRules(t *testing.T) {
	store := NewMemoryStore()
	rec := types.PublishRecord{ID: uuid.New(), VariantKey: "k", CreatedAt: time.Now()}

	stored, created, err := store.CreateScheduled(context.Background(), rec)
	require.NoError(t, err)
	require.True(t, created)

	now := time.Now().UTC()
	require.NoError(t, store.Finalize(context.Background(), stored.ID, types.StatusPublished, "", &now))

	err = store.Finalize(context.Background(), stored.ID, types.StatusAborted, "late", nil)
	require.Error(t, err, "published records never move again")
}
