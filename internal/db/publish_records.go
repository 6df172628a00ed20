package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rahulj/polypost/internal/types"
)

// PublishStore implements the publish simulator's Store on Postgres.
// Idempotence rides on the unique index over variant_key: concurrent
// publishes of one key race on the insert and exactly one row wins.
type PublishStore struct {
	db *DB
}

// NewPublishStore returns a PublishStore over db.
func NewPublishStore(db *DB) *PublishStore {
	return &PublishStore{db: db}
}

const publishColumns = `id, run_id, variant_key, platform, language, tone, status, reason, text_length, published_at, created_at`

// CreateScheduled inserts rec unless its variant key already exists. The
// stored record is returned either way, with created reporting whether this
// call inserted it.
func (s *PublishStore) CreateScheduled(ctx context.Context, rec types.PublishRecord) (types.PublishRecord, bool, error) {
	tag, err := s.db.pool.Exec(ctx,
		`INSERT INTO publish_records (id, run_id, variant_key, platform, language, tone, status, text_length)
		 VALUES ($1, $2, $3, $4, $5, $6, 'scheduled', $7)
		 ON CONFLICT (variant_key) DO NOTHING`,
		rec.ID, rec.RunID, rec.VariantKey, rec.Platform, rec.Language, rec.Tone, rec.TextLength,
	)
	if err != nil {
		return types.PublishRecord{}, false, fmt.Errorf("failed to schedule publish record: %w", err)
	}

	stored, ok, err := s.Get(ctx, rec.VariantKey)
	if err != nil {
		return types.PublishRecord{}, false, err
	}
	if !ok {
		return types.PublishRecord{}, false, fmt.Errorf("publish record vanished after insert for key %s", rec.VariantKey)
	}
	return stored, tag.RowsAffected() == 1, nil
}

// Finalize moves a scheduled record to its terminal status. The WHERE clause
// enforces the transition rule at the database level.
func (s *PublishStore) Finalize(ctx context.Context, id uuid.UUID, status types.PublishStatus, reason string, publishedAt *time.Time) error {
	tag, err := s.db.pool.Exec(ctx,
		`UPDATE publish_records
		 SET status = $1, reason = $2, published_at = $3
		 WHERE id = $4 AND status = 'scheduled'`,
		status, reason, publishedAt, id,
	)
	if err != nil {
		return fmt.Errorf("failed to finalize publish record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("publish record %s is not scheduled", id)
	}
	return nil
}

// Get fetches the record for a variant key.
func (s *PublishStore) Get(ctx context.Context, variantKey string) (types.PublishRecord, bool, error) {
	var rec types.PublishRecord
	var reason *string
	err := s.db.pool.QueryRow(ctx,
		`SELECT `+publishColumns+` FROM publish_records WHERE variant_key = $1`,
		variantKey,
	).Scan(&rec.ID, &rec.RunID, &rec.VariantKey, &rec.Platform, &rec.Language, &rec.Tone,
		&rec.Status, &reason, &rec.TextLength, &rec.PublishedAt, &rec.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return types.PublishRecord{}, false, nil
		}
		return types.PublishRecord{}, false, fmt.Errorf("failed to get publish record: %w", err)
	}
	if reason != nil {
		rec.Reason = *reason
	}
	return rec, true, nil
}

// List returns all publish records, newest first.
func (s *PublishStore) List(ctx context.Context) ([]types.PublishRecord, error) {
	rows, err := s.db.pool.Query(ctx,
		`SELECT `+publishColumns+` FROM publish_records ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list publish records: %w", err)
	}
	defer rows.Close()

	var records []types.PublishRecord
	for rows.Next() {
		var rec types.PublishRecord
		var reason *string
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.VariantKey, &rec.Platform, &rec.Language, &rec.Tone,
			&rec.Status, &reason, &rec.TextLength, &rec.PublishedAt, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan publish record: %w", err)
		}
		if reason != nil {
			rec.Reason = *reason
		}
		records = append(records, rec)
	}
	return records, nil
}
