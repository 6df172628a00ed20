package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rahulj/polypost/internal/analytics"
	"github.com/rahulj/polypost/internal/types"
)

// MetricStore implements the analytics MetricStore on Postgres. The table
// is append-only; closed windows are never rewritten.
type MetricStore struct {
	db *DB
}

// NewMetricStore returns a MetricStore over db.
func NewMetricStore(db *DB) *MetricStore {
	return &MetricStore{db: db}
}

// Insert appends one engagement metric.
func (s *MetricStore) Insert(ctx context.Context, m types.EngagementMetric) error {
	_, err := s.db.pool.Exec(ctx,
		`INSERT INTO engagement_metrics
		 (id, publish_id, platform, language, tone, views, likes, shares, comments, engagement_rate, window_start, window_end)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.ID, m.PublishID, m.Platform, m.Language, m.Tone,
		m.Views, m.Likes, m.Shares, m.Comments, m.EngagementRate,
		m.WindowStart, m.WindowEnd,
	)
	if err != nil {
		return fmt.Errorf("failed to insert engagement metric: %w", err)
	}
	return nil
}

// Measured reports which of the given publish IDs already have a metric.
func (s *MetricStore) Measured(ctx context.Context, publishIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(publishIDs))
	if len(publishIDs) == 0 {
		return out, nil
	}

	rows, err := s.db.pool.Query(ctx,
		`SELECT DISTINCT publish_id FROM engagement_metrics WHERE publish_id = ANY($1)`,
		publishIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query measured publish ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan measured publish id: %w", err)
		}
		out[id] = true
	}
	return out, nil
}

// Query returns metrics whose window overlaps [start, end) and match filter.
func (s *MetricStore) Query(ctx context.Context, start, end time.Time, filter analytics.Filter) ([]types.EngagementMetric, error) {
	query := `SELECT id, publish_id, platform, language, tone, views, likes, shares, comments, engagement_rate, window_start, window_end, created_at
		FROM engagement_metrics
		WHERE window_end >= $1 AND window_start < $2`
	args := []any{start, end}
	argNum := 3

	if filter.Platform != "" {
		query += fmt.Sprintf(" AND LOWER(platform) = LOWER($%d)", argNum)
		args = append(args, filter.Platform)
		argNum++
	}
	if filter.Language != "" {
		query += fmt.Sprintf(" AND LOWER(language) = LOWER($%d)", argNum)
		args = append(args, filter.Language)
		argNum++
	}
	if filter.Tone != "" {
		query += fmt.Sprintf(" AND tone = $%d", argNum)
		args = append(args, filter.Tone)
	}

	query += " ORDER BY created_at ASC"

	rows, err := s.db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query engagement metrics: %w", err)
	}
	defer rows.Close()

	var metrics []types.EngagementMetric
	for rows.Next() {
		var m types.EngagementMetric
		if err := rows.Scan(&m.ID, &m.PublishID, &m.Platform, &m.Language, &m.Tone,
			&m.Views, &m.Likes, &m.Shares, &m.Comments, &m.EngagementRate,
			&m.WindowStart, &m.WindowEnd, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan engagement metric: %w", err)
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}
