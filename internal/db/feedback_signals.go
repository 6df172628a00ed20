package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rahulj/polypost/internal/types"
)

// SignalStore implements the strategy engine's SignalStore on Postgres.
// A config and its signals are written in one transaction so readers never
// see a half-saved version.
type SignalStore struct {
	db *DB
}

// NewSignalStore returns a SignalStore over db.
func NewSignalStore(db *DB) *SignalStore {
	return &SignalStore{db: db}
}

// SaveConfig persists cfg and all its signals transactionally.
func (s *SignalStore) SaveConfig(ctx context.Context, cfg types.StrategyConfig) error {
	tx, err := s.db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO strategy_configs (version, generated_at) VALUES ($1, $2)`,
		cfg.Version, cfg.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert strategy config v%d: %w", cfg.Version, err)
	}

	for _, sig := range cfg.Signals {
		_, err = tx.Exec(ctx,
			`INSERT INTO feedback_signals
			 (id, version, platform, language, tone, class, mean_rate, overall_mean, sample_count, recommended_tone, note, window_start, window_end)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			sig.ID, cfg.Version, sig.Platform, sig.Language, sig.Tone, sig.Class,
			sig.MeanRate, sig.OverallMean, sig.SampleCount, sig.RecommendedTone, sig.Note,
			sig.WindowStart, sig.WindowEnd,
		)
		if err != nil {
			return fmt.Errorf("failed to insert feedback signal: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit strategy config v%d: %w", cfg.Version, err)
	}
	return nil
}

// LatestConfig returns the newest config with its signals.
func (s *SignalStore) LatestConfig(ctx context.Context) (types.StrategyConfig, bool, error) {
	var cfg types.StrategyConfig
	err := s.db.pool.QueryRow(ctx,
		`SELECT version, generated_at FROM strategy_configs ORDER BY version DESC LIMIT 1`,
	).Scan(&cfg.Version, &cfg.GeneratedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return types.StrategyConfig{}, false, nil
		}
		return types.StrategyConfig{}, false, fmt.Errorf("failed to get latest strategy config: %w", err)
	}

	rows, err := s.db.pool.Query(ctx,
		`SELECT id, version, platform, language, tone, class, mean_rate, overall_mean, sample_count, recommended_tone, note, window_start, window_end, created_at
		 FROM feedback_signals WHERE version = $1 ORDER BY platform, language, tone`,
		cfg.Version,
	)
	if err != nil {
		return types.StrategyConfig{}, false, fmt.Errorf("failed to load feedback signals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sig types.FeedbackSignal
		if err := rows.Scan(&sig.ID, &sig.Version, &sig.Platform, &sig.Language, &sig.Tone, &sig.Class,
			&sig.MeanRate, &sig.OverallMean, &sig.SampleCount, &sig.RecommendedTone, &sig.Note,
			&sig.WindowStart, &sig.WindowEnd, &sig.CreatedAt); err != nil {
			return types.StrategyConfig{}, false, fmt.Errorf("failed to scan feedback signal: %w", err)
		}
		cfg.Signals = append(cfg.Signals, sig)
	}
	return cfg, true, nil
}
