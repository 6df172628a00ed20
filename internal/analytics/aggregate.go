package analytics

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rahulj/polypost/internal/types"
)

// Filter narrows a metric query. Zero values match everything.
type Filter struct {
	Platform string
	Language string
	Tone     types.Tone
}

func (f Filter) matches(m types.EngagementMetric) bool {
	if f.Platform != "" && !strings.EqualFold(f.Platform, m.Platform) {
		return false
	}
	if f.Language != "" && !strings.EqualFold(f.Language, m.Language) {
		return false
	}
	if f.Tone != "" && f.Tone != m.Tone {
		return false
	}
	return true
}

// MetricStore persists engagement metrics. Closed windows are append-only;
// implementations never update rows in place.
type MetricStore interface {
	Insert(ctx context.Context, metric types.EngagementMetric) error
	Query(ctx context.Context, start, end time.Time, filter Filter) ([]types.EngagementMetric, error)
	// Measured reports which of the given publish IDs already have at
	// least one metric recorded.
	Measured(ctx context.Context, publishIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

// AggregateRow is the mean/median summary for one platform/language group.
type AggregateRow struct {
	Platform   string  `json:"platform"`
	Language   string  `json:"language"`
	Count      int     `json:"count"`
	MeanRate   float64 `json:"mean_rate"`
	MedianRate float64 `json:"median_rate"`
	TotalViews int     `json:"total_views"`
}

// Summary is an aggregation result. NoData distinguishes "no activity in
// the window" from a zero-engagement window.
type Summary struct {
	WindowStart time.Time      `json:"window_start"`
	WindowEnd   time.Time      `json:"window_end"`
	NoData      bool           `json:"no_data"`
	Rows        []AggregateRow `json:"rows,omitempty"`
}

// Aggregate groups metrics by platform and language and computes mean and
// median engagement rates per group.
func Aggregate(metrics []types.EngagementMetric, start, end time.Time) Summary {
	if len(metrics) == 0 {
		return Summary{WindowStart: start, WindowEnd: end, NoData: true}
	}

	type group struct {
		rates []float64
		views int
	}
	groups := map[[2]string]*group{}
	for _, m := range metrics {
		key := [2]string{strings.ToLower(m.Platform), strings.ToLower(m.Language)}
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
		}
		g.rates = append(g.rates, m.EngagementRate)
		g.views += m.Views
	}

	rows := make([]AggregateRow, 0, len(groups))
	for key, g := range groups {
		rows = append(rows, AggregateRow{
			Platform:   key[0],
			Language:   key[1],
			Count:      len(g.rates),
			MeanRate:   mean(g.rates),
			MedianRate: median(g.rates),
			TotalViews: g.views,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Platform != rows[j].Platform {
			return rows[i].Platform < rows[j].Platform
		}
		return rows[i].Language < rows[j].Language
	})

	return Summary{WindowStart: start, WindowEnd: end, Rows: rows}
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// MemoryMetricStore is the in-process MetricStore for previews and tests.
type MemoryMetricStore struct {
	mu      sync.Mutex
	metrics []types.EngagementMetric
}

// NewMemoryMetricStore returns an empty store.
func NewMemoryMetricStore() *MemoryMetricStore {
	return &MemoryMetricStore{}
}

// Insert appends a metric.
func (s *MemoryMetricStore) Insert(_ context.Context, metric types.EngagementMetric) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = append(s.metrics, metric)
	return nil
}

// Query returns metrics whose window overlaps [start, end) and match filter.
func (s *MemoryMetricStore) Query(_ context.Context, start, end time.Time, filter Filter) ([]types.EngagementMetric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []types.EngagementMetric
	for _, m := range s.metrics {
		if m.WindowEnd.Before(start) || !m.WindowStart.Before(end) {
			continue
		}
		if filter.matches(m) {
			out = append(out, m)
		}
	}
	return out, nil
}

// Measured reports which publish IDs already have a recorded metric.
func (s *MemoryMetricStore) Measured(_ context.Context, publishIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recorded := map[uuid.UUID]bool{}
	for _, m := range s.metrics {
		recorded[m.PublishID] = true
	}
	out := make(map[uuid.UUID]bool, len(publishIDs))
	for _, id := range publishIDs {
		if recorded[id] {
			out[id] = true
		}
	}
	return out, nil
}
