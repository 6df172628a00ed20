package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rahulj/polypost/internal/analytics"
	"github.com/rahulj/polypost/internal/db"
	"github.com/rahulj/polypost/internal/strategy"
	"github.com/rahulj/polypost/internal/types"
)

// handleMetricsSummary aggregates engagement over a trailing window
func (s *Server) handleMetricsSummary(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	days := 7
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 || parsed > 90 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid days parameter (1-90)")
			return
		}
		days = parsed
	}

	filter := analytics.Filter{
		Platform: r.URL.Query().Get("platform"),
		Language: r.URL.Query().Get("language"),
		Tone:     types.Tone(r.URL.Query().Get("tone")),
	}

	now := time.Now().UTC()
	start := now.AddDate(0, 0, -days)

	store := db.NewMetricStore(s.db)
	metrics, err := store.Query(r.Context(), start, now, filter)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, analytics.Aggregate(metrics, start, now))
}

// handleCollect runs one engagement collection pass over published records
func (s *Server) handleCollect(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	batch := analytics.NewBatch(db.NewPublishStore(s.db), db.NewMetricStore(s.db), 24*time.Hour)
	collected, err := batch.CollectOnce(r.Context(), time.Now().UTC())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Collection failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"collected": collected})
}

// handleAnalyze computes and saves the next strategy config version
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	var req types.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	engine := strategy.NewEngine(db.NewMetricStore(s.db), db.NewSignalStore(s.db))
	cfg, err := engine.Analyze(r.Context(), time.Now().UTC(), req.WindowDays)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, cfg)
}

// handleStrategyLatest returns the newest strategy config
func (s *Server) handleStrategyLatest(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	cfg, ok, err := db.NewSignalStore(s.db).LatestConfig(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "No strategy config yet")
		return
	}

	s.jsonResponse(w, http.StatusOK, cfg)
}
