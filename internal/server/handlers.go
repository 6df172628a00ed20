package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/rahulj/polypost/internal/db"
	"github.com/rahulj/polypost/internal/pipeline"
	"github.com/rahulj/polypost/internal/types"
)

// PublishResponse represents the response for /publish
type PublishResponse struct {
	RunID     string                `json:"run_id"`
	Status    string                `json:"status"`
	Tone      types.Tone            `json:"tone"`
	Language  string                `json:"language"`
	Variants  int                   `json:"variants"`
	Publishes []types.PublishRecord `json:"publishes"`
}

// RunResponse represents one run in list/detail responses
type RunResponse struct {
	RunID          string `json:"run_id"`
	ContentText    string `json:"content_text"`
	ContentContext string `json:"content_context,omitempty"`
	SourceLanguage string `json:"source_language,omitempty"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

// ArtifactResponse represents the response for a single artifact
type ArtifactResponse struct {
	RunID   string          `json:"run_id"`
	Step    string          `json:"step"`
	Content json.RawMessage `json:"content"`
}

// runOptionsFrom maps an API request onto pipeline options.
func (s *Server) runOptionsFrom(req types.PublishRequest) pipeline.RunOptions {
	return pipeline.RunOptions{
		Text:           req.Text,
		Context:        req.Context,
		Languages:      req.Languages,
		Platforms:      req.Platforms,
		Tone:           types.Tone(req.Tone),
		Intensity:      types.Intensity(req.Intensity),
		Profile:        req.Profile,
		APIKey:         s.apiKey,
		UseLLM:         s.useLLM,
		DatabaseURL:    s.databaseURL,
		KillSwitchPath: s.killSwitchPath,
	}
}

// handlePublish runs the pipeline for one content item and returns the outcome
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	var req types.PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := pipeline.RunPipeline(r.Context(), s.runOptionsFrom(req))
	if err != nil {
		log.Printf("Pipeline run failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, PublishResponse{
		RunID:     result.RunID.String(),
		Status:    "completed",
		Tone:      result.Tone,
		Language:  result.Route.Language,
		Variants:  len(result.Variants),
		Publishes: result.Publishes,
	})
}

// handlePublishStream runs the pipeline and streams progress via SSE
func (s *Server) handlePublishStream(w http.ResponseWriter, r *http.Request) {
	var req types.PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	stream, err := NewProgressStream(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Starting streaming pipeline run...")

	opts := s.runOptionsFrom(req)
	opts.OnProgress = func(event pipeline.ProgressEvent) {
		if err := stream.Step(event); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
	}

	result, err := pipeline.RunPipeline(r.Context(), opts)
	if err != nil {
		log.Printf("Pipeline run failed: %v", err)
		stream.Fail(err.Error())
		return
	}

	stream.Complete(result)
	log.Printf("Streaming pipeline run completed")
}

// handleListRuns lists pipeline runs with optional filters
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	filters := db.RunFilters{
		Language: r.URL.Query().Get("language"),
		Status:   r.URL.Query().Get("status"),
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		filters.Limit = limit
	}

	runs, err := s.db.ListRunsFiltered(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	out := make([]RunResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, runResponse(run))
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": out, "count": len(out)})
}

// handleGetRun returns one pipeline run
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID format")
		return
	}

	run, err := s.db.GetRun(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if run == nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrRunNotFound{RunID: runID}).Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, runResponse(*run))
}

// handleRunArtifacts lists artifact summaries for one run
func (s *Server) handleRunArtifacts(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID format")
		return
	}

	artifacts, err := s.db.ListArtifacts(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"artifacts": artifacts, "count": len(artifacts)})
}

// handleRunArtifact returns one artifact's stored content
func (s *Server) handleRunArtifact(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID format")
		return
	}
	step := r.PathValue("step")

	content, err := s.db.GetArtifact(r.Context(), runID, step)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if content == nil {
		s.errorResponse(w, http.StatusNotFound, "Artifact not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, ArtifactResponse{
		RunID:   runID.String(),
		Step:    step,
		Content: content,
	})
}

func runResponse(run db.Run) RunResponse {
	return RunResponse{
		RunID:          run.ID.String(),
		ContentText:    run.ContentText,
		ContentContext: run.ContentContext,
		SourceLanguage: run.SourceLanguage,
		Status:         run.Status,
		CreatedAt:      run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
