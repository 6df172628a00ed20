package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rahulj/polypost/internal/pipeline"
	"github.com/rahulj/polypost/internal/types"
)

// ProgressStream pushes pipeline progress to the client as Server-Sent
// Events. Each pipeline step becomes its own SSE event type (sanitize,
// route, tune, translate, variants, publishes, archive) so clients can
// subscribe to the steps they care about.
type ProgressStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewProgressStream prepares w for SSE and returns the stream.
func NewProgressStream(w http.ResponseWriter) (*ProgressStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	return &ProgressStream{w: w, flusher: flusher}, nil
}

// Step emits one pipeline progress event, named after the step that
// produced it.
func (p *ProgressStream) Step(ev pipeline.ProgressEvent) error {
	return p.emit(ev.Step, ev)
}

// Fail emits a terminal error event.
func (p *ProgressStream) Fail(message string) {
	p.emit("error", map[string]string{"error": message}) //nolint:errcheck
}

// Complete emits the terminal completion event with the run outcome.
func (p *ProgressStream) Complete(result *pipeline.RunResult) {
	published := 0
	for _, rec := range result.Publishes {
		if rec.Status == types.StatusPublished {
			published++
		}
	}
	p.emit("complete", map[string]any{ //nolint:errcheck
		"run_id":    result.RunID.String(),
		"status":    "completed",
		"published": published,
		"aborted":   len(result.Publishes) - published,
		"archived":  len(result.Receipts),
	})
}

func (p *ProgressStream) emit(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(p.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(p.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	p.flusher.Flush()
	return nil
}
