package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulj/polypost/internal/server/middleware"
	"github.com/rahulj/polypost/internal/types"
)

// newTestServer builds a memory-only server with a fresh JWT secret.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-key-for-server-tests")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	s, err := New(Config{Port: 0})
	require.NoError(t, err)
	return s
}

func authHeader(t *testing.T, s *Server, scopes ...string) string {
	t.Helper()
	if len(scopes) == 0 {
		scopes = []string{middleware.ScopePublish, middleware.ScopeAnalytics}
	}
	token, err := s.jwtService.GenerateToken(uuid.New(), scopes)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, s *Server, method, path, auth string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "memory", status["persistence"])
}

func TestPublishRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/publish", "", types.PublishRequest{
		Text: "Stay strong the storm will pass",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPublishNeedsPublishScope(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/publish", authHeader(t, s, middleware.ScopeAnalytics), types.PublishRequest{
		Text: "Stay strong the storm will pass",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCollectNeedsAnalyticsScope(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/metrics/collect", authHeader(t, s, middleware.ScopePublish), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPublishEndToEnd(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/publish", authHeader(t, s), types.PublishRequest{
		Text:      "Stay strong the storm will pass and hope will guide you",
		Context:   "motivational",
		Languages: []string{"en", "hi"},
		Platforms: []string{"twitter"},
		Tone:      "uplifting",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp PublishResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, types.ToneUplifting, resp.Tone)
	assert.Equal(t, "en", resp.Language)
	assert.Equal(t, 2, resp.Variants)
	require.Len(t, resp.Publishes, 2)
	for _, pub := range resp.Publishes {
		assert.Equal(t, types.StatusPublished, pub.Status)
	}
}

func TestPublishInvalidTone(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/publish", authHeader(t, s), types.PublishRequest{
		Text: "Stay strong",
		Tone: "sarcastic",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublishBlockedContent(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/publish", authHeader(t, s), types.PublishRequest{
		Text:    "We will attack them with hate",
		Context: "motivational",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPublishUnsupportedLanguage(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/publish", authHeader(t, s), types.PublishRequest{
		Text:      "Stay strong",
		Languages: []string{"xx"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPersistenceEndpointsWithoutDatabase(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{
		"/runs",
		"/runs/" + uuid.NewString(),
		"/metrics/summary",
		"/strategy/latest",
	} {
		rec := doJSON(t, s, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/publish", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := New(Config{Port: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT")
}
