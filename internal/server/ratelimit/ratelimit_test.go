package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled: true,
		Budgets: map[Class]Budget{
			ClassPipeline:  {Limit: 3, Window: time.Hour, Burst: 3},
			ClassAnalytics: {Limit: 2, Window: time.Hour, Burst: 2},
			ClassRead:      {Limit: 100, Window: time.Minute},
		},
		Whitelist: map[string]bool{},
		Blacklist: map[string]bool{},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path   string
		method string
		want   Class
	}{
		{"/health", "GET", ClassExempt},
		{"/publish", "POST", ClassPipeline},
		{"/publish/stream", "POST", ClassPipeline},
		{"/analyze", "POST", ClassAnalytics},
		{"/metrics/collect", "POST", ClassAnalytics},
		{"/metrics/summary", "GET", ClassRead},
		{"/runs", "GET", ClassRead},
		{"/strategy/latest", "GET", ClassRead},
		{"/publish", "GET", ClassRead},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.path, tt.method))
		})
	}
}

func TestPipelineBudgetSharedAcrossPublishRoutes(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	// Two direct publishes and one stream drain the same budget of 3.
	for _, path := range []string{"/publish", "/publish/stream", "/publish"} {
		allowed, _ := limiter.Allow("client-a", path, "POST")
		require.True(t, allowed, path)
	}

	allowed, info := limiter.Allow("client-a", "/publish/stream", "POST")
	assert.False(t, allowed, "streaming is not a side door around the publish budget")
	assert.Equal(t, 3, info.Limit)
	assert.Positive(t, info.RetryAfter)
}

func TestClassBudgetsAreIndependent(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("client-a", "/publish", "POST")
		require.True(t, allowed)
	}

	// Pipeline is exhausted; analytics and reads still flow.
	allowed, _ := limiter.Allow("client-a", "/publish", "POST")
	assert.False(t, allowed)
	allowed, _ = limiter.Allow("client-a", "/analyze", "POST")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("client-a", "/runs", "GET")
	assert.True(t, allowed)
}

func TestClientsAreIsolated(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("client-a", "/publish", "POST")
		require.True(t, allowed)
	}
	allowed, _ := limiter.Allow("client-a", "/publish", "POST")
	assert.False(t, allowed)

	allowed, _ = limiter.Allow("client-b", "/publish", "POST")
	assert.True(t, allowed, "one client's exhaustion never touches another")
}

func TestHealthIsExempt(t *testing.T) {
	cfg := testConfig()
	cfg.Budgets[ClassRead] = Budget{Limit: 1, Window: time.Hour}
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := limiter.Allow("client-a", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestWhitelistAndBlacklist(t *testing.T) {
	cfg := testConfig()
	cfg.Whitelist["10.0.0.1"] = true
	cfg.Blacklist["10.0.0.2"] = true
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/publish", "POST")
		require.True(t, allowed, "whitelisted clients are never throttled")
	}

	allowed, _ := limiter.Allow("10.0.0.2", "/runs", "GET")
	assert.False(t, allowed, "blacklisted clients are always refused")
}

func TestDisabledLimiter(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("client-a", "/publish", "POST")
		require.True(t, allowed)
	}
}

func TestBurstThenRefill(t *testing.T) {
	cfg := testConfig()
	// 10 per second with a burst of 2: the third immediate call loses.
	cfg.Budgets[ClassPipeline] = Budget{Limit: 10, Window: time.Second, Burst: 2}
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	allowed, _ := limiter.Allow("client-a", "/publish", "POST")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("client-a", "/publish", "POST")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("client-a", "/publish", "POST")
	assert.False(t, allowed)

	time.Sleep(150 * time.Millisecond)
	allowed, _ = limiter.Allow("client-a", "/publish", "POST")
	assert.True(t, allowed, "tokens refill over time")
}

func TestAllowConcurrent(t *testing.T) {
	cfg := testConfig()
	cfg.Budgets[ClassPipeline] = Budget{Limit: 50, Window: time.Hour, Burst: 50}
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("client-a", "/publish", "POST"); allowed {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, granted, "exactly the burst capacity is granted")
}

func TestDropIdleBuckets(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	limiter.Allow("client-a", "/publish", "POST")
	limiter.Allow("client-b", "/runs", "GET")
	require.Len(t, limiter.buckets, 2)

	limiter.dropIdleBuckets(time.Now().Add(time.Minute))
	assert.Empty(t, limiter.buckets)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_PIPELINE_LIMIT", "")

	cfg := LoadConfig()
	require.True(t, cfg.Enabled)
	assert.Equal(t, 60, cfg.Budgets[ClassPipeline].Limit)
	assert.Equal(t, time.Hour, cfg.Budgets[ClassPipeline].Window)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_PIPELINE_LIMIT", "7")
	t.Setenv("RATE_LIMIT_PIPELINE_WINDOW", "30m")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg := LoadConfig()
	assert.Equal(t, 7, cfg.Budgets[ClassPipeline].Limit)
	assert.Equal(t, 30*time.Minute, cfg.Budgets[ClassPipeline].Window)
	assert.True(t, cfg.Whitelist["10.0.0.1"])
	assert.True(t, cfg.Whitelist["10.0.0.2"])
}
