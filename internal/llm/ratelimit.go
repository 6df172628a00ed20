package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitedClient wraps a Client with a token-bucket limiter so bulk
// translation runs stay inside the provider's request quota.
type RateLimitedClient struct {
	inner   Client
	limiter *rate.Limiter
}

// NewRateLimitedClient wraps client at the given requests-per-second with
// the given burst.
func NewRateLimitedClient(client Client, rps float64, burst int) *RateLimitedClient {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedClient{
		inner:   client,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// GenerateContent waits for limiter headroom, then delegates.
func (c *RateLimitedClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return c.inner.GenerateContent(ctx, prompt, tier)
}

// GenerateJSON waits for limiter headroom, then delegates.
func (c *RateLimitedClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return c.inner.GenerateJSON(ctx, prompt, tier)
}

// GetModel delegates to the wrapped client.
func (c *RateLimitedClient) GetModel(tier ModelTier) string {
	return c.inner.GetModel(tier)
}

// Close delegates to the wrapped client.
func (c *RateLimitedClient) Close() error {
	return c.inner.Close()
}
