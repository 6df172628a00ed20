package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultBudgets returns the stock per-class allowances. Pipeline runs are
// the scarce resource (LLM quota, publish slots); analytics jobs are heavy
// but cheaper; reads are nearly free.
func DefaultBudgets() map[Class]Budget {
	return map[Class]Budget{
		ClassPipeline:  {Limit: 60, Window: time.Hour, Burst: 5},
		ClassAnalytics: {Limit: 120, Window: time.Hour, Burst: 10},
		ClassRead:      {Limit: 1000, Window: time.Minute},
	}
}

// LoadConfig loads rate limiting configuration from environment variables.
// Per-class limits can be overridden with RATE_LIMIT_<CLASS>_LIMIT and
// RATE_LIMIT_<CLASS>_WINDOW (e.g. RATE_LIMIT_PIPELINE_LIMIT=10).
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	budgets := DefaultBudgets()
	for _, class := range []Class{ClassPipeline, ClassAnalytics, ClassRead} {
		prefix := "RATE_LIMIT_" + strings.ToUpper(string(class))
		b := budgets[class]
		b.Limit = getEnvInt(prefix+"_LIMIT", b.Limit)
		b.Window = getEnvDuration(prefix+"_WINDOW", b.Window)
		b.Burst = getEnvInt(prefix+"_BURST", b.Burst)
		budgets[class] = b
	}

	return &Config{
		Enabled:         true,
		Budgets:         budgets,
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
	}
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
