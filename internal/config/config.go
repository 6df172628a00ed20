// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rahulj/polypost/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Targeting
	Languages []string `json:"languages,omitempty"` // Target language codes
	Platforms []string `json:"platforms,omitempty"` // Target platform names
	Context   string   `json:"context,omitempty"`   // Content context hint (spiritual, motivational, ...)
	Tone      string   `json:"tone,omitempty"`      // Requested tone
	Intensity string   `json:"intensity,omitempty"` // Tone intensity (subtle, moderate, strong)

	// Behavior
	APIKey          string `json:"api_key,omitempty"`          // Gemini API key
	UseLLM          bool   `json:"use_llm,omitempty"`          // Use the LLM translator instead of the simulator
	Verbose         bool   `json:"verbose,omitempty"`          // Print detailed debug information
	DatabaseURL     string `json:"database_url,omitempty"`     // PostgreSQL connection URL
	KillSwitchPath  string `json:"kill_switch_path,omitempty"` // Marker file path that halts publishing
	CollectSchedule string `json:"collect_schedule,omitempty"` // Cron spec for the metric collector
	ServerPort      int    `json:"server_port,omitempty"`      // HTTP server port
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Tone != "" && !types.Tone(c.Tone).Valid() {
		return fmt.Errorf("config error: unknown tone %q", c.Tone)
	}
	if c.Intensity != "" && !types.Intensity(c.Intensity).Valid() {
		return fmt.Errorf("config error: unknown intensity %q", c.Intensity)
	}
	if c.ServerPort < 0 || c.ServerPort > 65535 {
		return fmt.Errorf("config error: 'server_port' must be between 0 and 65535")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Context == "" {
		result.Context = defaults.Context
	}
	if result.Tone == "" {
		result.Tone = defaults.Tone
	}
	if result.Intensity == "" {
		result.Intensity = defaults.Intensity
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.KillSwitchPath == "" {
		result.KillSwitchPath = defaults.KillSwitchPath
	}
	if result.CollectSchedule == "" {
		result.CollectSchedule = defaults.CollectSchedule
	}

	// Slice fields: use default if empty
	if len(result.Languages) == 0 {
		result.Languages = defaults.Languages
	}
	if len(result.Platforms) == 0 {
		result.Platforms = defaults.Platforms
	}

	// Int fields: use default if zero
	if result.ServerPort == 0 {
		result.ServerPort = defaults.ServerPort
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
