package strategy

import (
	"context"
	"fmt"
	"sync"

	"github.com/rahulj/polypost/internal/types"
)

// MemorySignalStore is the in-process SignalStore used by the CLI preview
// path and tests.
type MemorySignalStore struct {
	mu      sync.Mutex
	configs []types.StrategyConfig
}

// NewMemorySignalStore returns an empty store.
func NewMemorySignalStore() *MemorySignalStore {
	return &MemorySignalStore{}
}

// SaveConfig appends cfg. Version numbers must move forward.
func (s *MemorySignalStore) SaveConfig(_ context.Context, cfg types.StrategyConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.configs); n > 0 && cfg.Version <= s.configs[n-1].Version {
		return fmt.Errorf("config version %d is not newer than %d", cfg.Version, s.configs[n-1].Version)
	}
	s.configs = append(s.configs, cfg)
	return nil
}

// LatestConfig returns the most recent config, if any.
func (s *MemorySignalStore) LatestConfig(_ context.Context) (types.StrategyConfig, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.configs) == 0 {
		return types.StrategyConfig{}, false, nil
	}
	return s.configs[len(s.configs)-1], true, nil
}
