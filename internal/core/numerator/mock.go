package numerator

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Mock is an in-memory Generator for tests.
// Numbers are sequential per prefix+year key, starting at 1.
type Mock struct {
	mu      sync.Mutex
	counter map[string]int64
}

// NewMock creates a new mock generator.
func NewMock() *Mock {
	return &Mock{counter: make(map[string]int64)}
}

// GetNextNumber implements Generator.
func (m *Mock) GetNextNumber(ctx context.Context, cfg Config, opts *Options, period time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := fmt.Sprintf("%s_%d", cfg.Prefix, period.Year())
	m.counter[key]++

	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 5
	}

	if cfg.IncludeYear {
		return fmt.Sprintf("%s-%d-%0*d", cfg.Prefix, period.Year(), padWidth, m.counter[key]), nil
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, padWidth, m.counter[key]), nil
}

// SetNextNumber implements Generator.
func (m *Mock) SetNextNumber(ctx context.Context, cfg Config, period time.Time, value int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := fmt.Sprintf("%s_%d", cfg.Prefix, period.Year())
	m.counter[key] = value - 1
	return nil
}

// Ensure interface compliance at compile time.
var _ Generator = (*Mock)(nil)
