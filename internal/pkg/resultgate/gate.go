// Package resultgate holds the released/hidden switch that decides whether
// interview results may be queried.
package resultgate

import (
	"context"
	"sync/atomic"
)

// SettingKey is the key the flag is stored under in shared storage.
const SettingKey = "interview_results_released"

// Gate is a single boolean shared by every reader and writer. The initial
// state is hidden.
type Gate interface {
	Released(ctx context.Context) (bool, error)
	SetReleased(ctx context.Context, released bool) error
}

// MemoryGate keeps the flag in process memory. Suitable for a single instance.
type MemoryGate struct {
	released atomic.Bool
}

// NewMemoryGate returns a hidden in-process gate.
func NewMemoryGate() *MemoryGate {
	return &MemoryGate{}
}

func (g *MemoryGate) Released(context.Context) (bool, error) {
	return g.released.Load(), nil
}

func (g *MemoryGate) SetReleased(_ context.Context, released bool) error {
	g.released.Store(released)
	return nil
}
