package resultgate

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGate(t *testing.T) {
	ctx := context.Background()
	g := NewMemoryGate()

	released, err := g.Released(ctx)
	require.NoError(t, err)
	assert.False(t, released, "gate starts hidden")

	require.NoError(t, g.SetReleased(ctx, true))
	released, _ = g.Released(ctx)
	assert.True(t, released)

	require.NoError(t, g.SetReleased(ctx, false))
	released, _ = g.Released(ctx)
	assert.False(t, released)
}

func TestMemoryGate_ConcurrentFlips(t *testing.T) {
	ctx := context.Background()
	g := NewMemoryGate()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func(v bool) {
			defer wg.Done()
			_ = g.SetReleased(ctx, v)
		}(i%2 == 0)
		go func() {
			defer wg.Done()
			_, err := g.Released(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
