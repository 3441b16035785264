package pool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_KeepsInputOrder(t *testing.T) {
	items := []int{5, 1, 4, 2, 3}

	results, err := Map(context.Background(), items, 3, func(_ context.Context, n int) (int, error) {
		// later items finish first
		time.Sleep(time.Duration(6-n) * time.Millisecond)
		return n * 10, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{50, 10, 40, 20, 30}, Compact(results))
}

func TestMap_FailureLeavesNilSlot(t *testing.T) {
	items := []int{1, 2, 3}

	results, err := Map(context.Background(), items, 4, func(_ context.Context, n int) (string, error) {
		if n == 2 {
			return "", errors.New("upstream 500")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.NotNil(t, results[0])
	assert.Nil(t, results[1])
	assert.NotNil(t, results[2])
	assert.Equal(t, []string{"ok", "ok"}, Compact(results))
}

func TestMap_RespectsLimit(t *testing.T) {
	items := make([]int, 20)
	var inFlight, peak atomic.Int32

	_, err := Map(context.Background(), items, 4, func(_ context.Context, _ int) (int, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return 0, nil
	})

	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(4))
	assert.Greater(t, peak.Load(), int32(1))
}

func TestMap_Empty(t *testing.T) {
	results, err := Map(context.Background(), []int{}, 4, func(_ context.Context, n int) (int, error) {
		t.Fatal("fn must not be called")
		return 0, nil
	})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMap_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	_, err := Map(ctx, []int{1, 2, 3}, 2, func(_ context.Context, n int) (int, error) {
		calls.Add(1)
		return n, nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}
