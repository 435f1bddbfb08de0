package shared

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEachWithBoundedGoroutines(t *testing.T) {
	values := []int{1, 2, 3, 4, 5, 6, 7, 8}

	for _, limit := range []int{0, 1, 3} {
		results := make([]int, len(values))
		err := ForEachWithBoundedGoroutines(context.Background(), limit, values, func(_ context.Context, i int, v int) error {
			results[i] = v * v
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 4, 9, 16, 25, 36, 49, 64}, results, "limit %d", limit)
	}
}

func TestForEachWithBoundedGoroutinesLimit(t *testing.T) {
	var inFlight, peak int32
	var mu sync.Mutex
	err := ForEachWithBoundedGoroutines(context.Background(), 2, make([]struct{}, 20), func(context.Context, int, struct{}) error {
		n := atomic.AddInt32(&inFlight, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()
		atomic.AddInt32(&inFlight, -1)
		return nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak, int32(2))
}

func TestForEachWithBoundedGoroutinesError(t *testing.T) {
	boom := errors.New("boom")

	calls := 0
	err := ForEachWithBoundedGoroutines(context.Background(), 1, []int{1, 2, 3}, func(_ context.Context, _ int, v int) error {
		calls++
		if v == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)

	err = ForEachWithBoundedGoroutines(context.Background(), 4, []int{1, 2, 3}, func(_ context.Context, _ int, v int) error {
		if v == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestForEachWithBoundedGoroutinesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ForEachWithBoundedGoroutines(ctx, 1, []int{1}, func(context.Context, int, int) error {
		t.Fatal("must not be called")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHasFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("name", "", "")
	flags.StringArray("item", nil, "")
	assert.False(t, HasFlags(flags))

	require.NoError(t, flags.Parse([]string{"--item", "a,b", "--item", "c"}))
	assert.True(t, HasFlags(flags))
	assert.Equal(t, []string{"a,b", "c"}, ChangedStringSlice(flags, "item", []string{"x"}))
	assert.Equal(t, []string{"x"}, ChangedStringSlice(flags, "name", []string{"x"}))
}
