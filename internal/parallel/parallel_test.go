package parallel

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor_VisitsEveryIndexOnce(t *testing.T) {
	for _, cfg := range []Config{DefaultConfig(), Sequential(), {Workers: 4, MinChunk: 1}, {Workers: 3, MinChunk: 0}} {
		t.Run(fmt.Sprintf("%+v", cfg), func(t *testing.T) {
			const n = 1000
			var hits [n]int32
			var counter int64

			err := For(n, cfg, func(i int) error {
				atomic.AddInt32(&hits[i], 1)
				atomic.AddInt64(&counter, 1)
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, int64(n), counter)
			for i, h := range hits {
				if h != 1 {
					t.Fatalf("index %d visited %d times", i, h)
				}
			}
		})
	}
}

func TestFor_Empty(t *testing.T) {
	called := false
	require.NoError(t, For(0, Config{Workers: 8, MinChunk: 1}, func(int) error {
		called = true
		return nil
	}))
	assert.False(t, called)
}

func TestFor_LowestErrorWins(t *testing.T) {
	failAt := map[int]bool{130: true, 700: true, 999: true}

	for _, cfg := range []Config{Sequential(), {Workers: 8, MinChunk: 10}} {
		err := For(1000, cfg, func(i int) error {
			if failAt[i] {
				return fmt.Errorf("index %d: %w", i, errBoom)
			}
			return nil
		})
		assert.ErrorIs(t, err, errBoom)
		assert.EqualError(t, err, "index 130: boom")
	}
}

var errBoom = errors.New("boom")

func BenchmarkFor(b *testing.B) {
	data := make([]float64, 1<<16)
	cfg := DefaultConfig()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		_ = For(len(data), cfg, func(i int) error {
			data[i] = float64(i) * 0.5
			return nil
		})
	}
}
