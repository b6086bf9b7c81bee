// Package parallel splits independent index ranges across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Workers  int // Goroutines to use; <= 1 runs sequentially.
	MinChunk int // Minimum indices per goroutine to avoid overhead.
}

// DefaultConfig uses one worker per CPU.
func DefaultConfig() Config {
	return Config{
		Workers:  runtime.NumCPU(),
		MinChunk: 16,
	}
}

// Sequential runs everything on the calling goroutine.
func Sequential() Config {
	return Config{Workers: 1}
}

// For calls f(i) for every i in [0, n). f must be safe to call
// concurrently for distinct i.
//
// If any call fails, For returns the error of the lowest failing index.
// Chunks keep running after another chunk fails, but a chunk stops at its
// own first error.
func For(n int, cfg Config, f func(i int) error) error {
	if cfg.Workers <= 1 || n <= cfg.MinChunk {
		for i := 0; i < n; i++ {
			if err := f(i); err != nil {
				return err
			}
		}
		return nil
	}

	chunkSize := max((n+cfg.Workers-1)/cfg.Workers, cfg.MinChunk, 1)
	numChunks := (n + chunkSize - 1) / chunkSize
	errs := make([]error, numChunks)

	var wg sync.WaitGroup
	for c := 0; c < numChunks; c++ {
		start := c * chunkSize
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(c, s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				if err := f(i); err != nil {
					errs[c] = err
					return
				}
			}
		}(c, start, end)
	}
	wg.Wait()

	// Chunks are ordered by index, so the first non-nil error is the lowest.
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
