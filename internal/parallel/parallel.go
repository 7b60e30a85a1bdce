// Package parallel provides data-parallel loop helpers for the QuadConv core.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64, // Typical cache line aware chunk.
	}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		// Sequential fallback.
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ForBatch optimized for batch*channels iteration pattern.
// Common in convolution-style scatter loops.
func ForBatch(batch, channels int, f func(b, c int), cfg Config) {
	n := batch * channels
	For(n, func(k int) {
		f(k/channels, k%channels)
	}, cfg)
}

// ForChunks splits [0, n) into contiguous ranges and executes f(chunk, start, end)
// for each, in parallel. Chunk indices are dense and ordered, so callers can
// collect per-chunk results and concatenate them deterministically.
func ForChunks(n int, f func(chunk, start, end int), cfg Config) {
	chunkSize := n
	if cfg.Enabled && cfg.NumWorkers > 0 {
		chunkSize = max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)
	}
	if chunkSize <= 0 {
		chunkSize = 1
	}

	var wg sync.WaitGroup
	chunk := 0
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(c, s, e int) {
			defer wg.Done()
			f(c, s, e)
		}(chunk, start, end)
		chunk++
	}
	wg.Wait()
}

// NumChunks reports how many ranges ForChunks will produce for n items.
func NumChunks(n int, cfg Config) int {
	chunkSize := n
	if cfg.Enabled && cfg.NumWorkers > 0 {
		chunkSize = max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)
	}
	if chunkSize <= 0 {
		chunkSize = 1
	}
	if n == 0 {
		return 0
	}
	return (n + chunkSize - 1) / chunkSize
}
