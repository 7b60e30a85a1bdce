package parallel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor_CoversAllIndices(t *testing.T) {
	cfgs := []Config{
		{Enabled: false},
		{Enabled: true, NumWorkers: 4, MinChunkSize: 2},
	}
	for _, cfg := range cfgs {
		var mu sync.Mutex
		seen := make(map[int]int)
		For(100, func(i int) {
			mu.Lock()
			seen[i]++
			mu.Unlock()
		}, cfg)

		assert.Len(t, seen, 100)
		for i, count := range seen {
			assert.Equal(t, 1, count, "index %d", i)
		}
	}
}

func TestForBatch_CoversAllPairs(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[[2]int]int)
	ForBatch(3, 5, func(b, c int) {
		mu.Lock()
		seen[[2]int{b, c}]++
		mu.Unlock()
	}, Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1})

	assert.Len(t, seen, 15)
	for b := 0; b < 3; b++ {
		for c := 0; c < 5; c++ {
			assert.Equal(t, 1, seen[[2]int{b, c}], "pair (%d, %d)", b, c)
		}
	}
}

func TestForChunks_DenseOrderedRanges(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 3}
	n := 25

	starts := make(map[int]int)
	ends := make(map[int]int)
	var mu sync.Mutex
	ForChunks(n, func(chunk, start, end int) {
		mu.Lock()
		starts[chunk] = start
		ends[chunk] = end
		mu.Unlock()
	}, cfg)

	numChunks := NumChunks(n, cfg)
	assert.Len(t, starts, numChunks)

	// Chunks tile [0, n) in index order without gaps or overlap.
	prev := 0
	for c := 0; c < numChunks; c++ {
		assert.Equal(t, prev, starts[c], "chunk %d", c)
		assert.Greater(t, ends[c], starts[c], "chunk %d", c)
		prev = ends[c]
	}
	assert.Equal(t, n, prev)
}

func TestForChunks_Empty(t *testing.T) {
	called := false
	ForChunks(0, func(chunk, start, end int) { called = true }, DefaultConfig())
	assert.False(t, called)
	assert.Equal(t, 0, NumChunks(0, DefaultConfig()))
}
