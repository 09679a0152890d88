package uid

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextIncreasing(t *testing.T) {
	prev := Next()
	assert.NotZero(t, prev)
	for i := 0; i < 100; i++ {
		id := Next()
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestNextConcurrentUnique(t *testing.T) {
	const workers, per = 8, 500

	var mu sync.Mutex
	seen := make(map[uint64]bool)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := make([]uint64, per)
			for i := range ids {
				ids[i] = Next()
			}
			mu.Lock()
			for _, id := range ids {
				seen[id] = true
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, workers*per)
}
