package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ewilliams-labs/moodquiz/internal/core/domain"
)

type recordingCache struct {
	mu      sync.Mutex
	puts    map[string][]domain.Candidate
	purged  atomic.Int64
	blockCh chan struct{} // when set, Put blocks until closed
}

func newRecordingCache() *recordingCache {
	return &recordingCache{puts: make(map[string][]domain.Candidate)}
}

func (c *recordingCache) Get(_ context.Context, country, query string) ([]domain.Candidate, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	results, ok := c.puts[country+"|"+query]
	return results, ok, nil
}

func (c *recordingCache) Put(_ context.Context, country, query string, results []domain.Candidate) error {
	if c.blockCh != nil {
		<-c.blockCh
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts[country+"|"+query] = results
	return nil
}

func (c *recordingCache) Purge(_ context.Context) (int64, error) {
	c.purged.Add(1)
	return 3, nil
}

func (c *recordingCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.puts)
}

func TestPoolProcessesSubmittedJobs(t *testing.T) {
	cache := newRecordingCache()
	pool := NewPool(cache, 10)
	pool.Start(2, 0)

	pool.Submit(Job{Country: "US", Query: "lofi beats", Results: []domain.Candidate{{CatalogID: 1}}})
	pool.Submit(Job{Country: "IN", Query: "bollywood rain"})
	pool.Stop()

	if got := cache.size(); got != 2 {
		t.Fatalf("cache writes = %d, want 2", got)
	}
	results, ok, _ := cache.Get(context.Background(), "US", "lofi beats")
	if !ok || len(results) != 1 {
		t.Errorf("Get = (%v, %v), want the stored results", results, ok)
	}
}

func TestSubmitDropsWhenQueueFull(t *testing.T) {
	cache := newRecordingCache()
	cache.blockCh = make(chan struct{})
	pool := NewPool(cache, 1)
	pool.Start(1, 0)

	// First job occupies the worker, second fills the queue. Everything
	// after that must drop without blocking the caller.
	pool.Submit(Job{Country: "US", Query: "a"})

	deadline := time.Now().Add(time.Second)
	for len(pool.jobs) != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	pool.Submit(Job{Country: "US", Query: "c"})

	done := make(chan struct{})
	go func() {
		pool.Submit(Job{Country: "US", Query: "dropped"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit blocked on a full queue")
	}

	close(cache.blockCh)
	pool.Stop()

	if got := cache.size(); got != 2 {
		t.Errorf("cache writes = %d, want 2 (third job dropped)", got)
	}
}

func TestPoolRunsPeriodicPurge(t *testing.T) {
	cache := newRecordingCache()
	pool := NewPool(cache, 1)
	pool.Start(1, 5*time.Millisecond)

	deadline := time.Now().Add(time.Second)
	for cache.purged.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	pool.Stop()

	if cache.purged.Load() == 0 {
		t.Fatal("expected at least one purge tick")
	}
}

func TestWriteBehindReadsThroughAndWritesAsync(t *testing.T) {
	cache := newRecordingCache()
	pool := NewPool(cache, 10)
	pool.Start(1, 0)
	wb := NewWriteBehind(cache, pool)

	if err := wb.Put(context.Background(), "US", "chill", []domain.Candidate{{CatalogID: 7}}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	pool.Stop()

	results, ok, err := wb.Get(context.Background(), "US", "chill")
	if err != nil || !ok {
		t.Fatalf("Get = (ok=%v, err=%v), want hit", ok, err)
	}
	if len(results) != 1 || results[0].CatalogID != 7 {
		t.Errorf("results = %+v", results)
	}
}
