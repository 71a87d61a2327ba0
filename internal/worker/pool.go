// Package worker flushes catalog search results to the cache off the
// request path and keeps the cache from growing without bound.
package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ewilliams-labs/moodquiz/internal/core/domain"
	"github.com/ewilliams-labs/moodquiz/internal/core/ports"
)

// Job is one pending cache write.
type Job struct {
	Country string
	Query   string
	Results []domain.Candidate
}

// Purger is implemented by caches that can drop expired rows.
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}

// Pool manages background workers for cache maintenance.
type Pool struct {
	cache ports.SearchCache
	jobs  chan Job
	wg    sync.WaitGroup
	done  chan struct{}
}

// NewPool creates a worker pool over the given cache.
func NewPool(cache ports.SearchCache, queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		cache: cache,
		jobs:  make(chan Job, queueSize),
		done:  make(chan struct{}),
	}
}

// Start launches the worker goroutines and, when the cache supports it, a
// periodic purge of expired entries.
func (p *Pool) Start(workers int, purgeEvery time.Duration) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}

	if purger, ok := p.cache.(Purger); ok && purgeEvery > 0 {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			ticker := time.NewTicker(purgeEvery)
			defer ticker.Stop()
			for {
				select {
				case <-p.done:
					return
				case <-ticker.C:
					if n, err := purger.Purge(context.Background()); err != nil {
						log.Printf("WARN worker: cache purge failed: %v", err)
					} else if n > 0 {
						log.Printf("worker: purged %d expired cache rows", n)
					}
				}
			}
		}()
	}
}

// Stop drains pending jobs and waits for workers to finish.
func (p *Pool) Stop() {
	close(p.done)
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a cache write without blocking. A full queue drops the job;
// losing a cache write only costs one future catalog call.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	default:
		log.Printf("WARN worker: dropping cache write for %s/%q", job.Country, job.Query)
	}
}

func (p *Pool) processJob(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.cache.Put(ctx, job.Country, job.Query, job.Results); err != nil {
		log.Printf("WARN worker: cache write failed for %s/%q: %v", job.Country, job.Query, err)
	}
}
