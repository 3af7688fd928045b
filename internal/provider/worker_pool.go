package provider

import (
	"context"
	"sync"
	"time"
)

type Task func(ctx context.Context) error

// WorkerPool runs submitted tasks on a fixed number of goroutines,
// optionally throttled to a request rate.
type WorkerPool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup

	mu     sync.RWMutex
	ticker *time.Ticker
}

func NewWorkerPool(workers, buffer int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &WorkerPool{workers: workers, tasks: make(chan Task, buffer)}
}

func (p *WorkerPool) SetRateLimit(rps int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
	}
	if rps > 0 {
		p.ticker = time.NewTicker(time.Second / time.Duration(rps))
	}
}

func (p *WorkerPool) Submit(t Task) {
	if p == nil || t == nil {
		return
	}
	p.tasks <- t
}

// Close stops accepting tasks. Workers drain what is queued.
func (p *WorkerPool) Close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

// Run starts the workers. The returned channel yields one error per task and
// closes once every worker exits.
func (p *WorkerPool) Run(ctx context.Context) <-chan error {
	if p == nil {
		out := make(chan error)
		close(out)
		return out
	}
	out := make(chan error, cap(p.tasks)+p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.work(ctx, out)
	}
	go func() {
		p.wg.Wait()
		p.mu.Lock()
		if p.ticker != nil {
			p.ticker.Stop()
			p.ticker = nil
		}
		p.mu.Unlock()
		close(out)
	}()
	return out
}

func (p *WorkerPool) work(ctx context.Context, out chan<- error) {
	defer p.wg.Done()
	for t := range p.tasks {
		if ctx.Err() != nil {
			out <- ctx.Err()
			continue
		}
		if !p.wait(ctx) {
			out <- ctx.Err()
			continue
		}
		out <- t(ctx)
	}
}

func (p *WorkerPool) wait(ctx context.Context) bool {
	p.mu.RLock()
	t := p.ticker
	p.mu.RUnlock()
	if t == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
