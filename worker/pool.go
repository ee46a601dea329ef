package worker

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	cm "github.com/ayushbridge/conceptmapper"
)

// Resolver is the interface the pool uses to resolve mappings. Kept
// minimal here to avoid a dependency on the engine package.
type Resolver interface {
	Resolve(ctx context.Context, sourceSystem, sourceCode, targetSystem string) ([]cm.ResolvedMapping, error)
}

// Job is one resolution request.
type Job struct {
	SourceSystem string
	SourceCode   string
	TargetSystem string
}

// Result pairs a job with its outcome.
type Result struct {
	Job      Job
	Mappings []cm.ResolvedMapping
	Err      error
}

// Pool runs resolutions on a fixed set of worker goroutines.
type Pool struct {
	resolver Resolver
	jobs     chan Job
	results  chan Result
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	closed   atomic.Bool

	submitted atomic.Uint64
	completed atomic.Uint64
}

// NewPool creates a pool with the given number of workers. If workers
// <= 0, it defaults to runtime.NumCPU().
func NewPool(ctx context.Context, resolver Resolver, workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	poolCtx, cancel := context.WithCancel(ctx)

	p := &Pool{
		resolver: resolver,
		jobs:     make(chan Job, workers*2),
		results:  make(chan Result, workers*2),
		ctx:      poolCtx,
		cancel:   cancel,
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// Submit queues a job. It blocks while the queue is full and returns
// false once the pool is closed or its context is done.
func (p *Pool) Submit(job Job) bool {
	if p.closed.Load() {
		return false
	}
	select {
	case <-p.ctx.Done():
		return false
	case p.jobs <- job:
		p.submitted.Add(1)
		return true
	}
}

// Results returns the channel of completed jobs. It is closed after
// Close once all workers have drained.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Cancel aborts the pool without waiting for queued work: pending
// submits are refused, workers stop after their current resolution and
// undelivered results are dropped. The results channel stays open until
// Close runs, so consumers keep draining it.
func (p *Pool) Cancel() {
	p.cancel()
}

// Close stops accepting jobs, waits for in-flight work and closes the
// results channel.
func (p *Pool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}
	close(p.jobs)
	p.wg.Wait()
	close(p.results)
	p.cancel()
}

// Stats returns the submitted and completed job counts.
func (p *Pool) Stats() (submitted, completed uint64) {
	return p.submitted.Load(), p.completed.Load()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		mappings, err := p.resolver.Resolve(p.ctx, job.SourceSystem, job.SourceCode, job.TargetSystem)
		p.completed.Add(1)
		select {
		case p.results <- Result{Job: job, Mappings: mappings, Err: err}:
		case <-p.ctx.Done():
			return
		}
	}
}
