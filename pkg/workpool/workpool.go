// Package workpool adapts the teacher's background job queue into a bounded
// pool that a request handler can block on, rather than fire-and-forget.
// The MILP solve is CPU-bound and must not run on the goroutine serving the
// HTTP request; Submit hands the work to a long-lived worker and suspends
// the caller until the result (or the request's own cancellation) arrives.
package workpool

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Task is one unit of CPU-bound work submitted to the pool.
type Task func(ctx context.Context) (interface{}, error)

type request struct {
	ctx    context.Context
	task   Task
	result chan response
}

type response struct {
	value interface{}
	err   error
}

// Config configures the worker pool.
type Config struct {
	Workers    int
	BufferSize int
	Logger     *zap.Logger
}

// Pool is a bounded set of long-lived goroutines executing submitted Tasks.
type Pool struct {
	workers int
	logger  *zap.Logger

	requests chan request
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	mu       sync.Mutex
	started  bool
}

// New builds a worker pool. Start must be called before Submit.
func New(cfg Config) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Pool{
		workers:  cfg.Workers,
		logger:   cfg.Logger,
		requests: make(chan request, cfg.BufferSize),
	}
}

// Start begins worker consumption. Safe to call once.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	p.started = true
	p.logger.Sugar().Infow("workpool started", "workers", p.workers)
}

// Stop cancels workers and waits for them to exit.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.cancel()
	p.mu.Unlock()
	p.wg.Wait()
	p.logger.Sugar().Infow("workpool stopped")
}

// Submit hands task to a free worker and blocks until it completes or ctx is
// cancelled, whichever comes first. The task itself still receives ctx and
// should honour cancellation internally (e.g. the solver's node/time budget).
func (p *Pool) Submit(ctx context.Context, task Task) (interface{}, error) {
	p.mu.Lock()
	poolCtx := p.ctx
	started := p.started
	p.mu.Unlock()

	if !started {
		return nil, fmt.Errorf("workpool not started")
	}

	req := request{ctx: ctx, task: task, result: make(chan response, 1)}

	select {
	case <-poolCtx.Done():
		return nil, poolCtx.Err()
	case p.requests <- req:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case res := <-req.result:
		return res.value, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case req := <-p.requests:
			value, err := req.task(req.ctx)
			select {
			case req.result <- response{value: value, err: err}:
			default:
			}
		}
	}
}
