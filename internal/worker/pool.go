// Package worker provides a worker pool that runs position analysis off the
// caller's goroutine.
package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lgbarn/chess-core-go/internal/chess"
)

// ErrStopped is the result error for items drained after Stop.
var ErrStopped = errors.New("worker pool stopped")

// WorkItem is one analysis request.
type WorkItem struct {
	ID       string    // Request identifier, echoed in the result
	FEN      string    // Position to analyse
	Version  uint64    // Game version the position was taken from
	Deadline time.Time // Zero means no deadline
}

// ProcessResult is the outcome of analysing a WorkItem.
type ProcessResult struct {
	ID      string
	Version uint64
	FEN     string
	Move    chess.Move // Suggested move (valid when Err is nil)
	Score   float64    // Pawns from the side to move's point of view
	Display string     // Human readable score, e.g. "+0.42" or "-M3"
	Err     error
}

// ProcessFunc analyses a single item. ctx ends at the item's deadline or
// when the pool is stopped.
type ProcessFunc func(ctx context.Context, item WorkItem) ProcessResult

// Pool manages a pool of workers for background analysis.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
	ctx         context.Context
	cancel      context.CancelFunc
	closeOnce   sync.Once
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a new worker pool using functional options.
// Default: 1 worker, buffer size of 4.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  4,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	p.ctx, p.cancel = context.WithCancel(context.Background())
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			p.resultChan <- ProcessResult{ID: item.ID, Version: item.Version, FEN: item.FEN, Err: ErrStopped}
			continue
		}
		p.resultChan <- p.run(item)
	}
}

func (p *Pool) run(item WorkItem) ProcessResult {
	ctx := p.ctx
	if !item.Deadline.IsZero() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, item.Deadline)
		defer cancel()
	}
	result := p.processFunc(ctx, item)
	result.ID = item.ID
	result.Version = item.Version
	result.FEN = item.FEN
	return result
}

// Submit submits a work item for processing.
// This may block if the work channel buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// TrySubmit attempts to submit a work item without blocking.
// Returns false if the work channel is full or the pool is stopped.
func (p *Pool) TrySubmit(item WorkItem) bool {
	if p.IsStopped() {
		return false
	}
	select {
	case p.workChan <- item:
		return true
	default:
		return false
	}
}

// Stop signals workers to abandon in-flight work. Queued items are
// answered with ErrStopped instead of being processed.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
	p.cancel()
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
// The result channel is closed once every worker is done. Results must
// be drained concurrently or Close can block.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.workChan)
		p.wg.Wait()
		p.cancel()
		close(p.resultChan)
	})
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}
