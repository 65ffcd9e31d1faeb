// Package advisor runs move suggestions in the background. Positions are
// analysed on a worker pool; results come back on a channel and are
// applied to a game only if it has not changed since the request.
package advisor

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/lgbarn/chess-core-go/internal/chess"
	"github.com/lgbarn/chess-core-go/internal/config"
	chesserrors "github.com/lgbarn/chess-core-go/internal/errors"
	"github.com/lgbarn/chess-core-go/internal/game"
	"github.com/lgbarn/chess-core-go/internal/uci"
	"github.com/lgbarn/chess-core-go/internal/worker"
)

// Analyzer evaluates a FEN position. *uci.Engine implements it.
type Analyzer interface {
	Analyse(ctx context.Context, fen string, limit uci.Limit) (*uci.Evaluation, error)
}

var _ Analyzer = (*uci.Engine)(nil)

// AnalyzerFunc adapts a function to the Analyzer interface.
type AnalyzerFunc func(ctx context.Context, fen string, limit uci.Limit) (*uci.Evaluation, error)

// Analyse calls f.
func (f AnalyzerFunc) Analyse(ctx context.Context, fen string, limit uci.Limit) (*uci.Evaluation, error) {
	return f(ctx, fen, limit)
}

// Ticket identifies one suggestion request.
type Ticket struct {
	ID      string
	GameID  string
	Version uint64
	FEN     string
}

// Suggestion is the answer to a Ticket. When OK is false there is no move
// and Err says why.
type Suggestion struct {
	Ticket  Ticket
	OK      bool
	Move    chess.Move
	Score   float64 // pawns, from the side to move
	Display string
	Err     error
}

// Advisor owns the analysis workers.
type Advisor struct {
	analyzer Analyzer
	limit    uci.Limit
	timeout  time.Duration
	logFile  io.Writer

	pool    *worker.Pool
	results chan Suggestion
	closing chan struct{}
	done    chan struct{}

	mu      sync.Mutex
	closed  bool
	pending map[string]Ticket
}

// New starts an Advisor backed by analyzer, sized and limited by cfg.
func New(analyzer Analyzer, cfg *config.Config) *Advisor {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	engineCfg := cfg.Engine
	if engineCfg == nil {
		engineCfg = config.NewEngineConfig()
	}
	a := &Advisor{
		analyzer: analyzer,
		limit:    uci.Limit{MoveTime: engineCfg.MoveTime, Depth: engineCfg.Depth},
		timeout:  engineCfg.Timeout,
		logFile:  cfg.Log(),
		results:  make(chan Suggestion, cfg.EffectiveQueueSize()),
		closing:  make(chan struct{}),
		done:     make(chan struct{}),
		pending:  make(map[string]Ticket),
	}
	a.pool = worker.NewPool(a.process,
		worker.WithWorkers(cfg.Workers),
		worker.WithBufferSize(cfg.EffectiveQueueSize()))
	a.pool.Start()
	go a.forward()
	return a
}

func (a *Advisor) process(ctx context.Context, item worker.WorkItem) worker.ProcessResult {
	eval, err := a.analyzer.Analyse(ctx, item.FEN, a.limit)
	if err != nil {
		return worker.ProcessResult{Err: err}
	}
	m, err := chess.ParseMove(eval.BestMove)
	if err != nil {
		return worker.ProcessResult{Err: chesserrors.Wrap(chesserrors.ErrNoSuggestion, err.Error())}
	}
	return worker.ProcessResult{
		Move:    m,
		Score:   eval.Pawns(),
		Display: uci.FormatEvaluation(eval),
	}
}

// forward turns pool results into suggestions until the pool closes.
func (a *Advisor) forward() {
	defer close(a.done)
	defer close(a.results)

	for r := range a.pool.Results() {
		a.mu.Lock()
		ticket := a.pending[r.ID]
		delete(a.pending, r.ID)
		a.mu.Unlock()

		s := Suggestion{Ticket: ticket, OK: r.Err == nil, Err: r.Err}
		if s.OK {
			s.Move = r.Move
			s.Score = r.Score
			s.Display = r.Display
		} else {
			fmt.Fprintf(a.logFile, "advisor: no suggestion for game %s version %d: %v\n",
				ticket.GameID, ticket.Version, r.Err)
		}

		select {
		case a.results <- s:
		case <-a.closing:
			fmt.Fprintf(a.logFile, "advisor: dropped suggestion %s on shutdown\n", ticket.ID)
		}
	}
}

// Request queues analysis of g's current position and returns at once.
// The Suggestion arrives on Results.
func (a *Advisor) Request(g *game.Game) (Ticket, error) {
	fen, version := g.FENSnapshot()
	ticket := Ticket{
		ID:      uuid.NewString(),
		GameID:  g.ID(),
		Version: version,
		FEN:     fen,
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return Ticket{}, chesserrors.Wrap(chesserrors.ErrEngineUnavailable, "advisor closed")
	}
	if g.Outcome().IsTerminal() {
		return Ticket{}, chesserrors.ErrGameAlreadyOver
	}

	a.pending[ticket.ID] = ticket
	item := worker.WorkItem{ID: ticket.ID, FEN: fen, Version: version}
	if a.timeout > 0 {
		item.Deadline = time.Now().Add(a.timeout)
	}
	if !a.pool.TrySubmit(item) {
		delete(a.pending, ticket.ID)
		return Ticket{}, chesserrors.Wrap(chesserrors.ErrNoSuggestion, "advisor queue full")
	}
	return ticket, nil
}

// Results delivers suggestions in completion order. It is closed by Close.
func (a *Advisor) Results() <-chan Suggestion {
	return a.results
}

// Apply plays s on g when s holds a move and g is still at the requested
// version. It reports whether the move was played. A stale or empty
// suggestion is not an error.
func (a *Advisor) Apply(g *game.Game, s Suggestion) (bool, error) {
	if !s.OK {
		return false, nil
	}
	applied, err := g.ApplyIfVersion(s.Move, s.Ticket.Version)
	if err != nil {
		fmt.Fprintf(a.logFile, "advisor: suggestion %s rejected: %v\n", s.Move, err)
		return false, err
	}
	if !applied {
		fmt.Fprintf(a.logFile, "advisor: stale suggestion %s for version %d\n", s.Move, s.Ticket.Version)
	}
	return applied, nil
}

// Close stops the workers, abandons in-flight analysis and closes the
// analyzer when it is an io.Closer.
func (a *Advisor) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	close(a.closing)
	a.pool.Stop()
	a.pool.Close()
	<-a.done

	var result *multierror.Error
	if c, ok := a.analyzer.(io.Closer); ok {
		if err := c.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
