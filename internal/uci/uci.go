// Package uci drives an external UCI chess engine over its stdin/stdout
// pipes. It is used for move suggestions and numeric evaluations; the rules
// engine itself never depends on it.
package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	nchess "github.com/notnil/chess"
	"github.com/pkg/errors"

	"github.com/lgbarn/chess-core-go/internal/chess"
	chesserrors "github.com/lgbarn/chess-core-go/internal/errors"
)

// Defaults used when neither an option nor a Limit says otherwise.
const (
	DefaultMoveTime = time.Second
	quitGrace       = 2 * time.Second
)

// Evaluation is the engine's verdict on a position, from the side to move.
type Evaluation struct {
	Score    int    // centipawns, when IsMate is false
	IsMate   bool   // true when the engine announced a forced mate
	MateIn   int    // moves to mate; negative when the side to move is mated
	Depth    int    // deepest completed search depth seen
	BestMove string // long algebraic move from the bestmove line
}

// Pawns returns the score in pawns. Mate scores saturate at +/-100.
func (e *Evaluation) Pawns() float64 {
	if e.IsMate {
		if e.MateIn < 0 {
			return -100
		}
		return 100
	}
	return float64(e.Score) / 100
}

// Limit bounds one search. A zero Limit falls back to the engine defaults.
type Limit struct {
	MoveTime time.Duration
	Depth    int
}

// Engine is a running UCI engine process. Searches are serialised; an
// Engine is safe for use by multiple goroutines.
type Engine struct {
	path     string
	args     []string
	env      []string
	depth    int
	moveTime time.Duration
	logFile  io.Writer

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	lines  chan string
	done   chan struct{}
	closed bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithArgs sets the engine's command line arguments.
func WithArgs(args ...string) Option {
	return func(e *Engine) { e.args = args }
}

// WithEnv appends KEY=VALUE pairs to the engine's environment.
func WithEnv(env ...string) Option {
	return func(e *Engine) { e.env = append(e.env, env...) }
}

// WithDepth makes searches stop at a fixed depth instead of a time budget.
func WithDepth(depth int) Option {
	return func(e *Engine) { e.depth = depth }
}

// WithMoveTime sets the default time budget per search.
func WithMoveTime(d time.Duration) Option {
	return func(e *Engine) { e.moveTime = d }
}

// WithLogFile sets where protocol diagnostics are written.
func WithLogFile(w io.Writer) Option {
	return func(e *Engine) { e.logFile = w }
}

// Start launches the engine binary and completes the uci/isready handshake.
func Start(ctx context.Context, path string, opts ...Option) (*Engine, error) {
	e := &Engine{
		path:     path,
		moveTime: DefaultMoveTime,
		logFile:  io.Discard,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logFile == nil {
		e.logFile = io.Discard
	}

	cmd := exec.Command(path, e.args...)
	if len(e.env) > 0 {
		cmd.Env = append(os.Environ(), e.env...)
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "uci: stdin pipe")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "uci: stdout pipe")
	}
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(chesserrors.ErrEngineUnavailable, "uci: start %s: %v", path, err)
	}

	e.cmd = cmd
	e.stdin = stdin
	e.lines = make(chan string, 64)
	e.done = make(chan struct{})
	go e.readLines(stdout)

	if err := e.handshake(ctx); err != nil {
		close(e.done)
		e.kill()
		_ = cmd.Wait()
		return nil, err
	}
	fmt.Fprintf(e.logFile, "uci: engine %s ready\n", path)
	return e, nil
}

func (e *Engine) readLines(r io.Reader) {
	defer close(e.lines)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		select {
		case e.lines <- strings.TrimSpace(scanner.Text()):
		case <-e.done:
			return
		}
	}
}

func (e *Engine) handshake(ctx context.Context) error {
	if err := e.send("uci"); err != nil {
		return err
	}
	if _, err := e.waitFor(ctx, "uciok"); err != nil {
		return errors.Wrap(err, "uci: handshake")
	}
	return e.sync(ctx)
}

// sync issues isready and discards output up to readyok, which also drops
// any reply left over from an abandoned search.
func (e *Engine) sync(ctx context.Context) error {
	if err := e.send("isready"); err != nil {
		return err
	}
	if _, err := e.waitFor(ctx, "readyok"); err != nil {
		return errors.Wrap(err, "uci: isready")
	}
	return nil
}

func (e *Engine) send(command string) error {
	if _, err := io.WriteString(e.stdin, command+"\n"); err != nil {
		return errors.Wrapf(chesserrors.ErrEngineUnavailable, "uci: write %q: %v", command, err)
	}
	return nil
}

// waitFor reads lines until one starts with prefix. Lines are passed to
// each visit callback on the way.
func (e *Engine) waitFor(ctx context.Context, prefix string, visit ...func(string)) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case line, ok := <-e.lines:
			if !ok {
				return "", errors.Wrap(chesserrors.ErrEngineUnavailable, "uci: engine exited")
			}
			for _, fn := range visit {
				fn(line)
			}
			if line == prefix || strings.HasPrefix(line, prefix+" ") {
				return line, nil
			}
		}
	}
}

func (e *Engine) goCommand(limit Limit) string {
	switch {
	case limit.Depth > 0:
		return "go depth " + strconv.Itoa(limit.Depth)
	case limit.MoveTime > 0:
		return "go movetime " + strconv.FormatInt(limit.MoveTime.Milliseconds(), 10)
	case e.depth > 0:
		return "go depth " + strconv.Itoa(e.depth)
	default:
		return "go movetime " + strconv.FormatInt(e.moveTime.Milliseconds(), 10)
	}
}

// Analyse searches the position and returns the final evaluation and best
// move. The best move is checked for legality before it is returned. When
// ctx ends first the search is stopped and ctx's error is returned.
func (e *Engine) Analyse(ctx context.Context, fen string, limit Limit) (*Evaluation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, errors.Wrap(chesserrors.ErrEngineUnavailable, "uci: engine closed")
	}
	if err := e.sync(ctx); err != nil {
		return nil, err
	}
	if err := e.send("position fen " + fen); err != nil {
		return nil, err
	}
	if err := e.send(e.goCommand(limit)); err != nil {
		return nil, err
	}

	eval := &Evaluation{}
	line, err := e.waitFor(ctx, "bestmove", func(l string) {
		if strings.HasPrefix(l, "info ") {
			parseInfo(l, eval)
		}
	})
	if err != nil {
		if ctx.Err() != nil {
			// The reply to stop is discarded by the next sync.
			_ = e.send("stop")
		}
		return nil, err
	}

	fields := strings.Fields(line)
	if len(fields) < 2 || fields[1] == "0000" || fields[1] == "(none)" {
		return eval, errors.Wrapf(chesserrors.ErrNoSuggestion, "uci: %q", line)
	}
	if err := validateMove(fen, fields[1]); err != nil {
		fmt.Fprintf(e.logFile, "uci: rejected bestmove %s: %v\n", fields[1], err)
		return eval, errors.Wrapf(chesserrors.ErrNoSuggestion, "uci: bestmove %s: %v", fields[1], err)
	}
	eval.BestMove = fields[1]
	return eval, nil
}

// BestMove runs Analyse and parses the best move.
func (e *Engine) BestMove(ctx context.Context, fen string, limit Limit) (chess.Move, error) {
	eval, err := e.Analyse(ctx, fen, limit)
	if err != nil {
		return chess.Move{}, err
	}
	m, err := chess.ParseMove(eval.BestMove)
	if err != nil {
		return chess.Move{}, errors.Wrap(chesserrors.ErrNoSuggestion, err.Error())
	}
	return m, nil
}

// validateMove checks move against the legal moves of the FEN position
// using an independent move generator.
func validateMove(fen, move string) error {
	setup, err := nchess.FEN(fen)
	if err != nil {
		return errors.Wrap(err, "parse position")
	}
	g := nchess.NewGame(setup, nchess.UseNotation(nchess.UCINotation{}))
	m, err := nchess.UCINotation{}.Decode(g.Position(), move)
	if err != nil {
		return errors.Wrap(err, "decode move")
	}
	for _, valid := range g.ValidMoves() {
		if valid.String() == m.String() {
			return nil
		}
	}
	return errors.Errorf("%s is not legal", move)
}

// parseInfo extracts depth and score from an "info" line into eval. Fields
// absent from the line leave eval unchanged.
func parseInfo(line string, eval *Evaluation) {
	fields := strings.Fields(line)
	for i := 0; i < len(fields)-1; i++ {
		switch fields[i] {
		case "depth":
			if d, err := strconv.Atoi(fields[i+1]); err == nil {
				eval.Depth = d
			}
		case "score":
			if i+2 >= len(fields) {
				continue
			}
			v, err := strconv.Atoi(fields[i+2])
			if err != nil {
				continue
			}
			switch fields[i+1] {
			case "cp":
				eval.Score = v
				eval.IsMate = false
				eval.MateIn = 0
			case "mate":
				eval.MateIn = v
				eval.IsMate = true
			}
		case "pv":
			// Everything after pv is moves.
			return
		}
	}
}

// FormatEvaluation renders an evaluation as "+1.23" or "-M5".
func FormatEvaluation(eval *Evaluation) string {
	if eval.IsMate {
		if eval.MateIn < 0 {
			return fmt.Sprintf("-M%d", -eval.MateIn)
		}
		return fmt.Sprintf("+M%d", eval.MateIn)
	}
	sign := "+"
	score := eval.Score
	if score < 0 {
		sign = "-"
		score = -score
	}
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}

// Close asks the engine to quit and waits briefly before killing it.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	close(e.done)

	_ = e.send("quit")
	_ = e.stdin.Close()

	done := make(chan error, 1)
	go func() { done <- e.cmd.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			return errors.Wrap(err, "uci: wait")
		}
		return nil
	case <-time.After(quitGrace):
		e.kill()
		<-done
		return errors.Errorf("uci: %s did not quit, killed", e.path)
	}
}

func (e *Engine) kill() {
	if e.cmd != nil && e.cmd.Process != nil {
		_ = e.cmd.Process.Kill()
	}
}
