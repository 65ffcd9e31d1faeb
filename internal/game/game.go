// Package game implements the chess game state machine. A Game owns its
// board exclusively; every command is serialised by a mutex and either
// commits fully or leaves the game untouched.
package game

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/lgbarn/chess-core-go/internal/chess"
	"github.com/lgbarn/chess-core-go/internal/config"
	"github.com/lgbarn/chess-core-go/internal/engine"
	chesserrors "github.com/lgbarn/chess-core-go/internal/errors"
	"github.com/lgbarn/chess-core-go/internal/hashing"
)

// Game is a single game of chess. It is safe for concurrent use.
type Game struct {
	mu sync.Mutex

	id       string
	rules    config.RulesConfig
	logFile  io.Writer
	promoter Promoter

	board         *chess.Board
	mover         chess.Colour
	lastMove      chess.Move
	hasLastMove   bool
	halfmoveClock int
	moveNumber    int
	ply           int
	version       uint64
	repetitions   *hashing.RepetitionTable
	outcome       Outcome
	history       []Record
}

// Option configures a Game.
type Option func(*Game)

// WithConfig applies the rules and log destination from cfg. Draw
// thresholds below 1 fall back to the standard values.
func WithConfig(cfg *config.Config) Option {
	return func(g *Game) {
		if cfg == nil {
			return
		}
		if cfg.Rules != nil {
			g.rules = *cfg.Rules
			if g.rules.RepetitionLimit < 1 {
				g.rules.RepetitionLimit = config.DefaultRepetitionLimit
			}
			if g.rules.FiftyMoveLimit < 1 {
				g.rules.FiftyMoveLimit = config.DefaultFiftyMoveLimit
			}
		}
		g.logFile = cfg.Log()
	}
}

// WithPromoter sets the promotion chooser. Nil means AutoQueen.
func WithPromoter(p Promoter) Option {
	return func(g *Game) {
		if p != nil {
			g.promoter = p
		}
	}
}

// WithLogFile sets where accepted moves and outcomes are logged.
func WithLogFile(w io.Writer) Option {
	return func(g *Game) {
		if w == nil {
			w = io.Discard
		}
		g.logFile = w
	}
}

func newGame(opts []Option) *Game {
	g := &Game{
		rules:    *config.NewRulesConfig(),
		logFile:  io.Discard,
		promoter: AutoQueen,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// New starts a game from the standard starting position.
func New(opts ...Option) *Game {
	g := newGame(opts)
	g.start(chess.NewInitialBoard(), chess.White, 0, 1)
	return g
}

// NewFromFEN starts a game from a FEN position. The position is checked
// for terminal conditions immediately, so a game set up in checkmate is
// already over.
func NewFromFEN(fen string, opts ...Option) (*Game, error) {
	pos, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	g := newGame(opts)
	g.start(pos.Board, pos.ToMove, pos.HalfmoveClock, pos.MoveNumber)
	return g, nil
}

// start resets every counter around board. Caller holds mu or owns g.
func (g *Game) start(board *chess.Board, mover chess.Colour, halfmoveClock, moveNumber int) {
	g.id = uuid.NewString()
	g.board = board
	g.mover = mover
	g.lastMove = chess.Move{}
	g.hasLastMove = false
	g.halfmoveClock = halfmoveClock
	g.moveNumber = moveNumber
	g.ply = 0
	g.version++
	g.repetitions = hashing.NewRepetitionTable()
	g.repetitions.Record(hashing.PositionKey(board, mover))
	g.history = nil
	g.outcome = g.evaluateTerminal(1)
	fmt.Fprintf(g.logFile, "game %s: new game, %s to move\n", g.id, mover)
	if g.outcome.IsTerminal() {
		fmt.Fprintf(g.logFile, "game %s: %s\n", g.id, g.outcome)
	}
}

// Reset starts a new game from the standard starting position. The game
// gets a new ID; the version keeps counting so stale suggestions are
// still detected.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.start(chess.NewInitialBoard(), chess.White, 0, 1)
}

// ApplyMove plays the move from start to end for the side to move. A
// promotion asks the game's Promoter.
func (g *Game) ApplyMove(from, to chess.Square) error {
	return g.apply(from, to, 0, false)
}

// ApplyMoveWithPromotion plays a move with the promotion kind chosen up
// front. The Promoter is not consulted.
func (g *Game) ApplyMoveWithPromotion(from, to chess.Square, promotion chess.Kind) error {
	return g.apply(from, to, promotion, true)
}

// Play applies m, honouring its promotion suffix when present.
func (g *Game) Play(m chess.Move) error {
	return g.apply(m.From, m.To, m.Promotion, m.HasPromotion)
}

func (g *Game) reject(err error, from, to chess.Square) error {
	return &chesserrors.MoveError{
		Err:    err,
		GameID: g.id,
		Ply:    g.ply + 1,
		From:   squareName(from),
		To:     squareName(to),
	}
}

func squareName(sq chess.Square) string {
	if !sq.InBounds() {
		return fmt.Sprintf("(%d,%d)", sq.Row, sq.Col)
	}
	return sq.String()
}

// validate runs every rejection check without touching the board.
func (g *Game) validate(from, to chess.Square) error {
	if !from.InBounds() || !to.InBounds() {
		return chesserrors.ErrOutOfBounds
	}
	if g.outcome.IsTerminal() {
		return chesserrors.ErrGameAlreadyOver
	}
	piece := g.board.Get(from)
	if piece == nil {
		return chesserrors.ErrNoPieceAtStart
	}
	if piece.Colour != g.mover {
		return chesserrors.ErrNotYourPiece
	}
	if !engine.IsLegal(g.board, from, to) {
		return chesserrors.ErrIllegalMove
	}
	return nil
}

func (g *Game) apply(from, to chess.Square, promotion chess.Kind, hasPromotion bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.applyLocked(from, to, promotion, hasPromotion)
}

func (g *Game) applyLocked(from, to chess.Square, promotion chess.Kind, hasPromotion bool) error {
	if err := g.validate(from, to); err != nil {
		return g.reject(err, from, to)
	}

	// Commit: nothing below can fail.
	mover := g.mover
	if engine.IsPromotion(g.board, from, to) && !(hasPromotion && chess.IsPromotionKind(promotion)) {
		promotion = g.promoter.ChoosePromotion(mover, append([]chess.Kind(nil), chess.PromotionKinds...))
	}
	effects := engine.ApplyMove(g.board, from, to, promotion)

	if g.rules.LiteralHalfmoveClock || (effects.Moved != chess.Pawn && !effects.IsCapture()) {
		g.halfmoveClock++
	} else {
		g.halfmoveClock = 0
	}
	if mover == chess.Black {
		g.moveNumber++
	}
	g.ply++
	g.version++
	g.mover = mover.Opposite()

	move := chess.NewMove(from, to)
	if effects.Promoted {
		move.Promotion = effects.PromotedTo
		move.HasPromotion = true
	}
	g.lastMove = move
	g.hasLastMove = true

	key := hashing.PositionKey(g.board, g.mover)
	count := g.repetitions.Record(key)

	rec := Record{
		Ply:       g.ply,
		Mover:     mover,
		Move:      move,
		Piece:     effects.Moved,
		Castle:    effects.Castle,
		EnPassant: effects.EnPassant,
		Promotion: effects.Promoted,
		Position:  key,
	}
	if effects.Captured != nil {
		kind := effects.Captured.Kind
		rec.Captured = &kind
	}
	g.history = append(g.history, rec)

	g.outcome = g.evaluateTerminal(count)
	fmt.Fprintf(g.logFile, "game %s: ply %d %s %s\n", g.id, g.ply, mover, move)
	if g.outcome.IsTerminal() {
		fmt.Fprintf(g.logFile, "game %s: %s %s\n", g.id, g.outcome, g.outcome.Result())
	}
	return nil
}

// evaluateTerminal checks the side to move, first match wins.
func (g *Game) evaluateTerminal(repetitions int) Outcome {
	switch {
	case engine.IsCheckmate(g.board, g.mover):
		return checkmateBy(g.mover.Opposite())
	case engine.IsStalemate(g.board, g.mover):
		return Outcome{Status: Stalemate}
	case engine.HasInsufficientMaterial(g.board):
		return drawBy(InsufficientMaterial)
	case repetitions >= g.rules.RepetitionLimit:
		return drawBy(ThreefoldRepetition)
	case g.halfmoveClock >= g.rules.FiftyMoveLimit:
		return drawBy(FiftyMoveRule)
	case engine.IsDeadPosition(g.board):
		return drawBy(DeadPosition)
	}
	return Outcome{Status: InProgress}
}

// AgreeDraw ends an in-progress game as a draw by agreement.
func (g *Game) AgreeDraw() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.outcome.IsTerminal() {
		return &chesserrors.MoveError{Err: chesserrors.ErrGameAlreadyOver, GameID: g.id}
	}
	g.outcome = drawBy(Agreement)
	g.version++
	fmt.Fprintf(g.logFile, "game %s: %s\n", g.id, g.outcome)
	return nil
}
