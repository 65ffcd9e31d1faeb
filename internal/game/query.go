package game

import (
	"github.com/lgbarn/chess-core-go/internal/chess"
	"github.com/lgbarn/chess-core-go/internal/engine"
	"github.com/lgbarn/chess-core-go/internal/hashing"
)

// ID returns the game's identifier. It changes on Reset.
func (g *Game) ID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.id
}

// Mover returns the side to move.
func (g *Game) Mover() chess.Colour {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mover
}

// Outcome returns the current outcome.
func (g *Game) Outcome() Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.outcome
}

// LastMove returns the most recent move, if any.
func (g *Game) LastMove() (chess.Move, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastMove, g.hasLastMove
}

// HalfmoveClock returns the half-move clock.
func (g *Game) HalfmoveClock() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.halfmoveClock
}

// Version increases on every state change. Background work compares it
// to detect that the position moved on.
func (g *Game) Version() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.version
}

// RepetitionCount returns how often the current position has occurred.
func (g *Game) RepetitionCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.repetitions.Count(hashing.PositionKey(g.board, g.mover))
}

// Board returns a deep copy of the board.
func (g *Game) Board() *chess.Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Copy()
}

// Pieces returns copies of every piece on the board with its square.
func (g *Game) Pieces() []chess.PlacedPiece {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Copy().AllPieces()
}

// History returns a copy of the applied moves.
func (g *Game) History() []Record {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Record, len(g.history))
	copy(out, g.history)
	return out
}

// ValidMoves returns the legal destinations of the piece on sq. It is
// empty unless sq holds a piece of the side to move in a game still in
// progress.
func (g *Game) ValidMoves(sq chess.Square) []chess.Square {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.outcome.IsTerminal() {
		return nil
	}
	p := g.board.Get(sq)
	if p == nil || p.Colour != g.mover {
		return nil
	}
	return engine.ValidMoves(g.board, sq)
}

// LegalMoves returns every legal move of the side to move.
func (g *Game) LegalMoves() []chess.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.outcome.IsTerminal() {
		return nil
	}
	return engine.LegalMoves(g.board, g.mover)
}

// Pins returns the pieces of the side to move pinned to their king.
func (g *Game) Pins() []engine.Pin {
	g.mu.Lock()
	defer g.mu.Unlock()
	return engine.Pins(g.board, g.mover)
}

// Checks returns the squares of pieces giving check to the side to move.
func (g *Game) Checks() []chess.Square {
	g.mu.Lock()
	defer g.mu.Unlock()
	return engine.Checks(g.board, g.mover)
}

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return engine.InCheck(g.board, g.mover)
}

// FEN exports the position for an analysis engine.
func (g *Game) FEN() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return engine.BoardToFEN(g.board, g.mover)
}

// Evaluate returns the advisory evaluation, positive favouring white.
func (g *Game) Evaluate() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return engine.Evaluate(g.board)
}

// Snapshot returns a consistent read-only view of the whole game.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Snapshot{
		ID:            g.id,
		Board:         g.board.Copy(),
		Mover:         g.mover,
		Outcome:       g.outcome,
		LastMove:      g.lastMove,
		HasLastMove:   g.hasLastMove,
		InCheck:       engine.InCheck(g.board, g.mover),
		HalfmoveClock: g.halfmoveClock,
		MoveNumber:    g.moveNumber,
		Ply:           g.ply,
		Version:       g.version,
		Evaluation:    engine.Evaluate(g.board),
		WhiteMaterial: engine.Material(g.board, chess.White),
		BlackMaterial: engine.Material(g.board, chess.Black),
		FEN:           engine.BoardToFEN(g.board, g.mover),
	}
}

// FENSnapshot returns the exported FEN and the version it belongs to,
// read atomically.
func (g *Game) FENSnapshot() (string, uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return engine.BoardToFEN(g.board, g.mover), g.version
}

// ApplyIfVersion applies m only when the game is still at version. It
// reports false, with no error, when the game has moved on.
func (g *Game) ApplyIfVersion(m chess.Move, version uint64) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.version != version {
		return false, nil
	}
	if err := g.applyLocked(m.From, m.To, m.Promotion, m.HasPromotion); err != nil {
		return false, err
	}
	return true, nil
}
