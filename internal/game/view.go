package game

import (
	"github.com/lgbarn/chess-core-go/internal/chess"
	"github.com/lgbarn/chess-core-go/internal/engine"
)

// Record describes one applied half-move.
type Record struct {
	Ply       int
	Mover     chess.Colour
	Move      chess.Move
	Piece     chess.Kind
	Captured  *chess.Kind // nil when nothing was captured
	Castle    engine.CastleSide
	EnPassant bool
	// Promotion is set when the move promoted; Move.Promotion holds the kind.
	Promotion bool
	// Position is the canonical position string after the move.
	Position string
}

// Snapshot is a read-only view of the game for renderers. Board is a
// private copy.
type Snapshot struct {
	ID            string
	Board         *chess.Board
	Mover         chess.Colour
	Outcome       Outcome
	LastMove      chess.Move
	HasLastMove   bool
	InCheck       bool
	HalfmoveClock int
	MoveNumber    int
	Ply           int
	Version       uint64
	Evaluation    float64
	// WhiteMaterial and BlackMaterial are summed piece values per side.
	WhiteMaterial float64
	BlackMaterial float64
	FEN           string
}
