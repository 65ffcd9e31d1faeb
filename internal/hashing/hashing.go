// Package hashing provides canonical position keys and the occurrence table
// used for repetition detection.
package hashing

import (
	"github.com/lgbarn/chess-core-go/internal/chess"
	"github.com/lgbarn/chess-core-go/internal/engine"
)

// PositionKey returns the canonical position string: FEN piece placement
// plus the side to move, e.g. "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b".
// Castling and en passant state are deliberately not part of the key.
func PositionKey(board *chess.Board, toMove chess.Colour) string {
	side := "w"
	if toMove == chess.Black {
		side = "b"
	}
	return engine.PlacementFEN(board) + " " + side
}

// RepetitionTable counts how often each canonical position has occurred.
// It is not safe for concurrent use; the owning game serialises access.
type RepetitionTable struct {
	counts map[string]int
}

// NewRepetitionTable creates an empty table.
func NewRepetitionTable() *RepetitionTable {
	return &RepetitionTable{counts: make(map[string]int)}
}

// Record adds one occurrence of key and returns its new count.
func (r *RepetitionTable) Record(key string) int {
	r.counts[key]++
	return r.counts[key]
}

// Count returns the number of occurrences of key.
func (r *RepetitionTable) Count(key string) int {
	return r.counts[key]
}
