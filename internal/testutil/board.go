package testutil

import (
	"sort"
	"testing"

	"github.com/lgbarn/chess-core-go/internal/chess"
)

// MustSquare parses an algebraic square name, failing the test if it is invalid.
func MustSquare(t *testing.T, name string) chess.Square {
	t.Helper()
	sq, ok := chess.ParseSquare(name)
	if !ok {
		t.Fatalf("invalid square %q", name)
	}
	return sq
}

// MustMove parses a long algebraic move, failing the test if it is invalid.
func MustMove(t *testing.T, text string) chess.Move {
	t.Helper()
	m, err := chess.ParseMove(text)
	if err != nil {
		t.Fatalf("invalid move %q: %v", text, err)
	}
	return m
}

// SquareNames returns the sorted algebraic names of the squares, which
// makes destination sets comparable with AssertEqual.
func SquareNames(squares []chess.Square) []string {
	names := make([]string, 0, len(squares))
	for _, sq := range squares {
		names = append(names, sq.String())
	}
	sort.Strings(names)
	return names
}

// MoveNames returns the sorted long algebraic names of the moves.
func MoveNames(moves []chess.Move) []string {
	names := make([]string, 0, len(moves))
	for _, m := range moves {
		names = append(names, m.String())
	}
	sort.Strings(names)
	return names
}

// AssertPiece fails unless the named square holds a piece of the given
// colour and kind, and returns that piece for further checks.
func AssertPiece(t *testing.T, board *chess.Board, name string, colour chess.Colour, kind chess.Kind) *chess.Piece {
	t.Helper()
	p := board.Get(MustSquare(t, name))
	if p == nil || p.Colour != colour || p.Kind != kind {
		t.Errorf("Get(%s) = %v, want %v %v", name, p, colour, kind)
	}
	return p
}

// AssertEmpty fails if the named square is occupied.
func AssertEmpty(t *testing.T, board *chess.Board, name string) {
	t.Helper()
	if p := board.Get(MustSquare(t, name)); p != nil {
		t.Errorf("Get(%s) = %v, want empty", name, p)
	}
}
