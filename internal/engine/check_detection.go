package engine

import "github.com/lgbarn/chess-core-go/internal/chess"

// KingSquare returns the square of the given colour's king.
// The second result is false only for malformed boards without a king.
func KingSquare(board *chess.Board, colour chess.Colour) (chess.Square, bool) {
	for _, pp := range board.PiecesOf(colour) {
		if pp.Piece.Kind == chess.King {
			return pp.Square, true
		}
	}
	return chess.Square{}, false
}

// InCheck returns true if some enemy piece can reach the given colour's
// king square.
func InCheck(board *chess.Board, colour chess.Colour) bool {
	kingSq, ok := KingSquare(board, colour)
	if !ok {
		return false
	}
	return IsSquareAttacked(board, kingSq, colour.Opposite())
}

// IsSquareAttacked returns true if any piece of byColour can reach sq.
// Pawns only reach diagonally onto occupied squares, so attacks on an
// empty square must be probed with a piece standing on it.
func IsSquareAttacked(board *chess.Board, sq chess.Square, byColour chess.Colour) bool {
	for _, pp := range board.PiecesOf(byColour) {
		if canReach(board, pp.Square, sq) {
			return true
		}
	}
	return false
}

// Checks returns the squares of every enemy piece giving check to the given
// colour's king.
func Checks(board *chess.Board, colour chess.Colour) []chess.Square {
	kingSq, ok := KingSquare(board, colour)
	if !ok {
		return nil
	}
	var checks []chess.Square
	for _, pp := range board.PiecesOf(colour.Opposite()) {
		if canReach(board, pp.Square, kingSq) {
			checks = append(checks, pp.Square)
		}
	}
	return checks
}
