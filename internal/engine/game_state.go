package engine

import "github.com/lgbarn/chess-core-go/internal/chess"

// IsCheckmate returns true if the given colour is in check with no legal move.
func IsCheckmate(board *chess.Board, colour chess.Colour) bool {
	return InCheck(board, colour) && !HasAnyLegalMove(board, colour)
}

// IsStalemate returns true if the given colour is not in check but has no
// legal move.
func IsStalemate(board *chess.Board, colour chess.Colour) bool {
	return !InCheck(board, colour) && !HasAnyLegalMove(board, colour)
}
