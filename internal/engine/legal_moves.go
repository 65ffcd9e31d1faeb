package engine

import "github.com/lgbarn/chess-core-go/internal/chess"

// PseudoLegal returns true if moving the piece on from to to obeys the
// piece's movement rules, ignoring whether the mover's own king ends up in
// check. A two-file king move is judged as castling.
func PseudoLegal(board *chess.Board, from, to chess.Square) bool {
	if IsCastlingAttempt(board, from, to) {
		return IsValidCastling(board, from, to)
	}
	return canReach(board, from, to)
}

// IsLegal returns true if the move is pseudo-legal and does not leave the
// mover's own king in check.
func IsLegal(board *chess.Board, from, to chess.Square) bool {
	if !PseudoLegal(board, from, to) {
		return false
	}
	return tryMove(board, from, to)
}

// ValidMoves returns every destination the piece on from may legally move to,
// found by probing all 64 squares.
func ValidMoves(board *chess.Board, from chess.Square) []chess.Square {
	if board.Get(from) == nil {
		return nil
	}
	var moves []chess.Square
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			to := chess.Sq(row, col)
			if IsLegal(board, from, to) {
				moves = append(moves, to)
			}
		}
	}
	return moves
}

// LegalMoves returns every legal move for the given colour.
func LegalMoves(board *chess.Board, colour chess.Colour) []chess.Move {
	var moves []chess.Move
	for _, pp := range board.PiecesOf(colour) {
		for _, to := range ValidMoves(board, pp.Square) {
			moves = append(moves, chess.NewMove(pp.Square, to))
		}
	}
	return moves
}

// HasAnyLegalMove returns true if the given colour has at least one legal
// move. It stops at the first one found.
func HasAnyLegalMove(board *chess.Board, colour chess.Colour) bool {
	for _, pp := range board.PiecesOf(colour) {
		for row := 0; row < chess.BoardSize; row++ {
			for col := 0; col < chess.BoardSize; col++ {
				if IsLegal(board, pp.Square, chess.Sq(row, col)) {
					return true
				}
			}
		}
	}
	return false
}

// tryMove makes the move on a copied board and checks whether it leaves
// the mover's king in check. The original board is never touched.
func tryMove(board *chess.Board, from, to chess.Square) bool {
	colour := board.Get(from).Colour

	testBoard := board.Copy()
	ApplyMove(testBoard, from, to, chess.Queen)

	return !InCheck(testBoard, colour)
}
