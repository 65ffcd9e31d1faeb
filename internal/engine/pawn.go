package engine

import "github.com/lgbarn/chess-core-go/internal/chess"

// canPawnReach checks pawn geometry: single and double pushes onto empty
// squares, diagonal captures, and en passant.
func canPawnReach(board *chess.Board, pawn *chess.Piece, from, to chess.Square) bool {
	dir := pawn.Colour.Forward()
	rowDiff := to.Row - from.Row
	colDiff := abs(to.Col - from.Col)
	target := board.Get(to)

	if colDiff == 0 {
		if target != nil {
			return false
		}
		if rowDiff == dir {
			return true
		}
		// Double push from the original rank only.
		if rowDiff == 2*dir && !pawn.HasMoved {
			return board.IsEmpty(from.Offset(dir, 0))
		}
		return false
	}

	if colDiff != 1 || rowDiff != dir {
		return false
	}
	if target != nil {
		return target.Colour != pawn.Colour
	}
	return isEnPassantCapture(board, pawn, from, to)
}

// isEnPassantCapture reports whether a diagonal pawn step onto an empty
// square captures the vulnerable enemy pawn beside the mover.
func isEnPassantCapture(board *chess.Board, pawn *chess.Piece, from, to chess.Square) bool {
	if pawn.Kind != chess.Pawn || abs(to.Col-from.Col) != 1 || to.Row-from.Row != pawn.Colour.Forward() {
		return false
	}
	if !board.IsEmpty(to) {
		return false
	}
	victim := board.Get(enPassantVictim(from, to))
	return victim != nil &&
		victim.Kind == chess.Pawn &&
		victim.Colour != pawn.Colour &&
		victim.EnPassantVulnerable
}

// enPassantVictim returns the square of the pawn taken en passant: the
// mover's rank, the destination's file.
func enPassantVictim(from, to chess.Square) chess.Square {
	return chess.Sq(from.Row, to.Col)
}
