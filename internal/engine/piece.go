package engine

import "github.com/lgbarn/chess-core-go/internal/chess"

// canReach reports whether the piece on from obeys its movement geometry
// landing on to. Castling is not a reach: a castling king never lands on an
// occupied square, so it can never capture and never attacks.
func canReach(board *chess.Board, from, to chess.Square) bool {
	if !from.InBounds() || !to.InBounds() || from == to {
		return false
	}
	piece := board.Get(from)
	if piece == nil {
		return false
	}

	// Self-capture is illegal for every kind.
	if target := board.Get(to); target != nil && target.Colour == piece.Colour {
		return false
	}

	rowDiff := abs(to.Row - from.Row)
	colDiff := abs(to.Col - from.Col)

	switch piece.Kind {
	case chess.Pawn:
		return canPawnReach(board, piece, from, to)

	case chess.Knight:
		return (colDiff == 1 && rowDiff == 2) || (colDiff == 2 && rowDiff == 1)

	case chess.Bishop:
		return isDiagonal(from, to) && isPathClear(board, from, to)

	case chess.Rook:
		return isStraight(from, to) && isPathClear(board, from, to)

	case chess.Queen:
		return (isDiagonal(from, to) || isStraight(from, to)) && isPathClear(board, from, to)

	case chess.King:
		return colDiff <= 1 && rowDiff <= 1
	}

	return false
}
