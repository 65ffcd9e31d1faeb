package engine

import "github.com/lgbarn/chess-core-go/internal/chess"

// Castling files.
const (
	kingCol          = 4
	kingsideRookCol  = 7
	queensideRookCol = 0
)

// castleSideOf classifies a two-file king move along its rank as castling.
func castleSideOf(piece *chess.Piece, from, to chess.Square) CastleSide {
	if piece == nil || piece.Kind != chess.King || from.Row != to.Row {
		return NoCastle
	}
	switch to.Col - from.Col {
	case 2:
		return Kingside
	case -2:
		return Queenside
	}
	return NoCastle
}

// IsCastlingAttempt reports whether the move is a two-file king move.
func IsCastlingAttempt(board *chess.Board, from, to chess.Square) bool {
	return castleSideOf(board.Get(from), from, to) != NoCastle
}

// castlingRookSquares returns the rook's start and post-castle squares.
func castlingRookSquares(kingFrom chess.Square, side CastleSide) (chess.Square, chess.Square) {
	if side == Kingside {
		return chess.Sq(kingFrom.Row, kingsideRookCol), chess.Sq(kingFrom.Row, kingFrom.Col+1)
	}
	return chess.Sq(kingFrom.Row, queensideRookCol), chess.Sq(kingFrom.Row, kingFrom.Col-1)
}

// IsValidCastling checks every castling condition: the king and the
// corresponding rook are unmoved, the squares between them are empty, and
// the king is not in check on its current square, any square it passes
// over, or its destination.
func IsValidCastling(board *chess.Board, from, to chess.Square) bool {
	king := board.Get(from)
	side := castleSideOf(king, from, to)
	if side == NoCastle || king.HasMoved {
		return false
	}
	if from.Row != king.Colour.HomeRow() || from.Col != kingCol {
		return false
	}

	rookFrom, _ := castlingRookSquares(from, side)
	rook := board.Get(rookFrom)
	if rook == nil || rook.Kind != chess.Rook || rook.Colour != king.Colour || rook.HasMoved {
		return false
	}
	if !isPathClear(board, from, rookFrom) {
		return false
	}

	if InCheck(board, king.Colour) {
		return false
	}

	// The king may not pass through or land on an attacked square.
	step := sign(to.Col - from.Col)
	for sq := from.Offset(0, step); ; sq = sq.Offset(0, step) {
		if kingAttackedOn(board, from, sq) {
			return false
		}
		if sq == to {
			break
		}
	}
	return true
}

// kingAttackedOn relocates the king on a scratch copy of the board and
// reports whether it would stand in check there.
func kingAttackedOn(board *chess.Board, kingFrom, sq chess.Square) bool {
	probe := board.Copy()
	king := probe.Get(kingFrom)
	probe.Set(kingFrom, nil)
	probe.Set(sq, king)
	return InCheck(probe, king.Colour)
}
