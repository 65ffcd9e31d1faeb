package engine

import "github.com/lgbarn/chess-core-go/internal/chess"

// isPathClear checks that every square strictly between from and to is
// empty. The squares must share a rank, file or diagonal.
func isPathClear(board *chess.Board, from, to chess.Square) bool {
	rowDir := sign(to.Row - from.Row)
	colDir := sign(to.Col - from.Col)

	sq := from.Offset(rowDir, colDir)
	for sq != to {
		if !board.IsEmpty(sq) {
			return false
		}
		sq = sq.Offset(rowDir, colDir)
	}
	return true
}

// isStraight reports whether two distinct squares share a rank or file.
func isStraight(from, to chess.Square) bool {
	return from != to && (from.Row == to.Row || from.Col == to.Col)
}

// isDiagonal reports whether two distinct squares share a diagonal.
func isDiagonal(from, to chess.Square) bool {
	return from != to && abs(to.Row-from.Row) == abs(to.Col-from.Col)
}
