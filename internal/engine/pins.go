package engine

import "github.com/lgbarn/chess-core-go/internal/chess"

// Direction is a unit step on the board as (row, col) deltas.
type Direction struct {
	DRow int
	DCol int
}

// kingDirections lists the eight rays leaving the king: straight, then diagonal.
var kingDirections = []Direction{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// IsDiagonal reports whether the direction is diagonal.
func (d Direction) IsDiagonal() bool {
	return d.DRow != 0 && d.DCol != 0
}

// Pin is a piece that shields its own king from an enemy slider.
type Pin struct {
	Square    chess.Square
	Direction Direction
}

// Pins casts rays from the given colour's king and returns every friendly
// piece that is the only blocker between the king and an enemy slider able
// to move along that ray. Intended for highlighting; legality never
// depends on it.
func Pins(board *chess.Board, colour chess.Colour) []Pin {
	kingSq, ok := KingSquare(board, colour)
	if !ok {
		return nil
	}

	var pins []Pin
	for _, dir := range kingDirections {
		var candidate *Pin
		for sq := kingSq.Offset(dir.DRow, dir.DCol); sq.InBounds(); sq = sq.Offset(dir.DRow, dir.DCol) {
			piece := board.Get(sq)
			if piece == nil {
				continue
			}
			if piece.Colour == colour {
				if candidate != nil {
					break // Two friendly blockers
				}
				candidate = &Pin{Square: sq, Direction: dir}
				continue
			}
			if candidate != nil && slidesAlong(piece.Kind, dir) {
				pins = append(pins, *candidate)
			}
			break
		}
	}
	return pins
}

// slidesAlong reports whether a piece of the kind moves any distance along dir.
func slidesAlong(kind chess.Kind, dir Direction) bool {
	switch kind {
	case chess.Queen:
		return true
	case chess.Rook:
		return !dir.IsDiagonal()
	case chess.Bishop:
		return dir.IsDiagonal()
	}
	return false
}
