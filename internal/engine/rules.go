package engine

import (
	"github.com/lgbarn/chess-core-go/internal/chess"
)

// materialByColour lists the kinds on the board per colour, kings excluded.
func materialByColour(board *chess.Board) map[chess.Colour][]chess.Kind {
	material := map[chess.Colour][]chess.Kind{
		chess.White: nil,
		chess.Black: nil,
	}
	for _, pp := range board.AllPieces() {
		if pp.Piece.Kind == chess.King {
			continue
		}
		material[pp.Piece.Colour] = append(material[pp.Piece.Colour], pp.Piece.Kind)
	}
	return material
}

// isInsufficient reports whether a side's non-king material is nothing or
// a single minor piece.
func isInsufficient(kinds []chess.Kind) bool {
	switch len(kinds) {
	case 0:
		return true
	case 1:
		return kinds[0].IsMinor()
	}
	return false
}

// HasInsufficientMaterial returns true only when both sides are
// simultaneously reduced to a bare king or a king and one minor piece.
// K+B vs K+N is therefore treated as a draw, while K+B+B vs K is not.
func HasInsufficientMaterial(board *chess.Board) bool {
	material := materialByColour(board)
	return isInsufficient(material[chess.White]) && isInsufficient(material[chess.Black])
}

// IsDeadPosition returns true for king vs king, king plus one minor piece
// vs a bare king, and positions where every remaining non-king piece is a
// bishop and all bishops stand on squares of one colour.
func IsDeadPosition(board *chess.Board) bool {
	material := materialByColour(board)
	white, black := material[chess.White], material[chess.Black]

	if len(white) == 0 && len(black) == 0 {
		return true
	}
	if len(white) == 1 && len(black) == 0 {
		return white[0].IsMinor()
	}
	if len(black) == 1 && len(white) == 0 {
		return black[0].IsMinor()
	}
	return bishopsOnOneColour(board)
}

// bishopsOnOneColour reports whether the only non-king pieces are bishops
// that all share a square colour.
func bishopsOnOneColour(board *chess.Board) bool {
	seen := false
	var light bool
	for _, pp := range board.AllPieces() {
		switch pp.Piece.Kind {
		case chess.King:
			continue
		case chess.Bishop:
		default:
			return false
		}
		if !seen {
			seen, light = true, pp.Square.IsLight()
			continue
		}
		if pp.Square.IsLight() != light {
			return false
		}
	}
	return seen
}

// Material returns the summed piece value for a colour.
func Material(board *chess.Board, colour chess.Colour) float64 {
	var total float64
	for _, pp := range board.PiecesOf(colour) {
		total += PieceValue(pp.Piece.Kind)
	}
	return total
}
