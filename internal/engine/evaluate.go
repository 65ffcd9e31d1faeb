package engine

import "github.com/lgbarn/chess-core-go/internal/chess"

// Evaluation weights, in pawns.
const (
	pawnAdvanceBonus = 0.1
	centreBonus      = 0.2
	checkPenalty     = 0.5
)

// pieceValues holds material values indexed by kind.
var pieceValues = [chess.NumKinds]float64{
	chess.Pawn:   1,
	chess.Knight: 3,
	chess.Bishop: 3.25,
	chess.Rook:   5,
	chess.Queen:  9,
	chess.King:   0,
}

// centreSquares are d5, e5, d4 and e4.
var centreSquares = []chess.Square{
	chess.Sq(3, 3), chess.Sq(3, 4), chess.Sq(4, 3), chess.Sq(4, 4),
}

// PieceValue returns the material value of a kind.
func PieceValue(kind chess.Kind) float64 {
	if kind < 0 || kind >= chess.NumKinds {
		return 0
	}
	return pieceValues[kind]
}

// Evaluate scores the position heuristically; positive favours White.
// It is advisory display data and never feeds legality or termination.
func Evaluate(board *chess.Board) float64 {
	var score [2]float64

	for _, pp := range board.AllPieces() {
		p := pp.Piece
		value := PieceValue(p.Kind)
		if p.Kind == chess.Pawn {
			advanced := abs(pp.Square.Row - p.Colour.PawnRow())
			value += float64(advanced) * pawnAdvanceBonus
		}
		score[p.Colour] += value
	}

	for _, sq := range centreSquares {
		if p := board.Get(sq); p != nil {
			score[p.Colour] += centreBonus
		}
	}

	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if InCheck(board, colour) {
			score[colour] -= checkPenalty
		}
	}

	return score[chess.White] - score[chess.Black]
}
