package engine

import (
	"github.com/lgbarn/chess-core-go/internal/chess"
)

// CastleSide identifies which side a castling move went to.
type CastleSide int

const (
	NoCastle CastleSide = iota
	Kingside
	Queenside
)

// String returns the string representation of a castle side.
func (c CastleSide) String() string {
	switch c {
	case Kingside:
		return "O-O"
	case Queenside:
		return "O-O-O"
	}
	return ""
}

// Effects describes what applying a move did to the board.
type Effects struct {
	// Moved is the kind of the piece that left the start square.
	Moved chess.Kind

	// Captured is the piece removed from the board, or nil.
	Captured *chess.Piece

	// CapturedOn is where the captured piece stood; differs from the
	// destination only for en passant.
	CapturedOn chess.Square

	Castle     CastleSide
	EnPassant  bool
	DoubleStep bool

	// Promoted is set when a pawn reached its farthest rank; PromotedTo
	// holds the chosen kind.
	Promoted   bool
	PromotedTo chess.Kind
}

// IsCapture reports whether the move removed a piece.
func (e Effects) IsCapture() bool {
	return e.Captured != nil
}

// ApplyMove performs a move on the board without any legality checking and
// reports its side effects. The caller must have confirmed legality first.
// promotion is used only when a pawn reaches its farthest rank; a kind that
// is not a promotion choice falls back to a queen.
//
// Order: every pawn's en passant flag is cleared, the castling rook is
// relocated, an en passant victim is removed, a double push marks the
// pawn, then the piece moves and is promoted.
func ApplyMove(board *chess.Board, from, to chess.Square, promotion chess.Kind) Effects {
	piece := board.Get(from)
	if piece == nil {
		return Effects{}
	}
	effects := Effects{Moved: piece.Kind}

	// Decided before the sweep below clears the victim's flag.
	enPassant := isEnPassantCapture(board, piece, from, to)
	board.ClearEnPassant()

	if side := castleSideOf(piece, from, to); side != NoCastle {
		effects.Castle = side
		rookFrom, rookTo := castlingRookSquares(from, side)
		if rook := board.Get(rookFrom); rook != nil {
			board.Set(rookFrom, nil)
			board.Set(rookTo, rook)
			rook.HasMoved = true
		}
	}

	if enPassant {
		effects.EnPassant = true
		effects.CapturedOn = enPassantVictim(from, to)
		effects.Captured = board.Get(effects.CapturedOn)
		board.Set(effects.CapturedOn, nil)
	}

	if piece.Kind == chess.Pawn && abs(to.Row-from.Row) == 2 {
		effects.DoubleStep = true
		piece.EnPassantVulnerable = true
	}

	if target := board.Get(to); target != nil {
		effects.Captured = target
		effects.CapturedOn = to
	}
	board.Set(from, nil)
	board.Set(to, piece)
	piece.HasMoved = true

	if piece.Kind == chess.Pawn && to.Row == piece.Colour.PromotionRow() {
		if !chess.IsPromotionKind(promotion) {
			promotion = chess.Queen
		}
		promoted := chess.NewPiece(piece.Colour, promotion)
		promoted.HasMoved = true
		board.Set(to, promoted)
		effects.Promoted = true
		effects.PromotedTo = promotion
	}

	return effects
}

// IsPromotion reports whether moving the piece on from to to would promote it.
func IsPromotion(board *chess.Board, from, to chess.Square) bool {
	piece := board.Get(from)
	return piece != nil && piece.Kind == chess.Pawn && to.Row == piece.Colour.PromotionRow()
}
