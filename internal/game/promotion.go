package game

import "github.com/lgbarn/chess-core-go/internal/chess"

// Promoter chooses the piece a pawn promotes to. It is called
// synchronously while the game is locked and must not call back into the
// game.
type Promoter interface {
	ChoosePromotion(colour chess.Colour, candidates []chess.Kind) chess.Kind
}

// PromoterFunc adapts a function to the Promoter interface.
type PromoterFunc func(colour chess.Colour, candidates []chess.Kind) chess.Kind

// ChoosePromotion calls f.
func (f PromoterFunc) ChoosePromotion(colour chess.Colour, candidates []chess.Kind) chess.Kind {
	return f(colour, candidates)
}

// AutoQueen always promotes to a queen.
var AutoQueen Promoter = PromoterFunc(func(chess.Colour, []chess.Kind) chess.Kind {
	return chess.Queen
})
