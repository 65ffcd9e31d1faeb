package config

// Standard draw-rule thresholds.
const (
	DefaultRepetitionLimit = 3
	DefaultFiftyMoveLimit  = 100 // half-moves
)

// RulesConfig holds draw-rule policy for a game.
type RulesConfig struct {
	// LiteralHalfmoveClock keeps the half-move clock counting on pawn
	// moves and captures instead of resetting it to zero.
	LiteralHalfmoveClock bool

	// RepetitionLimit is the occurrence count that draws by repetition.
	RepetitionLimit int

	// FiftyMoveLimit is the half-move clock value that draws the game.
	FiftyMoveLimit int
}

// NewRulesConfig creates a RulesConfig with the standard rules.
func NewRulesConfig() *RulesConfig {
	return &RulesConfig{
		RepetitionLimit: DefaultRepetitionLimit,
		FiftyMoveLimit:  DefaultFiftyMoveLimit,
	}
}
