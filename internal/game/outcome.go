package game

import (
	"fmt"

	"github.com/lgbarn/chess-core-go/internal/chess"
)

// Status is the state machine's top-level state.
type Status int

const (
	InProgress Status = iota
	Checkmate
	Stalemate
	Draw
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Draw:
		return "draw"
	}
	return "unknown"
}

// DrawReason says why a game was drawn.
type DrawReason int

const (
	NoDraw DrawReason = iota
	InsufficientMaterial
	ThreefoldRepetition
	FiftyMoveRule
	DeadPosition
	Agreement
)

// String returns the string representation of a draw reason.
func (r DrawReason) String() string {
	switch r {
	case InsufficientMaterial:
		return "insufficient material"
	case ThreefoldRepetition:
		return "threefold repetition"
	case FiftyMoveRule:
		return "fifty-move rule"
	case DeadPosition:
		return "dead position"
	case Agreement:
		return "agreement"
	}
	return ""
}

// Outcome is the game's result so far. Winner is meaningful only for
// Checkmate and Reason only for Draw.
type Outcome struct {
	Status Status
	Winner chess.Colour
	Reason DrawReason
}

// IsTerminal reports whether the game has finished.
func (o Outcome) IsTerminal() bool {
	return o.Status != InProgress
}

// Result returns the PGN style result: "1-0", "0-1", "1/2-1/2" or "*".
func (o Outcome) Result() string {
	switch o.Status {
	case Checkmate:
		if o.Winner == chess.White {
			return "1-0"
		}
		return "0-1"
	case Stalemate, Draw:
		return "1/2-1/2"
	}
	return "*"
}

func (o Outcome) String() string {
	switch o.Status {
	case Checkmate:
		return fmt.Sprintf("checkmate, %s wins", o.Winner)
	case Draw:
		return "draw by " + o.Reason.String()
	}
	return o.Status.String()
}

func checkmateBy(winner chess.Colour) Outcome {
	return Outcome{Status: Checkmate, Winner: winner}
}

func drawBy(reason DrawReason) Outcome {
	return Outcome{Status: Draw, Reason: reason}
}
