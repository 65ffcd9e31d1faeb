// Package errors provides sentinel errors and error types for the chess core.
// It defines the rejection classes of the game state machine and structured
// error types that preserve context while allowing inspection with
// errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrIllegalMove indicates a move that violates chess rules: bad
	// geometry, a blocked path, self-capture, or leaving the own king in check.
	ErrIllegalMove = errors.New("illegal move")

	// ErrOutOfBounds indicates a coordinate outside 0..7.
	ErrOutOfBounds = errors.New("square out of bounds")

	// ErrNoPieceAtStart indicates the start square is empty.
	// It matches ErrIllegalMove as well.
	ErrNoPieceAtStart = fmt.Errorf("no piece at start square: %w", ErrIllegalMove)

	// ErrNotYourPiece indicates the start square holds an opponent's piece.
	// It matches ErrIllegalMove as well.
	ErrNotYourPiece = fmt.Errorf("piece belongs to the other side: %w", ErrIllegalMove)

	// ErrGameAlreadyOver indicates a command issued against a finished game.
	ErrGameAlreadyOver = errors.New("game already over")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEngineUnavailable indicates the analysis engine could not be started
	// or has gone away.
	ErrEngineUnavailable = errors.New("analysis engine unavailable")

	// ErrNoSuggestion indicates the analysis engine produced no usable move.
	ErrNoSuggestion = errors.New("no move available")
)

// MoveError wraps a rejection with move context: ply number and squares.
// It implements the error interface and supports unwrapping via
// errors.Is() and errors.As().
type MoveError struct {
	Err    error  // The underlying error
	GameID string // Game identifier (if known)
	Ply    int    // Ply the move would have been (0 if not applicable)
	From   string // Start square in algebraic form (if known)
	To     string // End square in algebraic form (if known)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.GameID != "" {
		parts = append(parts, fmt.Sprintf("game %s", e.GameID))
	}
	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.From != "" || e.To != "" {
		parts = append(parts, fmt.Sprintf("move %s%s", e.From, e.To))
	}

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	if context == "" {
		return "move error"
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
