// Package engine provides chess move validation and board manipulation.
package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/chess-core-go/internal/chess"
	"github.com/lgbarn/chess-core-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// exportSuffix holds the fixed castling, en passant and clock fields
// appended by BoardToFEN.
const exportSuffix = "KQkq - 0 1"

// PlacementFEN encodes the piece placement field: one field per row from
// row 0, empty runs as digits, joined by '/'.
func PlacementFEN(board *chess.Board) string {
	var sb strings.Builder
	for row := 0; row < chess.BoardSize; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for col := 0; col < chess.BoardSize; col++ {
			piece := board.Get(chess.Sq(row, col))
			if piece == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	return sb.String()
}

// sideLetter returns the FEN side-to-move flag.
func sideLetter(colour chess.Colour) string {
	if colour == chess.White {
		return "w"
	}
	return "b"
}

// BoardToFEN exports the position for an external analysis engine. The
// castling, en passant and clock fields are fixed placeholders; the export
// is one-way.
func BoardToFEN(board *chess.Board, toMove chess.Colour) string {
	return PlacementFEN(board) + " " + sideLetter(toMove) + " " + exportSuffix
}

// Position is a board decoded from FEN together with its move state.
type Position struct {
	Board         *chess.Board
	ToMove        chess.Colour
	HalfmoveClock int
	MoveNumber    int
}

// NewBoardFromFEN sets up a position from a FEN string. Piece flags are
// inferred: pawns off their home rank and kings or rooks without a
// matching castling right count as moved, and the pawn behind the en
// passant target square is vulnerable.
func NewBoardFromFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	pos := &Position{
		Board:      chess.NewBoard(),
		ToMove:     chess.White,
		MoveNumber: 1,
	}

	if err := parsePiecePositions(pos.Board, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(pos, parts); err != nil {
		return nil, err
	}
	parseCastlingRights(pos.Board, parts)
	if err := parseEnPassant(pos, parts); err != nil {
		return nil, err
	}
	if err := parseClocks(pos, parts); err != nil {
		return nil, err
	}

	return pos, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != chess.BoardSize {
		return fmt.Errorf("want %d ranks, got %d: %w", chess.BoardSize, len(rows), errors.ErrInvalidFEN)
	}

	for row, text := range rows {
		col := 0
		for _, c := range text {
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			if c > unicode.MaxASCII {
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			kind, ok := chess.KindFromLetter(byte(c))
			if !ok {
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			if col >= chess.BoardSize {
				return fmt.Errorf("rank %d overflows: %w", chess.BoardSize-row, errors.ErrInvalidFEN)
			}

			colour := chess.White
			if unicode.IsLower(c) {
				colour = chess.Black
			}
			piece := chess.NewPiece(colour, kind)
			// Castling rights decide kings and rooks later.
			if kind == chess.Pawn && row != colour.PawnRow() {
				piece.HasMoved = true
			}
			board.Set(chess.Sq(row, col), piece)
			col++
		}
		if col != chess.BoardSize {
			return fmt.Errorf("rank %d has %d files: %w", chess.BoardSize-row, col, errors.ErrInvalidFEN)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(pos *Position, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		pos.ToMove = chess.White
	case "b":
		pos.ToMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights marks kings and rooks as moved unless a castling
// right keeps them eligible.
func parseCastlingRights(board *chess.Board, parts []string) {
	rights := "-"
	if len(parts) >= 3 {
		rights = parts[2]
	}

	eligible := map[chess.Square]bool{}
	for _, c := range rights {
		colour := chess.White
		if unicode.IsLower(c) {
			colour = chess.Black
		}
		row := colour.HomeRow()
		switch unicode.ToUpper(c) {
		case 'K':
			eligible[chess.Sq(row, kingCol)] = true
			eligible[chess.Sq(row, kingsideRookCol)] = true
		case 'Q':
			eligible[chess.Sq(row, kingCol)] = true
			eligible[chess.Sq(row, queensideRookCol)] = true
		}
	}

	for _, pp := range board.AllPieces() {
		if pp.Piece.Kind != chess.King && pp.Piece.Kind != chess.Rook {
			continue
		}
		if !eligible[pp.Square] || pp.Square.Row != pp.Piece.Colour.HomeRow() {
			pp.Piece.HasMoved = true
		}
	}
}

// parseEnPassant marks the pawn that just passed the target square.
func parseEnPassant(pos *Position, parts []string) error {
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	target, ok := chess.ParseSquare(parts[3])
	if !ok {
		return fmt.Errorf("invalid en passant square: %s: %w", parts[3], errors.ErrInvalidFEN)
	}
	// The pawn that moved belongs to the side that is not to move.
	pushed := pos.ToMove.Opposite()
	pawn := pos.Board.Get(target.Offset(pushed.Forward(), 0))
	if pawn == nil || pawn.Kind != chess.Pawn || pawn.Colour != pushed {
		return fmt.Errorf("no pawn behind en passant square %s: %w", parts[3], errors.ErrInvalidFEN)
	}
	pawn.EnPassantVulnerable = true
	return nil
}

// parseClocks parses the halfmove clock and move number fields.
func parseClocks(pos *Position, parts []string) error {
	if len(parts) >= 5 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return fmt.Errorf("invalid halfmove clock: %s: %w", parts[4], errors.ErrInvalidFEN)
		}
		pos.HalfmoveClock = n
	}
	if len(parts) >= 6 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid move number: %s: %w", parts[5], errors.ErrInvalidFEN)
		}
		pos.MoveNumber = n
	}
	return nil
}
