package chess

// Board is a fixed 8x8 grid of optional pieces. It performs no validation;
// the game that owns it decides what may be placed where.
type Board struct {
	// Squares[row][col]; nil means empty.
	Squares [BoardSize][BoardSize]*Piece
}

// PlacedPiece pairs a piece with the square it stands on.
type PlacedPiece struct {
	Square Square
	Piece  *Piece
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{}
}

// NewInitialBoard creates a board holding the standard starting position.
func NewInitialBoard() *Board {
	b := NewBoard()
	b.SetupInitialPosition()
	return b
}

// SetupInitialPosition sets up the standard chess starting position with
// fresh, unmoved pieces.
func (b *Board) SetupInitialPosition() {
	b.Clear()

	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 0; col < BoardSize; col++ {
		b.Squares[Black.HomeRow()][col] = NewPiece(Black, backRank[col])
		b.Squares[Black.PawnRow()][col] = NewPiece(Black, Pawn)
		b.Squares[White.PawnRow()][col] = NewPiece(White, Pawn)
		b.Squares[White.HomeRow()][col] = NewPiece(White, backRank[col])
	}
}

// Clear removes every piece.
func (b *Board) Clear() {
	b.Squares = [BoardSize][BoardSize]*Piece{}
}

// Get returns the piece at the square, or nil if it is empty or off the board.
func (b *Board) Get(sq Square) *Piece {
	if !sq.InBounds() {
		return nil
	}
	return b.Squares[sq.Row][sq.Col]
}

// Set places a piece (or nil) at the square. Off-board squares are ignored.
func (b *Board) Set(sq Square, p *Piece) {
	if sq.InBounds() {
		b.Squares[sq.Row][sq.Col] = p
	}
}

// IsEmpty reports whether the square holds no piece.
func (b *Board) IsEmpty(sq Square) bool {
	return b.Get(sq) == nil
}

// AllPieces returns every piece on the board in row-major order.
func (b *Board) AllPieces() []PlacedPiece {
	var pieces []PlacedPiece
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if p := b.Squares[row][col]; p != nil {
				pieces = append(pieces, PlacedPiece{Square: Sq(row, col), Piece: p})
			}
		}
	}
	return pieces
}

// PiecesOf returns the pieces of one colour in row-major order.
func (b *Board) PiecesOf(colour Colour) []PlacedPiece {
	var pieces []PlacedPiece
	for _, pp := range b.AllPieces() {
		if pp.Piece.Colour == colour {
			pieces = append(pieces, pp)
		}
	}
	return pieces
}

// Copy creates a deep copy of the board. Pieces are cloned so that
// mutating flags on the copy never reaches the original.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if p := b.Squares[row][col]; p != nil {
				clone := *p
				newBoard.Squares[row][col] = &clone
			}
		}
	}
	return newBoard
}

// Equal reports whether two boards hold identical pieces with identical flags.
func (b *Board) Equal(other *Board) bool {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			p, q := b.Squares[row][col], other.Squares[row][col]
			if (p == nil) != (q == nil) {
				return false
			}
			if p != nil && *p != *q {
				return false
			}
		}
	}
	return true
}

// ClearEnPassant clears the en passant flag on every pawn of both colours.
func (b *Board) ClearEnPassant() {
	for _, pp := range b.AllPieces() {
		if pp.Piece.Kind == Pawn {
			pp.Piece.EnPassantVulnerable = false
		}
	}
}
