// Package chess provides core chess types and operations.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	White Colour = iota
	Black
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Forward returns the row delta of a forward step for the colour.
// Row 0 is Black's back rank, so White moves towards lower rows.
func (c Colour) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// HomeRow returns the back rank row of the colour.
func (c Colour) HomeRow() int {
	if c == White {
		return BoardSize - 1
	}
	return 0
}

// PawnRow returns the row the colour's pawns start on.
func (c Colour) PawnRow() int {
	return c.HomeRow() + c.Forward()
}

// PromotionRow returns the farthest row for the colour's pawns.
func (c Colour) PromotionRow() int {
	return c.Opposite().HomeRow()
}

// Kind represents a chess piece type.
type Kind int

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NumKinds
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	names := []string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// IsMinor reports whether the kind is a bishop or a knight.
func (k Kind) IsMinor() bool {
	return k == Bishop || k == Knight
}

// KindFromLetter converts a piece letter of either case to a kind.
func KindFromLetter(c byte) (Kind, bool) {
	switch c {
	case 'P', 'p':
		return Pawn, true
	case 'N', 'n':
		return Knight, true
	case 'B', 'b':
		return Bishop, true
	case 'R', 'r':
		return Rook, true
	case 'Q', 'q':
		return Queen, true
	case 'K', 'k':
		return King, true
	}
	return 0, false
}

// PromotionKinds lists the kinds a pawn may promote to, in offer order.
var PromotionKinds = []Kind{Queen, Rook, Bishop, Knight}

// IsPromotionKind reports whether k is a legal promotion choice.
func IsPromotionKind(k Kind) bool {
	for _, p := range PromotionKinds {
		if p == k {
			return true
		}
	}
	return false
}

// Piece is a single piece instance on the board.
type Piece struct {
	Colour Colour
	Kind   Kind

	// HasMoved is set the first time the piece is relocated and never reset.
	HasMoved bool

	// EnPassantVulnerable is true only for a pawn that has just advanced
	// two squares, until the next half-move begins.
	EnPassantVulnerable bool
}

// NewPiece creates an unmoved piece.
func NewPiece(colour Colour, kind Kind) *Piece {
	return &Piece{Colour: colour, Kind: kind}
}

// Letter returns the FEN letter of the piece: uppercase for White.
func (p *Piece) Letter() byte {
	l := p.Kind.Letter()
	if p.Colour == Black {
		l += 'a' - 'A'
	}
	return l
}

// String returns e.g. "White Knight".
func (p *Piece) String() string {
	if p == nil {
		return "Empty"
	}
	return p.Colour.String() + " " + p.Kind.String()
}

// Constants for board dimensions.
const (
	BoardSize = 8

	ColBase  = 'a'
	RankBase = '1'
)

// Square is a (row, column) pair on the board.
// Row 0 is rank 8 (Black's back rank); column 0 is file a.
type Square struct {
	Row int
	Col int
}

// Sq is shorthand for Square{Row: row, Col: col}.
func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// InBounds reports whether the square lies on the board.
func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// Offset returns the square shifted by the given deltas.
func (s Square) Offset(dRow, dCol int) Square {
	return Square{Row: s.Row + dRow, Col: s.Col + dCol}
}

// String returns the algebraic name of the square, e.g. "e4".
func (s Square) String() string {
	if !s.InBounds() {
		return "??"
	}
	return string([]byte{byte(ColBase + s.Col), byte(RankBase + BoardSize - 1 - s.Row)})
}

// ParseSquare converts an algebraic square name ("e4") to a Square.
func ParseSquare(name string) (Square, bool) {
	if len(name) != 2 {
		return Square{}, false
	}
	col := int(name[0]) - ColBase
	rank := int(name[1]) - RankBase
	s := Square{Row: BoardSize - 1 - rank, Col: col}
	if !s.InBounds() {
		return Square{}, false
	}
	return s, true
}

// IsLight reports whether the square is a light square.
func (s Square) IsLight() bool {
	return (s.Row+s.Col)%2 == 0
}
