package chess

import "fmt"

// Move is a start/end square pair with an optional promotion choice.
type Move struct {
	From Square
	To   Square

	// Promotion is the requested promotion kind; only meaningful when
	// HasPromotion is set.
	Promotion    Kind
	HasPromotion bool
}

// NewMove creates a move without a promotion choice.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// String returns the long algebraic (UCI) form of the move, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.HasPromotion {
		s += string(m.Promotion.Letter() + ('a' - 'A'))
	}
	return s
}

// ParseMove parses a long algebraic move such as "e2e4" or "a7a8n".
func ParseMove(text string) (Move, error) {
	if len(text) != 4 && len(text) != 5 {
		return Move{}, fmt.Errorf("move %q: want 4 or 5 characters", text)
	}
	from, ok := ParseSquare(text[0:2])
	if !ok {
		return Move{}, fmt.Errorf("move %q: bad start square", text)
	}
	to, ok := ParseSquare(text[2:4])
	if !ok {
		return Move{}, fmt.Errorf("move %q: bad end square", text)
	}
	m := NewMove(from, to)
	if len(text) == 5 {
		kind, ok := KindFromLetter(text[4])
		if !ok || !IsPromotionKind(kind) {
			return Move{}, fmt.Errorf("move %q: bad promotion piece", text)
		}
		m.Promotion = kind
		m.HasPromotion = true
	}
	return m, nil
}
