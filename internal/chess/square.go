package chess

// Square is a board coordinate. The zero value is NoSquare.
type Square struct {
	Col  Col
	Rank Rank
}

// NoSquare marks an absent coordinate.
var NoSquare = Square{}

// Sq builds a square from file and rank characters without validation.
func Sq(col Col, rank Rank) Square {
	return Square{Col: col, Rank: rank}
}

// ParseSquare parses a two-character coordinate such as "e4".
func ParseSquare(s string) (Square, bool) {
	if len(s) != 2 {
		return NoSquare, false
	}
	sq := Square{Col: Col(s[0]), Rank: Rank(s[1])}
	if !sq.IsValid() {
		return NoSquare, false
	}
	return sq, true
}

// MustSquare parses s and panics if it is not a board coordinate.
// Intended for constants and tests.
func MustSquare(s string) Square {
	sq, ok := ParseSquare(s)
	if !ok {
		panic("chess: invalid square " + s)
	}
	return sq
}

// IsValid reports whether the square lies on the 8x8 board.
func (s Square) IsValid() bool {
	return s.Col.IsValid() && s.Rank.IsValid()
}

// String returns the algebraic name of the square, or "-" for NoSquare.
func (s Square) String() string {
	if !s.IsValid() {
		return "-"
	}
	return string([]byte{byte(s.Col), byte(s.Rank)})
}

// Offset moves the square by dc files and dr ranks.
// It reports false when the result would leave the board.
func (s Square) Offset(dc, dr int) (Square, bool) {
	if !s.IsValid() {
		return NoSquare, false
	}
	next := Square{Col: Col(int(s.Col) + dc), Rank: Rank(int(s.Rank) + dr)}
	if !next.IsValid() {
		return NoSquare, false
	}
	return next, true
}

// Index returns 0..63 with a1 = 0 and h8 = 63.
func (s Square) Index() int {
	return int(s.Rank-RankBase)*BoardSize + int(s.Col-ColBase)
}

// MarshalText renders the square for JSON map keys and values.
func (s Square) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return []byte{}, nil
	}
	return []byte(s.String()), nil
}
