package chess

import (
	"golang.org/x/exp/slices"
)

// BoardPiece is one piece on the board.
type BoardPiece struct {
	// ID is stable for the life of the piece and unique within a board.
	ID     int
	Kind   Piece
	Colour Colour

	// Start is the square the piece was set up on. It never changes.
	Start Square

	// Square is where the piece stands now.
	Square Square

	// Before and Steps describe the last move of this piece. They are
	// cleared on every piece before each ply.
	Before Square
	Steps  []Square
}

// Board is an ordered set of pieces.
//
// Order is significant: move resolution picks the first matching piece.
// A new board lists black's back rank, black pawns, white pawns and white's
// back rank, each from the a-file to the h-file. Promoted pieces are appended.
type Board struct {
	Pieces []BoardPiece
	NextID int `json:"-"`
}

var backRank = []Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{}
}

// NewInitialBoard returns the standard starting position.
func NewInitialBoard() *Board {
	b := NewBoard()
	for i, kind := range backRank {
		b.Place(kind, Black, Sq(Col(ColBase+i), LastRank))
	}
	for i := 0; i < BoardSize; i++ {
		b.Place(Pawn, Black, Sq(Col(ColBase+i), LastRank-1))
	}
	for i := 0; i < BoardSize; i++ {
		b.Place(Pawn, White, Sq(Col(ColBase+i), FirstRank+1))
	}
	for i, kind := range backRank {
		b.Place(kind, White, Sq(Col(ColBase+i), FirstRank))
	}
	return b
}

// Place appends a new piece standing on its start square and returns its index.
func (b *Board) Place(kind Piece, colour Colour, sq Square) int {
	b.Pieces = append(b.Pieces, BoardPiece{
		ID:     b.NextID,
		Kind:   kind,
		Colour: colour,
		Start:  sq,
		Square: sq,
	})
	b.NextID++
	return len(b.Pieces) - 1
}

// Clone returns a deep copy that shares no memory with b.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	c := &Board{
		Pieces: make([]BoardPiece, len(b.Pieces)),
		NextID: b.NextID,
	}
	copy(c.Pieces, b.Pieces)
	for i := range c.Pieces {
		c.Pieces[i].Steps = slices.Clone(c.Pieces[i].Steps)
	}
	return c
}

// ClearTransient resets Before and Steps on every piece.
func (b *Board) ClearTransient() {
	for i := range b.Pieces {
		b.Pieces[i].Before = NoSquare
		b.Pieces[i].Steps = nil
	}
}

// IndexAt returns the index of the first piece on sq, or -1.
func (b *Board) IndexAt(sq Square) int {
	for i := range b.Pieces {
		if b.Pieces[i].Square == sq {
			return i
		}
	}
	return -1
}

// At returns the first piece on sq, or nil when the square is empty.
// The pointer stays valid until the board is next modified.
func (b *Board) At(sq Square) *BoardPiece {
	if i := b.IndexAt(sq); i >= 0 {
		return &b.Pieces[i]
	}
	return nil
}

// IsEmpty reports whether no piece stands on sq.
func (b *Board) IsEmpty(sq Square) bool {
	return b.IndexAt(sq) < 0
}

// Remove deletes the piece at index i, keeping the order of the rest.
func (b *Board) Remove(i int) {
	b.Pieces = slices.Delete(b.Pieces, i, i+1)
}

// IndexOf returns the index of the piece with the given ID, or -1.
func (b *Board) IndexOf(id int) int {
	return slices.IndexFunc(b.Pieces, func(p BoardPiece) bool { return p.ID == id })
}

// Find returns the indexes of pieces matching kind and colour, in board order.
func (b *Board) Find(kind Piece, colour Colour) []int {
	var out []int
	for i := range b.Pieces {
		if b.Pieces[i].Kind == kind && b.Pieces[i].Colour == colour {
			out = append(out, i)
		}
	}
	return out
}

// Grid returns an 8x8 view indexed by Square.Index. Later pieces win ties.
func (b *Board) Grid() [BoardSize * BoardSize]*BoardPiece {
	var grid [BoardSize * BoardSize]*BoardPiece
	for i := range b.Pieces {
		if sq := b.Pieces[i].Square; sq.IsValid() {
			grid[sq.Index()] = &b.Pieces[i]
		}
	}
	return grid
}
