package chess

import (
	"strconv"
	"strings"
)

// Turn is one half-move as written in the movetext, plus the board state
// after it once the game has been resolved.
type Turn struct {
	MoveNumber int
	Colour     Colour

	// Piece is the kind named by the notation (Pawn when no letter is given).
	Piece Piece

	// To is NoSquare for castling.
	To Square

	// RequireCol and RequireRank are zero unless the notation disambiguates.
	RequireCol  Col
	RequireRank Rank

	Capturing       bool
	Check           bool
	Checkmate       bool
	QueensideCastle bool
	KingsideCastle  bool
	Promoted        bool
	PromotedTo      Piece

	// Suffix holds a move-quality glyph such as "!" or "?!".
	Suffix string

	// Move is the move token as written, e.g. "Nbxd7+".
	Move string

	// Sequence holds the raw tokens of the ply that belong to this turn,
	// and PGN the matching slice of the source line.
	Sequence []string
	PGN      string

	// Siblings are alternative continuations starting from the position
	// before this turn's move.
	Siblings [][]*Turn

	// Set by the resolver.
	Position      *Board
	FEN           string
	HalfmoveClock int
}

// IsCastle reports whether the turn castles on either side.
func (t *Turn) IsCastle() bool {
	return t.KingsideCastle || t.QueensideCastle
}

// HasVariations reports whether any sibling line branches at this turn.
func (t *Turn) HasVariations() bool {
	return len(t.Siblings) > 0
}

// Resolved reports whether the resolver has assigned a position.
func (t *Turn) Resolved() bool {
	return t.Position != nil
}

// CountTurns returns the number of turns in a line including all nested siblings.
func CountTurns(line []*Turn) int {
	n := 0
	for _, t := range line {
		n++
		for _, sib := range t.Siblings {
			n += CountTurns(sib)
		}
	}
	return n
}

// Walk visits every turn depth-first: a turn, then each of its sibling
// lines, then the next turn. path identifies the line, e.g. "" for the
// main line and "3.1" for the second sibling of the fourth main-line turn.
// Returning false from fn stops the walk.
func Walk(line []*Turn, fn func(path string, ply int, t *Turn) bool) {
	walk(line, "", fn)
}

func walk(line []*Turn, path string, fn func(string, int, *Turn) bool) bool {
	for ply, t := range line {
		if !fn(path, ply, t) {
			return false
		}
		for i, sib := range t.Siblings {
			if !walk(sib, SiblingPath(path, ply, i), fn) {
				return false
			}
		}
	}
	return true
}

// SiblingPath builds the path of sibling line i at ply of the line at parent.
func SiblingPath(parent string, ply, i int) string {
	p := strconv.Itoa(ply) + "." + strconv.Itoa(i)
	if parent == "" {
		return p
	}
	return parent + "/" + p
}

// PlyPath names one ply of the tree as "path:ply", or just the ply number
// on the main line.
func PlyPath(path string, ply int) string {
	if path == "" {
		return strconv.Itoa(ply)
	}
	return path + ":" + strconv.Itoa(ply)
}

// FindTurn returns the turn named by a PlyPath location, or nil when the
// location is malformed or names no turn.
func FindTurn(line []*Turn, loc string) *Turn {
	path, plyText := "", loc
	if i := strings.LastIndexByte(loc, ':'); i >= 0 {
		path, plyText = loc[:i], loc[i+1:]
	}
	if path != "" {
		for _, step := range strings.Split(path, "/") {
			plyStr, sibStr, ok := strings.Cut(step, ".")
			if !ok {
				return nil
			}
			ply, err1 := strconv.Atoi(plyStr)
			sib, err2 := strconv.Atoi(sibStr)
			if err1 != nil || err2 != nil || ply < 0 || ply >= len(line) {
				return nil
			}
			if sib < 0 || sib >= len(line[ply].Siblings) {
				return nil
			}
			line = line[ply].Siblings[sib]
		}
	}
	ply, err := strconv.Atoi(plyText)
	if err != nil || ply < 0 || ply >= len(line) {
		return nil
	}
	return line[ply]
}
