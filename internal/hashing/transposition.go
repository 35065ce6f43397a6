package hashing

import (
	"golang.org/x/exp/slices"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
)

// Occurrence is one place in a turn tree where a position is reached.
type Occurrence struct {
	Path string // line path, "" for the main line
	Ply  int
	Move string
}

// Location formats the occurrence as "path:ply".
func (o Occurrence) Location() string {
	return chess.PlyPath(o.Path, o.Ply)
}

// Transposition is a position reached on more than one line.
type Transposition struct {
	Key         uint64
	Occurrences []Occurrence
}

// TranspositionIndex records the position key of every resolved turn.
type TranspositionIndex struct {
	seen  map[uint64][]Occurrence
	order []uint64
}

// NewTranspositionIndex creates an empty index.
func NewTranspositionIndex() *TranspositionIndex {
	return &TranspositionIndex{seen: make(map[uint64][]Occurrence)}
}

// Add indexes every resolved turn of a tree. Unresolved turns are skipped.
func (x *TranspositionIndex) Add(line []*chess.Turn) {
	chess.Walk(line, func(path string, ply int, t *chess.Turn) bool {
		if !t.Resolved() {
			return true
		}
		key := PositionKey(t)
		if _, ok := x.seen[key]; !ok {
			x.order = append(x.order, key)
		}
		x.seen[key] = append(x.seen[key], Occurrence{Path: path, Ply: ply, Move: t.Move})
		return true
	})
}

// Occurrences returns where a position key was reached.
func (x *TranspositionIndex) Occurrences(key uint64) []Occurrence {
	return x.seen[key]
}

// Len returns the number of distinct positions.
func (x *TranspositionIndex) Len() int {
	return len(x.order)
}

// Transpositions returns the positions reached on at least two different
// lines, in the order they were first reached.
func (x *TranspositionIndex) Transpositions() []Transposition {
	var out []Transposition
	for _, key := range x.order {
		occ := x.seen[key]
		if !onSeveralLines(occ) {
			continue
		}
		out = append(out, Transposition{Key: key, Occurrences: slices.Clone(occ)})
	}
	return out
}

func onSeveralLines(occ []Occurrence) bool {
	for _, o := range occ[1:] {
		if o.Path != occ[0].Path {
			return true
		}
	}
	return false
}
