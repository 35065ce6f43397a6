// Package engine resolves parsed turns against a board: it finds the piece
// each move refers to, plays it, and records the position after it.
package engine

import (
	"github.com/lgbarn/pgn-turns-go/internal/chess"
	"github.com/lgbarn/pgn-turns-go/internal/config"
	"github.com/lgbarn/pgn-turns-go/internal/errors"
)

// Resolver plays a turn tree onto a board.
type Resolver struct {
	maxDepth   int
	lenient    bool
	startClock int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxDepth limits how deeply sibling lines may nest.
func WithMaxDepth(n int) Option {
	return func(r *Resolver) {
		r.maxDepth = n
	}
}

// WithLenient makes the resolver keep going after an unresolved move.
// The rest of the failing line is skipped, but the failing turn's sibling
// lines and every other line are still resolved. All errors are joined.
func WithLenient(lenient bool) Option {
	return func(r *Resolver) {
		r.lenient = lenient
	}
}

// WithStartClock sets the half-move clock of the first turn, for games
// that start from a set-up position.
func WithStartClock(n int) Option {
	return func(r *Resolver) {
		r.startClock = n
	}
}

// NewResolver creates a resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{maxDepth: config.DefaultMaxVariationDepth}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveAndSimulate plays turns onto board, which is modified in place,
// and stops at the first move no piece can make.
func ResolveAndSimulate(turns []*chess.Turn, board *chess.Board) error {
	return NewResolver().Resolve(turns, board)
}

// Resolve plays turns onto board. Each turn gets a snapshot of the board
// after its move and the encoded position. Sibling lines are played on
// copies of the board as it stood before the turn they branch from.
func (r *Resolver) Resolve(turns []*chess.Turn, board *chess.Board) error {
	return r.line(turns, board, r.startClock, 0)
}

func (r *Resolver) line(turns []*chess.Turn, board *chess.Board, clock, depth int) error {
	if depth > r.maxDepth {
		return errors.Wrapf(errors.ErrVariationDepth, "depth %d exceeds %d", depth, r.maxDepth)
	}

	var errs []error
	for _, turn := range turns {
		board.ClearTransient()
		before := board.Clone()
		branchClock := clock

		err := play(board, turn)
		if err == nil {
			turn.HalfmoveClock = clock
			if turn.Capturing || turn.Piece == chess.Pawn {
				clock = 0
			} else {
				clock++
			}
		} else if !r.lenient {
			return err
		}

		for _, sibling := range turn.Siblings {
			if serr := r.line(sibling, before.Clone(), branchClock, depth+1); serr != nil {
				if !r.lenient {
					return serr
				}
				errs = append(errs, serr)
			}
		}

		if err != nil {
			errs = append(errs, err)
			break
		}
		turn.Position = board.Clone()
		turn.FEN = EncodePosition(board, turn)
	}
	return errors.Join(errs...)
}

// play applies one turn to board.
func play(board *chess.Board, turn *chess.Turn) error {
	if turn.IsCastle() {
		return castle(board, turn)
	}

	mover, path := findMover(board, turn)
	if mover < 0 {
		return moveError(turn)
	}

	p := &board.Pieces[mover]
	p.Before = p.Square
	p.Square = turn.To
	p.Steps = path
	id := p.ID

	if turn.Capturing {
		capture(board, id, turn)
	}
	if turn.Promoted && turn.PromotedTo != chess.Empty {
		promote(board, board.IndexOf(id), turn.PromotedTo)
	}
	return nil
}

// findMover returns the first piece in board order that matches the turn
// and can reach its destination, along with the path it takes.
func findMover(board *chess.Board, turn *chess.Turn) (int, []chess.Square) {
	for i, p := range board.Pieces {
		if p.Colour != turn.Colour || p.Kind != turn.Piece {
			continue
		}
		if turn.RequireCol != 0 && p.Square.Col != turn.RequireCol {
			continue
		}
		if turn.RequireRank != 0 && p.Square.Rank != turn.RequireRank {
			continue
		}
		if path := Path(board, i, turn); len(path) > 0 {
			return i, path
		}
	}
	return -1, nil
}

// capture removes the first other piece on the destination. A pawn landing
// on an empty square takes the pawn it passed.
func capture(board *chess.Board, id int, turn *chess.Turn) {
	for i, p := range board.Pieces {
		if p.Square == turn.To && p.ID != id {
			board.Remove(i)
			return
		}
	}
	if turn.Piece == chess.Pawn {
		if i := passedPawn(board, turn.Colour, turn.To); i >= 0 {
			board.Remove(i)
		}
	}
}

// promote replaces the pawn at index i with a new piece of kind. The new
// piece is appended to the board and keeps the pawn's last move.
func promote(board *chess.Board, i int, kind chess.Piece) {
	pawn := board.Pieces[i]
	if pawn.Kind != chess.Pawn {
		return
	}
	board.Remove(i)
	j := board.Place(kind, pawn.Colour, pawn.Square)
	board.Pieces[j].Before = pawn.Before
	board.Pieces[j].Steps = pawn.Steps
}
