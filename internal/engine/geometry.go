package engine

import "github.com/lgbarn/pgn-turns-go/internal/chess"

type direction struct{ dc, dr int }

var (
	orthogonal = []direction{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	diagonal   = []direction{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	royal      = append(append([]direction(nil), orthogonal...), diagonal...)
)

// knightHops are the eight knight moves written as two steps along one
// axis and one across it.
var knightHops = [][3]direction{
	{{0, 1}, {0, 1}, {1, 0}},
	{{0, 1}, {0, 1}, {-1, 0}},
	{{0, -1}, {0, -1}, {1, 0}},
	{{0, -1}, {0, -1}, {-1, 0}},
	{{1, 0}, {1, 0}, {0, 1}},
	{{1, 0}, {1, 0}, {0, -1}},
	{{-1, 0}, {-1, 0}, {0, 1}},
	{{-1, 0}, {-1, 0}, {0, -1}},
}

// Path returns the squares the piece at index i crosses to reach
// turn.To, starting with the square it stands on. It returns nil when the
// piece cannot get there.
func Path(board *chess.Board, i int, turn *chess.Turn) []chess.Square {
	p := board.Pieces[i]
	switch p.Kind {
	case chess.Knight:
		return knightPath(board, p, turn)
	case chess.King:
		return kingPath(board, p, turn)
	case chess.Rook:
		return slidePath(board, p, turn, orthogonal)
	case chess.Bishop:
		return slidePath(board, p, turn, diagonal)
	case chess.Queen:
		return slidePath(board, p, turn, royal)
	case chess.Pawn:
		if turn.Capturing {
			return pawnCapturePath(board, p, turn)
		}
		return pawnPushPath(board, p, turn)
	}
	return nil
}

func knightPath(board *chess.Board, p chess.BoardPiece, turn *chess.Turn) []chess.Square {
	for _, hop := range knightHops {
		path := []chess.Square{p.Square}
		sq := p.Square
		ok := true
		for _, d := range hop {
			if sq, ok = sq.Offset(d.dc, d.dr); !ok {
				break
			}
			path = append(path, sq)
		}
		if ok && sq == turn.To && canLand(board, p, turn) {
			return path
		}
	}
	return nil
}

func kingPath(board *chess.Board, p chess.BoardPiece, turn *chess.Turn) []chess.Square {
	for _, d := range royal {
		if sq, ok := p.Square.Offset(d.dc, d.dr); ok && sq == turn.To && canLand(board, p, turn) {
			return []chess.Square{p.Square, sq}
		}
	}
	return nil
}

// canLand applies the knight and king rule for an occupied destination:
// it must be an enemy piece and the move must be a capture.
func canLand(board *chess.Board, p chess.BoardPiece, turn *chess.Turn) bool {
	occ := board.At(turn.To)
	if occ == nil {
		return true
	}
	return turn.Capturing && occ.Colour != p.Colour
}

// slidePath walks each direction until it leaves the board or meets a
// piece. A friendly piece blocks its square. An enemy piece blocks too,
// unless the move is a capture, in which case its square ends the walk.
func slidePath(board *chess.Board, p chess.BoardPiece, turn *chess.Turn, dirs []direction) []chess.Square {
	for _, d := range dirs {
		path := []chess.Square{p.Square}
		for sq, ok := p.Square.Offset(d.dc, d.dr); ok; sq, ok = sq.Offset(d.dc, d.dr) {
			if occ := board.At(sq); occ != nil {
				if occ.Colour != p.Colour && turn.Capturing && sq == turn.To {
					return append(path, sq)
				}
				break
			}
			path = append(path, sq)
			if sq == turn.To {
				return path
			}
		}
	}
	return nil
}
