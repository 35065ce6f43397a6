package engine

import "github.com/lgbarn/pgn-turns-go/internal/chess"

// pawnPushPath advances one square, or two from the pawn's start square
// on its home rank. Any occupied square stops the pawn.
func pawnPushPath(board *chess.Board, p chess.BoardPiece, turn *chess.Turn) []chess.Square {
	dir := chess.ColourOffset(p.Colour)

	one, ok := p.Square.Offset(0, dir)
	if !ok || !board.IsEmpty(one) {
		return nil
	}
	if one == turn.To {
		return []chess.Square{p.Square, one}
	}

	if p.Square != p.Start || p.Square.Rank != chess.HomeRank(p.Colour) {
		return nil
	}
	two, ok := one.Offset(0, dir)
	if !ok || !board.IsEmpty(two) || two != turn.To {
		return nil
	}
	return []chess.Square{p.Square, one, two}
}

// pawnCapturePath moves one square diagonally forward onto an enemy piece,
// or onto an empty square behind an enemy pawn (en passant).
func pawnCapturePath(board *chess.Board, p chess.BoardPiece, turn *chess.Turn) []chess.Square {
	dir := chess.ColourOffset(p.Colour)
	for _, dc := range []int{-1, 1} {
		sq, ok := p.Square.Offset(dc, dir)
		if !ok || sq != turn.To {
			continue
		}
		if occ := board.At(sq); occ != nil {
			if occ.Colour != p.Colour {
				return []chess.Square{p.Square, sq}
			}
			continue
		}
		if passedPawn(board, p.Colour, sq) >= 0 {
			return []chess.Square{p.Square, sq}
		}
	}
	return nil
}

// passedPawn returns the index of the enemy pawn an en passant capture
// onto to would take, or -1.
func passedPawn(board *chess.Board, colour chess.Colour, to chess.Square) int {
	behind, ok := to.Offset(0, -chess.ColourOffset(colour))
	if !ok {
		return -1
	}
	i := board.IndexAt(behind)
	if i < 0 {
		return -1
	}
	if p := board.Pieces[i]; p.Kind != chess.Pawn || p.Colour == colour {
		return -1
	}
	return i
}
