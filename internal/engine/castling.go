package engine

import (
	"github.com/lgbarn/pgn-turns-go/internal/chess"
	"github.com/lgbarn/pgn-turns-go/internal/errors"
)

// castle moves the king two files and the rook over it. Neither path is
// checked for obstruction.
func castle(board *chess.Board, turn *chess.Turn) error {
	king := lastPiece(board, func(p chess.BoardPiece) bool {
		return p.Kind == chess.King && p.Colour == turn.Colour
	})

	rookFile, kingShift, rookShift := chess.Col('h'), 2, -2
	if turn.QueensideCastle {
		rookFile, kingShift, rookShift = 'a', -2, 3
	}
	rook := lastPiece(board, func(p chess.BoardPiece) bool {
		return p.Kind == chess.Rook && p.Colour == turn.Colour &&
			p.Start == chess.Sq(rookFile, backRank(turn.Colour))
	})

	if king < 0 || rook < 0 {
		return moveError(turn)
	}
	if !shift(board, king, kingShift) || !shift(board, rook, rookShift) {
		return moveError(turn)
	}
	return nil
}

func shift(board *chess.Board, i, files int) bool {
	p := &board.Pieces[i]
	to, ok := p.Square.Offset(files, 0)
	if !ok {
		return false
	}
	p.Before = p.Square
	p.Steps = []chess.Square{p.Square, to}
	p.Square = to
	return true
}

func lastPiece(board *chess.Board, match func(chess.BoardPiece) bool) int {
	for i := len(board.Pieces) - 1; i >= 0; i-- {
		if match(board.Pieces[i]) {
			return i
		}
	}
	return -1
}

func backRank(colour chess.Colour) chess.Rank {
	if colour == chess.White {
		return chess.FirstRank
	}
	return chess.LastRank
}

func moveError(turn *chess.Turn) error {
	return &errors.MoveError{
		Err:         errors.ErrUnresolvedMove,
		MoveNumber:  turn.MoveNumber,
		Colour:      turn.Colour,
		Move:        turn.Move,
		To:          turn.To,
		RequireCol:  turn.RequireCol,
		RequireRank: turn.RequireRank,
		PGN:         turn.PGN,
	}
}
