package engine

import "github.com/lgbarn/pgn-turns-go/internal/chess"

// standardMaterial is the piece count of each side in the initial position.
var standardMaterial = map[chess.Piece]int{
	chess.Pawn:   8,
	chess.Rook:   2,
	chess.Knight: 2,
	chess.Bishop: 2,
	chess.Queen:  1,
	chess.King:   1,
}

// HasInsufficientMaterial returns true if neither side has mating material:
// K vs K, K+B vs K, K+N vs K, or K+B vs K+B with bishops on the same colour.
func HasInsufficientMaterial(board *chess.Board) bool {
	var minors [2][]chess.BoardPiece
	for _, p := range board.Pieces {
		switch p.Kind {
		case chess.King:
			continue
		case chess.Pawn, chess.Rook, chess.Queen:
			return false
		}
		minors[p.Colour] = append(minors[p.Colour], p)
	}

	white, black := minors[chess.White], minors[chess.Black]
	switch {
	case len(white) == 0 && len(black) == 0:
		return true
	case len(white) == 0 && len(black) == 1, len(black) == 0 && len(white) == 1:
		return true
	case len(white) == 1 && len(black) == 1:
		return white[0].Kind == chess.Bishop && black[0].Kind == chess.Bishop &&
			isLightSquare(white[0].Square) == isLightSquare(black[0].Square)
	}
	return false
}

func isLightSquare(sq chess.Square) bool {
	return (int(sq.Col-chess.FirstCol)+int(sq.Rank-chess.FirstRank))%2 == 1
}

// HasMaterialOdds reports whether either side starts with other than the
// standard set of pieces.
func HasMaterialOdds(board *chess.Board) bool {
	var counts [2]map[chess.Piece]int
	counts[chess.White] = map[chess.Piece]int{}
	counts[chess.Black] = map[chess.Piece]int{}
	for _, p := range board.Pieces {
		counts[p.Colour][p.Kind]++
	}
	for _, side := range counts {
		for kind, n := range standardMaterial {
			if side[kind] != n {
				return true
			}
		}
	}
	return false
}
