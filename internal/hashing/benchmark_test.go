package hashing

import (
	"testing"

	"github.com/lgbarn/pgn-turns-go/internal/engine"
	"github.com/lgbarn/pgn-turns-go/internal/testutil"
)

var benchFENPositions = map[string]string{
	"Initial":   "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"Midgame":   "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
	"Endgame":   "8/5k2/8/8/8/8/5K2/4R3 w - - 0 1",
	"EnPassant": "rnbqkbnr/pppp1ppp/8/4pP2/8/8/PPPPP1PP/RNBQKBNR w KQkq e6 0 3",
}

func BenchmarkGenerateZobristHash(b *testing.B) {
	for name, fen := range benchFENPositions {
		b.Run(name, func(b *testing.B) {
			board, _ := engine.NewBoardFromFEN(fen)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				GenerateZobristHash(board)
			}
		})
	}
}

func BenchmarkTranspositionIndex(b *testing.B) {
	turns := testutil.MustResolve(b, "1. e4 e5 2. Nf3 Nc6 (2... Nf6 3. Nc3 Nc6) 3. Nc3 Nf6 4. Bb5 Bb4")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		idx := NewTranspositionIndex()
		idx.Add(turns)
	}
}
