package output

import (
	"fmt"
	"io"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
)

// WriteFENLines writes one tab-separated line per resolved turn of a game,
// variations included, in tree order: game number, ply path, move, FEN.
// Turns that were not resolved are skipped.
func WriteFENLines(w io.Writer, game *chess.Game) error {
	var err error
	chess.Walk(game.Turns, func(path string, ply int, t *chess.Turn) bool {
		if !t.Resolved() {
			return true
		}
		_, err = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", game.Number, chess.PlyPath(path, ply), t.Move, t.FEN)
		return err == nil
	})
	return err
}
