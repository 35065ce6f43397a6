// Package diagram draws board snapshots as SVG.
package diagram

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	svg "github.com/ajstarks/svgo"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
)

// Options controls the look of a diagram.
type Options struct {
	SquareSize int
	Light      string
	Dark       string
	Highlight  string

	// Flip draws the board from black's side.
	Flip bool

	// Coordinates adds file letters and rank numbers along the edges.
	Coordinates bool
}

// DefaultOptions returns the default colours at the given square size.
func DefaultOptions(squareSize int) Options {
	if squareSize <= 0 {
		squareSize = 45
	}
	return Options{
		SquareSize:  squareSize,
		Light:       "#f0d9b5",
		Dark:        "#b58863",
		Highlight:   "#cdd26a",
		Coordinates: true,
	}
}

var glyphs = map[chess.Colour]map[chess.Piece]string{
	chess.White: {
		chess.King: "♔", chess.Queen: "♕", chess.Rook: "♖",
		chess.Bishop: "♗", chess.Knight: "♘", chess.Pawn: "♙",
	},
	chess.Black: {
		chess.King: "♚", chess.Queen: "♛", chess.Rook: "♜",
		chess.Bishop: "♝", chess.Knight: "♞", chess.Pawn: "♟",
	},
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// Render draws board. Squares in highlight are tinted.
func Render(w io.Writer, board *chess.Board, highlight []chess.Square, opts Options) error {
	if opts.SquareSize <= 0 {
		opts = DefaultOptions(opts.SquareSize)
	}
	ew := &errWriter{w: w}
	size := opts.SquareSize * chess.BoardSize
	canvas := svg.New(ew)
	canvas.Start(size, size)

	marked := make(map[chess.Square]bool, len(highlight))
	for _, sq := range highlight {
		marked[sq] = true
	}

	for rank := 0; rank < chess.BoardSize; rank++ {
		for col := 0; col < chess.BoardSize; col++ {
			sq := chess.Sq(chess.Col(chess.ColBase+col), chess.Rank(chess.RankBase+rank))
			x, y := opts.origin(sq)
			fill := opts.Dark
			if (col+rank)%2 == 1 {
				fill = opts.Light
			}
			if marked[sq] {
				fill = opts.Highlight
			}
			canvas.Rect(x, y, opts.SquareSize, opts.SquareSize, "fill:"+fill)
		}
	}

	if opts.Coordinates {
		opts.coordinates(canvas)
	}

	fontSize := opts.SquareSize * 4 / 5
	style := fmt.Sprintf("font-size:%dpx;text-anchor:middle;font-family:serif", fontSize)
	for _, p := range board.Pieces {
		if !p.Square.IsValid() {
			continue
		}
		glyph := glyphs[p.Colour][p.Kind]
		if glyph == "" {
			continue
		}
		x, y := opts.origin(p.Square)
		canvas.Text(x+opts.SquareSize/2, y+opts.SquareSize*4/5, glyph, style)
	}

	canvas.End()
	return ew.err
}

// origin returns the top-left pixel of sq.
func (o Options) origin(sq chess.Square) (int, int) {
	col := int(sq.Col - chess.ColBase)
	row := chess.BoardSize - 1 - int(sq.Rank-chess.RankBase)
	if o.Flip {
		col = chess.BoardSize - 1 - col
		row = chess.BoardSize - 1 - row
	}
	return col * o.SquareSize, row * o.SquareSize
}

func (o Options) coordinates(canvas *svg.SVG) {
	style := fmt.Sprintf("font-size:%dpx;font-family:sans-serif;fill:#333", o.SquareSize/5)
	for i := 0; i < chess.BoardSize; i++ {
		file := chess.Sq(chess.Col(chess.ColBase+i), chess.RankBase)
		x, _ := o.origin(file)
		canvas.Text(x+o.SquareSize-o.SquareSize/5, o.SquareSize*chess.BoardSize-2, string(rune(file.Col)), style)

		rank := chess.Sq(chess.ColBase, chess.Rank(chess.RankBase+i))
		_, y := o.origin(rank)
		canvas.Text(2, y+o.SquareSize/4, string(rune(rank.Rank)), style)
	}
}

// LastMove returns the from and to squares of every piece that moved in
// the snapshot, so a castle marks king and rook.
func LastMove(board *chess.Board) []chess.Square {
	var out []chess.Square
	for _, p := range board.Pieces {
		if len(p.Steps) == 0 {
			continue
		}
		out = append(out, p.Before, p.Square)
	}
	return out
}

// RenderTurn draws the position after turn with its move highlighted.
func RenderTurn(w io.Writer, turn *chess.Turn, opts Options) error {
	if !turn.Resolved() {
		return fmt.Errorf("move %s has no position", turn.Move)
	}
	return Render(w, turn.Position, LastMove(turn.Position), opts)
}

// WriteGameDiagram writes the final main-line position of game to
// dir/game-NNNN.svg and returns the file name.
func WriteGameDiagram(dir string, game *chess.Game, opts Options) (string, error) {
	board := game.FinalPosition()
	if board == nil {
		return "", fmt.Errorf("game %d has no position", game.Number)
	}

	name := filepath.Join(dir, fmt.Sprintf("game-%04d.svg", game.Number))
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	var highlight []chess.Square
	if last := game.LastTurn(); last != nil && last.Position == board {
		highlight = LastMove(board)
	}
	if err := Render(f, board, highlight, opts); err != nil {
		f.Close()
		return "", err
	}
	return name, f.Close()
}
