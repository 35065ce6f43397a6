// Package output writes resolved games as PGN, JSON or one position per ply.
package output

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
	"github.com/lgbarn/pgn-turns-go/internal/parser"
)

// MaxLineLength is where PGN movetext is wrapped.
const MaxLineLength = 80

// OutputWriter handles formatted output with line length control.
// The first write error is kept and later writes are dropped.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
	err           error
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = MaxLineLength
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

func (o *OutputWriter) emit(s string) {
	if o.err != nil {
		return
	}
	_, o.err = io.WriteString(o.w, s)
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			o.emit("\n")
			o.lineLength = 0
		} else {
			o.emit(" ")
			o.lineLength++
		}
	}

	o.emit(s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	o.emit("\n")
	o.lineLength = 0
	o.needsSpace = false
}

// Err returns the first write error.
func (o *OutputWriter) Err() error {
	return o.err
}

// Movetext rebuilds the movetext of a line from the source text kept on
// each turn. Sibling lines are part of that text, so they are not visited.
func Movetext(line []*chess.Turn) string {
	parts := make([]string, 0, len(line))
	for _, t := range line {
		if s := strings.TrimSpace(t.PGN); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// GameMovetext rebuilds a game's movetext, or returns its preamble when
// the game has no move.
func GameMovetext(game *chess.Game) string {
	if len(game.Turns) == 0 {
		return game.Preamble
	}
	return Movetext(game.Turns)
}

// MainLineText rebuilds a line from its turns' tokens, leaving out
// variations. Comments and glyphs are kept.
func MainLineText(line []*chess.Turn) string {
	var parts []string
	for _, t := range line {
		for _, tok := range t.Sequence {
			if strings.HasPrefix(tok, "(") {
				continue
			}
			parts = append(parts, tok)
		}
	}
	return strings.Join(parts, " ")
}

// OutputGame writes a game in PGN: tags, a blank line, the wrapped
// movetext and a blank line. Without variations the movetext is rebuilt
// from the main line only.
func OutputGame(w io.Writer, game *chess.Game, variations bool) error {
	if err := outputTags(w, game); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	text := GameMovetext(game)
	if !variations && len(game.Turns) > 0 {
		text = MainLineText(game.Turns)
	}
	if game.Termination == "" {
		text = strings.TrimSpace(text + " " + game.Result())
	}

	ow := NewOutputWriter(w, MaxLineLength)
	for _, word := range strings.Fields(text) {
		ow.Write(word)
	}
	ow.NewLine()
	ow.NewLine()
	return ow.Err()
}

// outputTags writes the seven tag roster, then the other tags by name.
func outputTags(w io.Writer, game *chess.Game) error {
	for _, tag := range chess.SevenTagRoster {
		value := game.GetTag(tag)
		if value == "" {
			value = "?"
		}
		if tag == chess.ResultTag {
			value = game.Result()
		}
		if _, err := fmt.Fprintf(w, "[%s \"%s\"]\n", tag, parser.EscapeTagValue(value)); err != nil {
			return err
		}
	}

	for _, tag := range otherTags(game) {
		if _, err := fmt.Fprintf(w, "[%s \"%s\"]\n", tag, parser.EscapeTagValue(game.Tags[tag])); err != nil {
			return err
		}
	}
	return nil
}

// otherTags returns the names of tags outside the roster, sorted.
func otherTags(game *chess.Game) []string {
	names := make([]string, 0, len(game.Tags))
	for name := range game.Tags {
		if !chess.IsSevenTagRosterTag(name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
