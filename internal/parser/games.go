package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
)

// maxLineSize bounds a single input line.
const maxLineSize = 4 * 1024 * 1024

// SplitGames splits a PGN stream into the text of each game. A game ends
// when a tag line follows movetext, or when movetext ends with a result
// outside any comment.
func SplitGames(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)

	var (
		games   []string
		cur     strings.Builder
		inMoves bool
		braces  int
		hasText bool
	)
	flush := func() {
		if hasText {
			games = append(games, cur.String())
		}
		cur.Reset()
		inMoves, braces, hasText = false, 0, false
	}

	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)

		if braces == 0 && strings.HasPrefix(trimmed, "[") && inMoves {
			flush()
		}

		cur.WriteString(line)
		cur.WriteByte('\n')
		if trimmed == "" {
			continue
		}
		hasText = true

		if braces == 0 && (strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "%")) {
			continue
		}
		inMoves = true
		braces += strings.Count(line, "{") - strings.Count(line, "}")
		if braces < 0 {
			braces = 0
		}
		if braces == 0 && endsWithResult(trimmed) {
			flush()
		}
	}
	if err := sc.Err(); err != nil {
		return games, err
	}
	flush()
	return games, nil
}

func endsWithResult(line string) bool {
	fields := strings.Fields(line)
	return len(fields) > 0 && chess.IsResult(fields[len(fields)-1])
}
