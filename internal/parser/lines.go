package parser

import (
	"strconv"
	"strings"
)

// bracketPairs maps each opening bracket to its closing partner.
var bracketPairs = map[byte]byte{
	'(': ')',
	'{': '}',
	'[': ']',
}

// opensBracket reports whether tok starts an annotation or variation block.
func opensBracket(tok string) bool {
	if tok == "" {
		return false
	}
	_, ok := bracketPairs[tok[0]]
	return ok
}

// scanBracket returns the index just past the token that closes the block
// opened by parts[start]. Only the opening bracket's own kind is counted,
// so a stray ")" inside a comment does not end it. An unterminated block
// runs to len(parts).
func scanBracket(parts []string, start int) int {
	open := parts[start][0]
	closing := bracketPairs[open]
	depth := 0
	for i := start; i < len(parts); i++ {
		depth += strings.Count(parts[i], string(open))
		depth -= strings.Count(parts[i], string(closing))
		if depth == 0 {
			return i + 1
		}
	}
	return len(parts)
}

// moveNumberPrefix returns the integer before the first '.' of tok when
// that dot sits at index 1..3 and the prefix is a canonical positive
// integer.
func moveNumberPrefix(tok string) (int, bool) {
	dot := strings.IndexByte(tok, '.')
	if dot < 1 || dot > 3 {
		return 0, false
	}
	return parseMoveNumber(tok[:dot])
}

func parseMoveNumber(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || strconv.Itoa(n) != s {
		return 0, false
	}
	return n, true
}

// nextLineEnd returns the index one past the last token of the ply line
// starting at parts[start].
func nextLineEnd(parts []string, start int) int {
	count := 0
	annotated := false
	i := start
	for i < len(parts) {
		tok := parts[i]
		if opensBracket(tok) {
			i = scanBracket(parts, i)
			count++
			annotated = true
			continue
		}
		if _, ok := moveNumberPrefix(tok); ok {
			if (count > 1 && annotated) || (count > 0 && !annotated) {
				return i
			}
		}
		count++
		i++
	}
	return i
}

// ExtractNextLine returns the first ply line of text: a move number, up
// to two moves and any comments or variations attached to them. Text is
// split on single spaces and rejoined as found.
func ExtractNextLine(text string) string {
	if text == "" {
		return ""
	}
	parts := strings.Split(text, " ")
	return strings.Join(parts[:nextLineEnd(parts, 0)], " ")
}

// TokenizeLines normalizes text and splits it into ply lines.
func TokenizeLines(text string) []string {
	text = NormalizeSpacing(text)
	if text == "" {
		return nil
	}

	parts := strings.Split(text, " ")
	var lines []string
	for start := 0; start < len(parts); {
		end := nextLineEnd(parts, start)
		if line := strings.TrimSpace(strings.Join(parts[start:end], " ")); line != "" {
			lines = append(lines, line)
		}
		start = end
	}
	return lines
}
