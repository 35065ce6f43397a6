package parser

import (
	"strings"

	"github.com/lgbarn/pgn-turns-go/internal/errors"
)

// Tag is one header pair.
type Tag struct {
	Name  string
	Value string
}

// ParseTags reads the header section of a game.
func ParseTags(text string) ([]Tag, error) {
	tags, _, err := SplitHeader(text)
	return tags, err
}

// SplitHeader separates the leading [Name "Value"] pairs from the movetext.
// Lines starting with '%' before the movetext are escape lines and are skipped.
func SplitHeader(text string) ([]Tag, string, error) {
	var tags []Tag
	line := 1
	rest := text
	for {
		trimmed := strings.TrimLeft(rest, " \t\r\n")
		line += strings.Count(rest[:len(rest)-len(trimmed)], "\n")
		rest = trimmed

		if strings.HasPrefix(rest, "%") {
			end := strings.IndexByte(rest, '\n')
			if end < 0 {
				return tags, "", nil
			}
			rest = rest[end:]
			continue
		}
		if !strings.HasPrefix(rest, "[") {
			return tags, rest, nil
		}

		tag, n, reason := scanTag(rest)
		if reason != "" {
			got := rest
			if i := strings.IndexByte(got, '\n'); i >= 0 {
				got = got[:i]
			}
			return tags, rest, &errors.ParseError{
				Err:    errors.ErrParseFailure,
				Line:   line,
				Got:    strings.TrimSpace(got),
				Reason: reason,
			}
		}
		tags = append(tags, tag)
		line += strings.Count(rest[:n], "\n")
		rest = rest[n:]
	}
}

// scanTag reads one tag pair at the start of s and returns the number of
// bytes consumed, or a reason it is malformed.
func scanTag(s string) (Tag, int, string) {
	i := skipSpaces(s, 1)
	start := i
	for i < len(s) && !isTagSpace(s[i]) && s[i] != '"' && s[i] != ']' {
		i++
	}
	if i == start {
		return Tag{}, 0, "missing tag name"
	}
	tag := Tag{Name: s[start:i]}

	i = skipSpaces(s, i)
	if i >= len(s) || s[i] != '"' {
		return Tag{}, 0, "missing tag value"
	}
	i++

	var value strings.Builder
	for ; i < len(s) && s[i] != '"'; i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		value.WriteByte(s[i])
	}
	if i >= len(s) {
		return Tag{}, 0, "unterminated tag value"
	}
	tag.Value = value.String()

	i = skipSpaces(s, i+1)
	if i >= len(s) || s[i] != ']' {
		return Tag{}, 0, "missing ]"
	}
	return tag, i + 1, ""
}

func skipSpaces(s string, i int) int {
	for i < len(s) && isTagSpace(s[i]) {
		i++
	}
	return i
}

func isTagSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// EscapeTagValue quotes backslashes and double quotes for output.
func EscapeTagValue(v string) string {
	return tagEscaper.Replace(v)
}

var tagEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
