// Package parser turns PGN movetext into a tree of turns.
package parser

import (
	"strconv"
	"strings"
)

// MaxGluedMoveNumber bounds the move numbers NormalizeSpacing glues to
// their move text.
const MaxGluedMoveNumber = 150

// spacingRules are collapsed repeatedly until none applies.
var spacingRules = []struct{ from, to string }{
	{"  ", " "},
	{"{ ", "{"},
	{"( ", "("},
	{"[ ", "["},
	{" }", "}"},
	{" )", ")"},
	{" ]", "]"},
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ", "\t", " ")

// NormalizeSpacing rewrites movetext into a single line with one space
// between tokens, no padding inside brackets, and move numbers glued to
// the move that follows them ("1. e4" becomes "1.e4").
func NormalizeSpacing(text string) string {
	text = lineBreaks.Replace(text)

	for changed := true; changed; {
		changed = false
		for _, r := range spacingRules {
			for strings.Contains(text, r.from) {
				text = strings.ReplaceAll(text, r.from, r.to)
				changed = true
			}
		}
	}

	for i := 1; i < MaxGluedMoveNumber; i++ {
		n := strconv.Itoa(i)
		if !strings.Contains(text, n) {
			continue
		}
		text = strings.ReplaceAll(text, n+". ", n+".")
		text = strings.ReplaceAll(text, n+"... ", n+"...")
	}

	return strings.TrimSpace(text)
}
