// Package matching selects games by header tags and by the positions
// reached anywhere in their turn trees.
package matching

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
	"github.com/lgbarn/pgn-turns-go/internal/errors"
)

// TagOperator compares a tag value with a criterion value.
type TagOperator int

const (
	OpEqual TagOperator = iota
	OpNotEqual
	OpLessThan
	OpLessOrEqual
	OpGreaterThan
	OpGreaterOrEqual
	OpContains
	OpRegex
	OpSoundex
)

// operators is ordered so two-character operators are tried first.
var operators = []struct {
	text string
	op   TagOperator
}{
	{"<=", OpLessOrEqual},
	{">=", OpGreaterOrEqual},
	{"!=", OpNotEqual},
	{"<>", OpNotEqual},
	{"=~", OpRegex},
	{"<", OpLessThan},
	{">", OpGreaterThan},
	{"~", OpContains},
	{"%", OpSoundex},
	{"=", OpEqual},
}

// PlayerTag is a pseudo tag matching either White or Black.
const PlayerTag = "Player"

// TagCriterion is one tag test.
type TagCriterion struct {
	Tag      string
	Value    string
	Operator TagOperator

	re      *regexp.Regexp
	lower   string
	soundex string
}

// NewTagCriterion compiles a criterion.
func NewTagCriterion(tag, value string, op TagOperator) (*TagCriterion, error) {
	c := &TagCriterion{Tag: tag, Value: value, Operator: op}
	switch op {
	case OpRegex:
		re, err := regexp.Compile(value)
		if err != nil {
			return nil, fmt.Errorf("tag %s: %v: %w", tag, err, errors.ErrInvalidConfig)
		}
		c.re = re
	case OpContains:
		c.lower = strings.ToLower(value)
	case OpSoundex:
		c.soundex = Soundex(surname(value))
	}
	return c, nil
}

// ParseTagCriterion parses criteria such as `Date>=1992.11`,
// `White~Fischer`, `Player%Nimzowitsch` or `Event="Match 2"`.
func ParseTagCriterion(s string) (*TagCriterion, error) {
	s = strings.TrimSpace(s)
	at := strings.IndexAny(s, "<>=!~%")
	if at <= 0 {
		return nil, fmt.Errorf("tag criterion %q: %w", s, errors.ErrInvalidConfig)
	}
	tag, rest := strings.TrimSpace(s[:at]), s[at:]

	for _, o := range operators {
		if !strings.HasPrefix(rest, o.text) {
			continue
		}
		value := strings.TrimSpace(rest[len(o.text):])
		if unq, err := strconv.Unquote(value); err == nil {
			value = unq
		}
		return NewTagCriterion(tag, value, o.op)
	}
	return nil, fmt.Errorf("tag criterion %q: %w", s, errors.ErrInvalidConfig)
}

// Match tests the criterion against game's tags. A missing tag only
// satisfies OpNotEqual.
func (c *TagCriterion) Match(game *chess.Game) bool {
	if c.Tag == PlayerTag {
		return c.matchValue(game.GetTag("White")) || c.matchValue(game.GetTag("Black"))
	}
	value, ok := game.Tags[c.Tag]
	if !ok {
		return c.Operator == OpNotEqual
	}
	return c.matchValue(value)
}

func (c *TagCriterion) matchValue(v string) bool {
	switch c.Operator {
	case OpEqual:
		return strings.EqualFold(v, c.Value)
	case OpNotEqual:
		return !strings.EqualFold(v, c.Value)
	case OpContains:
		return strings.Contains(strings.ToLower(v), c.lower)
	case OpRegex:
		return c.re.MatchString(v)
	case OpSoundex:
		return Soundex(surname(v)) == c.soundex
	}

	cmp := compareTagValues(v, c.Value)
	switch c.Operator {
	case OpLessThan:
		return cmp < 0
	case OpLessOrEqual:
		return cmp <= 0
	case OpGreaterThan:
		return cmp > 0
	case OpGreaterOrEqual:
		return cmp >= 0
	}
	return false
}

// surname returns the part of a "Surname, Forename" name before the comma.
func surname(name string) string {
	if i := strings.IndexByte(name, ','); i >= 0 {
		return name[:i]
	}
	return name
}

// compareTagValues orders dates by date, numbers by value and anything
// else case-insensitively.
func compareTagValues(a, b string) int {
	if da, db := parseDate(a), parseDate(b); da > 0 && db > 0 {
		return compareInts(da, db)
	}
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// parseDate encodes a PGN date as yyyymmdd. Unknown month and day
// ("??") count as the first. Anything without a plausible year is 0.
func parseDate(s string) int {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return 0
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 100 || year > 3000 {
		return 0
	}
	month, day := 1, 1
	if m, err := strconv.Atoi(parts[1]); err == nil && m >= 1 && m <= 12 {
		month = m
	}
	if len(parts) > 2 {
		if d, err := strconv.Atoi(parts[2]); err == nil && d >= 1 && d <= 31 {
			day = d
		}
	}
	return year*10000 + month*100 + day
}
