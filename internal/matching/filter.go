package matching

import (
	"bufio"
	"io"
	"strings"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
	"github.com/lgbarn/pgn-turns-go/internal/errors"
)

// GameFilter combines tag criteria and target positions. A game passes
// when its tags pass and, if any positions are set, it reaches one.
type GameFilter struct {
	Tags      []*TagCriterion
	Positions *PositionMatcher

	// MatchAny passes a game when any tag criterion holds instead of all.
	MatchAny bool
}

// NewGameFilter creates a filter that passes every game.
func NewGameFilter() *GameFilter {
	return &GameFilter{Positions: NewPositionMatcher()}
}

// AddTag parses and adds a tag criterion.
func (f *GameFilter) AddTag(criterion string) error {
	c, err := ParseTagCriterion(criterion)
	if err != nil {
		return err
	}
	f.Tags = append(f.Tags, c)
	return nil
}

// Empty reports whether the filter has no criteria.
func (f *GameFilter) Empty() bool {
	return len(f.Tags) == 0 && f.Positions.Len() == 0
}

// Load reads criteria, one per line. Lines starting with "FEN" hold a
// target position; blank lines and lines starting with '#' are skipped.
//
//	White ~ "Fischer"
//	Date >= 1992.01.01
//	FEN "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3"
func (f *GameFilter) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var err error
		if rest, ok := strings.CutPrefix(line, "FEN "); ok {
			err = f.Positions.AddFEN(strings.Trim(strings.TrimSpace(rest), `"`))
		} else {
			err = f.AddTag(line)
		}
		if err != nil {
			return errors.Wrapf(err, "criteria line %d", lineNo)
		}
	}
	return scanner.Err()
}

// Match reports whether game passes the filter. Position targets need a
// resolved game.
func (f *GameFilter) Match(game *chess.Game) bool {
	if !f.matchTags(game) {
		return false
	}
	if f.Positions.Len() > 0 {
		return f.Positions.Match(game)
	}
	return true
}

func (f *GameFilter) matchTags(game *chess.Game) bool {
	if len(f.Tags) == 0 {
		return true
	}
	for _, c := range f.Tags {
		ok := c.Match(game)
		if f.MatchAny && ok {
			return true
		}
		if !f.MatchAny && !ok {
			return false
		}
	}
	return !f.MatchAny
}
