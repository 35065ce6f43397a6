// Package eco classifies games by opening from an ECO file: a PGN file
// whose games carry ECO, Opening and Variation tags and the moves of
// each line.
package eco

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
	"github.com/lgbarn/pgn-turns-go/internal/config"
	"github.com/lgbarn/pgn-turns-go/internal/hashing"
	"github.com/lgbarn/pgn-turns-go/internal/parser"
	"github.com/lgbarn/pgn-turns-go/internal/processing"
)

// PlyLimit is how far a game's ply count may differ from an entry's and
// still match it by transposition.
const PlyLimit = 6

// Entry is one classified line.
type Entry struct {
	ECO          string
	Opening      string
	Variation    string
	SubVariation string

	// Plies is the length of the line.
	Plies int
}

// Classifier maps the final position of every ECO line to its entry.
type Classifier struct {
	entries  map[uint64][]*Entry
	maxPlies int
	count    int
}

// NewClassifier creates an empty classifier.
func NewClassifier() *Classifier {
	return &Classifier{entries: make(map[uint64][]*Entry)}
}

// LoadFile loads an ECO file.
func (c *Classifier) LoadFile(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("cannot open ECO file: %w", err)
	}
	defer f.Close()
	return c.Load(f)
}

// Load reads ECO entries. Games without an ECO tag are skipped; a line
// whose moves do not resolve is an error.
func (c *Classifier) Load(r io.Reader) error {
	cfg := config.NewConfig()
	cfg.Verbosity = 0

	games, err := parser.NewParser(r, cfg).ParseAllGames()
	if err != nil {
		return fmt.Errorf("parsing ECO file: %w", err)
	}
	for _, game := range games {
		if game.GetTag("ECO") == "" || len(game.Turns) == 0 {
			continue
		}
		if err := processing.ResolveGame(game, cfg); err != nil {
			return fmt.Errorf("ECO line %s: %w", game.GetTag("ECO"), err)
		}
		c.add(game)
	}
	return nil
}

func (c *Classifier) add(game *chess.Game) {
	entry := &Entry{
		ECO:          game.GetTag("ECO"),
		Opening:      game.GetTag("Opening"),
		Variation:    game.GetTag("Variation"),
		SubVariation: game.GetTag("SubVariation"),
		Plies:        len(game.Turns),
	}
	key := hashing.PositionKey(game.LastTurn())
	for _, e := range c.entries[key] {
		if e.Plies == entry.Plies {
			return
		}
	}
	c.entries[key] = append(c.entries[key], entry)
	c.count++
	if entry.Plies > c.maxPlies {
		c.maxPlies = entry.Plies
	}
}

// Len returns the number of entries loaded.
func (c *Classifier) Len() int {
	return c.count
}

// Classify returns the deepest entry reached on game's main line and the
// index of the turn reaching it, or nil and -1. An entry reached at its
// own ply count beats one reached by transposition.
func (c *Classifier) Classify(game *chess.Game) (*Entry, int) {
	var best *Entry
	at := -1
	for i, t := range game.Turns {
		plies := i + 1
		if plies > c.maxPlies+PlyLimit || !t.Resolved() {
			break
		}
		if e := c.lookup(hashing.PositionKey(t), plies); e != nil {
			best, at = e, i
		}
	}
	return best, at
}

func (c *Classifier) lookup(key uint64, plies int) *Entry {
	var near *Entry
	for _, e := range c.entries[key] {
		if e.Plies == plies {
			return e
		}
		if d := e.Plies - plies; d <= PlyLimit && d >= -PlyLimit {
			near = e
		}
	}
	return near
}

// AddTags classifies game and sets its ECO, Opening, Variation and
// SubVariation tags from the match. It reports whether there was one.
func (c *Classifier) AddTags(game *chess.Game) bool {
	e, _ := c.Classify(game)
	if e == nil {
		return false
	}
	for _, tag := range []struct{ name, value string }{
		{"ECO", e.ECO},
		{"Opening", e.Opening},
		{"Variation", e.Variation},
		{"SubVariation", e.SubVariation},
	} {
		if tag.value != "" {
			game.SetTag(tag.name, tag.value)
		}
	}
	return true
}
