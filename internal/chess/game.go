package chess

// Game is one parsed game: its header tags and the resolved turn tree.
type Game struct {
	// Number is the 1-based position of the game in its source.
	Number int

	// Tags for this game (e.g., Event, Site, Date, White, Black, Result).
	Tags map[string]string

	// TagOrder records tag names in the order they were first set.
	TagOrder []string

	// Movetext is the raw movetext with the tag section removed.
	Movetext string

	// Board is the starting position. The resolver works on a clone of it.
	Board *Board

	// Turns is the main line.
	Turns []*Turn

	// Termination is the result token found at the end of the movetext, if any.
	Termination string

	// Preamble is the normalized movetext of a game without any move,
	// such as a lone comment and result.
	Preamble string
}

// NewGame creates a new empty game.
func NewGame() *Game {
	return &Game{
		Tags: make(map[string]string),
	}
}

// GetTag returns a tag value, or empty string if not present.
func (g *Game) GetTag(name string) string {
	return g.Tags[name]
}

// SetTag sets a tag value, remembering first-seen order.
func (g *Game) SetTag(name, value string) {
	g.ensureTags()
	if _, ok := g.Tags[name]; !ok {
		g.TagOrder = append(g.TagOrder, name)
	}
	g.Tags[name] = value
}

// HasTag returns true if the tag is present.
func (g *Game) HasTag(name string) bool {
	_, ok := g.Tags[name]
	return ok
}

// ensureTags initializes the Tags map if it is nil.
func (g *Game) ensureTags() {
	if g.Tags == nil {
		g.Tags = make(map[string]string)
	}
}

// White returns the White player name.
func (g *Game) White() string {
	return g.GetTag(WhiteTag)
}

// Black returns the Black player name.
func (g *Game) Black() string {
	return g.GetTag(BlackTag)
}

// Result returns the movetext termination, falling back to the Result tag.
func (g *Game) Result() string {
	if g.Termination != "" {
		return g.Termination
	}
	if r := g.GetTag(ResultTag); r != "" {
		return r
	}
	return "*"
}

// FEN returns the FEN tag when the game declares a set-up position.
func (g *Game) FEN() string {
	return g.GetTag(FENTag)
}

// PlyCount returns the number of half-moves in the main line.
func (g *Game) PlyCount() int {
	return len(g.Turns)
}

// TotalPlyCount counts every half-move including variations.
func (g *Game) TotalPlyCount() int {
	return CountTurns(g.Turns)
}

// LastTurn returns the last main-line turn, or nil if there are none.
func (g *Game) LastTurn() *Turn {
	if len(g.Turns) == 0 {
		return nil
	}
	return g.Turns[len(g.Turns)-1]
}

// FinalPosition returns the board after the last resolved main-line turn,
// or the starting board when no turn was resolved.
func (g *Game) FinalPosition() *Board {
	for i := len(g.Turns) - 1; i >= 0; i-- {
		if g.Turns[i].Position != nil {
			return g.Turns[i].Position
		}
	}
	return g.Board
}
