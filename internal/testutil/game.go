package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
	"github.com/lgbarn/pgn-turns-go/internal/config"
	"github.com/lgbarn/pgn-turns-go/internal/engine"
	"github.com/lgbarn/pgn-turns-go/internal/parser"
)

// FixtureDir is the shared input directory, relative to a package two
// levels below the module root.
var FixtureDir = filepath.Join("..", "..", "testdata", "infiles")

// QuietConfig returns a default config that logs nothing.
func QuietConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Verbosity = 0
	cfg.LogFile = nil
	return cfg
}

// ParseTestGame parses and resolves the first game of a PGN string. It
// returns nil if parsing or resolution fails or no game is found.
func ParseTestGame(pgn string) *chess.Game {
	if games := ParseTestGames(pgn); len(games) > 0 {
		return games[0]
	}
	return nil
}

// ParseTestGames parses and resolves every game of a PGN string.
// Returns nil if any game fails.
func ParseTestGames(pgn string) []*chess.Game {
	p := parser.NewParser(strings.NewReader(pgn), QuietConfig())
	games, err := p.ParseAllGames()
	if err != nil || len(games) == 0 {
		return nil
	}
	for _, g := range games {
		if resolve(g) != nil {
			return nil
		}
	}
	return games
}

func resolve(game *chess.Game) error {
	setup, err := engine.NewBoardForGame(game)
	if err != nil {
		return err
	}
	game.Board = setup.Board
	r := engine.NewResolver(engine.WithStartClock(setup.HalfmoveClock))
	return r.Resolve(game.Turns, game.Board.Clone())
}

// MustParseGame parses and resolves the first game of a PGN string.
// It calls t.Fatal if that fails.
func MustParseGame(t testing.TB, pgn string) *chess.Game {
	t.Helper()
	game := ParseTestGame(pgn)
	if game == nil {
		t.Fatalf("failed to parse test game:\n%s", pgn)
	}
	return game
}

// MustParseGames parses and resolves every game of a PGN string.
func MustParseGames(t testing.TB, pgn string) []*chess.Game {
	t.Helper()
	games := ParseTestGames(pgn)
	if len(games) == 0 {
		t.Fatalf("failed to parse any games from PGN:\n%s", pgn)
	}
	return games
}

// MustParseMovetext builds the turn tree of bare movetext without resolving it.
func MustParseMovetext(t testing.TB, movetext string) []*chess.Turn {
	t.Helper()
	turns, err := parser.BuildVariationTree(parser.TokenizeLines(movetext))
	if err != nil {
		t.Fatalf("BuildVariationTree(%q): %v", movetext, err)
	}
	return turns
}

// MustResolve builds and resolves bare movetext from the initial position.
func MustResolve(t testing.TB, movetext string) []*chess.Turn {
	t.Helper()
	turns := MustParseMovetext(t, movetext)
	if err := engine.ResolveAndSimulate(turns, engine.NewInitialBoard()); err != nil {
		t.Fatalf("ResolveAndSimulate(%q): %v", movetext, err)
	}
	return turns
}

// ReadFixture returns the contents of a file in FixtureDir.
func ReadFixture(t testing.TB, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(FixtureDir, name))
	if err != nil {
		t.Fatalf("reading fixture %s: %v", name, err)
	}
	return string(data)
}
