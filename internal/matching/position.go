package matching

import (
	"strings"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
	"github.com/lgbarn/pgn-turns-go/internal/engine"
	"github.com/lgbarn/pgn-turns-go/internal/hashing"
)

// PositionMatcher finds games that reach one of a set of positions on
// the main line or in any variation.
type PositionMatcher struct {
	keys map[uint64]string
}

// NewPositionMatcher creates an empty matcher.
func NewPositionMatcher() *PositionMatcher {
	return &PositionMatcher{keys: make(map[uint64]string)}
}

// AddFEN adds a target position. Only placement and side to move are
// compared; a FEN with just the placement field matches either side.
func (pm *PositionMatcher) AddFEN(fen string) error {
	setup, err := engine.DecodeFEN(fen)
	if err != nil {
		return err
	}
	fen = strings.TrimSpace(fen)
	if len(strings.Fields(fen)) == 1 {
		pm.keys[hashing.Key(setup.Board, chess.White)] = fen
		pm.keys[hashing.Key(setup.Board, chess.Black)] = fen
		return nil
	}
	pm.keys[hashing.Key(setup.Board, setup.ToMove)] = fen
	return nil
}

// Len returns the number of stored keys.
func (pm *PositionMatcher) Len() int {
	return len(pm.keys)
}

// Find returns the PlyPath location of the first turn, in walk order,
// whose position is a target. The game must be resolved.
func (pm *PositionMatcher) Find(game *chess.Game) (string, bool) {
	var loc string
	found := false
	chess.Walk(game.Turns, func(path string, ply int, t *chess.Turn) bool {
		if !t.Resolved() {
			return true
		}
		if _, ok := pm.keys[hashing.PositionKey(t)]; ok {
			loc, found = chess.PlyPath(path, ply), true
			return false
		}
		return true
	})
	return loc, found
}

// Match reports whether game reaches any target position.
func (pm *PositionMatcher) Match(game *chess.Game) bool {
	_, ok := pm.Find(game)
	return ok
}
