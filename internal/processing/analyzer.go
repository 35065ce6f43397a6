package processing

import (
	"fmt"
	"strings"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
	"github.com/lgbarn/pgn-turns-go/internal/engine"
	"github.com/lgbarn/pgn-turns-go/internal/hashing"
)

// GameAnalysis holds facts gathered from a resolved game.
type GameAnalysis struct {
	FinalBoard        *chess.Board
	HasFiftyMoveRule  bool
	HasRepetition     bool
	HasUnderpromotion bool
	Positions         []uint64 // position keys of the main line, start first

	// Extended draw rule detection
	Has75MoveRule           bool
	Has5FoldRepetition      bool
	HasInsufficientMaterial bool
	HasMaterialOdds         bool

	Captures       int
	VariationCount int // sibling lines at any depth
	MaxDepth       int // deepest sibling nesting, 0 without variations

	// Transpositions lists positions reached on more than one line.
	Transpositions []hashing.Transposition
}

// FiftyMoveTriggered returns true if the game triggered the fifty-move rule.
func (ga *GameAnalysis) FiftyMoveTriggered() bool {
	return ga.HasFiftyMoveRule
}

// RepetitionDetected returns true if the game has a threefold repetition.
func (ga *GameAnalysis) RepetitionDetected() bool {
	return ga.HasRepetition
}

// UnderpromotionFound returns true if any pawn promoted to non-queen.
func (ga *GameAnalysis) UnderpromotionFound() bool {
	return ga.HasUnderpromotion
}

// ValidationResult holds the result of game validation.
type ValidationResult struct {
	Valid       bool
	ErrorPly    int
	ErrorMsg    string
	ParseErrors []string
}

// AnalyzeGame walks the main line of a resolved game. Turns that were not
// resolved end the walk.
func AnalyzeGame(game *chess.Game) *GameAnalysis {
	analysis := &GameAnalysis{FinalBoard: game.FinalPosition()}
	if game.Board != nil {
		analysis.HasMaterialOdds = engine.HasMaterialOdds(game.Board)
	}

	toMove := chess.White
	if len(game.Turns) > 0 {
		toMove = game.Turns[0].Colour
	}
	posHash := hashing.Key(game.Board, toMove)
	analysis.Positions = append(analysis.Positions, posHash)
	positionCount := map[uint64]int{posHash: 1}

	for _, turn := range game.Turns {
		if !turn.Resolved() {
			break
		}

		clock := clockAfter(turn)
		if clock >= 100 {
			analysis.HasFiftyMoveRule = true
		}
		if clock >= 150 {
			analysis.Has75MoveRule = true
		}

		if turn.Promoted && turn.PromotedTo != chess.Empty && turn.PromotedTo != chess.Queen {
			analysis.HasUnderpromotion = true
		}
		if turn.Capturing {
			analysis.Captures++
		}

		posHash = hashing.PositionKey(turn)
		analysis.Positions = append(analysis.Positions, posHash)
		positionCount[posHash]++
		if positionCount[posHash] >= 3 {
			analysis.HasRepetition = true
		}
		if positionCount[posHash] >= 5 {
			analysis.Has5FoldRepetition = true
		}
	}

	if analysis.FinalBoard != nil {
		analysis.HasInsufficientMaterial = engine.HasInsufficientMaterial(analysis.FinalBoard)
	}

	analysis.VariationCount, analysis.MaxDepth = countVariations(game.Turns, 0)

	idx := hashing.NewTranspositionIndex()
	idx.Add(game.Turns)
	analysis.Transpositions = idx.Transpositions()

	return analysis
}

// clockAfter is the half-move clock once turn has been played.
func clockAfter(turn *chess.Turn) int {
	if turn.Capturing || turn.Piece == chess.Pawn {
		return 0
	}
	return turn.HalfmoveClock + 1
}

func countVariations(line []*chess.Turn, depth int) (count, maxDepth int) {
	maxDepth = depth
	for _, t := range line {
		for _, sib := range t.Siblings {
			n, d := countVariations(sib, depth+1)
			count += n + 1
			if d > maxDepth {
				maxDepth = d
			}
		}
	}
	return count, maxDepth
}

// ValidateGame checks the tag roster and result of a game, and that every
// main-line turn was resolved.
func ValidateGame(game *chess.Game) *ValidationResult {
	result := &ValidationResult{Valid: true}

	for _, tag := range chess.SevenTagRoster {
		if game.GetTag(tag) == "" {
			result.ParseErrors = append(result.ParseErrors, fmt.Sprintf("missing required tag: %s", tag))
		}
	}

	resultTag := game.GetTag(chess.ResultTag)
	if resultTag != "" && !chess.IsResult(resultTag) {
		result.ParseErrors = append(result.ParseErrors, fmt.Sprintf("invalid result: %s", resultTag))
	}
	if resultTag != "" && game.Termination != "" && resultTag != game.Termination {
		result.ParseErrors = append(result.ParseErrors,
			fmt.Sprintf("result tag %s does not match movetext %s", resultTag, game.Termination))
	}

	for i, turn := range game.Turns {
		if !turn.Resolved() {
			result.Valid = false
			result.ErrorPly = i + 1
			result.ErrorMsg = fmt.Sprintf("unresolved move at ply %d: %s", i+1, strings.TrimSpace(turn.PGN))
			break
		}
	}
	return result
}

// SplitVariations splits a game with variations into one game per line.
// The main line comes first; each sibling line follows, prefixed by the
// turns leading up to its branch point. Every game keeps the original
// tags, and no returned turn has siblings.
func SplitVariations(game *chess.Game) []*chess.Game {
	games := make([]*chess.Game, 0, 1)

	mainGame := copyGameHeaders(game)
	mainGame.Turns = copyLine(nil, game.Turns)
	games = append(games, mainGame)

	extractVariations(game.Turns, game, &games, nil)
	return games
}

// copyGameHeaders creates a new game with copied header tags.
func copyGameHeaders(original *chess.Game) *chess.Game {
	newGame := chess.NewGame()
	for _, key := range original.TagOrder {
		newGame.SetTag(key, original.Tags[key])
	}
	newGame.Number = original.Number
	newGame.Board = original.Board
	newGame.Termination = original.Termination
	return newGame
}

// copyLine appends copies of line, without siblings, to prefix.
func copyLine(prefix, line []*chess.Turn) []*chess.Turn {
	out := make([]*chess.Turn, 0, len(prefix)+len(line))
	out = append(out, prefix...)
	for _, t := range line {
		c := *t
		c.Siblings = nil
		out = append(out, &c)
	}
	return out
}

// extractVariations recursively extracts all sibling lines of line.
// prefix is the turns leading up to line.
func extractVariations(line []*chess.Turn, original *chess.Game, games *[]*chess.Game, prefix []*chess.Turn) {
	for i, t := range line {
		here := copyLine(prefix, line[:i])
		for _, sib := range t.Siblings {
			if len(sib) == 0 {
				continue
			}
			varGame := copyGameHeaders(original)
			varGame.Termination = ""
			varGame.Turns = copyLine(here, sib)
			*games = append(*games, varGame)

			extractVariations(sib, original, games, here)
		}
	}
}
