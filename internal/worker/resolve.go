package worker

import (
	"github.com/lgbarn/pgn-turns-go/internal/chess"
	"github.com/lgbarn/pgn-turns-go/internal/config"
	"github.com/lgbarn/pgn-turns-go/internal/errors"
	"github.com/lgbarn/pgn-turns-go/internal/hashing"
	"github.com/lgbarn/pgn-turns-go/internal/parser"
	"github.com/lgbarn/pgn-turns-go/internal/processing"
)

// DuplicateChecker records games and reports repeats.
type DuplicateChecker interface {
	CheckAndAdd(game *chess.Game) (hashing.GameSignature, bool)
}

// ResolveFunc returns a ProcessFunc that parses, resolves and analyzes a
// game. With a nil dup no duplicate check is made. dup is shared by all
// workers, so it must be safe for concurrent use when there are several.
func ResolveFunc(cfg *config.Config, dup DuplicateChecker) ProcessFunc {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return func(item WorkItem) ProcessResult {
		result := ProcessResult{Game: item.Game, Index: item.Index}
		if result.Game == nil {
			game, err := parser.ParseGameText(item.Text, cfg)
			if err != nil {
				result.Error = &errors.GameError{Err: err, GameNum: item.Index + 1}
				return result
			}
			game.Number = item.Index + 1
			result.Game = game
		}

		if err := processing.ResolveGame(result.Game, cfg); err != nil {
			result.Error = err
			if !cfg.Parse.Lenient {
				return result
			}
		}
		result.Analysis = processing.AnalyzeGame(result.Game)

		if dup != nil {
			result.DuplicateOf, result.Duplicate = dup.CheckAndAdd(result.Game)
		}
		return result
	}
}
