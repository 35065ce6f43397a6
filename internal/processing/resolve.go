// Package processing resolves parsed games and analyzes the result.
package processing

import (
	"github.com/lgbarn/pgn-turns-go/internal/chess"
	"github.com/lgbarn/pgn-turns-go/internal/config"
	"github.com/lgbarn/pgn-turns-go/internal/engine"
	"github.com/lgbarn/pgn-turns-go/internal/errors"
)

// ResolveGame sets game.Board to the game's starting position and resolves
// the turn tree against a copy of it. Errors carry the game number.
func ResolveGame(game *chess.Game, cfg *config.Config) error {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if len(game.Turns) == 0 {
		return &errors.GameError{Err: errors.ErrEmptyMovetext, GameNum: game.Number}
	}

	setup, err := engine.NewBoardForGame(game)
	if err != nil {
		return &errors.GameError{Err: err, GameNum: game.Number}
	}
	game.Board = setup.Board

	r := engine.NewResolver(
		engine.WithMaxDepth(cfg.Parse.MaxVariationDepth),
		engine.WithLenient(cfg.Parse.Lenient),
		engine.WithStartClock(setup.HalfmoveClock),
	)
	if err := r.Resolve(game.Turns, setup.Board.Clone()); err != nil {
		ge := &errors.GameError{Err: err, GameNum: game.Number}
		var me *errors.MoveError
		if errors.As(err, &me) {
			ge.PlyNum = plyNumber(me.MoveNumber, me.Colour)
			ge.MoveText = me.Move
		}
		return ge
	}

	cfg.Logf(2, "game %d: %d plies, %d with variations\n",
		game.Number, game.PlyCount(), game.TotalPlyCount())
	return nil
}

// plyNumber converts a move number and colour to a 1-based ply count.
func plyNumber(moveNumber int, colour chess.Colour) int {
	ply := 2*(moveNumber-1) + 1
	if colour == chess.Black {
		ply++
	}
	return ply
}
