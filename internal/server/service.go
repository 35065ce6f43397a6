// Package server exposes game parsing and diagrams over HTTP.
package server

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
	"github.com/lgbarn/pgn-turns-go/internal/config"
	"github.com/lgbarn/pgn-turns-go/internal/diagram"
	"github.com/lgbarn/pgn-turns-go/internal/errors"
	"github.com/lgbarn/pgn-turns-go/internal/hashing"
	"github.com/lgbarn/pgn-turns-go/internal/output"
	"github.com/lgbarn/pgn-turns-go/internal/parser"
	"github.com/lgbarn/pgn-turns-go/internal/processing"
	"github.com/lgbarn/pgn-turns-go/internal/worker"
)

var (
	// ErrNoGames is returned for a body without any game.
	ErrNoGames = fmt.Errorf("no games in request: %w", errors.ErrParseFailure)

	// ErrTurnNotFound is returned when a ply location names no turn.
	ErrTurnNotFound = fmt.Errorf("turn not found")
)

// ParsedGame is one game of a parse response.
type ParsedGame struct {
	*output.JSONGame
	Duplicate   bool `json:"duplicate,omitempty"`
	DuplicateOf int  `json:"duplicateOf,omitempty"`
}

// GameFailure reports a game that could not be resolved.
type GameFailure struct {
	Number int    `json:"number"`
	Error  string `json:"error"`
}

// ParseResponse is the reply to a parse request.
type ParseResponse struct {
	ID     string        `json:"id"`
	Games  []ParsedGame  `json:"games"`
	Failed []GameFailure `json:"failed,omitempty"`
}

// Service resolves games for every request. Game numbers run across
// requests, so a duplicate can name a game from an earlier request.
type Service struct {
	cfg      *config.Config
	detector *hashing.ThreadSafeDuplicateDetector
	seen     atomic.Int64
	newID    func() string
}

// NewService creates a service sharing one duplicate detector.
func NewService(cfg *config.Config) *Service {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Service{
		cfg:      cfg,
		detector: hashing.NewThreadSafeDuplicateDetector(false, cfg.Duplicate.MaxCapacity),
		newID:    uuid.NewString,
	}
}

// Parse splits text into games and resolves them on the worker pool.
func (s *Service) Parse(ctx context.Context, text string) (*ParseResponse, error) {
	texts, err := splitText(text)
	if err != nil {
		return nil, err
	}

	base := int(s.seen.Add(int64(len(texts)))) - len(texts)
	items := make([]worker.WorkItem, len(texts))
	for i, t := range texts {
		items[i] = worker.WorkItem{Text: t, Index: base + i}
	}

	pool := worker.NewPoolWithOptions(
		worker.ResolveFunc(s.cfg, s.detector),
		worker.WithWorkers(s.cfg.Workers),
	)
	results, err := pool.ProcessAll(ctx, items)
	if err != nil {
		return nil, err
	}

	resp := &ParseResponse{ID: s.newID(), Games: []ParsedGame{}}
	for _, res := range results {
		if res.Error != nil && (res.Game == nil || !s.cfg.Parse.Lenient) {
			resp.Failed = append(resp.Failed, GameFailure{Number: res.Index + 1, Error: res.Error.Error()})
			continue
		}
		pg := ParsedGame{JSONGame: output.GameToJSON(res.Game, s.cfg)}
		if res.Duplicate {
			pg.Duplicate = true
			pg.DuplicateOf = res.DuplicateOf.GameNum
		}
		resp.Games = append(resp.Games, pg)
	}
	return resp, nil
}

// Diagram renders the position after the turn at ply, a PlyPath location
// such as "1.0:2". An empty ply draws the final main-line position.
func (s *Service) Diagram(text, ply string, opts diagram.Options) ([]byte, error) {
	texts, err := splitText(text)
	if err != nil {
		return nil, err
	}
	game, err := parser.ParseGameText(texts[0], s.cfg)
	if err != nil {
		return nil, err
	}
	if err := processing.ResolveGame(game, s.cfg); err != nil && !s.cfg.Parse.Lenient {
		return nil, err
	}

	var buf bytes.Buffer
	if ply == "" {
		board := game.FinalPosition()
		if board == nil {
			return nil, ErrTurnNotFound
		}
		var highlight []chess.Square
		if last := game.LastTurn(); last != nil && last.Position == board {
			highlight = diagram.LastMove(board)
		}
		err = diagram.Render(&buf, board, highlight, opts)
	} else {
		turn := chess.FindTurn(game.Turns, ply)
		if turn == nil || !turn.Resolved() {
			return nil, fmt.Errorf("%w: %s", ErrTurnNotFound, ply)
		}
		err = diagram.RenderTurn(&buf, turn, opts)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Stats reports the games seen and the duplicates found so far.
func (s *Service) Stats() (games, duplicates int) {
	return int(s.seen.Load()), s.detector.DuplicateCount()
}

func splitText(text string) ([]string, error) {
	in, err := parser.NewReader(strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	texts, err := parser.SplitGames(in)
	if err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return nil, ErrNoGames
	}
	return texts, nil
}
