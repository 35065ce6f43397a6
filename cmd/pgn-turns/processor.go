// processor.go - Game processing and output functions
package main

import (
	"context"
	"fmt"
	"io"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
	"github.com/lgbarn/pgn-turns-go/internal/config"
	"github.com/lgbarn/pgn-turns-go/internal/diagram"
	"github.com/lgbarn/pgn-turns-go/internal/eco"
	"github.com/lgbarn/pgn-turns-go/internal/errors"
	"github.com/lgbarn/pgn-turns-go/internal/export"
	"github.com/lgbarn/pgn-turns-go/internal/hashing"
	"github.com/lgbarn/pgn-turns-go/internal/matching"
	"github.com/lgbarn/pgn-turns-go/internal/output"
	"github.com/lgbarn/pgn-turns-go/internal/parser"
	"github.com/lgbarn/pgn-turns-go/internal/processing"
	"github.com/lgbarn/pgn-turns-go/internal/worker"
)

// Stats counts what happened to the games read.
type Stats struct {
	Games      int
	Written    int
	Skipped    int
	Duplicates int
	Failed     int
	Diagrams   int
}

// ProcessingContext holds all processing state. It is used from one
// goroutine; only game resolution runs in parallel.
type ProcessingContext struct {
	cfg       *config.Config
	writer    output.GameWriter
	dupWriter output.GameWriter
	parquet   *export.Writer
	detector  *hashing.DuplicateDetector
	filter    *matching.GameFilter
	eco       *eco.Classifier
	validate  bool
	stats     Stats
}

// NewProcessingContext creates the writers the config asks for.
func NewProcessingContext(cfg *config.Config) (*ProcessingContext, error) {
	ctx := &ProcessingContext{
		cfg:    cfg,
		writer: output.NewGameWriter(cfg.OutputFile, cfg),
	}

	if cfg.Duplicate.Suppress || cfg.Duplicate.DuplicateFile != nil {
		ctx.detector = hashing.NewDuplicateDetector(false, cfg.Duplicate.MaxCapacity)
	}
	if cfg.Duplicate.DuplicateFile != nil {
		ctx.dupWriter = output.NewPGNWriter(cfg.Duplicate.DuplicateFile, cfg)
	}

	if cfg.Output.ParquetFile != "" {
		pw, err := export.Create(cfg.Output.ParquetFile, int64(cfg.Workers))
		if err != nil {
			return nil, err
		}
		ctx.parquet = pw
	}
	return ctx, nil
}

// ProcessInput splits r into games, resolves them on the worker pool and
// writes the results in input order. Duplicates are checked in that order
// too, so the first of two equal games is the one kept.
func (ctx *ProcessingContext) ProcessInput(c context.Context, r io.Reader, name string) error {
	in, err := parser.NewReader(r)
	if err != nil {
		return errors.Wrapf(err, "reading %s", name)
	}
	texts, err := parser.SplitGames(in)
	if err != nil {
		return errors.Wrapf(err, "reading %s", name)
	}

	items := make([]worker.WorkItem, len(texts))
	for i, text := range texts {
		items[i] = worker.WorkItem{Text: text, Index: ctx.stats.Games + i}
	}

	pool := worker.NewPoolWithOptions(
		worker.ResolveFunc(ctx.cfg, nil),
		worker.WithWorkers(ctx.cfg.Workers),
	)
	results, err := pool.ProcessAll(c, items)
	for _, res := range results {
		ctx.handleResult(res, name)
	}
	return err
}

// handleResult writes one resolved game to every configured output.
func (ctx *ProcessingContext) handleResult(res worker.ProcessResult, name string) {
	ctx.stats.Games++

	if res.Error != nil {
		var ge *errors.GameError
		if errors.As(res.Error, &ge) && ge.File == "" {
			ge.File = name
		}
		if res.Game == nil || !ctx.cfg.Parse.Lenient {
			ctx.stats.Failed++
			ctx.cfg.Logf(1, "Error: %v\n", res.Error)
			return
		}
		ctx.cfg.Logf(1, "Warning: %v\n", res.Error)
	}
	game := res.Game

	if ctx.eco != nil && ctx.eco.AddTags(game) {
		ctx.cfg.Logf(2, "game %d: ECO %s\n", game.Number, game.GetTag("ECO"))
	}
	if ctx.filter != nil && !ctx.filter.Match(game) {
		ctx.stats.Skipped++
		ctx.cfg.Logf(2, "game %d not selected\n", game.Number)
		return
	}

	if ctx.detector != nil {
		res.DuplicateOf, res.Duplicate = ctx.detector.CheckAndAdd(game)
	}
	if res.Duplicate {
		ctx.stats.Duplicates++
		ctx.cfg.Logf(2, "game %d duplicates game %d\n", game.Number, res.DuplicateOf.GameNum)
		if ctx.dupWriter != nil {
			ctx.report(ctx.dupWriter.WriteGame(game))
		}
		if ctx.cfg.Duplicate.Suppress {
			return
		}
	}

	if ctx.validate {
		ctx.logValidation(game)
	}
	if a := res.Analysis; a != nil && a.VariationCount > 0 {
		ctx.cfg.Logf(2, "game %d: %d variation(s), depth %d, %d transposition(s)\n",
			game.Number, a.VariationCount, a.MaxDepth, len(a.Transpositions))
	}

	games := []*chess.Game{game}
	if ctx.cfg.Output.SplitVariations {
		games = processing.SplitVariations(game)
	}
	for _, g := range games {
		ctx.report(ctx.writer.WriteGame(g))
	}

	if ctx.parquet != nil {
		ctx.report(ctx.parquet.WriteGame(game))
	}
	if ctx.cfg.Output.SVGDir != "" {
		file, err := diagram.WriteGameDiagram(ctx.cfg.Output.SVGDir, game, diagram.DefaultOptions(ctx.cfg.Output.SquareSize))
		if err == nil {
			ctx.stats.Diagrams++
			ctx.cfg.Logf(2, "wrote %s\n", file)
		}
		ctx.report(err)
	}
	ctx.stats.Written++
}

func (ctx *ProcessingContext) logValidation(game *chess.Game) {
	v := processing.ValidateGame(game)
	for _, msg := range v.ParseErrors {
		ctx.cfg.Logf(1, "game %d: %s\n", game.Number, msg)
	}
	if !v.Valid {
		ctx.cfg.Logf(1, "game %d: %s\n", game.Number, v.ErrorMsg)
	}
}

func (ctx *ProcessingContext) report(err error) {
	if err != nil {
		ctx.cfg.Logf(0, "Error: %v\n", err)
	}
}

// Close flushes the writers.
func (ctx *ProcessingContext) Close() error {
	var errs []error
	errs = append(errs, ctx.writer.Close())
	if ctx.dupWriter != nil {
		errs = append(errs, ctx.dupWriter.Close())
	}
	if ctx.parquet != nil {
		errs = append(errs, ctx.parquet.Close())
	}
	return errors.Join(errs...)
}

// Stats returns the counts so far.
func (ctx *ProcessingContext) Stats() Stats {
	return ctx.stats
}

// reportStatistics prints the final statistics to the log.
func reportStatistics(cfg *config.Config, s Stats) {
	if cfg.Duplicate.Suppress || cfg.Duplicate.DuplicateFile != nil {
		cfg.Logf(1, "%d game(s) output, %d duplicate(s), %d failed out of %d.\n", s.Written, s.Duplicates, s.Failed, s.Games)
		return
	}
	cfg.Logf(1, "%d game(s) output, %d failed out of %d.\n", s.Written, s.Failed, s.Games)
}

// errorSummary describes a failed run.
func errorSummary(s Stats) error {
	if s.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d game(s) failed", s.Failed, s.Games)
}
