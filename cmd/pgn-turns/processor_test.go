package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/pgn-turns-go/internal/config"
	"github.com/lgbarn/pgn-turns-go/internal/eco"
	"github.com/lgbarn/pgn-turns-go/internal/export"
	"github.com/lgbarn/pgn-turns-go/internal/matching"
)

// newTestContext returns a context writing to out and logging to log.
func newTestContext(t *testing.T, configure func(*config.Config)) (*ProcessingContext, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, log bytes.Buffer
	cfg := config.NewConfigBuilder().
		WithOutput(&out).
		WithLog(&log).
		WithVerbosity(2).
		Build()
	if configure != nil {
		configure(cfg)
	}
	pc, err := NewProcessingContext(cfg)
	require.NoError(t, err)
	return pc, &out, &log
}

func processFile(t *testing.T, pc *ProcessingContext, name string) {
	t.Helper()
	f, err := os.Open(inputFile(name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, pc.ProcessInput(context.Background(), f, name))
}

func TestProcessInput_PGN(t *testing.T) {
	pc, out, log := newTestContext(t, func(cfg *config.Config) {
		cfg.Output.Format = config.PGN
	})
	processFile(t, pc, "variations.pgn")
	require.NoError(t, pc.Close())

	assert.Equal(t, Stats{Games: 2, Written: 2}, pc.Stats())
	assert.Equal(t, 2, strings.Count(out.String(), "[Event "))
	assert.Contains(t, out.String(), "(1...c5 2.Nf3 (2.c3 d5) 2...d6)")
	assert.Contains(t, log.String(), "game 1: 3 variation(s), depth 2")
}

func TestProcessInput_Split(t *testing.T) {
	pc, out, _ := newTestContext(t, func(cfg *config.Config) {
		cfg.Output.Format = config.PGN
		cfg.Output.SplitVariations = true
	})
	processFile(t, pc, "variations.pgn")
	require.NoError(t, pc.Close())

	assert.Equal(t, 5, strings.Count(out.String(), "[Event "))
	assert.NotContains(t, out.String(), "(")
	assert.Equal(t, 2, pc.Stats().Written)
}

func TestProcessInput_Numbering(t *testing.T) {
	pc, out, _ := newTestContext(t, func(cfg *config.Config) {
		cfg.Output.Format = config.FEN
	})
	processFile(t, pc, "fischer-spassky-1992.pgn")
	processFile(t, pc, "variations.pgn")
	require.NoError(t, pc.Close())

	assert.Equal(t, 3, pc.Stats().Games)
	assert.True(t, strings.HasPrefix(out.String(), "1\t0\te4\t"))
	assert.Contains(t, out.String(), "\n3\t0\td4\t")
}

func TestProcessInput_Duplicates(t *testing.T) {
	game := "[Event \"A\"]\n\n1. e4 e5 2. Nf3 Nc6 *\n\n"
	transposed := "[Event \"B\"]\n\n1. Nf3 Nc6 2. e4 e5 *\n\n"
	other := "[Event \"C\"]\n\n1. d4 d5 *\n\n"

	var dups bytes.Buffer
	pc, out, log := newTestContext(t, func(cfg *config.Config) {
		cfg.Output.Format = config.PGN
		cfg.Duplicate.Suppress = true
		cfg.Duplicate.DuplicateFile = &dups
		cfg.Workers = 3
	})
	require.NoError(t, pc.ProcessInput(context.Background(), strings.NewReader(game+transposed+other), "dups.pgn"))
	require.NoError(t, pc.Close())

	assert.Equal(t, Stats{Games: 3, Written: 2, Duplicates: 1}, pc.Stats())
	assert.Contains(t, out.String(), `[Event "A"]`)
	assert.Contains(t, out.String(), `[Event "C"]`)
	assert.Contains(t, dups.String(), `[Event "B"]`)
	assert.Contains(t, log.String(), "game 2 duplicates game 1")
}

func TestProcessInput_Filter(t *testing.T) {
	pc, out, log := newTestContext(t, func(cfg *config.Config) {
		cfg.Output.Format = config.PGN
	})
	pc.filter = matching.NewGameFilter()
	require.NoError(t, pc.filter.Positions.AddFEN("rnbqkbnr/pp2pppp/8/2pp4/4P3/2P5/PP1P1PPP/RNBQKBNR w KQkq d6 0 3"))
	processFile(t, pc, "variations.pgn")
	require.NoError(t, pc.Close())

	assert.Equal(t, Stats{Games: 2, Written: 1, Skipped: 1}, pc.Stats())
	assert.Contains(t, out.String(), `[Event "Annotated"]`)
	assert.NotContains(t, out.String(), `[Event "Second"]`)
	assert.Contains(t, log.String(), "game 2 not selected")
}

func TestProcessInput_ECO(t *testing.T) {
	pc, out, _ := newTestContext(t, func(cfg *config.Config) {
		cfg.Output.Format = config.PGN
	})
	pc.eco = eco.NewClassifier()
	require.NoError(t, pc.eco.LoadFile(inputFile("eco.pgn")))
	pc.filter = matching.NewGameFilter()
	require.NoError(t, pc.filter.AddTag("ECO>=C00"))
	processFile(t, pc, "variations.pgn")
	require.NoError(t, pc.Close())

	assert.Equal(t, Stats{Games: 2, Written: 2}, pc.Stats())
	assert.Contains(t, out.String(), `[ECO "C70"]`)
	assert.Contains(t, out.String(), `[Variation "Morphy defence"]`)
	assert.Contains(t, out.String(), `[ECO "D20"]`)
	assert.Contains(t, out.String(), `[Variation "3.e4"]`)
}

func TestProcessInput_Errors(t *testing.T) {
	bad := "[Event \"Bad\"]\n\n1. e4 e5 2. Qh8 *\n\n"
	good := "[Event \"Good\"]\n\n1. d4 *\n\n"

	pc, out, log := newTestContext(t, func(cfg *config.Config) {
		cfg.Output.Format = config.PGN
	})
	require.NoError(t, pc.ProcessInput(context.Background(), strings.NewReader(bad+good), "mixed.pgn"))
	require.NoError(t, pc.Close())

	assert.Equal(t, Stats{Games: 2, Written: 1, Failed: 1}, pc.Stats())
	assert.Contains(t, log.String(), "Error: mixed.pgn, game 1, ply 3")
	assert.Contains(t, out.String(), `[Event "Good"]`)
	assert.EqualError(t, errorSummary(pc.Stats()), "1 of 2 game(s) failed")
}

func TestProcessInput_Validate(t *testing.T) {
	pc, _, log := newTestContext(t, nil)
	pc.validate = true
	require.NoError(t, pc.ProcessInput(context.Background(),
		strings.NewReader("[Event \"V\"]\n[Result \"1-0\"]\n\n1. e4 0-1\n"), "v.pgn"))
	require.NoError(t, pc.Close())

	assert.Contains(t, log.String(), "game 1: missing required tag: Site")
	assert.Contains(t, log.String(), "game 1: result tag 1-0 does not match movetext 0-1")
}

func TestProcessInput_SideOutputs(t *testing.T) {
	dir := t.TempDir()
	svgDir := filepath.Join(dir, "svg")
	require.NoError(t, os.Mkdir(svgDir, 0o755))
	parquetPath := filepath.Join(dir, "plies.parquet")

	pc, _, _ := newTestContext(t, func(cfg *config.Config) {
		cfg.Output.ParquetFile = parquetPath
		cfg.Output.SVGDir = svgDir
	})
	processFile(t, pc, "variations.pgn")
	require.NoError(t, pc.Close())

	assert.Equal(t, 2, pc.Stats().Diagrams)
	assert.FileExists(t, filepath.Join(svgDir, "game-0001.svg"))
	assert.FileExists(t, filepath.Join(svgDir, "game-0002.svg"))

	recs, err := export.ReadPositions(parquetPath, 1)
	require.NoError(t, err)
	assert.Len(t, recs, 25)
}

func TestReportStatistics(t *testing.T) {
	var log bytes.Buffer
	cfg := config.NewConfigBuilder().WithLog(&log).Build()

	reportStatistics(cfg, Stats{Games: 4, Written: 3, Failed: 1})
	assert.Equal(t, "3 game(s) output, 1 failed out of 4.\n", log.String())

	log.Reset()
	cfg.Duplicate.Suppress = true
	reportStatistics(cfg, Stats{Games: 4, Written: 2, Duplicates: 2})
	assert.Equal(t, "2 game(s) output, 2 duplicate(s), 0 failed out of 4.\n", log.String())

	log.Reset()
	cfg.Verbosity = 0
	reportStatistics(cfg, Stats{Games: 1})
	assert.Empty(t, log.String())
}
