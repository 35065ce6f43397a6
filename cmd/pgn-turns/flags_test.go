package main

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/lgbarn/pgn-turns-go/internal/config"
	pterrors "github.com/lgbarn/pgn-turns-go/internal/errors"
)

func saveRestoreBool(ptr *bool, val bool) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt(ptr *int, val int) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreString(ptr *string, val string) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func TestApplyOutputFormatFlags(t *testing.T) {
	tests := []struct {
		name   string
		json   bool
		fen    bool
		format string
		want   config.OutputFormat
	}{
		{"default", false, false, "", config.JSON},
		{"W pgn", false, false, "pgn", config.PGN},
		{"W fen", false, false, "fen", config.FEN},
		{"F", false, true, "", config.FEN},
		{"J wins over W", true, false, "pgn", config.JSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer saveRestoreBool(jsonOutput, tt.json)()
			defer saveRestoreBool(fenOutput, tt.fen)()
			defer saveRestoreString(outputFormat, tt.format)()

			cfg := config.NewConfig()
			if err := applyOutputFormatFlags(cfg); err != nil {
				t.Fatalf("applyOutputFormatFlags: %v", err)
			}
			if cfg.Output.Format != tt.want {
				t.Errorf("Format = %v; want %v", cfg.Output.Format, tt.want)
			}
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		defer saveRestoreString(outputFormat, "xml")()
		err := applyOutputFormatFlags(config.NewConfig())
		if !errors.Is(err, pterrors.ErrInvalidConfig) {
			t.Errorf("err = %v; want ErrInvalidConfig", err)
		}
	})
}

func TestApplyOutputFlags(t *testing.T) {
	defer saveRestoreBool(withPieces, true)()
	defer saveRestoreBool(splitVars, true)()
	defer saveRestoreBool(compactJSON, true)()
	defer saveRestoreString(parquetFile, "plies.parquet")()
	defer saveRestoreString(svgDir, "svg")()
	defer saveRestoreInt(squareSize, 30)()

	cfg := config.NewConfig()
	applyOutputFlags(cfg)

	if !cfg.Output.IncludePieces || !cfg.Output.SplitVariations {
		t.Error("IncludePieces and SplitVariations should be set")
	}
	if cfg.Output.Indent != "" {
		t.Errorf("Indent = %q; want compact", cfg.Output.Indent)
	}
	if cfg.Output.ParquetFile != "plies.parquet" || cfg.Output.SVGDir != "svg" || cfg.Output.SquareSize != 30 {
		t.Errorf("side outputs = %q %q %d", cfg.Output.ParquetFile, cfg.Output.SVGDir, cfg.Output.SquareSize)
	}
}

func TestApplyFlags(t *testing.T) {
	t.Run("workers auto-detect", func(t *testing.T) {
		defer saveRestoreInt(workers, 0)()
		cfg := config.NewConfig()
		if err := applyFlags(cfg); err != nil {
			t.Fatalf("applyFlags: %v", err)
		}
		if cfg.Workers != runtime.NumCPU() {
			t.Errorf("Workers = %d; want %d", cfg.Workers, runtime.NumCPU())
		}
	})

	t.Run("quiet beats verbose", func(t *testing.T) {
		defer saveRestoreBool(quiet, true)()
		defer saveRestoreBool(verbose, true)()
		cfg := config.NewConfig()
		if err := applyFlags(cfg); err != nil {
			t.Fatalf("applyFlags: %v", err)
		}
		if cfg.Verbosity != 0 {
			t.Errorf("Verbosity = %d; want 0", cfg.Verbosity)
		}
	})

	t.Run("verbose", func(t *testing.T) {
		defer saveRestoreBool(verbose, true)()
		cfg := config.NewConfig()
		if err := applyFlags(cfg); err != nil {
			t.Fatalf("applyFlags: %v", err)
		}
		if cfg.Verbosity != 2 {
			t.Errorf("Verbosity = %d; want 2", cfg.Verbosity)
		}
	})

	t.Run("parse and duplicate flags", func(t *testing.T) {
		defer saveRestoreBool(lenient, true)()
		defer saveRestoreInt(maxDepth, 3)()
		defer saveRestoreBool(suppressDuplicates, true)()
		defer saveRestoreInt(duplicateCapacity, 100)()
		cfg := config.NewConfig()
		if err := applyFlags(cfg); err != nil {
			t.Fatalf("applyFlags: %v", err)
		}
		if !cfg.Parse.Lenient || cfg.Parse.MaxVariationDepth != 3 {
			t.Errorf("Parse = %+v", cfg.Parse)
		}
		if !cfg.Duplicate.Suppress || cfg.Duplicate.MaxCapacity != 100 {
			t.Errorf("Duplicate = %+v", cfg.Duplicate)
		}
	})

	t.Run("invalid depth", func(t *testing.T) {
		defer saveRestoreInt(maxDepth, 0)()
		if err := applyFlags(config.NewConfig()); !errors.Is(err, pterrors.ErrInvalidConfig) {
			t.Errorf("err = %v; want ErrInvalidConfig", err)
		}
	})
}

func TestBuildFilter(t *testing.T) {
	t.Run("no selection", func(t *testing.T) {
		f, err := buildFilter()
		if err != nil || f != nil {
			t.Errorf("buildFilter() = %v, %v; want nil, nil", f, err)
		}
	})

	t.Run("tags and positions", func(t *testing.T) {
		oldTags, oldFENs := tagCriteria, reachFENs
		defer func() { tagCriteria, reachFENs = oldTags, oldFENs }()
		tagCriteria = stringList{"White~Fischer", "Date>=1992"}
		reachFENs = stringList{"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"}
		defer saveRestoreBool(matchAny, true)()

		f, err := buildFilter()
		if err != nil {
			t.Fatalf("buildFilter: %v", err)
		}
		if len(f.Tags) != 2 || f.Positions.Len() != 1 || !f.MatchAny {
			t.Errorf("filter = %+v", f)
		}
	})

	t.Run("criteria file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "criteria.txt")
		if err := os.WriteFile(path, []byte("# players\nBlack ~ Spassky\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		defer saveRestoreString(criteriaFile, path)()

		f, err := buildFilter()
		if err != nil {
			t.Fatalf("buildFilter: %v", err)
		}
		if len(f.Tags) != 1 || f.Tags[0].Tag != "Black" {
			t.Errorf("filter tags = %+v", f.Tags)
		}
	})

	t.Run("bad criterion", func(t *testing.T) {
		old := tagCriteria
		defer func() { tagCriteria = old }()
		tagCriteria = stringList{"White"}
		if _, err := buildFilter(); !errors.Is(err, pterrors.ErrInvalidConfig) {
			t.Errorf("err = %v; want ErrInvalidConfig", err)
		}
	})
}
