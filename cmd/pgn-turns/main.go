// pgn-turns parses PGN games into turn trees and records the board after
// every move of the main line and of each variation.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/lgbarn/pgn-turns-go/internal/config"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("pgn-turns-go version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Set up logging and output files
	setupLogFile(cfg)
	setupOutputFile(cfg)
	setupDuplicateFile(cfg)
	setupSVGDir(cfg)

	pc, err := NewProcessingContext(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	pc.validate = *validate
	if pc.eco, err = loadClassifier(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if pc.filter, err = buildFilter(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runErr := processAllInputs(ctx, pc, flag.Args())
	if err := pc.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !*quiet {
		reportStatistics(cfg, pc.Stats())
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
	if errorSummary(pc.Stats()) != nil {
		os.Exit(1)
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFile = file
}

// setupDuplicateFile configures the duplicate output file.
func setupDuplicateFile(cfg *config.Config) {
	if *duplicateFile == "" {
		return
	}
	file, err := os.Create(*duplicateFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating duplicate file %s: %v\n", *duplicateFile, err)
		os.Exit(1)
	}
	cfg.Duplicate.DuplicateFile = file
}

// setupSVGDir creates the diagram directory.
func setupSVGDir(cfg *config.Config) {
	if cfg.Output.SVGDir == "" {
		return
	}
	if err := os.MkdirAll(cfg.Output.SVGDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating diagram directory %s: %v\n", cfg.Output.SVGDir, err)
		os.Exit(1)
	}
}

// processAllInputs processes all input files or stdin.
func processAllInputs(ctx context.Context, pc *ProcessingContext, args []string) error {
	if len(args) == 0 {
		return pc.ProcessInput(ctx, os.Stdin, "stdin")
	}

	for _, filename := range args {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening file %s: %v\n", filename, err)
			continue
		}
		err = pc.ProcessInput(ctx, file, filename)
		file.Close() //nolint:errcheck,gosec // G104: read-only file
		if err != nil {
			return err
		}
	}
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: pgn-turns [options] [input-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Parses PGN games into turn trees with the position after every move.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nOutput formats (-W):\n")
	fmt.Fprintf(os.Stderr, "  json   Turn tree with FEN and moved squares (default)\n")
	fmt.Fprintf(os.Stderr, "  pgn    Reconstructed PGN\n")
	fmt.Fprintf(os.Stderr, "  fen    One line per ply: game, path, move, FEN\n")
	fmt.Fprintf(os.Stderr, "\nSelection (-t, -reach, -T):\n")
	fmt.Fprintf(os.Stderr, "  -t 'White~Fischer' -t 'Date>=1992.11'   tag criteria, all must hold (-any: one)\n")
	fmt.Fprintf(os.Stderr, "  -reach '<FEN>'                           position reached in any line\n")
}
