// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"os"
	"runtime"
	"strings"

	"github.com/lgbarn/pgn-turns-go/internal/config"
	"github.com/lgbarn/pgn-turns-go/internal/eco"
	"github.com/lgbarn/pgn-turns-go/internal/matching"
)

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ", ") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

var (
	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	outputFormat = flag.String("W", "", "Output format: json, pgn, fen")
	jsonOutput   = flag.Bool("J", false, "Output the turn tree as JSON (default)")
	fenOutput    = flag.Bool("F", false, "Output one FEN line per ply")
	withPieces   = flag.Bool("pieces", false, "Include the piece list of every position in JSON output")
	compactJSON  = flag.Bool("compact", false, "Write JSON without indentation")
	splitVars    = flag.Bool("split", false, "Output each variation as a separate game")

	// Side outputs
	parquetFile = flag.String("parquet", "", "Write every resolved ply to this parquet file")
	svgDir      = flag.String("svgdir", "", "Write an SVG diagram of each final position to this directory")
	squareSize  = flag.Int("square", 45, "Diagram square size in pixels")

	// Resolution
	lenient  = flag.Bool("lenient", false, "Keep games with unresolved moves, skipping the rest of the line")
	maxDepth = flag.Int("depth", config.DefaultMaxVariationDepth, "Maximum variation nesting depth")
	validate = flag.Bool("validate", false, "Report missing tags and result mismatches")

	// Classification and selection
	ecoFile      = flag.String("e", "", "Add ECO, Opening and Variation tags from this ECO file")
	criteriaFile = flag.String("T", "", "Read tag criteria and FEN targets from this file")
	matchAny     = flag.Bool("any", false, "Select games matching any tag criterion instead of all")

	// Duplicate detection
	suppressDuplicates = flag.Bool("D", false, "Suppress duplicate games")
	duplicateFile      = flag.String("d", "", "Output duplicates to this file")
	duplicateCapacity  = flag.Int("duplicate-capacity", 0, "Maximum duplicate hash table entries (0 = unlimited)")

	// Logging
	logFile = flag.String("l", "", "Write diagnostics to log file")
	quiet   = flag.Bool("s", false, "Silent mode (no game count)")
	verbose = flag.Bool("v", false, "Log a line for every game")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
	workers = flag.Int("workers", 0, "Number of worker threads (0 = auto-detect based on CPU cores)")
)

var (
	tagCriteria stringList
	reachFENs   stringList
)

func init() {
	flag.Var(&tagCriteria, "t", "Select games by tag, e.g. -t 'White~Fischer' (repeatable)")
	flag.Var(&reachFENs, "reach", "Select games reaching this FEN on any line (repeatable)")
}

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) error {
	if err := applyOutputFormatFlags(cfg); err != nil {
		return err
	}
	applyOutputFlags(cfg)
	applyParseFlags(cfg)
	applyDuplicateFlags(cfg)

	cfg.Workers = *workers
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
	return cfg.Validate()
}

// applyOutputFormatFlags configures the output format. -J and -F win
// over -W.
func applyOutputFormatFlags(cfg *config.Config) error {
	switch {
	case *jsonOutput:
		cfg.Output.Format = config.JSON
	case *fenOutput:
		cfg.Output.Format = config.FEN
	case *outputFormat != "":
		format, err := config.ParseOutputFormat(*outputFormat)
		if err != nil {
			return err
		}
		cfg.Output.Format = format
	}
	return nil
}

// applyOutputFlags configures content and side outputs.
func applyOutputFlags(cfg *config.Config) {
	cfg.Output.IncludePieces = *withPieces
	cfg.Output.SplitVariations = *splitVars
	cfg.Output.ParquetFile = *parquetFile
	cfg.Output.SVGDir = *svgDir
	cfg.Output.SquareSize = *squareSize
	if *compactJSON {
		cfg.Output.Indent = ""
	}
}

// applyParseFlags configures move resolution.
func applyParseFlags(cfg *config.Config) {
	cfg.Parse.MaxVariationDepth = *maxDepth
	cfg.Parse.Lenient = *lenient
}

// applyDuplicateFlags configures duplicate detection settings.
func applyDuplicateFlags(cfg *config.Config) {
	cfg.Duplicate.Suppress = *suppressDuplicates
	cfg.Duplicate.MaxCapacity = *duplicateCapacity
}

// buildFilter returns the game filter the selection flags describe, or
// nil when there is none.
func buildFilter() (*matching.GameFilter, error) {
	f := matching.NewGameFilter()
	f.MatchAny = *matchAny
	for _, c := range tagCriteria {
		if err := f.AddTag(c); err != nil {
			return nil, err
		}
	}
	for _, fen := range reachFENs {
		if err := f.Positions.AddFEN(fen); err != nil {
			return nil, err
		}
	}
	if *criteriaFile != "" {
		file, err := os.Open(*criteriaFile)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		if err := f.Load(file); err != nil {
			return nil, err
		}
	}
	if f.Empty() {
		return nil, nil
	}
	return f, nil
}

// loadClassifier loads the -e ECO file, or returns nil without one.
func loadClassifier() (*eco.Classifier, error) {
	if *ecoFile == "" {
		return nil, nil
	}
	c := eco.NewClassifier()
	if err := c.LoadFile(*ecoFile); err != nil {
		return nil, err
	}
	return c, nil
}
