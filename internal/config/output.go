package config

import (
	"fmt"

	"github.com/lgbarn/pgn-turns-go/internal/errors"
)

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// Format specifies the main output format.
	Format OutputFormat

	// IncludePieces adds the full piece list of every snapshot to JSON output.
	IncludePieces bool

	// Indent is the JSON indent string; empty writes compact JSON.
	Indent string

	// ParquetFile, when set, receives one row per resolved ply.
	ParquetFile string

	// SVGDir, when set, receives a diagram of each game's final position.
	SVGDir string

	// SquareSize is the edge length of one diagram square in pixels.
	SquareSize int

	// SplitVariations writes every line of a game as a game of its own.
	SplitVariations bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:     JSON,
		Indent:     "  ",
		SquareSize: 45,
	}
}

// Validate checks that the output configuration is valid.
func (o *OutputConfig) Validate() error {
	if o.SquareSize < 8 {
		return fmt.Errorf("square size (%d) must be at least 8: %w", o.SquareSize, errors.ErrInvalidConfig)
	}
	return nil
}
