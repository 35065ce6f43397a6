// Package config provides configuration for pgn-turns.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/pgn-turns-go/internal/errors"
)

// OutputFormat selects how resolved games are written.
type OutputFormat int

const (
	JSON OutputFormat = iota // Variation tree with positions
	PGN                      // Reconstructed PGN text
	FEN                      // One position per ply
)

var formatNames = map[string]OutputFormat{
	"json": JSON,
	"pgn":  PGN,
	"fen":  FEN,
}

// String returns the flag spelling of the format.
func (f OutputFormat) String() string {
	for name, v := range formatNames {
		if v == f {
			return name
		}
	}
	return "unknown"
}

// ParseOutputFormat maps a flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	if f, ok := formatNames[s]; ok {
		return f, nil
	}
	return JSON, fmt.Errorf("output format %q: %w", s, errors.ErrInvalidConfig)
}

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=game count, 2=running commentary

	Parse     *ParseConfig
	Output    *OutputConfig
	Duplicate *DuplicateConfig

	// Workers is the number of games resolved in parallel.
	Workers int

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Parse:      NewParseConfig(),
		Output:     NewOutputConfig(),
		Duplicate:  NewDuplicateConfig(),
		Workers:    1,
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the output stream.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Logf writes a log line when the verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c.LogFile == nil || c.Verbosity < level {
		return
	}
	fmt.Fprintf(c.LogFile, format, args...)
}

// Validate checks every sub-configuration.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers (%d) must be at least 1: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if err := c.Parse.Validate(); err != nil {
		return err
	}
	return c.Output.Validate()
}
