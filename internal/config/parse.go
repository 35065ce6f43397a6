package config

import (
	"fmt"

	"github.com/lgbarn/pgn-turns-go/internal/errors"
)

// DefaultMaxVariationDepth bounds variation nesting.
const DefaultMaxVariationDepth = 64

// ParseConfig holds settings for building and resolving the turn tree.
type ParseConfig struct {
	// MaxVariationDepth is the deepest variation nesting accepted.
	MaxVariationDepth int

	// Lenient keeps going after an unresolved move: the rest of that line
	// is skipped and the errors are reported together.
	Lenient bool
}

// NewParseConfig creates a ParseConfig with default values.
func NewParseConfig() *ParseConfig {
	return &ParseConfig{
		MaxVariationDepth: DefaultMaxVariationDepth,
	}
}

// Validate checks that the parse configuration is valid.
func (p *ParseConfig) Validate() error {
	if p.MaxVariationDepth < 1 {
		return fmt.Errorf("max variation depth (%d) must be positive: %w",
			p.MaxVariationDepth, errors.ErrInvalidConfig)
	}
	return nil
}
