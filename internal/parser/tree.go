package parser

import (
	"strings"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
	"github.com/lgbarn/pgn-turns-go/internal/config"
	"github.com/lgbarn/pgn-turns-go/internal/errors"
)

// TreeBuilder expands variation blocks into sibling lines.
type TreeBuilder struct {
	// MaxDepth is the deepest nesting accepted; the main line is depth 0.
	MaxDepth int

	// StartNumber and StartColour number a main line that opens without a
	// move number.
	StartNumber int
	StartColour chess.Colour
}

// NewTreeBuilder creates a builder with the given depth limit.
func NewTreeBuilder(maxDepth int) *TreeBuilder {
	return &TreeBuilder{
		MaxDepth:    maxDepth,
		StartNumber: 1,
		StartColour: chess.White,
	}
}

// BuildVariationTree parses ply lines into the main line, with every
// parenthesised variation attached to the turn it replaces.
func BuildVariationTree(lines []string) ([]*chess.Turn, error) {
	return NewTreeBuilder(config.DefaultMaxVariationDepth).Build(lines)
}

// Build parses ply lines into a turn tree.
func (b *TreeBuilder) Build(lines []string) ([]*chess.Turn, error) {
	return b.build(lines, nil, 0)
}

func (b *TreeBuilder) build(lines []string, parent *chess.Turn, depth int) ([]*chess.Turn, error) {
	if depth > b.MaxDepth {
		return nil, errors.Wrapf(errors.ErrVariationDepth, "depth %d exceeds %d", depth, b.MaxDepth)
	}

	turns := lineTurns(lines)
	if parent != nil {
		numberTurns(turns, parent.MoveNumber, parent.Colour)
	} else {
		numberTurns(turns, b.StartNumber, b.StartColour)
	}

	for _, t := range turns {
		for _, tok := range t.Sequence {
			if !strings.HasPrefix(tok, "(") {
				continue
			}
			sibling, err := b.build(TokenizeLines(variationBody(tok)), t, depth+1)
			if err != nil {
				return nil, err
			}
			if len(sibling) > 0 {
				t.Siblings = append(t.Siblings, sibling)
			}
		}
	}
	return turns, nil
}

// variationBody strips the outer parentheses of a variation token.
func variationBody(tok string) string {
	tok = strings.TrimPrefix(tok, "(")
	return strings.TrimSuffix(tok, ")")
}
