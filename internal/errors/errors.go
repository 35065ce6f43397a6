// Package errors provides sentinel errors and error types for pgn-turns.
// Structured types keep game and move context while allowing inspection
// with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
)

// Sentinel errors for common failure conditions.
var (
	// ErrUnresolvedMove indicates that no piece can reach a move's destination.
	ErrUnresolvedMove = errors.New("unresolved move")

	// ErrVariationDepth indicates variations nested deeper than allowed.
	ErrVariationDepth = errors.New("variation nesting too deep")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrParseFailure indicates a general PGN parsing error.
	ErrParseFailure = errors.New("parse failure")

	// ErrEmptyMovetext indicates a game without any move.
	ErrEmptyMovetext = errors.New("empty movetext")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDuplicateGame indicates a duplicate game was detected.
	ErrDuplicateGame = errors.New("duplicate game")
)

// Is and As re-export the standard helpers so callers need one import.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// MoveError reports a turn the resolver could not apply.
type MoveError struct {
	Err         error
	MoveNumber  int
	Colour      chess.Colour
	Move        string
	To          chess.Square
	RequireCol  chess.Col
	RequireRank chess.Rank
	PGN         string
}

// Error names the move, its destination and any disambiguator.
func (e *MoveError) Error() string {
	var b strings.Builder
	dots := "."
	if e.Colour == chess.Black {
		dots = "..."
	}
	fmt.Fprintf(&b, "%d%s%s", e.MoveNumber, dots, e.Move)
	if e.To.IsValid() {
		fmt.Fprintf(&b, ": no piece reaches %s", e.To)
	}
	if e.RequireCol != 0 {
		fmt.Fprintf(&b, " from file %c", e.RequireCol)
	}
	if e.RequireRank != 0 {
		fmt.Fprintf(&b, " from rank %c", e.RequireRank)
	}
	if e.PGN != "" {
		fmt.Fprintf(&b, " in %q", e.PGN)
	}
	if e.Err != nil {
		return fmt.Sprintf("%v: %s", e.Err, b.String())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// GameError wraps errors with game context, including game number,
// ply position, and move information.
type GameError struct {
	Err      error  // The underlying error
	GameNum  int    // 1-based game number in the file
	PlyNum   int    // Ply number where error occurred (0 if not applicable)
	MoveText string // The move text that caused the error (if applicable)
	File     string // Source file name (if known)
}

// Error returns a formatted error message including all available context.
func (e *GameError) Error() string {
	var parts []string
	if e.File != "" {
		parts = append(parts, e.File)
	}
	parts = append(parts, fmt.Sprintf("game %d", e.GameNum))
	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error.
func (e *GameError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing error with location context.
type ParseError struct {
	Err    error  // The underlying error
	File   string // Source file name
	Line   int    // Line number (1-based)
	Got    string // What was found
	Reason string
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string
	if e.File != "" {
		loc := e.File
		if e.Line > 0 {
			loc += fmt.Sprintf(":%d", e.Line)
		}
		parts = append(parts, loc)
	} else if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", e.Line))
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}
	if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %q", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}
	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
