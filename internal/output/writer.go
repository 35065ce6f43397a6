package output

import (
	"io"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
	"github.com/lgbarn/pgn-turns-go/internal/config"
)

// GameWriter is the interface for writing games to output.
// Different implementations handle different output formats (PGN, JSON, etc.).
type GameWriter interface {
	// WriteGame writes a single game to the output.
	WriteGame(game *chess.Game) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewGameWriter returns the writer for the configured output format.
func NewGameWriter(w io.Writer, cfg *config.Config) GameWriter {
	switch cfg.Output.Format {
	case config.PGN:
		return NewPGNWriter(w, cfg)
	case config.FEN:
		return NewFENWriter(w)
	default:
		return NewJSONWriter(w, cfg)
	}
}

// PGNWriter writes games in PGN format.
type PGNWriter struct {
	w          io.Writer
	variations bool
}

// NewPGNWriter creates a new PGN writer. Variations are written unless the
// config splits them into games of their own.
func NewPGNWriter(w io.Writer, cfg *config.Config) *PGNWriter {
	return &PGNWriter{
		w:          w,
		variations: cfg == nil || !cfg.Output.SplitVariations,
	}
}

// WriteGame writes a game in PGN format.
func (pw *PGNWriter) WriteGame(game *chess.Game) error {
	return OutputGame(pw.w, game, pw.variations)
}

// Flush flushes the PGN writer (no-op for PGN as it writes immediately).
func (pw *PGNWriter) Flush() error {
	return nil
}

// Close closes the PGN writer.
func (pw *PGNWriter) Close() error {
	return nil
}

// JSONWriter writes games in JSON format.
// It buffers games and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	cfg    *config.Config
	games  []*JSONGame
	single bool // If true, write each game immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches games and writes them as an array on Close().
func NewJSONWriter(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:   w,
		cfg: cfg,
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately.
func NewJSONWriterSingle(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:      w,
		cfg:    cfg,
		single: true,
	}
}

// WriteGame buffers a game for JSON output (or writes immediately in single mode).
// The game is converted at once, so it may change afterwards.
func (jw *JSONWriter) WriteGame(game *chess.Game) error {
	jg := GameToJSON(game, jw.cfg)
	if jw.single {
		return EncodeJSON(jw.w, jg, jw.cfg)
	}
	jw.games = append(jw.games, jg)
	return nil
}

// Flush writes all buffered games as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.games) == 0 {
		return nil
	}
	err := EncodeJSON(jw.w, &JSONOutput{Games: jw.games}, jw.cfg)
	jw.games = jw.games[:0]
	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}

// FENWriter writes one line per resolved ply.
type FENWriter struct {
	w io.Writer
}

// NewFENWriter creates a new FEN writer.
func NewFENWriter(w io.Writer) *FENWriter {
	return &FENWriter{w: w}
}

// WriteGame writes the positions of a game.
func (fw *FENWriter) WriteGame(game *chess.Game) error {
	return WriteFENLines(fw.w, game)
}

// Flush is a no-op; lines are written immediately.
func (fw *FENWriter) Flush() error {
	return nil
}

// Close closes the FEN writer.
func (fw *FENWriter) Close() error {
	return nil
}
