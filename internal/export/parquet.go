// Package export writes the positions of resolved games to a parquet table,
// one row per ply with variations included.
package export

import (
	"github.com/google/uuid"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
	"github.com/lgbarn/pgn-turns-go/internal/errors"
	"github.com/lgbarn/pgn-turns-go/internal/hashing"
)

// PositionRecord is one resolved ply.
type PositionRecord struct {
	GameID     string `parquet:"name=game_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	GameNumber int32  `parquet:"name=game_number, type=INT32"`
	Path       string `parquet:"name=path, type=BYTE_ARRAY, convertedtype=UTF8"`
	Ply        int32  `parquet:"name=ply, type=INT32"`
	MoveNumber int32  `parquet:"name=move_number, type=INT32"`
	Color      string `parquet:"name=color, type=BYTE_ARRAY, convertedtype=UTF8"`
	SAN        string `parquet:"name=san, type=BYTE_ARRAY, convertedtype=UTF8"`
	FEN        string `parquet:"name=fen, type=BYTE_ARRAY, convertedtype=UTF8"`
	Clock      int32  `parquet:"name=halfmove_clock, type=INT32"`
	Zobrist    int64  `parquet:"name=zobrist, type=INT64"`
}

// Records flattens the resolved turns of a game in tree order. Unresolved
// turns are skipped.
func Records(game *chess.Game, gameID string) []PositionRecord {
	var out []PositionRecord
	chess.Walk(game.Turns, func(path string, ply int, t *chess.Turn) bool {
		if !t.Resolved() {
			return true
		}
		color := "white"
		if t.Colour == chess.Black {
			color = "black"
		}
		out = append(out, PositionRecord{
			GameID:     gameID,
			GameNumber: int32(game.Number),
			Path:       path,
			Ply:        int32(ply),
			MoveNumber: int32(t.MoveNumber),
			Color:      color,
			SAN:        t.Move,
			FEN:        t.FEN,
			Clock:      int32(t.HalfmoveClock),
			Zobrist:    int64(hashing.PositionKey(t)),
		})
		return true
	})
	return out
}

// Writer appends game positions to a parquet file. It satisfies the
// output.GameWriter interface.
type Writer struct {
	file    source.ParquetFile
	pw      *writer.ParquetWriter
	rows    int
	pending int

	// NewID names each written game. It defaults to a random UUID.
	NewID func() string
}

// Create opens path for writing. parallel is the number of goroutines the
// parquet encoder may use.
func Create(path string, parallel int64) (*Writer, error) {
	file, err := local.NewLocalFileWriter(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", path)
	}
	pw, err := writer.NewParquetWriter(file, new(PositionRecord), parallel)
	if err != nil {
		file.Close()
		return nil, errors.Wrap(err, "parquet schema")
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	return &Writer{file: file, pw: pw, NewID: uuid.NewString}, nil
}

// WriteGame appends one row per resolved ply of game.
func (w *Writer) WriteGame(game *chess.Game) error {
	_, err := w.WriteGameID(game)
	return err
}

// WriteGameID is WriteGame returning the id given to the game.
func (w *Writer) WriteGameID(game *chess.Game) (string, error) {
	id := w.NewID()
	for _, rec := range Records(game, id) {
		if err := w.pw.Write(rec); err != nil {
			return id, errors.Wrapf(err, "game %d", game.Number)
		}
		w.rows++
		w.pending++
	}
	return id, nil
}

// Rows returns the number of rows written so far.
func (w *Writer) Rows() int {
	return w.rows
}

// Flush ends the current row group, if any row was written since the last
// one.
func (w *Writer) Flush() error {
	if w.pending == 0 {
		return nil
	}
	w.pending = 0
	return w.pw.Flush(true)
}

// Close writes the footer and closes the file.
func (w *Writer) Close() error {
	if err := w.pw.WriteStop(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// ReadPositions loads every row of a file written by Writer.
func ReadPositions(path string, parallel int64) ([]PositionRecord, error) {
	file, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	pr, err := reader.NewParquetReader(file, new(PositionRecord), parallel)
	if err != nil {
		return nil, err
	}
	defer pr.ReadStop()

	records := make([]PositionRecord, int(pr.GetNumRows()))
	if len(records) == 0 {
		return nil, nil
	}
	if err := pr.Read(&records); err != nil {
		return nil, err
	}
	return records, nil
}
