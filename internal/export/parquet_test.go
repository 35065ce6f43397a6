package export

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/pgn-turns-go/internal/hashing"
	"github.com/lgbarn/pgn-turns-go/internal/testutil"
)

func TestRecords(t *testing.T) {
	game := testutil.MustParseGames(t, testutil.ReadFixture(t, "variations.pgn"))[0]

	recs := Records(game, "g1")
	require.Len(t, recs, 14)

	first := recs[0]
	assert.Equal(t, "g1", first.GameID)
	assert.Equal(t, int32(1), first.GameNumber)
	assert.Equal(t, "", first.Path)
	assert.Equal(t, int32(0), first.Ply)
	assert.Equal(t, "e4", first.SAN)
	assert.Equal(t, "white", first.Color)
	assert.Equal(t, game.Turns[0].FEN, first.FEN)
	assert.Equal(t, int64(hashing.PositionKey(game.Turns[0])), first.Zobrist)

	c5 := recs[2]
	assert.Equal(t, "1.0", c5.Path)
	assert.Equal(t, "c5", c5.SAN)
	assert.Equal(t, "black", c5.Color)
	assert.Equal(t, int32(1), c5.MoveNumber)
}

func TestRecords_SkipsUnresolved(t *testing.T) {
	game := testutil.MustParseGame(t, "1. e4 e5 *")
	game.Turns[1].Position = nil

	assert.Len(t, Records(game, "x"), 1)
}

func TestWriterRoundTrip(t *testing.T) {
	games := testutil.MustParseGames(t, testutil.ReadFixture(t, "variations.pgn"))
	path := filepath.Join(t.TempDir(), "plies.parquet")

	w, err := Create(path, 1)
	require.NoError(t, err)

	var ids []string
	for _, g := range games {
		id, err := w.WriteGameID(g)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	require.NoError(t, w.Close())
	assert.Equal(t, 14+11, w.Rows())

	for _, id := range ids {
		_, err := uuid.Parse(id)
		assert.NoError(t, err, "game id %q", id)
	}
	assert.NotEqual(t, ids[0], ids[1])

	recs, err := ReadPositions(path, 1)
	require.NoError(t, err)
	require.Len(t, recs, 25)

	assert.Equal(t, ids[0], recs[0].GameID)
	assert.Equal(t, "1.0/1.0", recs[4].Path)
	assert.Equal(t, "c3", recs[4].SAN)

	last := recs[len(recs)-1]
	assert.Equal(t, ids[1], last.GameID)
	assert.Equal(t, int32(2), last.GameNumber)
	assert.Equal(t, "Qf3", last.SAN)
	assert.Equal(t, games[1].LastTurn().FEN, last.FEN)
}

func TestWriter_FixedIDs(t *testing.T) {
	game := testutil.MustParseGame(t, "1. d4 d5 *")
	path := filepath.Join(t.TempDir(), "fixed.parquet")

	w, err := Create(path, 1)
	require.NoError(t, err)
	w.NewID = func() string { return "fixed" }
	require.NoError(t, w.WriteGame(game))
	require.NoError(t, w.Close())

	recs, err := ReadPositions(path, 1)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "fixed", recs[1].GameID)
	assert.Equal(t, "d5", recs[1].SAN)
	assert.Equal(t, int32(0), recs[1].Clock)
}
