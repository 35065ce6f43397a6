package eco

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lgbarn/pgn-turns-go/internal/errors"
	"github.com/lgbarn/pgn-turns-go/internal/testutil"
)

const testECOData = `
[ECO "B90"]
[Opening "Sicilian"]
[Variation "Najdorf"]

1. e4 c5 2. Nf3 d6 3. d4 cxd4 4. Nxd4 Nf6 5. Nc3 a6 *

[ECO "C50"]
[Opening "Giuoco Piano"]

1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 *

[ECO "D35"]
[Opening "QGD"]
[Variation "exchange variation"]

1. d4 d5 2. c4 e6 3. Nc3 Nf6 4. cxd5 exd5 *

[Event "no code"]

1. a3 *
`

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c := NewClassifier()
	testutil.AssertNoError(t, c.Load(strings.NewReader(testECOData)))
	return c
}

func TestLoad(t *testing.T) {
	c := newTestClassifier(t)
	testutil.AssertEqual(t, c.Len(), 3)

	// a repeated line is stored once
	testutil.AssertNoError(t, c.Load(strings.NewReader(testECOData)))
	testutil.AssertEqual(t, c.Len(), 3)
}

func TestLoad_BadLine(t *testing.T) {
	err := NewClassifier().Load(strings.NewReader("[ECO \"A00\"]\n\n1. e4 e5 2. Ke3 *\n"))
	testutil.AssertErrorIs(t, err, errors.ErrUnresolvedMove)
	testutil.AssertContains(t, err.Error(), "ECO line A00")
}

func TestLoadFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "eco.pgn")
	testutil.AssertNoError(t, os.WriteFile(name, []byte(testECOData), 0o600))

	c := NewClassifier()
	testutil.AssertNoError(t, c.LoadFile(name))
	testutil.AssertEqual(t, c.Len(), 3)
	testutil.AssertError(t, c.LoadFile(filepath.Join(t.TempDir(), "missing.pgn")))
}

func TestClassify(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name string
		pgn  string
		eco  string
		at   int
	}{
		{"exact line", "1. e4 c5 2. Nf3 d6 3. d4 cxd4 4. Nxd4 Nf6 5. Nc3 a6 *", "B90", 9},
		{"continued", "1. e4 c5 2. Nf3 d6 3. d4 cxd4 4. Nxd4 Nf6 5. Nc3 a6 6. Be2 e5 7. Nb3 *", "B90", 9},
		{"giuoco", "1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 4. c3 *", "C50", 5},
		{"transposed order", "1. d4 Nf6 2. c4 e6 3. Nc3 d5 4. cxd5 exd5 *", "D35", 7},
		{"transposed length", "1. Nf3 Nc6 2. Ng1 Nb8 3. e4 e5 4. Nf3 Nc6 5. Bc4 Bc5 *", "C50", 9},
		{"no match", "1. a3 *", "", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := testutil.MustParseGame(t, tt.pgn)
			e, at := c.Classify(game)
			testutil.AssertEqual(t, at, tt.at)
			if tt.eco == "" {
				testutil.AssertNil(t, e)
				return
			}
			testutil.AssertEqual(t, e.ECO, tt.eco)
		})
	}
}

func TestClassify_Unresolved(t *testing.T) {
	c := newTestClassifier(t)
	game := testutil.MustParseGame(t, "1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 *")
	game.Turns[2].Position = nil
	e, at := c.Classify(game)
	testutil.AssertNil(t, e)
	testutil.AssertEqual(t, at, -1)
}

func TestAddTags(t *testing.T) {
	c := newTestClassifier(t)

	game := testutil.MustParseGame(t, "[Event \"Club\"]\n\n1. d4 d5 2. c4 e6 3. Nc3 Nf6 4. cxd5 exd5 5. Bg5 *")
	testutil.AssertTrue(t, c.AddTags(game))
	testutil.AssertEqual(t, game.GetTag("ECO"), "D35")
	testutil.AssertEqual(t, game.GetTag("Opening"), "QGD")
	testutil.AssertEqual(t, game.GetTag("Variation"), "exchange variation")
	testutil.AssertFalse(t, game.HasTag("SubVariation"))

	plain := testutil.MustParseGame(t, "1. a3 *")
	testutil.AssertFalse(t, c.AddTags(plain))
	testutil.AssertFalse(t, plain.HasTag("ECO"))
}
