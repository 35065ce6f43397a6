package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
	"github.com/lgbarn/pgn-turns-go/internal/parser"
	"github.com/lgbarn/pgn-turns-go/internal/processing"
	"github.com/lgbarn/pgn-turns-go/internal/testutil"
)

// TestMovetext_RoundTrip checks that the text kept on the turns of a tree
// rebuilds the normalized movetext it was parsed from.
func TestMovetext_RoundTrip(t *testing.T) {
	inputs := []string{
		"1. e4 e5 2. Nf3 Nc6 (2... d6 3. d4) 3. Bb5 *",
		"1.e4 {comment with (paren} e5 *",
		"1... e5 2. Nf3 Nc6",
		"1. d4 $1 d5 $2 2. c4 dxc4!? 3. e3 b5 4. a4 c6 1-0",
		"1. e4 ( 1. d4 d5 ( 1... Nf6 2. c4 ) 2. c4 ) 1... e5",
		"1. e4 e5\n2. Nf3\r\n{ note }  Nc6",
		"{a} {b} 1. e4 e5",
		"{game abandoned} *",
		"1. e4 {a} {b} 2. {c}",
		"e4 e5 Nf3 Nc6 Bb5 1-0",
	}

	for _, name := range []string{"variations.pgn", "fischer-spassky-1992.pgn"} {
		for _, g := range testutil.MustParseGames(t, testutil.ReadFixture(t, name)) {
			inputs = append(inputs, g.Movetext)
		}
	}

	for _, text := range inputs {
		game, err := parser.ParseGameText(text, nil)
		testutil.AssertNoError(t, err, text)
		got := GameMovetext(game)
		want := parser.NormalizeSpacing(text)
		if got != want {
			t.Errorf("Movetext(%q)\n got: %q\nwant: %q", text, got, want)
		}
		if again := parser.NormalizeSpacing(got); again != got {
			t.Errorf("Movetext output is not normalized: %q", got)
		}
	}
}

func TestOutputGame(t *testing.T) {
	game := testutil.MustParseGame(t, `
[Event "Test"]
[White "Fischer"]
[Black "Spassky"]
[Result "1-0"]
[ECO "C60"]
[Annotator "Me"]

1. e4 e5 2. Nf3 1-0
`)

	var buf bytes.Buffer
	if err := OutputGame(&buf, game, true); err != nil {
		t.Fatalf("OutputGame: %v", err)
	}

	want := `[Event "Test"]
[Site "?"]
[Date "?"]
[Round "?"]
[White "Fischer"]
[Black "Spassky"]
[Result "1-0"]
[Annotator "Me"]
[ECO "C60"]

1.e4 e5 2.Nf3 1-0

`
	testutil.AssertEqual(t, buf.String(), want)
}

func TestOutputGame_NoMoves(t *testing.T) {
	game := testutil.MustParseGame(t, "[Event \"Adjourned\"]\n\n{game abandoned} *\n")

	var buf bytes.Buffer
	if err := OutputGame(&buf, game, false); err != nil {
		t.Fatalf("OutputGame: %v", err)
	}
	testutil.AssertTrue(t, strings.HasSuffix(buf.String(), "\n\n{game abandoned} *\n\n"), buf.String())
}

func TestOutputGame_Escaping(t *testing.T) {
	game := chess.NewGame()
	game.SetTag(chess.EventTag, `He said "hi" \o/`)

	var buf bytes.Buffer
	if err := OutputGame(&buf, game, true); err != nil {
		t.Fatalf("OutputGame: %v", err)
	}
	testutil.AssertContains(t, buf.String(), `[Event "He said \"hi\" \\o/"]`)
	testutil.AssertTrue(t, strings.HasSuffix(buf.String(), "\n\n*\n\n"), "moveless game ends with its result")
}

func TestOutputGame_Wrapping(t *testing.T) {
	game := testutil.MustParseGame(t, testutil.ReadFixture(t, "fischer-spassky-1992.pgn"))

	var buf bytes.Buffer
	if err := OutputGame(&buf, game, true); err != nil {
		t.Fatalf("OutputGame: %v", err)
	}

	_, body, found := strings.Cut(buf.String(), "\n\n")
	if !found {
		t.Fatalf("no blank line after tags:\n%s", buf.String())
	}
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		if len(line) > MaxLineLength {
			t.Errorf("line longer than %d: %q", MaxLineLength, line)
		}
	}
	testutil.AssertEqual(t, strings.Fields(body), strings.Fields(parser.NormalizeSpacing(game.Movetext)))
}

func TestMainLineText(t *testing.T) {
	game := testutil.MustParseGame(t, "1. e4 e5 (1... c5 2. Nf3) 2. Nf3 *")

	testutil.AssertEqual(t, MainLineText(game.Turns), "1. e4 e5 2. Nf3 *")

	split := processing.SplitVariations(game)
	if len(split) != 2 {
		t.Fatalf("SplitVariations returned %d games; want 2", len(split))
	}

	var buf bytes.Buffer
	if err := OutputGame(&buf, split[1], false); err != nil {
		t.Fatalf("OutputGame: %v", err)
	}
	testutil.AssertContains(t, buf.String(), "\n\n1. e4 1... c5 2. Nf3 *\n\n")
}

func TestOtherTags(t *testing.T) {
	game := chess.NewGame()
	game.SetTag("WhiteElo", "2785")
	game.SetTag(chess.WhiteTag, "Fischer")
	game.SetTag("Annotator", "Me")
	game.SetTag("ECO", "C95")

	testutil.AssertEqual(t, otherTags(game), []string{"Annotator", "ECO", "WhiteElo"})
}

func TestOutputWriter_Wrap(t *testing.T) {
	var buf bytes.Buffer
	ow := NewOutputWriter(&buf, 10)
	for _, w := range []string{"1.e4", "e5", "2.Nf3", "Nc6"} {
		ow.Write(w)
	}
	ow.NewLine()

	testutil.AssertNoError(t, ow.Err())
	testutil.AssertEqual(t, buf.String(), "1.e4 e5\n2.Nf3 Nc6\n")
}
