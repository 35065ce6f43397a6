package parser

import (
	"io"
	"os"
	"strings"
	"testing"
)

func TestSplitGames(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"blank lines", "\n\n  \n", 0},
		{"single game", "[Event \"a\"]\n\n1. e4 e5 1-0\n", 1},
		{"two games with results", "[Event \"a\"]\n1. e4 1-0\n\n[Event \"b\"]\n1. d4 0-1\n", 2},
		{"no results", "[Event \"a\"]\n1. e4\n[Event \"b\"]\n1. d4\n", 2},
		{"result inside comment", "[Event \"a\"]\n1. e4 {ends with 1-0\nstill a comment} e5 *\n", 1},
		{"movetext only", "1. e4 e5 *\n1. d4 d5 *\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			games, err := SplitGames(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("SplitGames: %v", err)
			}
			if len(games) != tt.want {
				t.Errorf("len(games) = %d, want %d: %q", len(games), tt.want, games)
			}
		})
	}
}

func TestSplitGames_File(t *testing.T) {
	f, err := os.Open("../../testdata/infiles/variations.pgn")
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	games, err := SplitGames(f)
	if err != nil {
		t.Fatalf("SplitGames: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("len(games) = %d, want 2", len(games))
	}
	if !strings.Contains(games[0], "{Petroff}") {
		t.Errorf("first game lost its movetext: %q", games[0])
	}
	if !strings.Contains(games[1], `[Event "Second"]`) {
		t.Errorf("second game = %q, want the Second event", games[1])
	}
}

func TestNewReader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"utf8 unchanged", "[White \"Müller\"]", "[White \"Müller\"]"},
		{"byte order mark", "\xef\xbb\xbf1. e4", "1. e4"},
		{"windows-1252", "[White \"M\xfcller\"]", "[White \"Müller\"]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("NewReader: %v", err)
			}
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("NewReader = %q, want %q", got, tt.want)
			}
		})
	}
}
