package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
	pgnerrors "github.com/lgbarn/pgn-turns-go/internal/errors"
)

// Only success paths can run here: failing assertions would fail this test.

func TestAssertEqual_Success(t *testing.T) {
	AssertEqual(t, "hello", "hello")
	AssertEqual(t, 42, 42)
	AssertEqual(t, []int{1, 2, 3}, []int{1, 2, 3})
	AssertEqual(t, nil, nil)
	AssertEqual(t, []string{}, []string(nil), "empty and nil slices compare equal")
}

func TestAssertEqual_Squares(t *testing.T) {
	AssertEqual(t, chess.MustSquare("e4"), chess.Sq('e', '4'))
	AssertEqual(t, []chess.Square{chess.MustSquare("a1")}, []chess.Square{chess.Sq('a', '1')}, "path of %s", "a1")
}

func TestAssertNoError_Success(t *testing.T) {
	AssertNoError(t, nil)
	AssertNoError(t, nil, "operation should succeed")
}

func TestAssertError_Success(t *testing.T) {
	AssertError(t, errors.New("test error"))
	AssertError(t, errors.New("test"), "expected error from %s", "operation")
}

func TestAssertErrorIs_Success(t *testing.T) {
	err := fmt.Errorf("game 2: %w", pgnerrors.ErrUnresolvedMove)
	AssertErrorIs(t, err, pgnerrors.ErrUnresolvedMove)
	AssertErrorIs(t, pgnerrors.Join(errors.New("x"), err), pgnerrors.ErrUnresolvedMove, "joined")
}

func TestAssertContains_Success(t *testing.T) {
	AssertContains(t, "hello world", "world")
	AssertContains(t, "test", "")
}

func TestAssertTrueFalse_Success(t *testing.T) {
	AssertTrue(t, len("hello") == 5)
	AssertFalse(t, len("hello") == 0)
}

func TestAssertNil_Success(t *testing.T) {
	var p *chess.Board
	AssertNil(t, p)
	AssertNil(t, nil)
}

func TestAssertMoves_Success(t *testing.T) {
	line := []*chess.Turn{{Move: "e4"}, {Move: "e5"}}
	AssertMoves(t, line, "e4", "e5")
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, ""},
		{"single string", []interface{}{"hello"}, "hello"},
		{"single int", []interface{}{42}, "42"},
		{"format string", []interface{}{"hello %s", "world"}, "hello world"},
		{"format multiple", []interface{}{"%s %d %s", "test", 42, "end"}, "test 42 end"},
		{"non-string first", []interface{}{7, "x"}, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatMessage(tt.args...)
			if got != tt.want {
				t.Errorf("formatMessage(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
