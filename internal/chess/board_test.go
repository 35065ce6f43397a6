package chess

import (
	"testing"
)

func TestNewInitialBoard(t *testing.T) {
	b := NewInitialBoard()

	if len(b.Pieces) != 32 {
		t.Fatalf("len(Pieces) = %d; want 32", len(b.Pieces))
	}

	t.Run("setup order", func(t *testing.T) {
		tests := []struct {
			index  int
			square string
			kind   Piece
			colour Colour
		}{
			{0, "a8", Rook, Black},
			{4, "e8", King, Black},
			{7, "h8", Rook, Black},
			{8, "a7", Pawn, Black},
			{15, "h7", Pawn, Black},
			{16, "a2", Pawn, White},
			{23, "h2", Pawn, White},
			{24, "a1", Rook, White},
			{27, "d1", Queen, White},
			{31, "h1", Rook, White},
		}
		for _, tt := range tests {
			p := b.Pieces[tt.index]
			if p.Square.String() != tt.square || p.Kind != tt.kind || p.Colour != tt.colour {
				t.Errorf("Pieces[%d] = %v %v on %s; want %v %v on %s",
					tt.index, p.Colour, p.Kind, p.Square, tt.colour, tt.kind, tt.square)
			}
		}
	})

	t.Run("start equals square", func(t *testing.T) {
		for i, p := range b.Pieces {
			if p.Start != p.Square {
				t.Errorf("Pieces[%d].Start = %s; want %s", i, p.Start, p.Square)
			}
			if p.ID != i {
				t.Errorf("Pieces[%d].ID = %d; want %d", i, p.ID, i)
			}
		}
	})
}

func TestBoardClone(t *testing.T) {
	b := NewInitialBoard()
	b.Pieces[16].Steps = []Square{MustSquare("a2"), MustSquare("a3")}

	c := b.Clone()
	c.Pieces[16].Square = MustSquare("a3")
	c.Pieces[16].Steps[1] = MustSquare("a4")
	c.Remove(0)

	if b.Pieces[16].Square != MustSquare("a2") {
		t.Errorf("original square changed to %s", b.Pieces[16].Square)
	}
	if b.Pieces[16].Steps[1] != MustSquare("a3") {
		t.Errorf("original steps changed to %v", b.Pieces[16].Steps)
	}
	if len(b.Pieces) != 32 {
		t.Errorf("original len = %d; want 32", len(b.Pieces))
	}
	if c.NextID != b.NextID {
		t.Errorf("clone NextID = %d; want %d", c.NextID, b.NextID)
	}
}

func TestBoardLookup(t *testing.T) {
	b := NewBoard()
	q := b.Place(Queen, White, MustSquare("b4"))
	b.Place(Pawn, Black, MustSquare("b7"))

	if got := b.IndexAt(MustSquare("b4")); got != q {
		t.Errorf("IndexAt(b4) = %d; want %d", got, q)
	}
	if !b.IsEmpty(MustSquare("c4")) {
		t.Error("IsEmpty(c4) = false; want true")
	}
	if p := b.At(MustSquare("b7")); p == nil || p.Kind != Pawn {
		t.Errorf("At(b7) = %v; want black pawn", p)
	}
	if got := b.Find(Pawn, Black); len(got) != 1 || got[0] != 1 {
		t.Errorf("Find(Pawn, Black) = %v; want [1]", got)
	}

	b.Remove(q)
	if got := b.IndexOf(1); got != 0 {
		t.Errorf("IndexOf(1) after remove = %d; want 0", got)
	}
}

func TestClearTransient(t *testing.T) {
	b := NewBoard()
	b.Place(Knight, White, MustSquare("g1"))
	b.Pieces[0].Before = MustSquare("g1")
	b.Pieces[0].Steps = []Square{MustSquare("g1"), MustSquare("f3")}

	b.ClearTransient()

	if b.Pieces[0].Before != NoSquare || b.Pieces[0].Steps != nil {
		t.Errorf("transient fields not cleared: %+v", b.Pieces[0])
	}
}

func TestSquareOffset(t *testing.T) {
	tests := []struct {
		from   string
		dc, dr int
		want   string
		ok     bool
	}{
		{"a1", 1, 0, "b1", true},
		{"a1", -1, 0, "", false},
		{"h8", 0, 1, "", false},
		{"d3", -2, 1, "b4", true},
		{"e1", 2, 0, "g1", true},
		{"b2", -1, -1, "a1", true},
		{"a2", 0, -2, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.from, func(t *testing.T) {
			got, ok := MustSquare(tt.from).Offset(tt.dc, tt.dr)
			if ok != tt.ok {
				t.Fatalf("Offset(%d, %d) ok = %v; want %v", tt.dc, tt.dr, ok, tt.ok)
			}
			if ok && got.String() != tt.want {
				t.Errorf("Offset(%d, %d) = %s; want %s", tt.dc, tt.dr, got, tt.want)
			}
		})
	}
}

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"e4", true},
		{"h8", true},
		{"i1", false},
		{"a9", false},
		{"e", false},
		{"e44", false},
	}
	for _, tt := range tests {
		if _, ok := ParseSquare(tt.in); ok != tt.ok {
			t.Errorf("ParseSquare(%q) ok = %v; want %v", tt.in, ok, tt.ok)
		}
	}
	if NoSquare.String() != "-" {
		t.Errorf("NoSquare.String() = %q; want \"-\"", NoSquare.String())
	}
}

func TestWalkPaths(t *testing.T) {
	inner := []*Turn{{MoveNumber: 2}}
	line := []*Turn{
		{MoveNumber: 1, Siblings: [][]*Turn{{{MoveNumber: 1, Siblings: [][]*Turn{inner}}}}},
		{MoveNumber: 1},
	}

	var paths []string
	Walk(line, func(path string, ply int, _ *Turn) bool {
		paths = append(paths, path+"#"+string(rune('0'+ply)))
		return true
	})

	want := []string{"#0", "0.0#0", "0.0/0.0#0", "#1"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v; want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q; want %q", i, paths[i], want[i])
		}
	}
	if got := CountTurns(line); got != 4 {
		t.Errorf("CountTurns = %d; want 4", got)
	}
}

func TestGameTags(t *testing.T) {
	g := NewGame()
	g.SetTag("Event", "Casual")
	g.SetTag("White", "Fischer")
	g.SetTag("Event", "Match")

	if got := g.GetTag("Event"); got != "Match" {
		t.Errorf("Event = %q; want Match", got)
	}
	if len(g.TagOrder) != 2 || g.TagOrder[0] != "Event" {
		t.Errorf("TagOrder = %v; want [Event White]", g.TagOrder)
	}
	if g.Result() != "*" {
		t.Errorf("Result() = %q; want *", g.Result())
	}
	g.SetTag(ResultTag, "1-0")
	if g.Result() != "1-0" {
		t.Errorf("Result() = %q; want 1-0", g.Result())
	}
}

func TestPlyPath(t *testing.T) {
	if got := PlyPath("", 4); got != "4" {
		t.Errorf("PlyPath(\"\", 4) = %q; want \"4\"", got)
	}
	if got := PlyPath(SiblingPath("", 3, 1), 2); got != "3.1:2" {
		t.Errorf("PlyPath = %q; want \"3.1:2\"", got)
	}
}

func TestFindTurn(t *testing.T) {
	inner := []*Turn{{Move: "c3"}, {Move: "d5"}}
	sicilian := []*Turn{{Move: "c5"}, {Move: "Nf3", Siblings: [][]*Turn{inner}}}
	line := []*Turn{{Move: "e4"}, {Move: "e5", Siblings: [][]*Turn{sicilian}}, {Move: "Nf3"}}

	tests := []struct {
		loc  string
		want string
	}{
		{"0", "e4"},
		{"2", "Nf3"},
		{"1.0:0", "c5"},
		{"1.0/1.0:1", "d5"},
		{"3", ""},
		{"1.1:0", ""},
		{"0.0:0", ""},
		{"1.0:x", ""},
		{"", ""},
	}
	for _, tt := range tests {
		got := FindTurn(line, tt.loc)
		switch {
		case tt.want == "" && got != nil:
			t.Errorf("FindTurn(%q) = %s; want nil", tt.loc, got.Move)
		case tt.want != "" && (got == nil || got.Move != tt.want):
			t.Errorf("FindTurn(%q) = %v; want %s", tt.loc, got, tt.want)
		}
	}

	Walk(line, func(path string, ply int, turn *Turn) bool {
		if got := FindTurn(line, PlyPath(path, ply)); got != turn {
			t.Errorf("FindTurn(PlyPath(%q, %d)) did not find %s", path, ply, turn.Move)
		}
		return true
	})
}
