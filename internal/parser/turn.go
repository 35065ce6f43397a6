package parser

import (
	"strings"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
)

// ParseTurn builds the turns written on one ply line, one per move token.
// A numbered line holds one move for each side; import-format movetext
// without move numbers may put a whole game on one line. A line without
// any move yields nil.
//
// A line with no move number gets MoveNumber 0; the tree builder fills it
// in from the surrounding line.
func ParseTurn(line string) []*chess.Turn {
	toks := splitPly(line)

	number, colour := plyMarker(toks)

	var moves []int
	for i, t := range toks {
		if isCoordinateLike(t.Text) {
			moves = append(moves, i)
		}
	}
	if len(moves) == 0 {
		return nil
	}

	texts := make([]string, len(toks))
	for i, t := range toks {
		texts[i] = t.Text
	}

	turns := make([]*chess.Turn, len(moves))
	for k, at := range moves {
		first, last := at, len(toks)
		from, to := toks[at].Offset, len(line)
		if k == 0 {
			first, from = 0, 0
		}
		if k+1 < len(moves) {
			last, to = moves[k+1], toks[moves[k+1]].Offset
		}

		t := newTurn(number, colour, toks[at].Text)
		t.Sequence = append([]string(nil), texts[first:last]...)
		t.PGN = line[from:to]
		turns[k] = t

		if colour == chess.Black && number > 0 {
			number++
		}
		colour = colour.Opposite()
	}
	return turns
}

// ParseTurns parses each line and numbers the result as a line starting
// with white's first move.
func ParseTurns(lines []string) []*chess.Turn {
	turns := lineTurns(lines)
	numberTurns(turns, 1, chess.White)
	return turns
}

// lineTurns parses ply lines into turns. A line without a move is kept on
// a neighbour: before the first move it leads the next turn, afterwards
// it trails the turn before it.
func lineTurns(lines []string) []*chess.Turn {
	var (
		turns   []*chess.Turn
		pending []string
	)
	for _, line := range lines {
		parsed := ParseTurn(line)
		if len(parsed) == 0 {
			if len(turns) == 0 {
				pending = append(pending, line)
				continue
			}
			last := turns[len(turns)-1]
			last.Sequence = append(last.Sequence, TokenizePly(line)...)
			last.PGN = strings.TrimRight(last.PGN, " ") + " " + line
			continue
		}
		if len(pending) > 0 {
			lead := strings.Join(pending, " ")
			first := parsed[0]
			first.Sequence = append(TokenizePly(lead), first.Sequence...)
			first.PGN = lead + " " + first.PGN
			pending = nil
		}
		turns = append(turns, parsed...)
	}
	return turns
}

// plyMarker finds the move number token. "N..." means black moves first.
func plyMarker(toks []Token) (int, chess.Colour) {
	for _, t := range toks {
		if opensBracket(t.Text) {
			continue
		}
		dot := strings.IndexByte(t.Text, '.')
		if dot < 1 {
			continue
		}
		n, ok := parseMoveNumber(t.Text[:dot])
		if !ok {
			continue
		}
		if t.Text == t.Text[:dot]+"..." {
			return n, chess.Black
		}
		return n, chess.White
	}
	return 0, chess.White
}

// numberTurns gives unnumbered turns the number and colour that follow
// from the turn before them, starting from number and colour.
func numberTurns(turns []*chess.Turn, number int, colour chess.Colour) {
	for _, t := range turns {
		if t.MoveNumber == 0 {
			t.MoveNumber, t.Colour = number, colour
		}
		number, colour = t.MoveNumber, t.Colour.Opposite()
		if t.Colour == chess.Black {
			number++
		}
	}
}

// newTurn decomposes a move token. Fields are taken off the front or
// matched in a fixed order: piece letter, castling, capture, check, mate,
// promotion, then a file or rank disambiguator.
func newTurn(number int, colour chess.Colour, move string) *chess.Turn {
	t := &chess.Turn{
		MoveNumber: number,
		Colour:     colour,
		Piece:      chess.Pawn,
		Move:       move,
	}

	s := strings.TrimRight(move, "!?")
	t.Suffix = move[len(s):]

	if s != "" {
		if p := chess.PieceFromLetter(s[0]); p != chess.Empty {
			t.Piece = p
			s = s[1:]
		}
	}

	switch {
	case strings.Contains(s, "O-O-O"):
		t.QueensideCastle = true
		s = strings.Replace(s, "O-O-O", "", 1)
	case strings.Contains(s, "0-0-0"):
		t.QueensideCastle = true
		s = strings.Replace(s, "0-0-0", "", 1)
	case strings.Contains(s, "O-O"):
		t.KingsideCastle = true
		s = strings.Replace(s, "O-O", "", 1)
	case strings.Contains(s, "0-0"):
		t.KingsideCastle = true
		s = strings.Replace(s, "0-0", "", 1)
	}
	if t.IsCastle() {
		t.Piece = chess.King
	}

	if strings.Contains(s, "x") {
		t.Capturing = true
		s = strings.Replace(s, "x", "", 1)
	}
	if strings.Contains(s, "+") {
		t.Check = true
		s = strings.Replace(s, "+", "", 1)
	}
	if strings.Contains(s, "#") {
		t.Checkmate = true
		s = strings.Replace(s, "#", "", 1)
	}

	if i := strings.IndexByte(s, '='); i >= 0 {
		t.Promoted = true
		t.PromotedTo = chess.Queen
		if rest := strings.TrimSpace(s[i+1:]); rest != "" {
			if p := chess.PieceFromLetter(strings.ToUpper(rest)[0]); p != chess.Empty {
				t.PromotedTo = p
			}
		}
		s = s[:i]
	} else if t.Piece == chess.Pawn && len(s) >= 3 && isPromotionRank(s[len(s)-2]) {
		if p := chess.PieceFromLetter(s[len(s)-1]); p != chess.Empty && p != chess.Pawn && p != chess.King {
			t.Promoted = true
			t.PromotedTo = p
			s = s[:len(s)-1]
		}
	}

	if len(s) > 2 && chess.Col(s[0]).IsValid() {
		t.RequireCol = chess.Col(s[0])
		s = s[1:]
	}
	if len(s) > 2 && chess.Rank(s[0]).IsValid() {
		t.RequireRank = chess.Rank(s[0])
		s = s[1:]
	}

	if !t.IsCastle() {
		t.To, _ = chess.ParseSquare(s)
	}
	return t
}

func isPromotionRank(c byte) bool {
	return c == chess.FirstRank || c == chess.LastRank
}
