package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
	"github.com/lgbarn/pgn-turns-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// castlingCorners lists each castling right with the rook's start square.
var castlingCorners = []struct {
	letter byte
	colour chess.Colour
	rook   chess.Square
}{
	{'K', chess.White, chess.Sq('h', chess.FirstRank)},
	{'Q', chess.White, chess.Sq('a', chess.FirstRank)},
	{'k', chess.Black, chess.Sq('h', chess.LastRank)},
	{'q', chess.Black, chess.Sq('a', chess.LastRank)},
}

// EncodePosition renders board in FEN form. The side field is the colour of
// turn, the player who just moved, and the clock and move number fields come
// from turn. With a nil turn the fields of the initial position are used.
func EncodePosition(board *chess.Board, turn *chess.Turn) string {
	var sb strings.Builder
	sb.WriteString(Placement(board))
	if turn == nil {
		sb.WriteString(" w KQkq - 0 1")
		return sb.String()
	}

	sb.WriteByte(' ')
	sb.WriteByte(turn.Colour.Letter())
	sb.WriteByte(' ')
	sb.WriteString(castlingRights(board))
	sb.WriteByte(' ')
	sb.WriteString(enPassantTarget(board).String())
	fmt.Fprintf(&sb, " %d %d", turn.HalfmoveClock, turn.MoveNumber)
	return sb.String()
}

// Placement renders the piece placement field, rank 8 first.
func Placement(board *chess.Board) string {
	grid := board.Grid()

	var sb strings.Builder
	for rank := chess.Rank(chess.LastRank); rank >= chess.FirstRank; rank-- {
		empty := 0
		for col := chess.Col(chess.FirstCol); col <= chess.LastCol; col++ {
			p := grid[chess.Sq(col, rank).Index()]
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pieceChar(p.Kind, p.Colour))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > chess.FirstRank {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

func pieceChar(kind chess.Piece, colour chess.Colour) byte {
	c := kind.Letter()
	if colour == chess.Black {
		c = byte(unicode.ToLower(rune(c)))
	}
	return c
}

// castlingRights reports a right whenever the king and that rook both
// still stand on their start squares.
func castlingRights(board *chess.Board) string {
	var sb strings.Builder
	for _, c := range castlingCorners {
		if kingAtHome(board, c.colour) && rookAtHome(board, c.colour, c.rook) {
			sb.WriteByte(c.letter)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

func kingAtHome(board *chess.Board, colour chess.Colour) bool {
	for _, p := range board.Pieces {
		if p.Kind == chess.King && p.Colour == colour && p.Start.IsValid() && p.Square == p.Start {
			return true
		}
	}
	return false
}

func rookAtHome(board *chess.Board, colour chess.Colour, sq chess.Square) bool {
	for _, p := range board.Pieces {
		if p.Kind == chess.Rook && p.Colour == colour && p.Start == sq && p.Square == sq {
			return true
		}
	}
	return false
}

// enPassantTarget is the square skipped by a pawn whose last move was a
// double step.
func enPassantTarget(board *chess.Board) chess.Square {
	for _, p := range board.Pieces {
		if p.Kind == chess.Pawn && len(p.Steps) == 3 {
			return p.Steps[1]
		}
	}
	return chess.NoSquare
}

// HalfmoveClock counts the turns of line before turn since the last capture
// or pawn move. It returns -1 when turn is not on line.
func HalfmoveClock(line []*chess.Turn, turn *chess.Turn) int {
	clock := 0
	for _, t := range line {
		if t == turn {
			return clock
		}
		if t.Capturing || t.Piece == chess.Pawn {
			clock = 0
		} else {
			clock++
		}
	}
	return -1
}

// Setup is a decoded FEN string.
type Setup struct {
	Board         *chess.Board
	ToMove        chess.Colour
	Castling      string
	EnPassant     chess.Square
	HalfmoveClock int
	MoveNumber    int
}

// DecodeFEN parses a FEN string. Pieces are added rank 8 first, a-file
// first. A rook or king that has lost its castling rights gets no start
// square, so EncodePosition reports the same rights back.
func DecodeFEN(fen string) (*Setup, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	s := &Setup{
		Board:      chess.NewBoard(),
		ToMove:     chess.White,
		Castling:   "-",
		EnPassant:  chess.NoSquare,
		MoveNumber: 1,
	}
	if err := parsePlacement(s.Board, parts[0]); err != nil {
		return nil, err
	}

	if len(parts) > 1 {
		switch parts[1] {
		case "w":
			s.ToMove = chess.White
		case "b":
			s.ToMove = chess.Black
		default:
			return nil, fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
		}
	}
	if len(parts) > 2 {
		if strings.Trim(parts[2], "KQkq-") != "" {
			return nil, fmt.Errorf("invalid castling rights: %s: %w", parts[2], errors.ErrInvalidFEN)
		}
		s.Castling = parts[2]
	}
	applyCastlingRights(s.Board, s.Castling)

	if len(parts) > 3 && parts[3] != "-" {
		sq, ok := chess.ParseSquare(parts[3])
		if !ok {
			return nil, fmt.Errorf("invalid en passant square: %s: %w", parts[3], errors.ErrInvalidFEN)
		}
		s.EnPassant = sq
		markDoubleStep(s.Board, sq)
	}
	if len(parts) > 4 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid halfmove clock: %s: %w", parts[4], errors.ErrInvalidFEN)
		}
		s.HalfmoveClock = n
	}
	if len(parts) > 5 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid move number: %s: %w", parts[5], errors.ErrInvalidFEN)
		}
		s.MoveNumber = n
	}
	return s, nil
}

// NewBoardFromFEN creates a board from a FEN string.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	s, err := DecodeFEN(fen)
	if err != nil {
		return nil, err
	}
	return s.Board, nil
}

// parsePlacement parses the piece placement field of a FEN string.
func parsePlacement(board *chess.Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("%d ranks: %w", len(ranks), errors.ErrInvalidFEN)
	}

	for i, row := range ranks {
		rank := chess.Rank(chess.LastRank - i)
		col := 0
		for _, c := range row {
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			kind := chess.Empty
			if c <= unicode.MaxASCII {
				kind = chess.PieceFromLetter(byte(unicode.ToUpper(c)))
			}
			if kind == chess.Empty {
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			if col >= chess.BoardSize {
				return fmt.Errorf("rank %c overflows: %w", rank, errors.ErrInvalidFEN)
			}
			colour := chess.White
			if unicode.IsLower(c) {
				colour = chess.Black
			}
			board.Place(kind, colour, chess.Sq(chess.Col(chess.ColBase+col), rank))
			col++
		}
		if col != chess.BoardSize {
			return fmt.Errorf("rank %c has %d files: %w", rank, col, errors.ErrInvalidFEN)
		}
	}
	return nil
}

// applyCastlingRights clears the start square of every rook and king
// whose castling rights are gone.
func applyCastlingRights(board *chess.Board, rights string) {
	kingRights := map[chess.Colour]bool{}
	for _, c := range castlingCorners {
		has := strings.IndexByte(rights, c.letter) >= 0
		if has {
			kingRights[c.colour] = true
		}
		if i := board.IndexAt(c.rook); i >= 0 && !has {
			if p := &board.Pieces[i]; p.Kind == chess.Rook && p.Colour == c.colour {
				p.Start = chess.NoSquare
			}
		}
	}
	for i := range board.Pieces {
		p := &board.Pieces[i]
		if p.Kind == chess.King && !kingRights[p.Colour] {
			p.Start = chess.NoSquare
		}
	}
}

// markDoubleStep gives the pawn that just passed ep the double step it
// made, so the target survives a round trip through EncodePosition.
func markDoubleStep(board *chess.Board, ep chess.Square) {
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		dir := chess.ColourOffset(colour)
		from, ok1 := ep.Offset(0, -dir)
		to, ok2 := ep.Offset(0, dir)
		if !ok1 || !ok2 {
			continue
		}
		if i := board.IndexAt(to); i >= 0 {
			if p := &board.Pieces[i]; p.Kind == chess.Pawn && p.Colour == colour {
				p.Before = from
				p.Steps = []chess.Square{from, ep, to}
				return
			}
		}
	}
}

// NewInitialBoard returns the standard starting position.
func NewInitialBoard() *chess.Board {
	return chess.NewInitialBoard()
}

// NewBoardForGame returns the starting board of a game: its FEN tag when it
// has one, the standard position otherwise.
func NewBoardForGame(game *chess.Game) (*Setup, error) {
	fen := game.FEN()
	if fen == "" {
		return &Setup{
			Board:      chess.NewInitialBoard(),
			ToMove:     chess.White,
			Castling:   "KQkq",
			EnPassant:  chess.NoSquare,
			MoveNumber: 1,
		}, nil
	}
	return DecodeFEN(fen)
}
