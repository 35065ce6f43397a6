package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
	"github.com/lgbarn/pgn-turns-go/internal/config"
	"github.com/lgbarn/pgn-turns-go/internal/engine"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	Number     int               `json:"number,omitempty"`
	Tags       map[string]string `json:"tags"`
	Result     string            `json:"result"`
	PlyCount   int               `json:"plyCount"`
	TotalPlies int               `json:"totalPlies"`
	InitialFEN string            `json:"initialFEN"`
	FinalFEN   string            `json:"finalFEN,omitempty"`
	Moves      []JSONMove        `json:"moves"`
	Preamble   string            `json:"preamble,omitempty"`
}

// JSONMove represents one turn and the sibling lines branching at it.
type JSONMove struct {
	Path       string       `json:"path"`
	MoveNumber int          `json:"moveNumber"`
	Color      string       `json:"color"` // "white" or "black"
	SAN        string       `json:"san"`
	Piece      string       `json:"piece,omitempty"`
	From       string       `json:"from,omitempty"`
	To         string       `json:"to,omitempty"`
	Steps      []string     `json:"steps,omitempty"`
	Capture    bool         `json:"capture,omitempty"`
	Check      bool         `json:"check,omitempty"`
	Checkmate  bool         `json:"checkmate,omitempty"`
	Castle     string       `json:"castle,omitempty"`
	Promotion  string       `json:"promotion,omitempty"`
	Suffix     string       `json:"suffix,omitempty"`
	NAGs       []string     `json:"nags,omitempty"`
	Comments   []string     `json:"comments,omitempty"`
	FEN        string       `json:"fen,omitempty"`
	Clock      int          `json:"halfmoveClock"`
	Pieces     []JSONPiece  `json:"pieces,omitempty"`
	Variations [][]JSONMove `json:"variations,omitempty"`
}

// JSONPiece is one piece of a position snapshot.
type JSONPiece struct {
	ID     int    `json:"id"`
	Piece  string `json:"piece"`
	Color  string `json:"color"`
	Square string `json:"square"`
	Start  string `json:"start,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// EncodeJSON writes v using the configured indent.
func EncodeJSON(w io.Writer, v interface{}, cfg *config.Config) error {
	enc := json.NewEncoder(w)
	if cfg != nil && cfg.Output.Indent != "" {
		enc.SetIndent("", cfg.Output.Indent)
	}
	return enc.Encode(v)
}

// GameToJSON converts a resolved game to JSON format.
func GameToJSON(game *chess.Game, cfg *config.Config) *JSONGame {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	jg := &JSONGame{
		Number:     game.Number,
		Tags:       copyTags(game.Tags),
		Result:     game.Result(),
		PlyCount:   game.PlyCount(),
		TotalPlies: game.TotalPlyCount(),
		InitialFEN: game.FEN(),
		Preamble:   game.Preamble,
	}
	if jg.InitialFEN == "" {
		jg.InitialFEN = engine.InitialFEN
	}
	if last := game.LastTurn(); last != nil {
		jg.FinalFEN = last.FEN
	}
	jg.Moves = convertLine(game.Turns, "", cfg)
	return jg
}

// copyTags copies game tags and ensures seven tag roster has values.
func copyTags(tags map[string]string) map[string]string {
	result := make(map[string]string, len(tags)+len(chess.SevenTagRoster))
	for k, v := range tags {
		result[k] = v
	}
	for _, tag := range chess.SevenTagRoster {
		if _, ok := result[tag]; !ok {
			result[tag] = "?"
		}
	}
	return result
}

func convertLine(line []*chess.Turn, path string, cfg *config.Config) []JSONMove {
	result := make([]JSONMove, 0, len(line))
	for ply, t := range line {
		jm := convertTurn(t, cfg)
		jm.Path = chess.PlyPath(path, ply)
		for i, sib := range t.Siblings {
			if len(sib) == 0 {
				continue
			}
			jm.Variations = append(jm.Variations, convertLine(sib, chess.SiblingPath(path, ply, i), cfg))
		}
		result = append(result, jm)
	}
	return result
}

func convertTurn(t *chess.Turn, cfg *config.Config) JSONMove {
	jm := JSONMove{
		MoveNumber: t.MoveNumber,
		Color:      colorName(t.Colour),
		SAN:        t.Move,
		Piece:      pieceTypeName(t.Piece),
		Capture:    t.Capturing,
		Check:      t.Check,
		Checkmate:  t.Checkmate,
		Suffix:     t.Suffix,
		NAGs:       collectNAGs(t),
		Comments:   collectComments(t),
		FEN:        t.FEN,
		Clock:      t.HalfmoveClock,
	}
	switch {
	case t.KingsideCastle:
		jm.Castle = "kingside"
	case t.QueensideCastle:
		jm.Castle = "queenside"
	}
	if t.To.IsValid() {
		jm.To = t.To.String()
	}
	if t.Promoted {
		jm.Promotion = pieceTypeName(t.PromotedTo)
	}

	if p := moved(t); p != nil {
		jm.From = p.Before.String()
		for _, sq := range p.Steps {
			jm.Steps = append(jm.Steps, sq.String())
		}
	}
	if cfg.Output.IncludePieces && t.Position != nil {
		jm.Pieces = convertPieces(t.Position)
	}
	return jm
}

// moved returns the piece that made the turn's move in its snapshot. For
// castling that is the king.
func moved(t *chess.Turn) *chess.BoardPiece {
	if t.Position == nil {
		return nil
	}
	for i := range t.Position.Pieces {
		p := &t.Position.Pieces[i]
		if p.Colour != t.Colour || len(p.Steps) == 0 {
			continue
		}
		if t.IsCastle() && p.Kind != chess.King {
			continue
		}
		return p
	}
	return nil
}

func convertPieces(board *chess.Board) []JSONPiece {
	out := make([]JSONPiece, len(board.Pieces))
	for i, p := range board.Pieces {
		out[i] = JSONPiece{
			ID:     p.ID,
			Piece:  pieceTypeName(p.Kind),
			Color:  colorName(p.Colour),
			Square: p.Square.String(),
		}
		if p.Start.IsValid() {
			out[i].Start = p.Start.String()
		}
	}
	return out
}

func colorName(c chess.Colour) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}

// collectNAGs collects the $n glyphs written after a move.
func collectNAGs(t *chess.Turn) []string {
	var result []string
	for _, tok := range t.Sequence {
		if strings.HasPrefix(tok, "$") {
			result = append(result, tok)
		}
	}
	return result
}

// collectComments collects the text of {} comments attached to a move.
func collectComments(t *chess.Turn) []string {
	var result []string
	for _, tok := range t.Sequence {
		if strings.HasPrefix(tok, "{") {
			text := strings.TrimSuffix(strings.TrimPrefix(tok, "{"), "}")
			result = append(result, strings.TrimSpace(text))
		}
	}
	return result
}

// pieceTypeName returns the piece type as a string.
func pieceTypeName(p chess.Piece) string {
	switch p {
	case chess.Pawn:
		return "pawn"
	case chess.Knight:
		return "knight"
	case chess.Bishop:
		return "bishop"
	case chess.Rook:
		return "rook"
	case chess.Queen:
		return "queen"
	case chess.King:
		return "king"
	default:
		return ""
	}
}
