package parser

import (
	"io"
	"strconv"
	"strings"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
	"github.com/lgbarn/pgn-turns-go/internal/config"
	"github.com/lgbarn/pgn-turns-go/internal/errors"
)

// Parser reads games from a PGN stream. Turns are built but not resolved.
type Parser struct {
	r     io.Reader
	cfg   *config.Config
	texts []string
	next  int
	err   error
	read  bool
}

// NewParser creates a new parser for the given reader.
// If cfg is nil, a default config is created.
func NewParser(r io.Reader, cfg *config.Config) *Parser {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Parser{r: r, cfg: cfg}
}

func (p *Parser) load() error {
	if p.read {
		return p.err
	}
	p.read = true
	r, err := NewReader(p.r)
	if err != nil {
		p.err = err
		return err
	}
	p.texts, p.err = SplitGames(r)
	return p.err
}

// ParseGame parses the next game from the input.
// Returns nil, nil when no more games are available.
func (p *Parser) ParseGame() (*chess.Game, error) {
	if err := p.load(); err != nil && len(p.texts) == 0 {
		return nil, err
	}
	if p.next >= len(p.texts) {
		return nil, nil
	}
	text := p.texts[p.next]
	p.next++
	game, err := ParseGameText(text, p.cfg)
	if game != nil {
		game.Number = p.next
	}
	return game, err
}

// ParseAllGames parses every game in the input. Games that fail to parse
// are skipped and their errors joined.
func (p *Parser) ParseAllGames() ([]*chess.Game, error) {
	var (
		games []*chess.Game
		errs  []error
	)
	for {
		game, err := p.ParseGame()
		if err != nil {
			errs = append(errs, &errors.GameError{Err: err, GameNum: p.next})
			if p.next >= len(p.texts) {
				break
			}
			continue
		}
		if game == nil {
			break
		}
		games = append(games, game)
	}
	if p.err != nil && len(p.texts) > 0 {
		errs = append(errs, p.err)
	}
	return games, errors.Join(errs...)
}

// ParseGameText parses the text of one game: tags and movetext.
func ParseGameText(text string, cfg *config.Config) (*chess.Game, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	tags, movetext, err := SplitHeader(text)
	if err != nil {
		return nil, err
	}

	game := chess.NewGame()
	for _, tag := range tags {
		game.SetTag(tag.Name, tag.Value)
	}
	game.Movetext = strings.TrimSpace(movetext)

	tb := NewTreeBuilder(cfg.Parse.MaxVariationDepth)
	if fen := game.FEN(); fen != "" {
		tb.StartNumber, tb.StartColour = fenMoveNumber(fen)
	}

	turns, err := tb.Build(TokenizeLines(game.Movetext))
	if err != nil {
		return game, err
	}
	game.Turns = turns
	if len(turns) == 0 {
		game.Preamble = NormalizeSpacing(game.Movetext)
		game.Termination = lastResult(TokenizePly(game.Preamble))
		return game, nil
	}
	game.Termination = lastResult(turns[len(turns)-1].Sequence)
	return game, nil
}

// lastResult returns seq's final token when it is a game result.
func lastResult(seq []string) string {
	if len(seq) == 0 {
		return ""
	}
	if last := seq[len(seq)-1]; chess.IsResult(last) {
		return last
	}
	return ""
}

// fenMoveNumber reads the side to move and fullmove number of a FEN.
func fenMoveNumber(fen string) (int, chess.Colour) {
	fields := strings.Fields(fen)
	colour := chess.White
	if len(fields) > 1 && fields[1] == "b" {
		colour = chess.Black
	}
	number := 1
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil && n > 0 {
			number = n
		}
	}
	return number, colour
}
