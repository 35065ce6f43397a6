package parser

import (
	"strings"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
)

// TokenType classifies a ply token.
type TokenType int

const (
	MoveToken TokenType = iota
	MoveNumber
	CommentToken
	RAVToken
	CommandToken
	NAGToken
	TerminatingResult
	OtherToken
)

// tokenTypeNames maps token types to their string representations.
var tokenTypeNames = [...]string{
	MoveToken:         "MOVE",
	MoveNumber:        "MOVE_NUMBER",
	CommentToken:      "COMMENT",
	RAVToken:          "RAV",
	CommandToken:      "COMMAND",
	NAGToken:          "NAG",
	TerminatingResult: "TERMINATING_RESULT",
	OtherToken:        "OTHER",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "UNKNOWN"
}

// Token is one ply token and its byte offset in the ply line.
type Token struct {
	Text   string
	Offset int
}

// Type classifies the token.
func (t Token) Type() TokenType {
	return Classify(t.Text)
}

// Classify returns the token type of a single ply token.
func Classify(tok string) TokenType {
	switch {
	case tok == "":
		return OtherToken
	case tok[0] == '(':
		return RAVToken
	case tok[0] == '{':
		return CommentToken
	case tok[0] == '[':
		return CommandToken
	case tok[0] == '$':
		return NAGToken
	case chess.IsResult(tok):
		return TerminatingResult
	}
	if _, ok := moveNumberPrefix(tok); ok && strings.Trim(tok[strings.IndexByte(tok, '.'):], ".") == "" {
		return MoveNumber
	}
	if isCoordinateLike(tok) {
		return MoveToken
	}
	return OtherToken
}

// isCoordinateLike reports whether tok can carry a move. Bracket blocks,
// NAGs, results and anything with a dot are excluded, as is any dashed
// token other than castling.
func isCoordinateLike(tok string) bool {
	if tok == "" || opensBracket(tok) || tok[0] == '$' {
		return false
	}
	if strings.ContainsAny(tok, "*/.") {
		return false
	}
	if strings.Contains(tok, "-") && !isCastling(tok) {
		return false
	}
	return true
}

func isCastling(tok string) bool {
	return strings.Contains(tok, "O-O") || strings.Contains(tok, "0-0")
}
