package parser

import "strings"

// TokenizePly splits one ply line into tokens. Comments, commands and
// variations stay whole; "12.Nf3" becomes "12." and "Nf3", and "12...Nf6"
// becomes "12..." and "Nf6".
func TokenizePly(line string) []string {
	toks := splitPly(line)
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}

// splitPly is TokenizePly keeping each token's offset in line.
func splitPly(line string) []Token {
	parts := strings.Split(line, " ")
	offsets := make([]int, len(parts))
	pos := 0
	for i, p := range parts {
		offsets[i] = pos
		pos += len(p) + 1
	}

	var toks []Token
	for i := 0; i < len(parts); {
		part := parts[i]
		switch {
		case part == "":
			i++
		case opensBracket(part):
			end := scanBracket(parts, i)
			toks = append(toks, Token{Text: strings.Join(parts[i:end], " "), Offset: offsets[i]})
			i = end
		default:
			toks = append(toks, splitMoveNumber(part, offsets[i])...)
			i++
		}
	}
	return toks
}

// splitMoveNumber separates a leading "N." or "N..." marker from the move
// glued to it.
func splitMoveNumber(part string, offset int) []Token {
	marker := ""
	if idx := strings.Index(part, "..."); idx >= 0 {
		if _, ok := parseMoveNumber(part[:idx]); ok {
			marker = part[:idx+3]
		}
	}
	if marker == "" {
		if idx := strings.IndexByte(part, '.'); idx >= 0 {
			if _, ok := parseMoveNumber(part[:idx]); ok {
				marker = part[:idx+1]
			}
		}
	}
	if marker == "" {
		return []Token{{Text: part, Offset: offset}}
	}

	toks := []Token{{Text: marker, Offset: offset}}
	if rest := part[len(marker):]; rest != "" {
		toks = append(toks, Token{Text: rest, Offset: offset + len(marker)})
	}
	return toks
}
