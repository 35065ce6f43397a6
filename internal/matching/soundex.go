package matching

import (
	"strings"
	"unicode"
)

// soundexCodes groups consonants that sound alike in transliterated
// player names. W sits with B/F/P/V so Kasparow and Kasparov agree.
var soundexCodes = map[rune]byte{
	'B': '1', 'F': '1', 'P': '1', 'V': '1', 'W': '1',
	'C': '2', 'G': '2', 'J': '2', 'K': '2', 'Q': '2', 'S': '2', 'X': '2', 'Z': '2',
	'D': '3', 'T': '3',
	'L': '4',
	'M': '5', 'N': '5',
	'R': '6',
}

// Soundex returns a six character code for name: its first letter then
// the codes of the following consonants, repeats collapsed.
func Soundex(name string) string {
	var letters []rune
	for _, r := range strings.ToUpper(name) {
		if unicode.IsLetter(r) {
			letters = append(letters, r)
		}
	}
	if len(letters) == 0 {
		return ""
	}

	code := []byte(string(letters[0]))
	last := soundexCodes[letters[0]]
	for _, r := range letters[1:] {
		if len(code) == 6 {
			break
		}
		c, ok := soundexCodes[r]
		if !ok {
			continue
		}
		if c != last {
			code = append(code, c)
		}
		last = c
	}
	for len(code) < 6 {
		code = append(code, '0')
	}
	return string(code)
}
