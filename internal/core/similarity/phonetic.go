package similarity

import (
	"strings"
	"unicode"
)

const phoneticCodeLength = 4

var soundexDigits = map[rune]byte{
	'B': '1', 'F': '1', 'P': '1', 'V': '1',
	'C': '2', 'G': '2', 'J': '2', 'K': '2', 'Q': '2', 'S': '2', 'X': '2', 'Z': '2',
	'D': '3', 'T': '3',
	'L': '4',
	'M': '5', 'N': '5',
	'R': '6',
}

// soundexCode returns the American Soundex code of s, or "" if s has no
// ASCII letters.
func soundexCode(s string) string {
	letters := asciiLetters(s)
	if len(letters) == 0 {
		return ""
	}

	code := []byte{byte(letters[0])}
	last := soundexDigits[letters[0]]
	for _, r := range letters[1:] {
		if len(code) == phoneticCodeLength {
			break
		}
		digit, mapped := soundexDigits[r]
		switch {
		case mapped && digit != last:
			code = append(code, digit)
			last = digit
		case mapped:
			// adjacent duplicate
		case r == 'H' || r == 'W':
			// H and W do not separate duplicates
		default:
			// vowels separate duplicates
			last = 0
		}
	}

	for len(code) < phoneticCodeLength {
		code = append(code, '0')
	}
	return string(code)
}

// metaphoneCode is a simplified Metaphone transliteration capped at four
// characters.
func metaphoneCode(s string) string {
	w := asciiLetters(s)
	if len(w) == 0 {
		return ""
	}

	// Initial letter exceptions
	switch {
	case hasPrefix(w, "AE"), hasPrefix(w, "GN"), hasPrefix(w, "KN"), hasPrefix(w, "PN"), hasPrefix(w, "WR"):
		w = w[1:]
	case w[0] == 'X':
		w[0] = 'S'
	case hasPrefix(w, "WH"):
		w = append([]rune{'W'}, w[2:]...)
	}

	at := func(i int) rune {
		if i < 0 || i >= len(w) {
			return 0
		}
		return w[i]
	}

	var code strings.Builder
	for i := 0; i < len(w) && code.Len() < phoneticCodeLength; i++ {
		c := w[i]
		// Skip doubled letters except C
		if c != 'C' && i > 0 && at(i-1) == c {
			continue
		}

		switch c {
		case 'A', 'E', 'I', 'O', 'U':
			if i == 0 {
				code.WriteRune(c)
			}
		case 'B':
			// silent in a trailing MB
			if !(i == len(w)-1 && at(i-1) == 'M') {
				code.WriteRune('B')
			}
		case 'C':
			switch {
			case at(i+1) == 'I' && at(i+2) == 'A':
				code.WriteRune('X')
			case at(i+1) == 'H':
				if at(i-1) == 'S' {
					code.WriteRune('K')
				} else {
					code.WriteRune('X')
				}
				i++
			case isFrontVowel(at(i + 1)):
				if at(i-1) != 'S' {
					code.WriteRune('S')
				}
			default:
				code.WriteRune('K')
			}
		case 'D':
			if at(i+1) == 'G' && isFrontVowel(at(i+2)) {
				code.WriteRune('J')
				i++
			} else {
				code.WriteRune('T')
			}
		case 'G':
			switch {
			case at(i+1) == 'H' && !isVowel(at(i+2)):
				// silent as in NIGHT
			case at(i+1) == 'N' && (i+2 == len(w) || (at(i+2) == 'E' && at(i+3) == 'D' && i+4 == len(w))):
				// silent as in SIGN, SIGNED
			case isFrontVowel(at(i + 1)):
				code.WriteRune('J')
			default:
				code.WriteRune('K')
			}
		case 'H':
			if isVowel(at(i+1)) && !strings.ContainsRune("CGPST", at(i-1)) {
				code.WriteRune('H')
			}
		case 'K':
			if at(i-1) != 'C' {
				code.WriteRune('K')
			}
		case 'P':
			if at(i+1) == 'H' {
				code.WriteRune('F')
				i++
			} else {
				code.WriteRune('P')
			}
		case 'Q':
			code.WriteRune('K')
		case 'S':
			switch {
			case at(i+1) == 'H':
				code.WriteRune('X')
				i++
			case at(i+1) == 'I' && (at(i+2) == 'O' || at(i+2) == 'A'):
				code.WriteRune('X')
			default:
				code.WriteRune('S')
			}
		case 'T':
			switch {
			case at(i+1) == 'I' && (at(i+2) == 'O' || at(i+2) == 'A'):
				code.WriteRune('X')
			case at(i+1) == 'H':
				code.WriteRune('0')
				i++
			case at(i+1) == 'C' && at(i+2) == 'H':
				// silent, CH follows
			default:
				code.WriteRune('T')
			}
		case 'V':
			code.WriteRune('F')
		case 'W', 'Y':
			if isVowel(at(i + 1)) {
				code.WriteRune(c)
			}
		case 'X':
			code.WriteString("KS")
		case 'Z':
			code.WriteRune('S')
		default:
			// F J L M N R
			code.WriteRune(c)
		}
	}

	out := code.String()
	if len(out) > phoneticCodeLength {
		out = out[:phoneticCodeLength]
	}
	return out
}

func asciiLetters(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range strings.ToUpper(s) {
		if r <= unicode.MaxASCII && unicode.IsLetter(r) {
			out = append(out, r)
		}
	}
	return out
}

func hasPrefix(w []rune, prefix string) bool {
	return strings.HasPrefix(string(w), prefix)
}

func isVowel(r rune) bool {
	return strings.ContainsRune("AEIOU", r)
}

func isFrontVowel(r rune) bool {
	return r == 'E' || r == 'I' || r == 'Y'
}
