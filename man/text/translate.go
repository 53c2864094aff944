// Package text implements the fixed 1-byte character repertoire used by the
// document model: translation of the typesetter's Unicode output onto that
// repertoire, and decoding of the backspace overstrike encoding man pages use
// for emphasis.
package text

import "log"

// Translate maps a code point produced by the formatting engine onto the
// displayable repertoire. It returns zero, one or two output bytes. Code
// points that do not fit the repertoire after translation are logged and
// dropped. Translate is pure; it keeps no state across calls.
func Translate(code rune) []byte {
	var second byte

	switch {
	case code >= 0x2500 && code <= 0x2501: // box drawing horizontal, light/heavy
		code = '-'
	case code >= 0x2502 && code <= 0x2503: // box drawing vertical, light/heavy
		code = '|'
	case code >= 0x250c && code <= 0x254b: // box drawing corners and crosses
		code = '+'
	case code == 0x2014: // em dash
		code = '-'
	case code == 0x2212: // minus sign
		code = '-'
	case code == 0x2002: // en space
		code = ' '
	case code == 0x2010: // hyphen
		code = '-'
	case code == 0x2013: // en dash
		code = '-'
	case code == 0x2022: // bullet
		code = '-'
	case code == 0x2265: // greater than or equal
		code = '>'
		second = '='
	case code == 0x2264: // less than or equal
		code = '<'
		second = '='
	case code == 0x00a0: // non-breaking space
		code = ' '
	case code == 0x201c || code == 0x201d: // curly double quotes
		code = '"'
	case code == 0x2018 || code == 0x2019: // curly single quotes
		code = '\''
	case code == 0x27e8: // mathematical left angle bracket
		code = '<'
	case code == 0x27e9: // mathematical right angle bracket
		code = '>'
	}

	if code >= 256 {
		log.Printf("unmappable character %d, 0x%x", code, code)
		return nil
	}

	if second > 0 {
		return []byte{byte(code), second}
	}
	return []byte{byte(code)}
}
