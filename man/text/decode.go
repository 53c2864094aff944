package text

// Backspace is the overstrike control byte embedded in span buffers. The
// formatting engine encodes emphasis by overstriking: a visible glyph, a
// backspace, then the glyph that overlays it.
const Backspace = '\b'

// Style classifies a styled run recovered from the overstrike encoding.
type Style int

const (
	Plain  Style = iota
	Bold         // c \b c
	Italic       // _ \b c
	Dim          // anything else overstruck
)

// Run is a maximal sequence of consecutive characters sharing one style.
type Run struct {
	Text  string
	Style Style
}

// Decode collapses the overstrike encoding into plain text. Scanning left to
// right, a backspace deletes the most recently emitted byte instead of
// emitting anything; every other byte passes through unchanged. A stream with
// no backspaces is returned as-is, so decoding is idempotent on plain text.
func Decode(raw []byte) []byte {
	out := make([]byte, 0, len(raw))
	for _, b := range raw {
		if b == Backspace {
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
			continue
		}
		out = append(out, b)
	}
	return out
}

// DecodeInto is Decode writing into a bounded buffer; input beyond the buffer
// capacity is truncated. It returns the number of bytes written. Components
// that scan every line of a document use this to avoid per-line allocation.
func DecodeInto(dst []byte, raw []byte) int {
	pos := 0
	for _, b := range raw {
		if b == Backspace {
			if pos > 0 {
				pos--
			}
			continue
		}
		if pos >= len(dst) {
			break
		}
		dst[pos] = b
		pos++
	}
	return pos
}

// Runs segments a raw span buffer into styled runs, reproducing the original
// byte-level heuristic: when the byte after the current one is a backspace,
// the overstruck character that follows decides the style of the emitted
// character. Consecutive characters with the same style are merged.
func Runs(raw []byte) []Run {
	var runs []Run
	var cur []byte
	curStyle := Plain

	flush := func() {
		if len(cur) > 0 {
			runs = append(runs, Run{Text: string(cur), Style: curStyle})
			cur = nil
		}
	}

	for i := 0; i < len(raw); i++ {
		style := Plain
		c := raw[i]

		if i+1 < len(raw) && raw[i+1] == Backspace {
			if i+2 < len(raw) {
				switch {
				case raw[i+2] == c:
					style = Bold
				case c == '_':
					style = Italic
				default:
					style = Dim
				}
				c = raw[i+2]
				i += 2
			} else {
				// trailing glyph+backspace with nothing to overlay it
				break
			}
		}

		if style != curStyle {
			flush()
			curStyle = style
		}
		cur = append(cur, c)
	}

	flush()
	return runs
}
