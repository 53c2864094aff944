// Package doc holds the in-memory model of one formatted man page: styled
// line/span buffers populated through the formatter bridge, the resolved
// cross-reference links, and the in-document search state.
package doc

import "manview/man/text"

// SpanKind tags a span with the role it played during formatting. The tag is
// informational only; no component interprets it yet.
type SpanKind int

const (
	KindText SpanKind = iota
	KindTitle
	KindSection
	KindLink
	KindURL
)

const startingSpanSize = 32

// Span is a growable buffer of translated characters. The buffer keeps the
// raw overstrike encoding (visible bytes plus backspace control bytes); use
// text.Decode or text.Runs to consume it.
type Span struct {
	Buf  []byte
	Kind SpanKind
}

// Line is an ordered sequence of spans. A line with a single empty span is a
// blank output line.
type Line struct {
	Spans []Span
}

// Raw returns the concatenated raw bytes of all spans on the line. Lines
// built by the bridge have a single span, so this is usually a plain slice
// of the first buffer.
func (l *Line) Raw() []byte {
	if len(l.Spans) == 1 {
		return l.Spans[0].Buf
	}
	var out []byte
	for i := range l.Spans {
		out = append(out, l.Spans[i].Buf...)
	}
	return out
}

// Rect is a rectangle in document coordinates (pixels from the document's
// top-left corner, before the document margin is applied).
type Rect struct {
	X, Y, X2, Y2 int
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X2 && y < r.Y2
}

// Metrics carries the glyph geometry every position computation depends on.
// The values come from the rendering layer (1/1/1/0 for terminal cells).
type Metrics struct {
	CharWidth   int // horizontal advance of one character
	LineHeight  int // height of a rendered glyph row
	LineAdvance int // vertical distance between consecutive lines
	DocMargin   int // margin around the document body
}

// CellMetrics is the geometry of a character-cell display.
var CellMetrics = Metrics{CharWidth: 1, LineHeight: 1, LineAdvance: 1, DocMargin: 0}

// Link is a clickable cross-reference discovered by FindLinks. The rectangle
// is in document coordinates; Highlight tracks pointer hover.
type Link struct {
	Rect      Rect
	Highlight bool
	Path      string // resolved target file
	Dir       string // directory the target was catalogued from
}

// Document is one loaded man page.
type Document struct {
	Name    string
	Section string
	Path    string
	Dir     string

	Lines []Line

	// Scroll is the viewport offset in pixels from the document top. The
	// viewer owns clamping; the document just stores the value.
	Scroll int

	Links  []Link
	Search Search
}

// New returns a document with a single empty line, ready for the bridge to
// append characters to.
func New() *Document {
	d := &Document{Lines: make([]Line, 0, 256)}
	d.StartLine()
	return d
}

// StartLine appends a new empty line holding one empty span.
func (d *Document) StartLine() {
	d.Lines = append(d.Lines, Line{Spans: []Span{{Buf: make([]byte, 0, startingSpanSize)}}})
}

// AppendChar translates the code point and appends the resulting bytes to the
// last span of the last line. Unmappable characters are dropped by Translate.
func (d *Document) AppendChar(code rune) {
	if len(d.Lines) == 0 {
		d.StartLine()
	}
	b := text.Translate(code)
	if len(b) == 0 {
		return
	}
	line := &d.Lines[len(d.Lines)-1]
	span := &line.Spans[len(line.Spans)-1]
	span.Buf = append(span.Buf, b...)
}

// TrimTrailingBlank drops the final line if it is empty and not the only
// line. Formatting engines commonly terminate with a spurious blank line.
func (d *Document) TrimTrailingBlank() {
	if len(d.Lines) <= 1 {
		return
	}
	last := &d.Lines[len(d.Lines)-1]
	if len(last.Spans) == 0 || (len(last.Spans) == 1 && len(last.Spans[0].Buf) == 0) {
		d.Lines = d.Lines[:len(d.Lines)-1]
	}
}

// Height returns the document height in pixels.
func (d *Document) Height(m Metrics) int {
	return len(d.Lines)*m.LineAdvance + 2*m.DocMargin
}

// PlainLine decodes line i into buf and returns the number of bytes written.
// Longer lines are truncated to the buffer size.
func (d *Document) PlainLine(i int, buf []byte) int {
	return text.DecodeInto(buf, d.Lines[i].Raw())
}
