package doc

import "log"

// Macroset discriminates the two terminal formatting styles the engine can
// select for a document. It is chosen once per formatting session.
type Macroset int

const (
	Mdoc Macroset = iota
	Man
)

// Break is the zero-width break marker the formatting engine may query the
// width of. Every other code has width one.
const Break = 0x1D

// Unit is a physical measurement unit in an hspan request.
type Unit int

const (
	UnitBU Unit = iota // basic units
	UnitCM             // centimeters
	UnitFS             // fraction of the screen
	UnitIN             // inches
	UnitMM             // millimeters
	UnitVS             // vertical spacing
	UnitPC             // picas
	UnitPT             // points
	UnitEN             // ens
	UnitEM             // ems
)

// Events is the callback protocol the external formatting engine drives while
// typesetting one document.
type Events interface {
	Begin()
	End()
	Letter(code rune)
	Advance(n int)
	EndLine()
	Width(code rune) int
	HSpan(unit Unit, scale float64) int
}

// Session adapts the engine callbacks onto one document. It replaces the
// original's global "page being formatted" pointer with an explicit context;
// formatting is synchronous and not reentrant, so one session formats exactly
// one document.
type Session struct {
	doc   *Document
	macro Macroset
}

// NewSession returns a session that appends into d using the given macro set.
func NewSession(d *Document, macro Macroset) *Session {
	return &Session{doc: d, macro: macro}
}

// Macroset returns the style selected for this session.
func (s *Session) Macroset() Macroset { return s.macro }

// Begin is a pass-through hook; the page header is print-only and not part of
// the document body.
func (s *Session) Begin() {}

// End is the matching pass-through hook for the page footer.
func (s *Session) End() {}

// Letter appends one character to the current line.
func (s *Session) Letter(code rune) {
	s.doc.AppendChar(code)
}

// Advance appends n literal spaces to the current line.
func (s *Session) Advance(n int) {
	for i := 0; i < n; i++ {
		s.doc.AppendChar(' ')
	}
}

// EndLine starts a new output line.
func (s *Session) EndLine() {
	s.doc.StartLine()
}

// Width returns the character advance the engine should assume for code:
// zero for the break marker, one for everything else.
func (s *Session) Width(code rune) int {
	if code == Break {
		return 0
	}
	return 1
}

// HSpan converts a physical-scale measurement into an integer character
// advance. The epsilon nudge counters floating-point truncation bias; it is
// not standard rounding. Unknown units are logged and contribute zero.
func (s *Session) HSpan(unit Unit, scale float64) int {
	var r float64

	switch unit {
	case UnitBU:
		r = scale
	case UnitCM:
		r = scale * 240.0 / 2.54
	case UnitFS:
		r = scale * 65536.0
	case UnitIN:
		r = scale * 240.0
	case UnitMM:
		r = scale * 0.24
	case UnitVS, UnitPC:
		r = scale * 40.0
	case UnitPT:
		r = scale * 10.0 / 3.0
	case UnitEN, UnitEM:
		r = scale * 24.0
	default:
		log.Printf("unknown hspan unit %d", unit)
	}

	if r > 0.0 {
		return int(r + 0.01)
	}
	return int(r - 0.01)
}
