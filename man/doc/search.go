package doc

// MaxMatches caps the number of recorded in-document search matches. When the
// cap is reached mid-scan the remaining lines are left unscanned.
const MaxMatches = 100

// Match is one in-document search hit. Matches are regenerated wholesale on
// every query change.
type Match struct {
	Rect Rect
}

// Search is the in-document incremental search state owned by a document.
type Search struct {
	Query       string
	InputActive bool // typing into the search box
	Visible     bool // highlight matches in the view
	Matches     []Match
	Index       int // current match
	StartScroll int // scroll position captured when the search began
}

// Begin activates search input, capturing the scroll position the view will
// return to on cancel and that current-match selection resumes from.
func (s *Search) Begin(scroll int) {
	s.Query = ""
	s.Matches = nil
	s.Index = 0
	s.StartScroll = scroll
	s.Visible = true
	s.InputActive = true
}

// Clear deactivates and empties the search.
func (s *Search) Clear() {
	s.Query = ""
	s.Matches = nil
	s.Index = 0
	s.Visible = false
	s.InputActive = false
}

// Next advances the current match, wrapping past the end.
func (s *Search) Next() {
	if len(s.Matches) == 0 {
		return
	}
	s.Index = (s.Index + 1) % len(s.Matches)
}

// Prev moves the current match backwards, wrapping past the start.
func (s *Search) Prev() {
	if len(s.Matches) == 0 {
		return
	}
	s.Index--
	if s.Index < 0 {
		s.Index += len(s.Matches)
	}
}

// Current returns the rectangle of the current match.
func (s *Search) Current() (Rect, bool) {
	if len(s.Matches) == 0 || s.Index >= len(s.Matches) {
		return Rect{}, false
	}
	return s.Matches[s.Index].Rect, true
}

// UpdateSearch rescans the whole document for the current query. Matching is
// smartcase: case-insensitive unless the query contains an uppercase letter.
// Matches cannot overlap; the scan advances by the query length on a hit.
// The current match becomes the first one at or below the scroll position
// captured when the search began, defaulting to index 0.
func (d *Document) UpdateSearch(m Metrics) {
	s := &d.Search
	s.Matches = nil
	s.Index = 0

	if len(s.Query) == 0 {
		return
	}

	query := []byte(s.Query)
	ignoreCase := !containsUppercase(s.Query)
	indexSet := false
	buf := make([]byte, maxLineBytes)

	for i := range d.Lines {
		n := d.PlainLine(i, buf)
		line := buf[:n]

		for pos := 0; pos < len(line); {
			if !matchAt(line, pos, query, ignoreCase) {
				pos++
				continue
			}

			x := pos * m.CharWidth
			y := i * m.LineAdvance
			r := Rect{X: x, Y: y, X2: x + len(query)*m.CharWidth, Y2: y + m.LineHeight}

			if r.Y+m.DocMargin >= s.StartScroll && !indexSet {
				s.Index = len(s.Matches)
				indexSet = true
			}

			s.Matches = append(s.Matches, Match{Rect: r})

			if len(s.Matches) >= MaxMatches {
				if !indexSet {
					s.Index = 0
				}
				return
			}

			pos += len(query)
		}
	}
}

func matchAt(line []byte, pos int, query []byte, ignoreCase bool) bool {
	if pos+len(query) > len(line) {
		return false
	}
	for j, q := range query {
		c := line[pos+j]
		if c == q {
			continue
		}
		if ignoreCase && lowerByte(c) == lowerByte(q) {
			continue
		}
		return false
	}
	return true
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func containsUppercase(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			return true
		}
	}
	return false
}
