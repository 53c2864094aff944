package doc

import (
	"strings"
	"testing"
)

func docOfLines(lines ...string) *Document {
	d := New()
	for i, s := range lines {
		if i > 0 {
			d.StartLine()
		}
		appendString(d, s)
	}
	return d
}

func TestUpdateSearchSmartcase(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"lowercase matches any case", "foo", 3},
		{"uppercase is exact", "Foo", 1},
		{"all caps exact", "FOO", 1},
		{"no match", "quux", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := docOfLines("foo here", "Foo there", "FOO shouting")
			d.Search.Query = tc.query
			d.UpdateSearch(CellMetrics)
			if len(d.Search.Matches) != tc.want {
				t.Errorf("query %q: got %d matches, want %d", tc.query, len(d.Search.Matches), tc.want)
			}
		})
	}
}

func TestUpdateSearchNoOverlap(t *testing.T) {
	d := docOfLines("aaaa")
	d.Search.Query = "aa"
	d.UpdateSearch(CellMetrics)
	if len(d.Search.Matches) != 2 {
		t.Errorf("got %d matches, want 2 (matches may not overlap)", len(d.Search.Matches))
	}
}

func TestUpdateSearchCap(t *testing.T) {
	// 60 matches per line over 3 lines hits the cap mid-scan.
	line := strings.Repeat("x ", 60)
	d := docOfLines(line, line, line)
	d.Search.Query = "x"
	d.UpdateSearch(CellMetrics)

	if len(d.Search.Matches) != MaxMatches {
		t.Errorf("got %d matches, want cap %d", len(d.Search.Matches), MaxMatches)
	}
	if d.Search.Index != 0 {
		t.Errorf("Index = %d, want fallback 0", d.Search.Index)
	}
}

func TestUpdateSearchEmptyQuery(t *testing.T) {
	d := docOfLines("anything")
	d.Search.Query = ""
	d.UpdateSearch(CellMetrics)
	if len(d.Search.Matches) != 0 {
		t.Errorf("got %d matches for empty query, want 0", len(d.Search.Matches))
	}
}

func TestUpdateSearchResumePoint(t *testing.T) {
	// One match per line; search began scrolled to line 5, so the current
	// match is the first one at or below that position.
	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, "needle")
	}
	d := docOfLines(lines...)
	d.Search.Query = "needle"
	d.Search.StartScroll = 5
	d.UpdateSearch(CellMetrics)

	if len(d.Search.Matches) != 10 {
		t.Fatalf("got %d matches, want 10", len(d.Search.Matches))
	}
	if d.Search.Index != 5 {
		t.Errorf("Index = %d, want 5", d.Search.Index)
	}

	// No match at or below the resume point falls back to 0.
	d2 := docOfLines("needle", "needle")
	d2.Search.Query = "needle"
	d2.Search.StartScroll = 100
	d2.UpdateSearch(CellMetrics)
	if d2.Search.Index != 0 {
		t.Errorf("Index = %d, want fallback 0", d2.Search.Index)
	}
}

func TestSearchNextPrevWrap(t *testing.T) {
	d := docOfLines("a a a")
	d.Search.Query = "a"
	d.UpdateSearch(CellMetrics)
	if len(d.Search.Matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(d.Search.Matches))
	}

	s := &d.Search
	s.Next()
	s.Next()
	if s.Index != 2 {
		t.Errorf("Index = %d, want 2", s.Index)
	}
	s.Next() // wraps
	if s.Index != 0 {
		t.Errorf("Index after wrap = %d, want 0", s.Index)
	}
	s.Prev() // wraps backwards
	if s.Index != 2 {
		t.Errorf("Index after backwards wrap = %d, want 2", s.Index)
	}
}

func TestSearchBeginAndClear(t *testing.T) {
	var s Search
	s.Begin(42)
	if !s.InputActive || !s.Visible || s.StartScroll != 42 {
		t.Errorf("Begin: %+v", s)
	}
	s.Query = "q"
	s.Clear()
	if s.InputActive || s.Visible || s.Query != "" || len(s.Matches) != 0 {
		t.Errorf("Clear: %+v", s)
	}
}
