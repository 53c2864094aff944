package catalog

import (
	"fmt"
	"sort"
	"strings"
	"testing"
)

func catalogOfNames(names ...string) *Catalog {
	c := &Catalog{entries: make(map[string]Entry)}
	c.names = append(c.names, names...)
	sort.Strings(c.names)
	c.lower = make([]string, len(c.names))
	for i, n := range c.names {
		c.lower[i] = strings.ToLower(n)
	}
	return c
}

func TestSearchRanking(t *testing.T) {
	c := catalogOfNames("printf(3)", "fprintf(3)", "sprintf(3)")

	res := c.Search("printf", 0)
	if len(res.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(res.Entries))
	}

	// printf(3) matches at position 0, the others at position 1.
	if got := c.Name(res.Entries[0].Index); got != "printf(3)" {
		t.Errorf("top result = %q, want printf(3)", got)
	}
	if res.Entries[0].Goodness <= res.Entries[1].Goodness {
		t.Errorf("printf(3) goodness %d not above %d", res.Entries[0].Goodness, res.Entries[1].Goodness)
	}

	// Scores: printf(3) = -(0*100) - (9-6) = -3; the others = -(1*100) - 3 = -103.
	if res.Entries[0].Goodness != -3 {
		t.Errorf("goodness = %d, want -3", res.Entries[0].Goodness)
	}
	if res.Entries[1].Goodness != -103 || res.Entries[2].Goodness != -103 {
		t.Errorf("tail goodness = %d, %d, want -103, -103",
			res.Entries[1].Goodness, res.Entries[2].Goodness)
	}
}

func TestSearchShorterNameWinsTiebreak(t *testing.T) {
	c := catalogOfNames("cat(1)", "catman(8)")

	res := c.Search("cat", 0)
	if len(res.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(res.Entries))
	}
	if got := c.Name(res.Entries[0].Index); got != "cat(1)" {
		t.Errorf("top result = %q, want the shorter cat(1)", got)
	}
}

func TestSearchSmartcase(t *testing.T) {
	c := catalogOfNames("Xorg(1)", "xargs(1)")

	// Lowercase query matches case-insensitively.
	res := c.Search("x", 0)
	if len(res.Entries) != 2 {
		t.Errorf("lowercase query: got %d entries, want 2", len(res.Entries))
	}

	// A query with an uppercase letter matches exactly.
	res = c.Search("X", 0)
	if len(res.Entries) != 1 {
		t.Fatalf("uppercase query: got %d entries, want 1", len(res.Entries))
	}
	if got := c.Name(res.Entries[0].Index); got != "Xorg(1)" {
		t.Errorf("uppercase query matched %q, want Xorg(1)", got)
	}
}

func TestSearchCapAndOrder(t *testing.T) {
	var names []string
	for i := 0; i < 250; i++ {
		names = append(names, fmt.Sprintf("tool%03d(1)", i))
	}
	c := catalogOfNames(names...)

	res := c.Search("tool", 0)
	if len(res.Entries) != MaxResults {
		t.Fatalf("got %d entries, want cap %d", len(res.Entries), MaxResults)
	}
	for i := 1; i < len(res.Entries); i++ {
		if res.Entries[i].Goodness > res.Entries[i-1].Goodness {
			t.Fatalf("entries not sorted by non-increasing goodness at %d", i)
		}
	}
	if res.Selected != 0 || res.ViewOffset != 0 {
		t.Errorf("selection state = (%d, %d), want (0, 0)", res.Selected, res.ViewOffset)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	c := catalogOfNames("ls(1)")
	res := c.Search("", 0)
	if len(res.Entries) != 0 {
		t.Errorf("got %d entries for empty query, want 0", len(res.Entries))
	}
}

func TestSearchPositionPenaltyConfigurable(t *testing.T) {
	c := catalogOfNames("ab(1)", "ba(1)")

	// With penalty 1 the length tiebreak can outweigh position; both names
	// are the same length here so position still decides.
	res := c.Search("a", 1)
	if len(res.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(res.Entries))
	}
	if got := c.Name(res.Entries[0].Index); got != "ab(1)" {
		t.Errorf("top result = %q, want ab(1)", got)
	}
}
