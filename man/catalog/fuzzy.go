package catalog

import (
	"sort"
	"strings"
)

// MaxResults caps the ranked result list; candidates that would sort past the
// capacity are discarded.
const MaxResults = 100

// PositionPenalty is the default weight on the match position in the goodness
// score. A match further into the name is penalized this much per column.
const PositionPenalty = 100

// MatchEntry is one ranked hit: the catalog index of the name and its
// goodness score.
type MatchEntry struct {
	Index    int
	Goodness int
}

// Results is the outcome of one catalog search, recomputed from scratch on
// every query change. Selection state starts at the top.
type Results struct {
	Entries    []MatchEntry // sorted by descending goodness
	Selected   int
	ViewOffset int
}

// Search finds catalog names containing the query as a literal substring and
// ranks them. Matching is case-insensitive unless the query contains an
// uppercase letter. The goodness score strongly penalizes a later match
// position and weakly prefers shorter names as a tiebreak:
//
//	goodness = -(position × penalty) - (len(name) - len(query))
//
// penalty ≤ 0 selects the default.
func (c *Catalog) Search(query string, penalty int) Results {
	var res Results

	if len(query) == 0 {
		return res
	}
	if penalty <= 0 {
		penalty = PositionPenalty
	}

	names := c.names
	if !strings.ContainsFunc(query, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		names = c.lower
	}

	res.Entries = make([]MatchEntry, 0, MaxResults)
	for i, name := range names {
		pos := strings.Index(name, query)
		if pos < 0 {
			continue
		}
		goodness := -pos*penalty - (len(name) - len(query))

		// binary search for the insertion point in the descending order,
		// then shift; the tail entry falls off when full
		at := sort.Search(len(res.Entries), func(j int) bool {
			return res.Entries[j].Goodness < goodness
		})
		if at >= MaxResults {
			continue
		}
		if len(res.Entries) < MaxResults {
			res.Entries = res.Entries[:len(res.Entries)+1]
		}
		copy(res.Entries[at+1:], res.Entries[at:])
		res.Entries[at] = MatchEntry{Index: i, Goodness: goodness}
	}

	return res
}
