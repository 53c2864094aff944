package search

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"manview/config"
	"manview/man/catalog"
)

// buildCatalog lays out a throwaway man tree with the given page files.
func buildCatalog(t *testing.T, pages []string) *catalog.Catalog {
	t.Helper()
	root := t.TempDir()
	for _, page := range pages {
		dir := filepath.Join(root, "man"+strings.TrimPrefix(filepath.Ext(page), "."))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, page), []byte(".TH X 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return catalog.Build([]string{root})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, pages []string) Model {
	t.Helper()
	m := New(config.Default(), buildCatalog(t, pages))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func TestTypingNarrowsResults(t *testing.T) {
	m := newTestModel(t, []string{"printf.3", "fprintf.3", "ls.1"})

	// nothing is listed until a query is typed
	if got := len(m.results.Entries); got != 0 {
		t.Fatalf("empty query lists %d entries, want 0", got)
	}

	for _, r := range "printf" {
		m, _ = m.Update(keyRunes(string(r)))
	}
	if got := len(m.results.Entries); got != 2 {
		t.Fatalf("query printf lists %d entries, want 2", got)
	}
	// the earlier match ranks first
	if got := m.catalog.Name(m.results.Entries[0].Index); got != "printf(3)" {
		t.Errorf("best match = %q, want printf(3)", got)
	}
}

func TestBackspaceWidensResults(t *testing.T) {
	m := newTestModel(t, []string{"ls.1", "lp.1"})

	m, _ = m.Update(keyRunes("l"))
	m, _ = m.Update(keyRunes("s"))
	if got := len(m.results.Entries); got != 1 {
		t.Fatalf("query ls lists %d entries, want 1", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := len(m.results.Entries); got != 2 {
		t.Errorf("query l lists %d entries, want 2", got)
	}

	// clearing the query empties the list again
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := len(m.results.Entries); got != 0 {
		t.Errorf("cleared query lists %d entries, want 0", got)
	}
}

func TestEscClearsQueryBeforeQuitting(t *testing.T) {
	m := newTestModel(t, []string{"ls.1"})

	m, _ = m.Update(keyRunes("x"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		t.Fatalf("esc with a query quit instead of clearing")
	}
	if m.query != "" {
		t.Fatalf("esc did not clear the query")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("esc with an empty query did not quit")
	}
}

func TestEnterOpensSelection(t *testing.T) {
	m := newTestModel(t, []string{"printf.3", "fprintf.3"})

	for _, r := range "printf" {
		m, _ = m.Update(keyRunes(string(r)))
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("enter produced no command")
	}
	msg, ok := cmd().(OpenPageMsg)
	if !ok {
		t.Fatalf("enter did not produce an open request")
	}
	if filepath.Base(msg.Path) != "fprintf.3" {
		t.Errorf("opened %q, want fprintf.3", msg.Path)
	}
	if msg.Dir == "" {
		t.Errorf("open request has no man tree directory")
	}
}

func TestSelectionStaysInRange(t *testing.T) {
	m := newTestModel(t, []string{"ls.1", "lp.1"})

	m, _ = m.Update(keyRunes("l"))
	if got := len(m.results.Entries); got != 2 {
		t.Fatalf("query l lists %d entries, want 2", got)
	}

	for i := 0; i < 10; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if got := m.results.Selected; got != 1 {
		t.Errorf("selection ran past the end: %d", got)
	}
	for i := 0; i < 10; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	}
	if got := m.results.Selected; got != 0 {
		t.Errorf("selection ran past the start: %d", got)
	}
}

func TestStatusShownUntilQueryChanges(t *testing.T) {
	m := newTestModel(t, []string{"ls.1"})

	m = m.WithStatus("formatting ls.1: mandoc failed")
	if !strings.Contains(m.View(), "mandoc failed") {
		t.Fatalf("status message is not shown in the footer")
	}

	m, _ = m.Update(keyRunes("l"))
	if strings.Contains(m.View(), "mandoc failed") {
		t.Errorf("typing did not clear the status message")
	}
}

func TestViewShowsMatchCount(t *testing.T) {
	m := newTestModel(t, []string{"printf.3", "ls.1"})
	m, _ = m.Update(keyRunes("p"))

	view := m.View()
	if !strings.Contains(view, "1/2") {
		t.Errorf("view does not show the match count:\n%s", view)
	}
	if !strings.Contains(view, "printf(3)") {
		t.Errorf("view does not list the match:\n%s", view)
	}
}
