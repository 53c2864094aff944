package search

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"manview/config"
	"manview/man/catalog"
)

// OpenPageMsg asks the application to open a page on the page screen.
type OpenPageMsg struct {
	Path string
	Dir  string
}

type styles struct {
	prompt   lipgloss.Style
	normal   lipgloss.Style
	selected lipgloss.Style
	count    lipgloss.Style
	help     lipgloss.Style
	err      lipgloss.Style
}

func newStyles(c config.Colors) styles {
	return styles{
		prompt:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Bold)),
		normal:   lipgloss.NewStyle().Foreground(lipgloss.Color(c.Foreground)),
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color(c.Foreground)).Background(lipgloss.Color(c.Selection)),
		count:    lipgloss.NewStyle().Foreground(lipgloss.Color(c.Dim)),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color(c.Dim)),
		err:      lipgloss.NewStyle().Foreground(lipgloss.Color(c.Error)),
	}
}

// Model is the Bubble Tea model for the catalog search screen. Typing
// narrows the candidate list incrementally; the result window scrolls to
// keep the selection visible.
type Model struct {
	catalog *catalog.Catalog
	cfg     config.Config
	styles  styles

	query   string
	results catalog.Results
	status  string // transient message shown in the footer

	width  int
	height int
}

// New returns a search screen over the catalog with an empty query.
func New(cfg config.Config, c *catalog.Catalog) Model {
	m := Model{
		catalog: c,
		cfg:     cfg,
		styles:  newStyles(cfg.Colors),
	}
	m.results = c.Search("", cfg.Search.PositionPenalty)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// visibleRows is the size of the result window.
func (m Model) visibleRows() int {
	rows := m.height - 3 // prompt, blank separator, footer
	if rows < 1 {
		rows = 1
	}
	return rows
}

// moveSelection shifts the selection and scrolls the window to keep it
// visible.
func (m *Model) moveSelection(delta int) {
	n := len(m.results.Entries)
	if n == 0 {
		return
	}
	m.results.Selected += delta
	if m.results.Selected < 0 {
		m.results.Selected = 0
	}
	if m.results.Selected >= n {
		m.results.Selected = n - 1
	}
	rows := m.visibleRows()
	if m.results.Selected < m.results.ViewOffset {
		m.results.ViewOffset = m.results.Selected
	}
	if m.results.Selected >= m.results.ViewOffset+rows {
		m.results.ViewOffset = m.results.Selected - rows + 1
	}
}

func (m *Model) setQuery(q string) {
	m.query = q
	m.status = ""
	m.results = m.catalog.Search(q, m.cfg.Search.PositionPenalty)
}

// WithStatus returns the model with a message in the footer, shown until the
// query changes. The application uses it to report a failed open.
func (m Model) WithStatus(status string) Model {
	m.status = status
	return m
}

// openSelected resolves the selected entry to its source file.
func (m Model) openSelected() tea.Cmd {
	if m.results.Selected >= len(m.results.Entries) {
		return nil
	}
	idx := m.results.Entries[m.results.Selected].Index
	entry, ok := m.catalog.Get(m.catalog.Name(idx))
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return OpenPageMsg{Path: entry.Path, Dir: entry.Dir}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			return m, tea.Quit

		case "esc":
			if m.query == "" {
				return m, tea.Quit
			}
			m.setQuery("")
			return m, nil

		case "enter":
			return m, m.openSelected()

		case "up", "ctrl+p":
			m.moveSelection(-1)
			return m, nil

		case "down", "ctrl+n":
			m.moveSelection(1)
			return m, nil

		case "pgup":
			m.moveSelection(-m.visibleRows())
			return m, nil

		case "pgdown":
			m.moveSelection(m.visibleRows())
			return m, nil

		case "backspace":
			if len(m.query) > 0 {
				m.setQuery(m.query[:len(m.query)-1])
			}
			return m, nil

		default:
			if msg.Type == tea.KeyRunes || msg.String() == " " {
				m.setQuery(m.query + msg.String())
			}
			return m, nil
		}

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Action == tea.MouseActionPress {
			m.moveSelection(-1)
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if msg.Action == tea.MouseActionPress {
			m.moveSelection(1)
		}
		return m, nil
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionRelease {
			// result rows start below the prompt and separator
			row := msg.Y - 2
			idx := m.results.ViewOffset + row
			if row >= 0 && row < m.visibleRows() && idx < len(m.results.Entries) {
				m.results.Selected = idx
				return m, m.openSelected()
			}
		}
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width < 4 {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.styles.prompt.Render("man: "))
	b.WriteString(m.styles.normal.Render(m.query))
	b.WriteString("\n\n")

	rows := m.visibleRows()
	end := m.results.ViewOffset + rows
	if end > len(m.results.Entries) {
		end = len(m.results.Entries)
	}
	for i := m.results.ViewOffset; i < end; i++ {
		name := m.catalog.Name(m.results.Entries[i].Index)
		line := "  " + runewidth.Truncate(name, m.width-2, "…")
		if i == m.results.Selected {
			line = "> " + runewidth.Truncate(name, m.width-2, "…")
			line += strings.Repeat(" ", max(0, m.width-runewidth.StringWidth(line)))
			b.WriteString(m.styles.selected.Render(line))
		} else {
			b.WriteString(m.styles.normal.Render(line))
		}
		b.WriteByte('\n')
	}
	for i := end - m.results.ViewOffset; i < rows; i++ {
		b.WriteByte('\n')
	}

	count := fmt.Sprintf("%d/%d", len(m.results.Entries), m.catalog.Len())
	tail := m.styles.help.Render("enter open · esc clear · ctrl+c quit")
	tailWidth := runewidth.StringWidth("enter open · esc clear · ctrl+c quit")
	if m.status != "" {
		trimmed := runewidth.Truncate(m.status, m.width-runewidth.StringWidth(count)-1, "…")
		tail = m.styles.err.Render(trimmed)
		tailWidth = runewidth.StringWidth(trimmed)
	}
	gap := m.width - runewidth.StringWidth(count) - tailWidth
	if gap < 1 {
		gap = 1
	}
	b.WriteString(m.styles.count.Render(count))
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(tail)

	return b.String()
}
