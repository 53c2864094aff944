package viewer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"manview/config"
	"manview/man/doc"
	"manview/man/text"
)

// ShowSearchMsg asks the application to switch to the catalog search screen.
type ShowSearchMsg struct{}

// Opener loads and formats a page source file.
type Opener func(path, dir string) (*doc.Document, error)

// styles holds the lipgloss styles derived from the configured palette.
type styles struct {
	plain      lipgloss.Style
	bold       lipgloss.Style
	italic     lipgloss.Style
	dim        lipgloss.Style
	link       lipgloss.Style
	match      lipgloss.Style
	matchSel   lipgloss.Style
	err        lipgloss.Style
	thumb      lipgloss.Style
	track      lipgloss.Style
	statusLine lipgloss.Style
}

func newStyles(c config.Colors) styles {
	return styles{
		plain:      lipgloss.NewStyle().Foreground(lipgloss.Color(c.Foreground)),
		bold:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Bold)),
		italic:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(c.Italic)),
		dim:        lipgloss.NewStyle().Foreground(lipgloss.Color(c.Dim)),
		link:       lipgloss.NewStyle().Foreground(lipgloss.Color(c.Link)).Underline(true),
		match:      lipgloss.NewStyle().Background(lipgloss.Color(c.Search)),
		matchSel:   lipgloss.NewStyle().Background(lipgloss.Color(c.SearchSelected)),
		err:        lipgloss.NewStyle().Foreground(lipgloss.Color(c.Error)),
		thumb:      lipgloss.NewStyle().Foreground(lipgloss.Color(c.Dim)),
		track:      lipgloss.NewStyle().Foreground(lipgloss.Color(c.Selection)),
		statusLine: lipgloss.NewStyle().Foreground(lipgloss.Color(c.Dim)),
	}
}

// Model is the Bubble Tea model for the page screen. It owns the navigation
// stack, the viewport, and all in-document search interaction.
type Model struct {
	stack   Stack
	vp      Viewport
	opener  Opener
	resolve doc.LinkTarget
	cfg     config.Config
	styles  styles

	width  int
	height int

	status   string // transient message shown in the status line
	gPending bool   // first g of a gg sequence seen

	// scrollbar thumb dragging
	dragging       bool
	dragStartY     int
	dragStartThumb int

	// link press tracking: a click opens only when press and release hit
	// the same link
	pressedLink int

	// View reuses the cached render until a mutation invalidates it. The
	// cache is shared by pointer so it survives the value copies Bubble
	// Tea makes of the model.
	cache *renderCache
}

type renderCache struct {
	valid bool
	s     string
}

func (m Model) invalidate() {
	m.cache.valid = false
}

// New returns a page screen with an empty navigation stack.
func New(cfg config.Config, opener Opener, resolve doc.LinkTarget) Model {
	return Model{
		cfg:         cfg,
		styles:      newStyles(cfg.Colors),
		opener:      opener,
		resolve:     resolve,
		vp:          Viewport{MinThumb: cfg.Scroll.MinThumbRows},
		pressedLink: -1,
		cache:       &renderCache{},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Page returns the displayed document, or nil.
func (m Model) Page() *doc.Document {
	return m.stack.Current()
}

// Open formats the target, resolves its links, and pushes it onto the
// navigation stack. On failure the stack and the displayed page are left
// unchanged and only the status line is affected.
func (m Model) Open(path, dir string) (Model, error) {
	d, err := m.opener(path, dir)
	if err != nil {
		m.status = err.Error()
		m.invalidate()
		return m, err
	}

	doc.FindLinks(d, m.resolve, doc.CellMetrics)
	m.stack.Push(d)
	m.status = ""
	m.syncPage()
	return m, nil
}

// syncPage points the viewport at the current page, restoring its scroll
// position.
func (m *Model) syncPage() {
	if page := m.stack.Current(); page != nil {
		m.vp.DocHeight = page.Height(doc.CellMetrics)
		m.vp.Scroll = m.vp.ClampScroll(page.Scroll)
		page.Scroll = m.vp.Scroll
	}
	m.invalidate()
}

// Title returns the window title for the displayed page.
func (m Model) Title() string {
	page := m.stack.Current()
	if page == nil {
		return "manview"
	}
	if page.Name != "" {
		return fmt.Sprintf("%s(%s) - manview", page.Name, page.Section)
	}
	return fmt.Sprintf("%s - manview", page.Path)
}

func (m Model) scrollAmount() int {
	return m.cfg.Scroll.AmountLines * doc.CellMetrics.LineAdvance
}

func (m Model) searchMargin() int {
	return m.cfg.Search.ScrollMarginLines * doc.CellMetrics.LineAdvance
}

// scrollTo assigns a clamped scroll position and invalidates the render only
// when the position actually moved.
func (m *Model) scrollTo(p int) {
	if m.vp.SetScroll(p) {
		if page := m.stack.Current(); page != nil {
			page.Scroll = m.vp.Scroll
		}
		m.invalidate()
	}
}

func (m *Model) scrollBy(px int) {
	m.scrollTo(m.vp.Scroll + px)
}

// showCurrentMatch scrolls the current search match into view relative to
// the given preferred position.
func (m *Model) showCurrentMatch(preferred int) {
	page := m.stack.Current()
	if page == nil {
		return
	}
	if r, ok := page.Search.Current(); ok {
		m.scrollTo(m.vp.ScrollIntoView(r, preferred, m.searchMargin()))
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Height = msg.Height - 1 // status line
		m.syncPage()
		return m, nil

	case tea.KeyMsg:
		page := m.stack.Current()
		if page == nil {
			return m, nil
		}
		if page.Search.InputActive {
			return m.updateSearchInput(msg, page)
		}
		return m.updateNormal(msg, page)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg, page *doc.Document) (Model, tea.Cmd) {
	key := msg.String()

	// gg scrolls to the top, any other key cancels the pending g
	if key == "g" {
		if m.gPending {
			m.gPending = false
			m.scrollTo(0)
			return m, nil
		}
		m.gPending = true
		return m, nil
	}
	if m.gPending {
		m.gPending = false
		return m, nil
	}

	switch key {
	case "q", "Q", "ctrl+c", "ctrl+d":
		return m, tea.Quit

	case "b", "esc":
		if m.stack.Back() {
			m.syncPage()
			return m, tea.SetWindowTitle(m.Title())
		}
		// at the bottom of history the page screen gives way to search
		return m, func() tea.Msg { return ShowSearchMsg{} }

	case "f":
		if m.stack.Forward() {
			m.syncPage()
			return m, tea.SetWindowTitle(m.Title())
		}
		return m, nil

	case "ctrl+f":
		return m, func() tea.Msg { return ShowSearchMsg{} }

	case "/":
		page.Search.Begin(m.vp.Scroll)
		m.invalidate()
		return m, nil

	case "enter":
		page.Search.Clear()
		m.invalidate()
		return m, nil

	case "n":
		if page.Search.Visible {
			page.Search.Next()
			m.showCurrentMatch(m.vp.Scroll)
			m.invalidate()
		}
		return m, nil

	case "N":
		if page.Search.Visible {
			page.Search.Prev()
			m.showCurrentMatch(m.vp.Scroll)
			m.invalidate()
		}
		return m, nil

	case "j", "down":
		m.scrollBy(m.scrollAmount())
		return m, nil

	case "k", "up":
		m.scrollBy(-m.scrollAmount())
		return m, nil

	case "J":
		m.scrollBy(5 * m.scrollAmount())
		return m, nil

	case "K":
		m.scrollBy(-5 * m.scrollAmount())
		return m, nil

	case " ", "pgdown":
		m.scrollBy(m.vp.Height - doc.CellMetrics.LineAdvance)
		return m, nil

	case "pgup":
		m.scrollBy(-(m.vp.Height - doc.CellMetrics.LineAdvance))
		return m, nil

	case "home":
		m.scrollTo(0)
		return m, nil

	case "G", "end":
		m.scrollTo(1000000000)
		return m, nil
	}
	return m, nil
}

func (m Model) updateSearchInput(msg tea.KeyMsg, page *doc.Document) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+d", "esc":
		// cancel: return to where the search began
		page.Search.InputActive = false
		page.Search.Visible = false
		m.scrollTo(page.Search.StartScroll)
		m.invalidate()
		return m, nil

	case "enter":
		// accept: keep the matches highlighted
		page.Search.InputActive = false
		m.invalidate()
		return m, nil

	case "backspace":
		if len(page.Search.Query) > 0 {
			page.Search.Query = page.Search.Query[:len(page.Search.Query)-1]
			page.UpdateSearch(doc.CellMetrics)
			m.showCurrentMatch(page.Search.StartScroll)
			m.invalidate()
		}
		return m, nil

	default:
		if msg.Type == tea.KeyRunes || msg.String() == " " {
			page.Search.Query += msg.String()
			page.UpdateSearch(doc.CellMetrics)
			m.showCurrentMatch(page.Search.StartScroll)
			m.invalidate()
		}
		return m, nil
	}
}

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	page := m.stack.Current()
	if page == nil {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Action == tea.MouseActionPress {
			m.scrollBy(-m.scrollAmount())
		}
		return m, nil

	case tea.MouseButtonWheelDown:
		if msg.Action == tea.MouseActionPress {
			m.scrollBy(m.scrollAmount())
		}
		return m, nil

	case tea.MouseButtonRight:
		if msg.Action == tea.MouseActionRelease {
			if m.stack.Back() {
				m.syncPage()
				return m, tea.SetWindowTitle(m.Title())
			}
			return m, func() tea.Msg { return ShowSearchMsg{} }
		}
		return m, nil

	case tea.MouseButtonLeft:
		switch msg.Action {
		case tea.MouseActionPress:
			return m.mouseDown(msg, page), nil
		case tea.MouseActionRelease:
			return m.mouseUp(msg, page)
		}
		return m, nil

	case tea.MouseButtonNone:
		if msg.Action == tea.MouseActionMotion {
			return m.mouseMotion(msg, page), nil
		}
		return m, nil
	}
	return m, nil
}

func (m Model) mouseDown(msg tea.MouseMsg, page *doc.Document) Model {
	if msg.X == m.width-1 {
		// scrollbar column
		thumbPos := m.vp.ThumbPosition()
		thumbSize := m.vp.ThumbSize()
		switch {
		case msg.Y >= thumbPos && msg.Y < thumbPos+thumbSize:
			m.dragging = true
			m.dragStartY = msg.Y
			m.dragStartThumb = thumbPos
		case msg.Y < thumbPos:
			m.scrollBy(-(m.vp.Height - doc.CellMetrics.LineAdvance))
		default:
			m.scrollBy(m.vp.Height - doc.CellMetrics.LineAdvance)
		}
		return m
	}

	m.pressedLink = m.linkAt(page, msg.X, msg.Y)
	return m
}

func (m Model) mouseUp(msg tea.MouseMsg, page *doc.Document) (Model, tea.Cmd) {
	if m.dragging {
		m.dragging = false
		return m, nil
	}

	if m.pressedLink >= 0 {
		pressed := m.pressedLink
		m.pressedLink = -1
		if m.linkAt(page, msg.X, msg.Y) == pressed {
			link := page.Links[pressed]
			next, err := m.Open(link.Path, link.Dir)
			if err != nil {
				return next, nil
			}
			return next, tea.SetWindowTitle(next.Title())
		}
	}
	return m, nil
}

func (m Model) mouseMotion(msg tea.MouseMsg, page *doc.Document) Model {
	if m.dragging {
		room := m.vp.Height - m.vp.ThumbSize()
		newThumb := m.dragStartThumb + msg.Y - m.dragStartY
		if newThumb < 0 {
			newThumb = 0
		}
		if newThumb > room {
			newThumb = room
		}
		m.scrollTo(m.vp.ScrollForThumb(newThumb))
		return m
	}

	// hover highlighting
	hovered := m.linkAt(page, msg.X, msg.Y)
	for i := range page.Links {
		want := i == hovered
		if page.Links[i].Highlight != want {
			page.Links[i].Highlight = want
			m.invalidate()
		}
	}
	return m
}

// linkAt returns the index of the link under the screen position, or -1.
func (m Model) linkAt(page *doc.Document, x, y int) int {
	docX := x * doc.CellMetrics.CharWidth
	docY := y + m.vp.Scroll
	for i := range page.Links {
		if page.Links[i].Rect.Contains(docX, docY) {
			return i
		}
	}
	return -1
}

// View implements tea.Model. The render is cached until a mutation
// invalidates it.
func (m Model) View() string {
	if m.cache.valid {
		return m.cache.s
	}

	page := m.stack.Current()
	if page == nil || m.width < 2 || m.vp.Height < 1 {
		return ""
	}

	var b strings.Builder
	thumbPos := m.vp.ThumbPosition()
	thumbSize := m.vp.ThumbSize()

	for row := 0; row < m.vp.Height; row++ {
		lineIdx := (m.vp.Scroll + row) / doc.CellMetrics.LineAdvance
		if m.vp.Scroll+row < m.vp.DocHeight && lineIdx < len(page.Lines) {
			b.WriteString(m.renderLine(page, lineIdx))
		} else {
			b.WriteString(strings.Repeat(" ", m.width-1))
		}

		// scrollbar column
		if row >= thumbPos && row < thumbPos+thumbSize {
			b.WriteString(m.styles.thumb.Render("█"))
		} else {
			b.WriteString(m.styles.track.Render("│"))
		}
		b.WriteByte('\n')
	}

	b.WriteString(m.statusView(page))

	m.cache.s = b.String()
	m.cache.valid = true
	return m.cache.s
}

// cell pairs one output byte with the decoration it renders under.
type cell struct {
	ch      byte
	style   text.Style
	overlay int // 0 none, 1 match, 2 selected match, 3 hovered link
}

func (m Model) renderLine(page *doc.Document, lineIdx int) string {
	runs := text.Runs(page.Lines[lineIdx].Raw())

	var cells []cell
	for _, run := range runs {
		for i := 0; i < len(run.Text); i++ {
			cells = append(cells, cell{ch: run.Text[i], style: run.Style})
		}
	}

	lineY := lineIdx * doc.CellMetrics.LineAdvance
	if page.Search.Visible {
		for i, match := range page.Search.Matches {
			r := match.Rect
			if r.Y != lineY {
				continue
			}
			overlay := 1
			if i == page.Search.Index {
				overlay = 2
			}
			markCells(cells, r.X, r.X2, overlay)
		}
	}
	for i := range page.Links {
		if page.Links[i].Highlight && page.Links[i].Rect.Y == lineY {
			markCells(cells, page.Links[i].Rect.X, page.Links[i].Rect.X2, 3)
		}
	}

	if len(cells) > m.width-1 {
		cells = cells[:m.width-1]
	}

	// group consecutive cells with identical decoration into one styled
	// segment
	var b strings.Builder
	for start := 0; start < len(cells); {
		end := start + 1
		for end < len(cells) && cells[end].style == cells[start].style && cells[end].overlay == cells[start].overlay {
			end++
		}
		seg := make([]byte, end-start)
		for i := start; i < end; i++ {
			seg[i-start] = cells[i].ch
		}
		b.WriteString(m.segmentStyle(cells[start]).Render(string(seg)))
		start = end
	}

	if pad := m.width - 1 - len(cells); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	return b.String()
}

func markCells(cells []cell, x, x2, overlay int) {
	for col := x / doc.CellMetrics.CharWidth; col < x2/doc.CellMetrics.CharWidth && col < len(cells); col++ {
		if col >= 0 {
			cells[col].overlay = overlay
		}
	}
}

func (m Model) segmentStyle(c cell) lipgloss.Style {
	var s lipgloss.Style
	switch c.style {
	case text.Bold:
		s = m.styles.bold
	case text.Italic:
		s = m.styles.italic
	case text.Dim:
		s = m.styles.dim
	default:
		s = m.styles.plain
	}
	switch c.overlay {
	case 1:
		s = s.Inherit(m.styles.match)
	case 2:
		s = s.Inherit(m.styles.matchSel)
	case 3:
		s = m.styles.link
	}
	return s
}

func (m Model) statusView(page *doc.Document) string {
	if page.Search.InputActive || (page.Search.Visible && page.Search.Query != "") {
		prompt := "/" + page.Search.Query
		if page.Search.Query == "" {
			return m.styles.dim.Render("Search")
		}
		if len(page.Search.Matches) == 0 {
			return m.styles.err.Render(prompt)
		}
		status := fmt.Sprintf("%s  [%d/%d]", prompt, page.Search.Index+1, len(page.Search.Matches))
		return m.styles.plain.Render(runewidth.Truncate(status, m.width, ""))
	}

	if m.status != "" {
		return m.styles.err.Render(runewidth.Truncate(m.status, m.width, ""))
	}

	pct := 100
	if limit := m.vp.DocHeight - m.vp.Height; limit > 0 {
		pct = m.vp.Scroll * 100 / limit
	}
	left := fmt.Sprintf("%s(%s)", page.Name, page.Section)
	right := fmt.Sprintf("%d%%", pct)
	gap := m.width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	return m.styles.statusLine.Render(left + strings.Repeat(" ", gap) + right)
}
