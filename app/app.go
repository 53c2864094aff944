package app

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"manview/config"
	"manview/man/catalog"
	"manview/man/mandoc"
	searchui "manview/search"
	"manview/viewer"
)

// Options selects the page shown at startup. When Path is empty the
// application starts on the search screen.
type Options struct {
	Path string
	Dir  string
}

type mode int

const (
	modeSearch mode = iota
	modePage
)

// model is the root Bubble Tea model. It hosts the two screens and switches
// between them in response to their messages.
type model struct {
	mode   mode
	search searchui.Model
	page   viewer.Model
}

// Init implements tea.Model
func (m model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.page.Title())
}

// Update implements tea.Model
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// both screens track the terminal size
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
		m.page, cmd = m.page.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case searchui.OpenPageMsg:
		page, err := m.page.Open(msg.Path, msg.Dir)
		if err != nil {
			// the search screen stays up and the stack is untouched
			m.search = m.search.WithStatus(err.Error())
			return m, nil
		}
		m.page = page
		m.mode = modePage
		return m, tea.SetWindowTitle(m.page.Title())

	case viewer.ShowSearchMsg:
		m.mode = modeSearch
		return m, nil
	}

	var cmd tea.Cmd
	switch m.mode {
	case modeSearch:
		m.search, cmd = m.search.Update(msg)
	case modePage:
		m.page, cmd = m.page.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model
func (m model) View() string {
	if m.mode == modePage {
		return m.page.View()
	}
	return m.search.View()
}

// initLogging routes diagnostics to the debug log file, or swallows them:
// with the alt screen up, stray stderr writes corrupt the display.
func initLogging(debug bool, path string) (*os.File, error) {
	if !debug {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	f, err := tea.LogToFile(path, "debug")
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}
	return f, nil
}

// Run loads the configuration, scans the catalog, and drives the UI until
// the user quits.
func Run(opts Options) error {
	logFile, err := initLogging(os.Getenv("MANVIEW_DEBUG") != "", "manview-debug.log")
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	path, err := config.Path()
	if err != nil {
		return fmt.Errorf("locating config: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cat := catalog.Build(catalog.ManPaths())

	root := model{
		search: searchui.New(cfg, cat),
		page:   viewer.New(cfg, mandoc.Open, cat.Resolve),
	}

	if opts.Path != "" {
		root.page, err = root.page.Open(opts.Path, opts.Dir)
		if err != nil {
			return fmt.Errorf("opening %s: %w", opts.Path, err)
		}
		root.mode = modePage
	}

	p := tea.NewProgram(root, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
