package analyze

import (
	"os/exec"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/linmole/internal/core"
	"github.com/lakshaymaurya-felt/linmole/internal/ui"
)

// searchDebounce is the delay before running the search after a keystroke.
const searchDebounce = 150 * time.Millisecond

// maxSearchResults caps the result list the search UI navigates.
const maxSearchResults = 50

// ─── Messages ────────────────────────────────────────────────────────────────

// searchTickMsg is sent after a debounce delay to trigger the actual search.
type searchTickMsg struct {
	query string
}

type scanDoneMsg struct {
	root *DirEntry
	err  error
}

type deleteResultMsg struct {
	path  string
	freed int64
	err   error
}

func (m AnalyzeModel) startScan() tea.Cmd {
	scanner := m.scanner
	path := m.path
	return func() tea.Msg {
		root, err := scanner.Scan(path)
		return scanDoneMsg{root: root, err: err}
	}
}

func (m AnalyzeModel) deleteEntry(entry *DirEntry) tea.Cmd {
	executor := m.executor
	return func() tea.Msg {
		freed, err := executor.SafeDelete(entry.Path, false)
		return deleteResultMsg{path: entry.Path, freed: freed, err: err}
	}
}

// ─── Model ───────────────────────────────────────────────────────────────────

// AnalyzeModel is the bubbletea Model for the disk analyzer TUI. It
// owns the scan: the program starts on a spinner while the scanner
// walks the tree, then switches to the browser.
type AnalyzeModel struct {
	path     string
	scanner  *Scanner
	executor *core.Executor

	scanning bool
	spinner  spinner.Model
	input    textinput.Model

	root          *DirEntry
	current       *DirEntry   // directory being displayed
	cursor        int         // selected item index
	breadcrumb    []*DirEntry // navigation history stack
	width         int
	height        int
	offset        int  // viewport scroll offset
	largeOnly     bool // filter: show only >100MB
	confirmDelete bool // two-key delete: Backspace then Enter
	quitting      bool
	err           error
	maxDepth      int   // 0 = unlimited
	minSize       int64 // 0 = show all
	freedTotal    int64 // bytes deleted this session

	// Search state
	searching     bool
	searchResults []SearchResult
	searchCursor  int
}

// NewAnalyzeModel creates an AnalyzeModel that will scan path on start.
func NewAnalyzeModel(executor *core.Executor, scanner *Scanner, path string, maxDepth int, minSize int64) AnalyzeModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ui.ColorCoral)

	ti := textinput.New()
	ti.Prompt = "  / "
	ti.Placeholder = "search files and directories"
	ti.CharLimit = 120

	return AnalyzeModel{
		path:     path,
		scanner:  scanner,
		executor: executor,
		scanning: true,
		spinner:  sp,
		input:    ti,
		width:    80,
		height:   24,
		maxDepth: maxDepth,
		minSize:  minSize,
	}
}

// Err returns the fatal scan error, if any, for the command layer to
// report after the program exits.
func (m AnalyzeModel) Err() error {
	if m.scanning || m.root != nil {
		return nil
	}
	return m.err
}

// FreedTotal returns the bytes deleted during this session.
func (m AnalyzeModel) FreedTotal() int64 { return m.freedTotal }

func (m AnalyzeModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startScan())
}

func (m AnalyzeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case scanDoneMsg:
		m.scanning = false
		if msg.err != nil {
			m.err = msg.err
			m.quitting = true
			return m, tea.Quit
		}
		m.root = msg.root
		m.current = msg.root
		return m, nil

	case tea.KeyMsg:
		if m.scanning {
			switch msg.String() {
			case "q", "esc", "ctrl+c":
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
		return m.updateKey(msg)

	case searchTickMsg:
		// Only search if the query hasn't changed since the tick was
		// scheduled (debounce).
		if m.searching && msg.query == m.input.Value() {
			m.searchResults = SearchTreeBounded(m.root, msg.query, maxSearchResults)
			if m.searchCursor >= len(m.searchResults) {
				m.searchCursor = 0
			}
		}
		return m, nil

	case deleteResultMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.freedTotal += msg.freed
			m.removeEntry(msg.path)
		}
		return m, nil
	}

	return m, nil
}

func (m AnalyzeModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Search mode: navigation keys first, everything else feeds the input.
	if m.searching {
		switch msg.Type {
		case tea.KeyEscape:
			m.closeSearch()
			return m, nil
		case tea.KeyEnter:
			if m.searchCursor >= 0 && m.searchCursor < len(m.searchResults) {
				m.navigateToEntry(m.searchResults[m.searchCursor].Entry)
				m.closeSearch()
			}
			return m, nil
		case tea.KeyUp:
			if m.searchCursor > 0 {
				m.searchCursor--
			}
			return m, nil
		case tea.KeyDown:
			if m.searchCursor < len(m.searchResults)-1 {
				m.searchCursor++
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		query := m.input.Value()
		m.searchCursor = 0
		return m, tea.Batch(cmd, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return searchTickMsg{query: query}
		}))
	}

	// If awaiting delete confirmation, only Enter confirms.
	if m.confirmDelete {
		if msg.String() == "enter" {
			m.confirmDelete = false
			items := m.visibleItems()
			if m.cursor >= 0 && m.cursor < len(items) {
				return m, m.deleteEntry(items[m.cursor])
			}
		}
		m.confirmDelete = false
		return m, nil
	}

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}

	case "down", "j":
		items := m.visibleItems()
		if m.cursor < len(items)-1 {
			m.cursor++
			m.ensureVisible()
		}

	case "right", "l":
		// Drill into a directory.
		items := m.visibleItems()
		if m.cursor >= 0 && m.cursor < len(items) {
			entry := items[m.cursor]
			if entry.IsDir && len(entry.Children) > 0 {
				m.breadcrumb = append(m.breadcrumb, m.current)
				m.current = entry
				m.cursor = 0
				m.offset = 0
			}
		}

	case "enter":
		// Reveal in the desktop file manager.
		items := m.visibleItems()
		if m.cursor >= 0 && m.cursor < len(items) {
			openFileManager(items[m.cursor].Path)
		}

	case "left", "h":
		// Go up to parent directory.
		if len(m.breadcrumb) > 0 {
			m.current = m.breadcrumb[len(m.breadcrumb)-1]
			m.breadcrumb = m.breadcrumb[:len(m.breadcrumb)-1]
			m.cursor = 0
			m.offset = 0
		}

	case "backspace":
		// First key of two-key delete confirmation.
		items := m.visibleItems()
		if m.cursor >= 0 && m.cursor < len(items) {
			m.confirmDelete = true
		}

	case "L":
		m.largeOnly = !m.largeOnly
		m.cursor = 0
		m.offset = 0

	case "/":
		m.searching = true
		m.searchResults = nil
		m.searchCursor = 0
		return m, m.input.Focus()
	}

	return m, nil
}

// View delegates to view.go renderView.
func (m AnalyzeModel) View() string {
	return m.renderView()
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (m *AnalyzeModel) closeSearch() {
	m.searching = false
	m.input.Blur()
	m.input.SetValue("")
	m.searchResults = nil
	m.searchCursor = 0
}

func (m *AnalyzeModel) ensureVisible() {
	vh := m.viewportHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

func (m *AnalyzeModel) viewportHeight() int {
	h := m.height - 8 // header (4) + footer (3) + padding
	if h < 1 {
		h = 1
	}
	return h
}

// visibleItems returns the children of the current directory after the
// size, large-only, and depth filters.
func (m AnalyzeModel) visibleItems() []*DirEntry {
	if m.current == nil {
		return nil
	}

	var currentDepth int
	if m.maxDepth > 0 {
		currentDepth = m.currentDepth()
	}

	var out []*DirEntry
	for _, c := range m.current.Children {
		if m.minSize > 0 && c.Size < m.minSize {
			continue
		}
		// Filter by size threshold (L key toggle).
		if m.largeOnly && c.Size < 100*1024*1024 {
			continue
		}
		// Filter by depth: hide directory children beyond maxDepth.
		if m.maxDepth > 0 && c.IsDir && currentDepth >= m.maxDepth {
			continue
		}
		out = append(out, c)
	}
	return out
}

// removeEntry deletes an entry from the current Children slice and
// recalculates the parent size.
func (m *AnalyzeModel) removeEntry(path string) {
	if m.current == nil {
		return
	}
	for i, c := range m.current.Children {
		if c.Path == path {
			m.current.Children = append(m.current.Children[:i], m.current.Children[i+1:]...)
			var total int64
			for _, child := range m.current.Children {
				total += child.Size
			}
			m.current.Size = total
			if m.cursor >= len(m.current.Children) && m.cursor > 0 {
				m.cursor--
			}
			return
		}
	}
}

// currentDepth returns how many levels deep the current directory is from root.
func (m AnalyzeModel) currentDepth() int {
	return len(m.breadcrumb)
}

// navigateToEntry builds a breadcrumb trail to the given entry's parent and
// sets the cursor to the entry. Used when selecting a search result.
func (m *AnalyzeModel) navigateToEntry(entry *DirEntry) {
	parent := entry.Parent
	if parent == nil {
		parent = m.root
	}

	// Rebuild the history stack as if the user had drilled down from
	// the root to the entry's directory.
	var trail []*DirEntry
	for a := parent.Parent; a != nil; a = a.Parent {
		trail = append([]*DirEntry{a}, trail...)
	}

	m.breadcrumb = trail
	m.current = parent
	m.cursor = 0
	for i, child := range m.current.Children {
		if child == entry {
			m.cursor = i
			break
		}
	}
	m.offset = 0
	m.ensureVisible()
}

// openFileManager reveals the entry's directory in the desktop file
// manager. Best effort; headless sessions simply get nothing.
func openFileManager(path string) {
	_ = exec.Command("xdg-open", filepath.Dir(path)).Start()
}
