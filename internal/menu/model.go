// Package menu is the interactive main menu shown when lm runs
// without a subcommand. The model only records which action the user
// picked; the caller dispatches it after the program has exited and
// the terminal is restored.
package menu

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ─── Actions ─────────────────────────────────────────────────────────────────

// Action identifies the command a menu selection maps to.
type Action int

const (
	ActionNone Action = iota
	ActionClean
	ActionAnalyze
	ActionStatus
	ActionPurge
	ActionOptimize
)

func (a Action) String() string {
	switch a {
	case ActionClean:
		return "clean"
	case ActionAnalyze:
		return "analyze"
	case ActionStatus:
		return "status"
	case ActionPurge:
		return "purge"
	case ActionOptimize:
		return "optimize"
	default:
		return "none"
	}
}

// Item is one menu row. The shortcut is its 1-based position.
type Item struct {
	Name        string
	Description string
	Action      Action
}

// Items is the menu in display order.
var Items = []Item{
	{"Clean", "Free up disk space by cleaning caches", ActionClean},
	{"Analyze", "Explore disk usage visually", ActionAnalyze},
	{"Status", "Monitor system health in real-time", ActionStatus},
	{"Purge", "Clean development project artifacts", ActionPurge},
	{"Optimize", "Run system maintenance tasks", ActionOptimize},
}

// ─── Model ───────────────────────────────────────────────────────────────────

// MenuModel is the bubbletea Model for the main menu.
type MenuModel struct {
	cursor   int
	action   Action
	width    int
	height   int
	quitting bool
}

func NewMenuModel() MenuModel {
	return MenuModel{width: 80, height: 24}
}

// Action returns the selection made before the program exited.
// ActionNone means the user quit without choosing.
func (m MenuModel) Action() Action { return m.action }

func (m MenuModel) Init() tea.Cmd { return nil }

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			m.cursor = (m.cursor - 1 + len(Items)) % len(Items)

		case "down", "j":
			m.cursor = (m.cursor + 1) % len(Items)

		case "enter", " ":
			m.action = Items[m.cursor].Action
			m.quitting = true
			return m, tea.Quit

		case "1", "2", "3", "4", "5":
			idx := int(key[0] - '1')
			if idx < len(Items) {
				m.cursor = idx
				m.action = Items[idx].Action
				m.quitting = true
				return m, tea.Quit
			}
		}
	}

	return m, nil
}
