package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/linmole/internal/ui"
)

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		Render("LinMole")
	subtitle := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Render("Deep clean and optimize your Linux system")

	b.WriteString("\n  " + title + "\n")
	b.WriteString("  " + subtitle + "\n\n")

	selName := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary)
	name := lipgloss.NewStyle().Foreground(ui.ColorText)
	shortcut := lipgloss.NewStyle().Foreground(ui.ColorWarning)
	desc := lipgloss.NewStyle().Foreground(ui.ColorMuted)

	for i, item := range Items {
		prefix := "  "
		style := name
		if i == m.cursor {
			prefix = ui.IconChevron + " "
			style = selName
		}
		b.WriteString(fmt.Sprintf("  %s%s %s  %s\n",
			prefix,
			shortcut.Render(fmt.Sprintf("[%d]", i+1)),
			style.Render(fmt.Sprintf("%-9s", item.Name)),
			desc.Render(item.Description)))
	}

	hints := []string{
		"↑↓ navigate",
		"Enter select",
		"1-5 quick select",
		"q quit",
	}
	b.WriteString("\n" + ui.HintBarStyle().Render("  "+strings.Join(hints, " "+ui.IconPipe+" ")) + "\n")

	return b.String()
}
