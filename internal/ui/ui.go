// Package ui holds the shared terminal palette, icons, and small
// rendering helpers used by every interactive surface.
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/lakshaymaurya-felt/linmole/internal/core"
)

// ─── Palette ─────────────────────────────────────────────────────────────────

// Adapts to the terminal background; Light is for light themes.
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"} // teal
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"} // blue
	ColorCoral     = lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#FF8A65"} // coral
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#34D399"} // green
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"} // amber
	ColorError     = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"} // red
	ColorText      = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#E5E7EB"}
	ColorTextDim   = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#7C7F87"}
)

// ─── Icons ───────────────────────────────────────────────────────────────────

const (
	IconCheck   = "✓"
	IconError   = "✗"
	IconWarning = "⚠"
	IconBullet  = "·"
	IconDiamond = "◆"
	IconChevron = "❯"
	IconPipe    = "│"
	IconBlock   = "█"
	IconShade   = "░"
	IconFolder  = "▸ "
)

// ─── Styles ──────────────────────────────────────────────────────────────────

func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
}

func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorSuccess)
}

func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorError)
}

func WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorWarning)
}

func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorMuted)
}

// TagWarningStyle renders short inline tags like " >6mo ".
func TagWarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1C1917"}).
		Background(ColorWarning).
		Bold(true)
}

// HintBarStyle renders the keybinding hint line at the bottom of a view.
func HintBarStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorMuted)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// FormatSize renders a byte count in binary units.
func FormatSize(bytes int64) string {
	return core.FormatSize(bytes)
}

// GradientBar renders a usage bar of the given width, colored by how
// full it is. pct is 0-100.
func GradientBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}

	color := ColorSuccess
	switch {
	case pct >= 85:
		color = ColorError
	case pct >= 60:
		color = ColorWarning
	}

	bar := lipgloss.NewStyle().Foreground(color).
		Render(strings.Repeat(IconBlock, filled))
	rest := lipgloss.NewStyle().Foreground(ColorMuted).
		Render(strings.Repeat(IconShade, width-filled))
	return bar + rest
}

// IsInteractive reports whether f is a terminal. Non-interactive runs
// fall back to static output.
func IsInteractive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
