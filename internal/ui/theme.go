package ui

import "github.com/charmbracelet/lipgloss"

// styles is the set of lipgloss styles for one theme.
type styles struct {
	App      lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Badge    lipgloss.Style
	Input    lipgloss.Style
	Item     lipgloss.Style
	Cursor   lipgloss.Style
	Done     lipgloss.Style
	Dragged  lipgloss.Style
	Editing  lipgloss.Style
	Panel    lipgloss.Style
	Empty    lipgloss.Style
	Error    lipgloss.Style
	Status   lipgloss.Style
}

type palette struct {
	fg, muted, accent, accentFg, border, danger lipgloss.Color
}

var (
	lightPalette = palette{
		fg:       "#1f2328",
		muted:    "#8c959f",
		accent:   "#0969da",
		accentFg: "#ffffff",
		border:   "#d0d7de",
		danger:   "#cf222e",
	}
	darkPalette = palette{
		fg:       "#e6edf3",
		muted:    "#6e7681",
		accent:   "#2f81f7",
		accentFg: "#0d1117",
		border:   "#30363d",
		danger:   "#f85149",
	}
)

func newStyles(dark bool) styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	return styles{
		App:      lipgloss.NewStyle().Padding(1, 2),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.fg),
		Subtitle: lipgloss.NewStyle().Italic(true).Foreground(p.muted),
		Badge:    lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(p.accentFg).Background(p.accent),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		Item:    lipgloss.NewStyle().Foreground(p.fg),
		Cursor:  lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		Done:    lipgloss.NewStyle().Strikethrough(true).Foreground(p.muted),
		Dragged: lipgloss.NewStyle().Bold(true).Foreground(p.accentFg).Background(p.accent),
		Editing: lipgloss.NewStyle().Underline(true).Foreground(p.accent),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			Padding(0, 1),
		Empty:  lipgloss.NewStyle().Italic(true).Foreground(p.muted),
		Error:  lipgloss.NewStyle().Foreground(p.danger),
		Status: lipgloss.NewStyle().Foreground(p.muted),
	}
}
