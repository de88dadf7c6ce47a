package view

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/theme"
)

// Styles is the palette for one theme. Views hold a pointer so a theme
// switch is picked up on the next render.
type Styles struct {
	Theme theme.Theme

	Page    lipgloss.Style
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Panel   lipgloss.Style
	Border  lipgloss.Color
}

func NewStyles(t theme.Theme) Styles {
	fg, border, accent := lipgloss.Color("235"), lipgloss.Color("240"), lipgloss.Color("57")
	if t == theme.Dark {
		fg, border, accent = lipgloss.Color("252"), lipgloss.Color("244"), lipgloss.Color("205")
	}

	return Styles{
		Theme:   t,
		Page:    lipgloss.NewStyle().Padding(1).Foreground(fg),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Muted:   lipgloss.NewStyle().Faint(true),
		Accent:  lipgloss.NewStyle().Foreground(accent),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Panel: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(border),
		Border: border,
	}
}

func (s *Styles) tableStyles() table.Styles {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(s.Border).
		BorderBottom(true).
		Bold(false)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	return ts
}

func (s *Styles) categoryBadge(name, color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(name)
}
