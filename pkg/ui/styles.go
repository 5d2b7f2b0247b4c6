package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lvim-tech/qlaunch/pkg/config"
)

// Styles used by the launcher view.
type Styles struct {
	Prompt lipgloss.Style
	Input  lipgloss.Style
	Icon   lipgloss.Style

	Text    lipgloss.Style
	Match   lipgloss.Style
	Comment lipgloss.Style

	SelectedText    lipgloss.Style
	SelectedMatch   lipgloss.Style
	SelectedComment lipgloss.Style

	Status lipgloss.Style
}

// NewStyles builds the styles from the [theme] table. Empty colors leave
// the terminal default.
func NewStyles(theme config.ThemeConfig) Styles {
	fg := func(c string) lipgloss.Style {
		s := lipgloss.NewStyle()
		if c != "" {
			s = s.Foreground(lipgloss.Color(c))
		}
		return s
	}
	selected := func(s lipgloss.Style) lipgloss.Style {
		if theme.SelectedBg != "" {
			s = s.Background(lipgloss.Color(theme.SelectedBg))
		}
		if theme.Selected != "" {
			s = s.Foreground(lipgloss.Color(theme.Selected))
		}
		return s
	}

	return Styles{
		Prompt: fg(theme.Prompt).Bold(true),
		Input:  fg(theme.Text),
		Icon:   fg(theme.Prompt),

		Text:    fg(theme.Text),
		Match:   fg(theme.Match).Bold(true),
		Comment: fg(theme.Comment),

		SelectedText:    selected(lipgloss.NewStyle()).Bold(true),
		SelectedMatch:   selected(lipgloss.NewStyle()).Bold(true).Underline(true),
		SelectedComment: selected(lipgloss.NewStyle()),

		Status: fg(theme.Border),
	}
}
