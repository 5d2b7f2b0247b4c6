package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/lvim-tech/qlaunch/pkg/matcher"
	"github.com/lvim-tech/qlaunch/pkg/plugin"
)

const (
	defaultWidth = 80
	iconWidth    = 2
	ellipsis     = "…"
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteByte('\n')

	end := min(m.offset+m.rows(), len(m.entries))
	m.matcher.With(func(s *matcher.Scope) {
		for i := m.offset; i < end; i++ {
			b.WriteString(m.renderEntry(s, m.entries[i], i == m.selected, width))
			b.WriteByte('\n')
		}
	})

	status := fmt.Sprintf("%d/%d", m.Selected()+1, len(m.entries))
	if p := m.backend.Current(); p != nil {
		status = p.Name() + "  " + status
	}
	b.WriteString(m.styles.Status.Render(status))

	return b.String()
}

func (m *Model) renderEntry(s *matcher.Scope, e plugin.Entry, selected bool, width int) string {
	text, match, comment := m.styles.Text, m.styles.Match, m.styles.Comment
	if selected {
		text, match, comment = m.styles.SelectedText, m.styles.SelectedMatch, m.styles.SelectedComment
	}

	glyph := " "
	if g, ok := m.icons.Resolve(e.Icon); ok {
		glyph = g
	}
	glyph = runewidth.FillRight(runewidth.Truncate(glyph, iconWidth, ""), iconWidth)

	avail := max(width-iconWidth-1, 1)
	commentText := ""
	if e.Comment != "" {
		// The comment takes at most a third of the row.
		commentText = runewidth.Truncate(e.Comment, avail/3, ellipsis)
	}
	nameWidth := avail - runewidth.StringWidth(commentText)
	if commentText != "" {
		nameWidth--
	}
	name := runewidth.Truncate(e.Name, max(nameWidth, 1), ellipsis)

	indices := s.Highlight(m.query, e.Name)
	if indices == nil {
		indices = e.Matches
	}
	visible := len([]rune(name))
	if name != e.Name {
		visible--
	}
	kept := make([]int, 0, len(indices))
	for _, i := range indices {
		if i < visible {
			kept = append(kept, i)
		}
	}

	var rendered string
	if len(kept) > 0 {
		rendered = lipgloss.StyleRunes(name, kept, match, text)
	} else {
		rendered = text.Render(name)
	}

	gap := max(avail-runewidth.StringWidth(name)-runewidth.StringWidth(commentText), 1)
	line := m.styles.Icon.Render(glyph) + text.Render(" ") + rendered + text.Render(strings.Repeat(" ", gap))
	if commentText != "" {
		line += comment.Render(commentText)
	}
	return line
}
