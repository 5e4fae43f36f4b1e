// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (m *model) renderMainView() string {
	m.resizePreview()

	header := titleStyle.Render("Tips") + " " + identifierColor.Render(m.store.Dir)
	preview := mainContentBorderStyle.Width(max(m.width-2, 1)).Render(m.preview.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.renderFilterLine(),
		m.renderTipList(),
		preview,
		m.renderFooter(),
	)
}

func (m *model) renderFilterLine() string {
	if m.currentState == stateFiltering || m.filter.Value() != "" {
		return m.filter.View()
	}
	return dimStyle.Render("press / to filter")
}

func (m *model) renderTipList() string {
	if m.currentState == stateLoadingTips {
		return statusStyle.Render("Loading tips...")
	}
	if m.lastError != nil {
		return errorStyle.Render(m.lastError.Error())
	}
	if len(m.names) == 0 {
		if q := m.filter.Value(); q != "" {
			return dimStyle.Render(fmt.Sprintf("No tips match %q. Press n to create it.", q))
		}
		return dimStyle.Render("No tips yet.")
	}

	rows := m.listHeight()
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(start+rows, len(m.names))

	var b strings.Builder
	for i := start; i < end; i++ {
		if i > start {
			b.WriteString("\n")
		}
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> ") + m.names[i])
		} else {
			b.WriteString("  " + m.names[i])
		}
		if summary := m.summaries[m.names[i]]; summary != "" {
			room := m.width - lipgloss.Width(m.names[i]) - 5
			if room > 3 {
				b.WriteString("  " + dimStyle.Render(truncate(summary, room)))
			}
		}
	}
	return b.String()
}

// truncate shortens s to at most width cells, marking the cut with "...".
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+3 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

func (m *model) renderFooter() string {
	var help []string
	if m.currentState == stateFiltering {
		help = []string{
			helpEntry(m.keymap.Enter),
			helpEntry(m.keymap.Esc),
		}
	} else {
		help = []string{
			footerKeyStyle.Render(m.keymap.Up.Help().Key+"/"+m.keymap.Down.Help().Key) + " " + footerDescStyle.Render("navigate"),
			helpEntry(m.keymap.Edit),
			helpEntry(m.keymap.New),
			helpEntry(m.keymap.Filter),
			helpEntry(m.keymap.Reload),
			helpEntry(m.keymap.Quit),
		}
	}

	helpLine := strings.Join(help, footerSeparatorStyle.Render(" | "))
	return m.status + "\n\n" + lipgloss.NewStyle().Width(m.width).Render(helpLine)
}

func helpEntry(b key.Binding) string {
	return footerKeyStyle.Render(b.Help().Key) + " " + footerDescStyle.Render(b.Help().Desc)
}
