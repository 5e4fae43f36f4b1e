// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// --- State-Specific Key Handlers ---

func (m *model) handleTipListKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
			return m.previewSelected()
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.names)-1 {
			m.cursor++
			return m.previewSelected()
		}
	case key.Matches(msg, m.keymap.Home):
		if m.cursor != 0 {
			m.cursor = 0
			return m.previewSelected()
		}
	case key.Matches(msg, m.keymap.End):
		if last := len(m.names) - 1; last >= 0 && m.cursor != last {
			m.cursor = last
			return m.previewSelected()
		}
	case key.Matches(msg, m.keymap.PgUp):
		m.preview.SetYOffset(m.preview.YOffset - m.preview.Height)
	case key.Matches(msg, m.keymap.PgDown):
		m.preview.SetYOffset(m.preview.YOffset + m.preview.Height)
	case key.Matches(msg, m.keymap.Edit):
		if name := m.selectedName(); name != "" {
			m.status = ""
			return editTipCmd(m.store, m.launcher, name, false)
		}
	case key.Matches(msg, m.keymap.New):
		name := strings.TrimSpace(m.filter.Value())
		if name == "" {
			m.status = statusStyle.Render("Type a filter with / to name the new tip.")
			return nil
		}
		m.status = ""
		return editTipCmd(m.store, m.launcher, name, true)
	case key.Matches(msg, m.keymap.Filter):
		m.currentState = stateFiltering
		return m.filter.Focus()
	case key.Matches(msg, m.keymap.Esc):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.cursor = 0
			return loadTipsCmd(m.store, "")
		}
	case key.Matches(msg, m.keymap.Reload):
		m.status = ""
		return loadTipsCmd(m.store, m.filter.Value())
	}
	return nil
}

func (m *model) handleFilterKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return tea.Quit
	case key.Matches(msg, m.keymap.Enter):
		m.filter.Blur()
		m.currentState = stateTipList
		return nil
	case key.Matches(msg, m.keymap.Esc):
		m.filter.Blur()
		m.filter.SetValue("")
		m.currentState = stateTipList
		m.cursor = 0
		return loadTipsCmd(m.store, "")
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.cursor = 0
		return tea.Batch(cmd, loadTipsCmd(m.store, m.filter.Value()))
	}
	return cmd
}
