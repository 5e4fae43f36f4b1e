// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ui implements the interactive tips browser: a filterable list of
// tip names with a preview of the selected tip, from which tips can be
// opened in the external editor.
package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"tips/internal/editor"
	"tips/internal/tips"
)

type model struct {
	store    *tips.Store
	launcher editor.Commander
	policy   tips.InvalidLinePolicy
	keymap   KeyMap

	currentState state
	names        []string
	summaries    map[string]string
	cursor       int

	filter         textinput.Model
	preview        viewport.Model
	previewContent string
	ready          bool

	status    string
	lastError error

	width  int
	height int
}

// InitialModel returns the browser model for store. Tips are opened with
// launcher, and previews decode lines according to policy.
func InitialModel(store *tips.Store, launcher editor.Commander, policy tips.InvalidLinePolicy) model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "substring"
	ti.CharLimit = 128

	return model{
		store:        store,
		launcher:     launcher,
		policy:       policy,
		keymap:       DefaultKeyMap,
		currentState: stateLoadingTips,
		filter:       ti,
	}
}

func (m *model) Init() tea.Cmd {
	return loadTipsCmd(m.store, "")
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, handleWindowSizeMsg(m, msg)
	case tipsLoadedMsg:
		return m, handleTipsLoadedMsg(m, msg)
	case previewLoadedMsg:
		return m, handlePreviewLoadedMsg(m, msg)
	case editorFinishedMsg:
		return m, handleEditorFinishedMsg(m, msg)
	case tea.KeyMsg:
		if m.currentState == stateFiltering {
			return m, m.handleFilterKeys(msg)
		}
		return m, m.handleTipListKeys(msg)
	}
	return m, nil
}

func (m *model) View() string {
	if !m.ready {
		return statusStyle.Render("Loading tips...")
	}
	return m.renderMainView()
}

// selectedName returns the tip under the cursor, or "" when the list is empty.
func (m *model) selectedName() string {
	if m.cursor < 0 || m.cursor >= len(m.names) {
		return ""
	}
	return m.names[m.cursor]
}

// previewSelected loads the preview for the tip under the cursor.
func (m *model) previewSelected() tea.Cmd {
	name := m.selectedName()
	if name == "" {
		m.previewContent = ""
		if m.ready {
			m.preview.SetContent("")
		}
		return nil
	}
	return loadPreviewCmd(m.store, name, m.policy)
}

// listHeight is the number of rows given to the tip list.
func (m *model) listHeight() int {
	available := m.height - headerHeight - footerHeight - 1
	rows := max(available/3, listMinHeight)
	return max(min(len(m.names), rows), 1)
}

func (m *model) resizePreview() {
	if !m.ready {
		return
	}
	// Two rows for the preview border, one for the filter line.
	h := m.height - headerHeight - footerHeight - 1 - m.listHeight() - 2
	m.preview.Width = max(m.width-2, 1)
	m.preview.Height = max(h, 1)
}
