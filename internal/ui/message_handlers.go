// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"tips/internal/editor"
	"tips/internal/logger"
)

// --- Message Handlers ---
// These functions handle specific message types received by the model's Update function.

func handleWindowSizeMsg(m *model, msg tea.WindowSizeMsg) tea.Cmd {
	m.width = msg.Width
	m.height = msg.Height

	if !m.ready {
		m.preview = viewport.New(m.width, 1)
		m.ready = true
	}
	m.filter.Width = m.width - 4
	m.resizePreview()
	return nil
}

func handleTipsLoadedMsg(m *model, msg tipsLoadedMsg) tea.Cmd {
	// A slower load for an older query must not overwrite a newer one.
	if msg.query != m.filter.Value() {
		return nil
	}

	if msg.err != nil {
		logger.Warn("Could not list tips", "dir", m.store.Dir, "error", msg.err)
		m.lastError = fmt.Errorf("no tips.d found on %q", m.store.Dir)
		m.names = nil
		m.summaries = nil
	} else {
		m.lastError = nil
		m.names = msg.names
		m.summaries = msg.summaries
	}

	if m.currentState == stateLoadingTips {
		m.currentState = stateTipList
	}
	if m.cursor >= len(m.names) {
		m.cursor = max(len(m.names)-1, 0)
	}
	return m.previewSelected()
}

func handlePreviewLoadedMsg(m *model, msg previewLoadedMsg) tea.Cmd {
	if msg.name != m.selectedName() {
		return nil
	}

	switch {
	case isNotFound(msg.err):
		m.previewContent = fmt.Sprintf("No tips available for %s", msg.name)
	case msg.err != nil:
		m.previewContent = errorStyle.Render(fmt.Sprintf("Cannot read %s: %v", msg.name, msg.err))
	case msg.content == "":
		m.previewContent = dimStyle.Render("(empty)")
	default:
		m.previewContent = msg.content
	}

	if m.ready {
		m.preview.SetContent(m.previewContent)
		m.preview.GotoTop()
	}
	return nil
}

func handleEditorFinishedMsg(m *model, msg editorFinishedMsg) tea.Cmd {
	switch {
	case msg.err != nil:
		logger.Error("Editor did not run", "name", msg.name, "error", msg.err)
		m.status = errorStyle.Render(fmt.Sprintf("Failed to start editor process: %v", msg.err))
	case msg.outcome == editor.Updated:
		m.status = successStyle.Render(fmt.Sprintf("Tips for %s updated.", msg.name))
	default:
		m.status = cancelledStyle.Render("Cancelled.")
	}

	// The editor may have created or changed the file.
	return loadTipsCmd(m.store, m.filter.Value())
}
