// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ui's commands.go file contains Bubble Tea commands that touch the
// tips directory or hand the terminal over to the editor.

package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tips/internal/editor"
	"tips/internal/tips"
)

// loadTipsCmd lists the tip names matching query.
func loadTipsCmd(store *tips.Store, query string) tea.Cmd {
	return func() tea.Msg {
		names, err := store.Names(query)
		if err != nil {
			return tipsLoadedMsg{query: query, err: err}
		}
		summaries := make(map[string]string, len(names))
		for _, name := range names {
			summaries[name] = store.Summary(name)
		}
		return tipsLoadedMsg{query: query, names: names, summaries: summaries}
	}
}

// loadPreviewCmd reads the tip called name using the same line handling as
// `tips list <name>`.
func loadPreviewCmd(store *tips.Store, name string, policy tips.InvalidLinePolicy) tea.Cmd {
	return func() tea.Msg {
		f, err := store.Open(name)
		if err != nil {
			return previewLoadedMsg{name: name, err: err}
		}
		defer f.Close()

		var b strings.Builder
		err = tips.ScanLines(f, tips.ScanOptions{InvalidLines: policy}, func(line string) error {
			b.WriteString(line)
			b.WriteByte('\n')
			return nil
		})
		return previewLoadedMsg{name: name, content: b.String(), err: err}
	}
}

// editTipCmd suspends the program and runs the editor on the tip called name.
// With init, the tips directory and an empty tip file are created first.
func editTipCmd(store *tips.Store, launcher editor.Commander, name string, init bool) tea.Cmd {
	if init {
		if err := store.EnsureDir(); err != nil {
			return finishedWithError(name, fmt.Errorf("cannot create directory %q: %w", store.Dir, err))
		}
		if _, err := store.EnsureFile(name); err != nil {
			return finishedWithError(name, fmt.Errorf("cannot create file %q: %w", store.Path(name), err))
		}
	}

	cmd := launcher.Command(context.Background(), store.Path(name))
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		outcome, runErr := editor.Classify(err)
		return editorFinishedMsg{name: name, outcome: outcome, err: runErr}
	})
}

func finishedWithError(name string, err error) tea.Cmd {
	return func() tea.Msg {
		return editorFinishedMsg{name: name, outcome: editor.Cancelled, err: err}
	}
}

// isNotFound reports whether err means the tip file is gone.
func isNotFound(err error) bool {
	return errors.Is(err, tips.ErrNotFound)
}
