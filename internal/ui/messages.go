// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import "tips/internal/editor"

// tipsLoadedMsg carries the tip names matching query, with the first
// non-blank line of each tip keyed by name.
type tipsLoadedMsg struct {
	query     string
	names     []string
	summaries map[string]string
	err       error
}

// previewLoadedMsg carries the rendered content of one tip.
type previewLoadedMsg struct {
	name    string
	content string
	err     error
}

// editorFinishedMsg is sent when the editor process for a tip returns.
type editorFinishedMsg struct {
	name    string
	outcome editor.Outcome
	err     error
}
