// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package editor hands a tip file to an external editor program and reports
// how the editing session ended.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"tips/internal/logger"
)

// Outcome is the result of an editing session that was able to start.
type Outcome int

const (
	// Updated means the editor exited successfully.
	Updated Outcome = iota
	// Cancelled means the editor exited with a failure status.
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Updated:
		return "updated"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Launcher runs an editor on a single file and waits for it to finish.
// A non-nil error means the editor could not be run at all.
type Launcher interface {
	Run(ctx context.Context, path string) (Outcome, error)
}

// Commander builds the editor command for path without running it, for
// callers that hand the terminal over themselves.
type Commander interface {
	Command(ctx context.Context, path string) *exec.Cmd
}

// ExecLauncher launches Program as a foreground child process attached to
// the terminal. Nil streams default to the process's own.
type ExecLauncher struct {
	Program string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// NewExecLauncher returns a launcher for program attached to os.Stdin,
// os.Stdout and os.Stderr.
func NewExecLauncher(program string) *ExecLauncher {
	return &ExecLauncher{Program: program}
}

// Command builds the editor command for path without starting it.
func (l *ExecLauncher) Command(ctx context.Context, path string) *exec.Cmd {
	return exec.CommandContext(ctx, l.Program, path)
}

// Run starts the editor on path and blocks until it exits.
func (l *ExecLauncher) Run(ctx context.Context, path string) (Outcome, error) {
	cmd := l.Command(ctx, path)
	cmd.Stdin = orReader(l.Stdin, os.Stdin)
	cmd.Stdout = orWriter(l.Stdout, os.Stdout)
	cmd.Stderr = orWriter(l.Stderr, os.Stderr)

	logger.Info("Starting editor", "program", l.Program, "path", path)
	if err := cmd.Start(); err != nil {
		logger.Error("Failed to start editor", "program", l.Program, "error", err)
		return Cancelled, err
	}

	outcome, err := Classify(cmd.Wait())
	if err != nil {
		logger.Error("Editor failed", "program", l.Program, "error", err)
		return outcome, err
	}
	logger.Info("Editor exited", "program", l.Program, "outcome", outcome.String())
	return outcome, nil
}

// Classify maps the error returned by waiting on an editor process to an
// Outcome. Exit statuses are outcomes, not errors; anything else is returned.
func Classify(waitErr error) (Outcome, error) {
	if waitErr == nil {
		return Updated, nil
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		logger.Debug("Editor exited with failure status", "exit_code", exitErr.ExitCode())
		return Cancelled, nil
	}
	return Cancelled, waitErr
}

func orReader(r, fallback io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return fallback
}

func orWriter(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
