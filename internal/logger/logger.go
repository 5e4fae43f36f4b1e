// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

var defaultLogger *slog.Logger

// getLogFilePath determines the path for the application log file following the XDG Base Directory layout.
func getLogFilePath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}

	return filepath.Join(stateDir, "tips", "app.log"), nil
}

// setupLogging configures the default logger. File logging is best effort:
// tips must keep working when the state directory is not writable.
func setupLogging(logToStderr bool, level slog.Level) string {
	var writers []io.Writer
	var activePath string

	logFilePath, err := getLogFilePath()
	if err == nil {
		// 0750: user rwx, group rx, others ---
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0750); err == nil {
			file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
			if err == nil {
				writers = append(writers, file)
				activePath = logFilePath
			}
		}
	}

	if logToStderr {
		writers = append(writers, os.Stderr)
	}

	var finalWriter io.Writer
	switch len(writers) {
	case 0:
		finalWriter = io.Discard
	case 1:
		finalWriter = writers[0]
	default:
		finalWriter = io.MultiWriter(writers...)
	}

	handler := slog.NewJSONHandler(finalWriter, &slog.HandlerOptions{Level: level})
	defaultLogger = slog.New(handler)
	return activePath
}

// InitLogger initializes the logger. Logs always go to the state file when it
// can be opened; verbose mode mirrors them to stderr at debug level.
// It should be called once at the beginning of the application.
func InitLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	path := setupLogging(verbose, level)
	Debug("Logging configured.", "file", path, "stderr", verbose)
}

// SetLogger allows replacing the default logger instance.
func SetLogger(l *slog.Logger) {
	defaultLogger = l
}

// checkLogger ensures the logger is initialized before use, preventing nil panics.
// Until InitLogger runs, records are discarded.
func checkLogger() {
	if defaultLogger == nil {
		defaultLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	checkLogger()
	defaultLogger.Info(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	checkLogger()
	defaultLogger.Error(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	checkLogger()
	defaultLogger.Debug(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	checkLogger()
	defaultLogger.Warn(msg, args...)
}
