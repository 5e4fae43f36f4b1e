// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tips/internal/config"
	"tips/internal/editor"
	"tips/internal/tips"
)

func TestMain(m *testing.M) {
	color.NoColor = true

	state, err := os.MkdirTemp("", "tips-state-")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Setenv("XDG_STATE_HOME", state)

	code := m.Run()
	os.RemoveAll(state)
	os.Exit(code)
}

// fakeLauncher stands in for the editor. When write is set it replaces the
// tip content, as if the user had typed it and saved.
type fakeLauncher struct {
	program string
	paths   []string
	write   string
	outcome editor.Outcome
	err     error
}

func (f *fakeLauncher) Run(_ context.Context, path string) (editor.Outcome, error) {
	f.paths = append(f.paths, path)
	if f.err != nil {
		return editor.Cancelled, f.err
	}
	if f.write != "" {
		if err := os.WriteFile(path, []byte(f.write), 0o644); err != nil {
			return editor.Cancelled, err
		}
	}
	return f.outcome, nil
}

type testEnv struct {
	vars     map[string]string
	launcher *fakeLauncher
	copied   []string
	terminal bool
	browsed  string
}

func newTestEnv(vars map[string]string) *testEnv {
	return &testEnv{vars: vars, launcher: &fakeLauncher{}}
}

func (e *testEnv) deps() deps {
	return deps{
		env: func(key string) (string, bool) {
			v, ok := e.vars[key]
			return v, ok
		},
		configPath: func() (string, error) { return "", errors.New("no config dir") },
		newLauncher: func(program string) editor.Launcher {
			e.launcher.program = program
			return e.launcher
		},
		copyText: func(text string) error {
			e.copied = append(e.copied, text)
			return nil
		},
		isTerminal: func() bool { return e.terminal },
		runBrowser: func(store *tips.Store, program string, policy tips.InvalidLinePolicy) error {
			e.browsed = store.Dir
			return nil
		},
	}
}

func (e *testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd(e.deps())
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func tipsDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// --- root ---

func TestNoSubcommandPrintsHint(t *testing.T) {
	out, errOut, err := newTestEnv(nil).run(t)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Available commands: list, edit\n" {
		t.Fatalf("stdout = %q", out)
	}
	if errOut != "" {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := newTestEnv(nil).run(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "0.0.1") {
		t.Fatalf("stdout = %q", out)
	}
}

func TestParseFailures(t *testing.T) {
	cases := [][]string{
		{"frobnicate"},
		{"edit"},
		{"edit", "a", "b"},
		{"list", "a", "b"},
		{"list", "--nope"},
	}
	for _, args := range cases {
		_, errOut, err := newTestEnv(map[string]string{"TIPS_HOME": t.TempDir()}).run(t, args...)
		if err == nil {
			t.Errorf("%v: expected parse error", args)
			continue
		}
		if !strings.Contains(errOut, "Error:") {
			t.Errorf("%v: expected an error on stderr, got %q", args, errOut)
		}
	}
}

func TestHomeNotSetIsFatal(t *testing.T) {
	_, errOut, err := newTestEnv(map[string]string{}).run(t, "list")
	if !errors.Is(err, config.ErrHomeNotSet) {
		t.Fatalf("expected ErrHomeNotSet, got %v", err)
	}
	if !strings.Contains(errOut, "HOME") {
		t.Fatalf("stderr = %q", errOut)
	}
	if strings.Contains(errOut, "Usage:") {
		t.Fatal("configuration errors should not print usage")
	}
}

func TestDefaultHomeUsed(t *testing.T) {
	home := t.TempDir()
	dir := filepath.Join(home, ".config", "himkt", "dotfiles", "tips")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "git.tips"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := newTestEnv(map[string]string{"HOME": home}).run(t, "list")
	if err != nil {
		t.Fatal(err)
	}
	if out != "git\n" {
		t.Fatalf("stdout = %q", out)
	}
}

// --- list ---

func TestListNames(t *testing.T) {
	dir := tipsDir(t, map[string]string{"a.tips": "", "b.tips": "", "c.txt": ""})

	out, errOut, err := newTestEnv(map[string]string{"TIPS_HOME": dir}).run(t, "list")
	if err != nil {
		t.Fatal(err)
	}
	if out != "a\nb\n" {
		t.Fatalf("stdout = %q", out)
	}
	if errOut != "" {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestListNamesQuery(t *testing.T) {
	dir := tipsDir(t, map[string]string{"apple.tips": "", "banana.tips": ""})
	env := newTestEnv(map[string]string{"TIPS_HOME": dir})

	for _, args := range [][]string{{"list", "--query", "an"}, {"list", "-q", "an"}} {
		out, _, err := env.run(t, args...)
		if err != nil {
			t.Fatal(err)
		}
		if out != "banana\n" {
			t.Fatalf("%v: stdout = %q", args, out)
		}
	}
}

func TestListNamesMissingDirIsSoft(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	out, errOut, err := newTestEnv(map[string]string{"TIPS_HOME": dir}).run(t, "list")
	if err != nil {
		t.Fatalf("expected soft failure, got %v", err)
	}
	if out != "" {
		t.Fatalf("stdout = %q", out)
	}
	if !strings.Contains(errOut, "No tips.d found on") || !strings.Contains(errOut, dir) {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestListMissingTip(t *testing.T) {
	dir := tipsDir(t, nil)

	out, errOut, err := newTestEnv(map[string]string{"TIPS_HOME": dir}).run(t, "list", "missing_tip")
	if err != nil {
		t.Fatal(err)
	}
	if out != "No tips available for missing_tip\n" {
		t.Fatalf("stdout = %q", out)
	}
	if errOut != "" {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestListContentQuery(t *testing.T) {
	dir := tipsDir(t, map[string]string{"hello.tips": "foo\nfoobar\nbaz\n"})

	out, _, err := newTestEnv(map[string]string{"TIPS_HOME": dir}).run(t, "list", "hello", "--query", "foo")
	if err != nil {
		t.Fatal(err)
	}
	if out != "foo\nfoobar\n" {
		t.Fatalf("stdout = %q", out)
	}
}

func TestListContentWhitespace(t *testing.T) {
	dir := tipsDir(t, map[string]string{"ws.tips": "foo   \n   foo\n"})

	out, _, err := newTestEnv(map[string]string{"TIPS_HOME": dir}).run(t, "list", "ws")
	if err != nil {
		t.Fatal(err)
	}
	if out != "foo\n   foo\n" {
		t.Fatalf("stdout = %q", out)
	}
}

func TestListContentInvalidLinePolicies(t *testing.T) {
	dir := tipsDir(t, map[string]string{"bin.tips": "ok\n\xff\xfe\nafter\n"})

	cases := []struct {
		policy     string
		wantOut    string
		wantErrOut string
	}{
		{"skip", "ok\nafter\n", ""},
		{"warn", "ok\nafter\n", "skipped line 2"},
		{"fail", "ok\n", "line 2 is not valid UTF-8"},
	}
	for _, c := range cases {
		cfg := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(cfg, []byte("invalid_lines: "+c.policy+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		out, errOut, err := newTestEnv(map[string]string{"TIPS_HOME": dir}).run(t, "--config", cfg, "list", "bin")
		if err != nil {
			t.Fatalf("%s: %v", c.policy, err)
		}
		if out != c.wantOut {
			t.Errorf("%s: stdout = %q, want %q", c.policy, out, c.wantOut)
		}
		if c.wantErrOut == "" && errOut != "" {
			t.Errorf("%s: stderr = %q, want empty", c.policy, errOut)
		}
		if c.wantErrOut != "" && !strings.Contains(errOut, c.wantErrOut) {
			t.Errorf("%s: stderr = %q, want it to contain %q", c.policy, errOut, c.wantErrOut)
		}
	}
}

func TestListCopy(t *testing.T) {
	dir := tipsDir(t, map[string]string{"git.tips": "git log\ngit status\nls\n"})
	env := newTestEnv(map[string]string{"TIPS_HOME": dir})

	out, errOut, err := env.run(t, "list", "git", "-q", "git", "--copy")
	if err != nil {
		t.Fatal(err)
	}
	if out != "git log\ngit status\n" {
		t.Fatalf("stdout = %q", out)
	}
	if !reflect.DeepEqual(env.copied, []string{"git log\ngit status"}) {
		t.Fatalf("copied = %q", env.copied)
	}
	if !strings.Contains(errOut, "Copied 2 line(s)") {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestListCopyNothingPrinted(t *testing.T) {
	env := newTestEnv(map[string]string{"TIPS_HOME": tipsDir(t, nil)})

	if _, _, err := env.run(t, "list", "missing", "--copy"); err != nil {
		t.Fatal(err)
	}
	if len(env.copied) != 0 {
		t.Fatalf("nothing should be copied, got %q", env.copied)
	}
}

// --- edit ---

func TestEditInitCreatesDirAndFile(t *testing.T) {
	home := filepath.Join(t.TempDir(), "tips")
	env := newTestEnv(map[string]string{"TIPS_HOME": home})

	out, errOut, err := env.run(t, "edit", "newtip", "--init")
	if err != nil {
		t.Fatal(err)
	}
	if out != "Tips for newtip updated.\n" {
		t.Fatalf("stdout = %q", out)
	}
	if errOut != "" {
		t.Fatalf("stderr = %q", errOut)
	}

	path := filepath.Join(home, "newtip.tips")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected tip file: %v", err)
	}
	if info.Size() != 0 {
		t.Fatalf("expected empty file, got %d bytes", info.Size())
	}
	if !reflect.DeepEqual(env.launcher.paths, []string{path}) {
		t.Fatalf("editor paths = %v", env.launcher.paths)
	}
}

func TestEditInitKeepsExistingContent(t *testing.T) {
	dir := tipsDir(t, map[string]string{"newtip.tips": "precious\n"})

	if _, _, err := newTestEnv(map[string]string{"TIPS_HOME": dir}).run(t, "edit", "newtip", "--init"); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "newtip.tips"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "precious\n" {
		t.Fatalf("content changed to %q", b)
	}
}

func TestEditInitEmptyHomeUsesWorkingDir(t *testing.T) {
	cwd := t.TempDir()
	prevWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(cwd); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWd) })
	env := newTestEnv(map[string]string{"TIPS_HOME": ""})

	out, errOut, err := env.run(t, "edit", "newtip", "--init")
	if err != nil {
		t.Fatal(err)
	}
	if errOut != "" {
		t.Fatalf("stderr = %q", errOut)
	}
	if out != "Tips for newtip updated.\n" {
		t.Fatalf("stdout = %q", out)
	}
	if _, err := os.Stat(filepath.Join(cwd, "newtip.tips")); err != nil {
		t.Fatalf("expected tip in working directory: %v", err)
	}
	if !reflect.DeepEqual(env.launcher.paths, []string{"newtip.tips"}) {
		t.Fatalf("editor paths = %v", env.launcher.paths)
	}
}

func TestEditWithoutInitTouchesNothing(t *testing.T) {
	home := filepath.Join(t.TempDir(), "tips")
	env := newTestEnv(map[string]string{"TIPS_HOME": home})

	if _, _, err := env.run(t, "edit", "ghost"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(home); !os.IsNotExist(err) {
		t.Fatalf("tips home should not be created, stat err = %v", err)
	}
	if !reflect.DeepEqual(env.launcher.paths, []string{filepath.Join(home, "ghost.tips")}) {
		t.Fatalf("editor paths = %v", env.launcher.paths)
	}
}

func TestEditInitDirFailure(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	env := newTestEnv(map[string]string{"TIPS_HOME": filepath.Join(blocker, "tips")})

	out, errOut, err := env.run(t, "edit", "x", "--init")
	if err != nil {
		t.Fatalf("expected soft failure, got %v", err)
	}
	if out != "" {
		t.Fatalf("stdout = %q", out)
	}
	if !strings.Contains(errOut, "Cannot create directory") {
		t.Fatalf("stderr = %q", errOut)
	}
	if len(env.launcher.paths) != 0 {
		t.Fatal("editor must not run after a failed init")
	}
}

func TestEditOutcomes(t *testing.T) {
	cases := []struct {
		name       string
		outcome    editor.Outcome
		err        error
		wantOut    string
		wantErrOut string
	}{
		{"updated", editor.Updated, nil, "Tips for git updated.\n", ""},
		{"cancelled", editor.Cancelled, nil, "Cancelled.\n", ""},
		{"start failure", editor.Cancelled, errors.New(`exec: "nope": executable file not found in $PATH`), "", "Failed to start editor process: exec: \"nope\""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			env := newTestEnv(map[string]string{"TIPS_HOME": t.TempDir()})
			env.launcher.outcome = c.outcome
			env.launcher.err = c.err

			out, errOut, err := env.run(t, "edit", "git")
			if err != nil {
				t.Fatalf("expected exit success, got %v", err)
			}
			if out != c.wantOut {
				t.Errorf("stdout = %q, want %q", out, c.wantOut)
			}
			if c.wantErrOut == "" && errOut != "" {
				t.Errorf("stderr = %q", errOut)
			}
			if c.wantErrOut != "" && !strings.Contains(errOut, c.wantErrOut) {
				t.Errorf("stderr = %q, want it to contain %q", errOut, c.wantErrOut)
			}
		})
	}
}

func TestEditEditorSelection(t *testing.T) {
	cases := []struct {
		vars map[string]string
		want string
	}{
		{map[string]string{"EDITOR": "nano"}, "nano"},
		{map[string]string{"EDITOR": ""}, "vim"},
		{map[string]string{}, "vim"},
	}
	for _, c := range cases {
		c.vars["TIPS_HOME"] = t.TempDir()
		env := newTestEnv(c.vars)
		if _, _, err := env.run(t, "edit", "git"); err != nil {
			t.Fatal(err)
		}
		if env.launcher.program != c.want {
			t.Errorf("EDITOR=%q: program = %q, want %q", c.vars["EDITOR"], env.launcher.program, c.want)
		}
	}
}

func TestEditThenListRoundTrip(t *testing.T) {
	dir := t.TempDir()
	env := newTestEnv(map[string]string{"TIPS_HOME": dir})
	env.launcher.write = "first line   \n\n   indented\nlast"

	if _, _, err := env.run(t, "edit", "notes", "--init"); err != nil {
		t.Fatal(err)
	}
	out, _, err := env.run(t, "list", "notes")
	if err != nil {
		t.Fatal(err)
	}
	if out != "first line\n\n   indented\nlast\n" {
		t.Fatalf("stdout = %q", out)
	}
}

// --- browse ---

func TestBrowseRequiresTerminal(t *testing.T) {
	env := newTestEnv(map[string]string{"TIPS_HOME": t.TempDir()})

	_, _, err := env.run(t, "browse")
	if !errors.Is(err, errNotTerminal) {
		t.Fatalf("expected errNotTerminal, got %v", err)
	}
	if env.browsed != "" {
		t.Fatal("browser must not start without a terminal")
	}
}

func TestBrowseStartsWithResolvedHome(t *testing.T) {
	dir := t.TempDir()
	env := newTestEnv(map[string]string{"TIPS_HOME": dir})
	env.terminal = true

	if _, _, err := env.run(t, "browse"); err != nil {
		t.Fatal(err)
	}
	if env.browsed != dir {
		t.Fatalf("browsed = %q, want %q", env.browsed, dir)
	}
}

// --- config ---

func TestConfigShow(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfg, []byte("editor: nvim\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := newTestEnv(map[string]string{"TIPS_HOME": dir}).run(t, "--config", cfg, "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Config file:   " + cfg,
		"Tips home:     " + dir + " (environment)",
		"Editor:        nvim (config file)",
		"Invalid lines: skip (default)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigPath(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	out, _, err := newTestEnv(map[string]string{"TIPS_HOME": t.TempDir()}).run(t, "--config", cfg, "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	if out != cfg+"\n" {
		t.Fatalf("stdout = %q", out)
	}
}

// --- completion ---

func TestCompleteTipNames(t *testing.T) {
	dir := tipsDir(t, map[string]string{"git.tips": "", "go.tips": "", "docker.tips": ""})
	a := &app{deps: newTestEnv(map[string]string{"TIPS_HOME": dir}).deps()}

	got, directive := a.completeTipNames(&cobra.Command{}, nil, "g")
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Fatalf("directive = %v", directive)
	}
	if !reflect.DeepEqual(got, []string{"git", "go"}) {
		t.Fatalf("suggestions = %v", got)
	}

	got, _ = a.completeTipNames(&cobra.Command{}, []string{"git"}, "")
	if len(got) != 0 {
		t.Fatalf("no suggestions expected after the name, got %v", got)
	}
}
