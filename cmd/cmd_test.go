package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type fakeCopier struct {
	text string
	err  error
}

func (f *fakeCopier) Copy(text string) error {
	f.text = text
	return f.err
}

// newTestCmd returns a root command that discovers config only in a temporary directory.
func newTestCmd(t *testing.T, copier *fakeCopier) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cmd := newRootCmd(&app{logger: zap.NewNop(), copier: copier, configDir: t.TempDir()})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	return cmd, &out
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRootCommandWritesReport(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.go"), "package main\n")
	writeFile(t, filepath.Join(root, "notes.log"), "noise\n")
	output := filepath.Join(t.TempDir(), "report")

	copier := &fakeCopier{}
	cmd, out := newTestCmd(t, copier)
	cmd.SetArgs([]string{root, "-o", output, "--clipboard", "--exclude-ext", "tmp"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	data, err := os.ReadFile(output + ".md")
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	doc := string(data)
	if !strings.Contains(doc, "```go\npackage main\n```") {
		t.Errorf("report missing main.go content:\n%s", doc)
	}
	if strings.Contains(doc, "File: `notes.log`") {
		t.Errorf("excluded .log file included:\n%s", doc)
	}
	if copier.text != doc {
		t.Error("clipboard did not receive the report")
	}
	if !strings.Contains(out.String(), "Consolidated 1 files") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestRootCommandOverwritesWithoutTerminal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "a\n")
	output := filepath.Join(t.TempDir(), "out.md")
	writeFile(t, output, "old")

	cmd, _ := newTestCmd(t, &fakeCopier{})
	cmd.SetArgs([]string{root, "--output", output})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) == "old" {
		t.Error("existing output was not replaced")
	}
}

func TestRootCommandClipboardFailureIsNotFatal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "a\n")

	cmd, _ := newTestCmd(t, &fakeCopier{err: errors.New("no clipboard")})
	cmd.SetArgs([]string{root, "-o", filepath.Join(t.TempDir(), "r.md"), "--clipboard"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
}

func TestRootCommandRejectsMissingDirectory(t *testing.T) {
	cmd, _ := newTestCmd(t, &fakeCopier{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing"), "-o", filepath.Join(t.TempDir(), "r.md")})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestPreviewCommand(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "12345")
	writeFile(t, filepath.Join(root, "b.mp3"), "x")

	cmd, out := newTestCmd(t, &fakeCopier{})
	cmd.SetArgs([]string{"preview", root})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, want := range []string{"Files to include:    1", "Total size:          5 bytes", "Files skipped:       1"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("preview output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRootCommandDirectoryNamedLikeSubcommand(t *testing.T) {
	work := t.TempDir()
	writeFile(t, filepath.Join(work, "preview", "inside.txt"), "inside\n")
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWD) })
	output := filepath.Join(t.TempDir(), "r.md")

	cmd, _ := newTestCmd(t, &fakeCopier{})
	if !strings.Contains(cmd.Long, "./preview") {
		t.Errorf("help does not explain how to name a directory called preview:\n%s", cmd.Long)
	}
	cmd.SetArgs([]string{"./preview", "-o", output})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(data), "### File: `inside.txt`") {
		t.Errorf("report missing inside.txt:\n%s", data)
	}
}

func TestVersionCommand(t *testing.T) {
	cmd, out := newTestCmd(t, &fakeCopier{})
	cmd.SetArgs([]string{"version", "--short"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Error("version printed nothing")
	}
}

func TestPromptUser(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"yes", true},
		{"n\n", false},
		{"\n", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := promptUser(strings.NewReader(tt.input), &out, "Overwrite? ")
		if err != nil {
			t.Fatalf("promptUser(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("promptUser(%q) = %v; want %v", tt.input, got, tt.want)
		}
		if out.String() != "Overwrite? " {
			t.Errorf("prompt = %q", out.String())
		}
	}

	if _, err := promptUser(strings.NewReader(""), &bytes.Buffer{}, "?"); err == nil {
		t.Error("expected error on empty input")
	}
}
