package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestMatchesDir(t *testing.T) {
	dp := New(zap.NewNop())
	dp.CompileLines(
		"# comment",
		"",
		"node_modules",
		"build*",
		"docs/generated/",
		"/vendor",
		"**/cache/**",
	)

	tests := []struct {
		path     string
		expected bool
	}{
		{".", false},
		{"src", false},
		{"node_modules", true},
		{"web/node_modules/react", true},
		{"old_node_modules_copy", true},
		{"build", true},
		{"buildtools", true},
		{"rebuild", false},
		{"docs/generated", true},
		{"docs/generated/api", true},
		{"site/docs/generated", true},
		{"docs", false},
		{"vendor", true},
		{"vendor/pkg", true},
		{"third_party/vendor", false},
		{"a/cache/b", true},
		{filepath.Join("src", "internal"), false},
	}

	for _, tt := range tests {
		if got := dp.MatchesDir(tt.path); got != tt.expected {
			t.Errorf("MatchesDir(%q) = %v; want %v", tt.path, got, tt.expected)
		}
	}
	if dp.Len() != 5 {
		t.Errorf("Len() = %d; want 5", dp.Len())
	}
}

func TestNegationLastMatchWins(t *testing.T) {
	dp := New(nil)
	dp.CompileLines("gen*", "!generated_keep")

	if !dp.MatchesDir("generated") {
		t.Errorf("generated should be excluded")
	}
	matched, pattern := dp.MatchesDirWithPattern("generated_keep")
	if matched {
		t.Errorf("generated_keep should be re-included")
	}
	if pattern == nil || !pattern.Negate {
		t.Errorf("expected the negated pattern to decide, got %+v", pattern)
	}
}

func TestGlobMetacharactersAreLiteral(t *testing.T) {
	dp := New(nil)
	dp.CompileLines("v1.*", "(tmp)")

	tests := map[string]bool{
		"v1.2":     true,
		"v1x2":     false,
		"(tmp)":    true,
		"my(tmp)x": true,
		"tmp":      false,
	}
	for path, expected := range tests {
		if got := dp.MatchesDir(path); got != expected {
			t.Errorf("MatchesDir(%q) = %v; want %v", path, got, expected)
		}
	}
}

func TestLoadIgnoreFile(t *testing.T) {
	root := t.TempDir()

	dp := New(nil)
	if err := dp.LoadIgnoreFile(root); err != nil {
		t.Fatalf("missing ignore file should not fail: %v", err)
	}
	if dp.Len() != 0 {
		t.Fatalf("expected no patterns, got %d", dp.Len())
	}

	content := "# generated output\ndist\n\n!dist_src\n"
	if err := os.WriteFile(filepath.Join(root, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := dp.LoadIgnoreFile(root); err != nil {
		t.Fatalf("LoadIgnoreFile: %v", err)
	}
	if dp.Len() != 2 {
		t.Fatalf("expected 2 patterns, got %d", dp.Len())
	}
	if !dp.MatchesDir("dist") || dp.MatchesDir("dist_src") {
		t.Errorf("unexpected matching after loading %s", FileName)
	}
}
