package markdown

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLanguageTag(t *testing.T) {
	langs := DefaultLanguages()
	tests := []struct {
		name string
		want string
	}{
		{"main.go", "go"},
		{"go.mod", "gomod"},
		{"Makefile", "makefile"},
		{"Dockerfile", "dockerfile"},
		{"notes.TXT", "text"},
		{"config.yml", "yaml"},
		{"script.py", "python"},
		{"data.unknownext", "unknownext"},
		{"LICENSE", ""},
		{".env", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := langs.Tag(tt.name); got != tt.want {
				t.Errorf("Tag(%q) = %q; want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestParseLanguagesFirstTagWins(t *testing.T) {
	langs, err := ParseLanguages([]byte("zeta:\n  extensions: [.x]\nalpha:\n  extensions: [x]\n"))
	if err != nil {
		t.Fatalf("ParseLanguages: %v", err)
	}
	if got := langs.Tag("file.x"); got != "alpha" {
		t.Errorf("Tag = %q; want alpha", got)
	}
}

func TestParseLanguagesRejectsInvalidYAML(t *testing.T) {
	if _, err := ParseLanguages([]byte("go: [unterminated")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadLanguagesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "languages.yml")
	custom := "starlark:\n  extensions: [.star]\n  filenames: [BUILD, WORKSPACE]\n"
	if err := os.WriteFile(path, []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	langs, err := LoadLanguagesFile(path)
	if err != nil {
		t.Fatalf("LoadLanguagesFile: %v", err)
	}
	if got := langs.Tag("rules.star"); got != "starlark" {
		t.Errorf("custom extension tag = %q; want starlark", got)
	}
	if got := langs.Tag("BUILD"); got != "starlark" {
		t.Errorf("custom filename tag = %q; want starlark", got)
	}
	if got := langs.Tag("main.go"); got != "go" {
		t.Errorf("built-in tag lost: got %q", got)
	}

	if _, err := LoadLanguagesFile(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for missing file")
	}
}
