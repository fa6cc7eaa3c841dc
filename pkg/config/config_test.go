package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/pflag"

	"dirparse/pkg/consolidate"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("output", "o", "", "")
	flags.Bool("hidden", false, "")
	flags.Float64("max-size", consolidate.DefaultMaxFileSizeMB, "")
	flags.StringSlice("exclude-ext", nil, "")
	flags.Bool("tokens", false, "")
	return flags
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	settings, err := Load(LoadOptions{WorkingDirectory: t.TempDir()})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Defaults()
	if settings.Output != want.Output || settings.MaxSizeMB != want.MaxSizeMB || settings.Model != want.Model {
		t.Errorf("Load() = %+v; want defaults %+v", settings, want)
	}
	if settings.ConfigFile != "" {
		t.Errorf("ConfigFile = %q; want none", settings.ConfigFile)
	}
}

func TestLoadPrecedence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := writeConfig(t, dir, "output: from-file.md\nhidden: true\nmax_size: 2\nexclude_dir: [vendor, build]\ntokens: true\n")
	t.Setenv("DIRPARSE_MAX_SIZE", "5")

	flags := testFlags()
	if err := flags.Parse([]string{"--output", "from-flag.md"}); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(LoadOptions{WorkingDirectory: dir, Flags: flags})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.ConfigFile != path {
		t.Errorf("ConfigFile = %q; want %q", settings.ConfigFile, path)
	}
	if settings.Output != "from-flag.md" {
		t.Errorf("Output = %q; flag should win", settings.Output)
	}
	if settings.MaxSizeMB != 5 {
		t.Errorf("MaxSizeMB = %v; environment should beat the file", settings.MaxSizeMB)
	}
	if !settings.Hidden || !settings.Tokens {
		t.Errorf("file values lost: %+v", settings)
	}
	if !reflect.DeepEqual(settings.ExcludeDir, []string{"vendor", "build"}) {
		t.Errorf("ExcludeDir = %v", settings.ExcludeDir)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(custom, []byte("empty_dirs: true\nlanguages_file: langs.yml\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(LoadOptions{WorkingDirectory: dir, ExplicitFilePath: "custom.yaml"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !settings.EmptyDirs || settings.LanguagesFile != "langs.yml" {
		t.Errorf("explicit file not applied: %+v", settings)
	}

	if _, err := Load(LoadOptions{WorkingDirectory: dir, ExplicitFilePath: "missing.yaml"}); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	writeConfig(t, dir, "hidden: [unterminated\n")
	if _, err := Load(LoadOptions{WorkingDirectory: dir}); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestSettingsOptions(t *testing.T) {
	settings := Defaults()
	settings.Hidden = true
	settings.MaxSizeMB = 1.5
	settings.ExcludeExt = []string{"LOCK", ".bak"}
	settings.ExcludeDir = []string{"dist"}

	opts := settings.Options()
	if !opts.IncludeHidden {
		t.Error("IncludeHidden not set")
	}
	if opts.MaxFileSize != 1536*1024 {
		t.Errorf("MaxFileSize = %d; want %d", opts.MaxFileSize, 1536*1024)
	}
	if !contains(opts.ExcludedExtensions, ".lock") || !contains(opts.ExcludedExtensions, ".bak") || !contains(opts.ExcludedExtensions, ".png") {
		t.Errorf("ExcludedExtensions = %v", opts.ExcludedExtensions)
	}
	if !contains(opts.ExcludedDirPatterns, "dist") || !contains(opts.ExcludedDirPatterns, "node_modules") {
		t.Errorf("ExcludedDirPatterns = %v", opts.ExcludedDirPatterns)
	}

	settings.NoDefaultExcludes = true
	opts = settings.Options()
	if contains(opts.ExcludedExtensions, ".png") || contains(opts.ExcludedDirPatterns, "node_modules") {
		t.Errorf("defaults kept despite NoDefaultExcludes: %+v", opts)
	}
	if !contains(opts.ExcludedDirPatterns, "dist") {
		t.Errorf("custom pattern dropped: %v", opts.ExcludedDirPatterns)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList([]string{".a, .b", "", " .c "})
	want := []string{".a", ".b", ".c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitList = %v; want %v", got, want)
	}
}

func contains(values []string, want string) bool {
	for _, value := range values {
		if value == want {
			return true
		}
	}
	return false
}
