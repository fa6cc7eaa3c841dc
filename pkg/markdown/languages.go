package markdown

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed languages.yml
var embeddedLanguages []byte

// LanguageInfo lists what identifies files of one language.
type LanguageInfo struct {
	Extensions []string `yaml:"extensions"`
	Filenames  []string `yaml:"filenames"`
}

// Languages maps file names and extensions to code fence tags.
type Languages struct {
	extensionMap map[string]string // ".go" -> "go"
	filenameMap  map[string]string // "Makefile" -> "makefile"
}

var (
	defaultLanguages     *Languages
	defaultLanguagesOnce sync.Once
)

// DefaultLanguages returns the built-in table.
func DefaultLanguages() *Languages {
	defaultLanguagesOnce.Do(func() {
		langs, err := ParseLanguages(embeddedLanguages)
		if err != nil {
			panic(fmt.Sprintf("embedded languages.yml is invalid: %v", err))
		}
		defaultLanguages = langs
	})
	return defaultLanguages
}

// LoadLanguagesFile reads a languages table from path. Entries are layered over
// the built-in table, so a file only needs the languages it adds or changes.
func LoadLanguagesFile(path string) (*Languages, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading language file %s: %w", path, err)
	}
	custom, err := ParseLanguages(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing language file %s: %w", path, err)
	}

	merged := &Languages{
		extensionMap: make(map[string]string),
		filenameMap:  make(map[string]string),
	}
	for _, source := range []*Languages{DefaultLanguages(), custom} {
		for ext, tag := range source.extensionMap {
			merged.extensionMap[ext] = tag
		}
		for name, tag := range source.filenameMap {
			merged.filenameMap[name] = tag
		}
	}
	return merged, nil
}

// ParseLanguages decodes a YAML languages table keyed by fence tag.
func ParseLanguages(data []byte) (*Languages, error) {
	var table map[string]LanguageInfo
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, err
	}

	langs := &Languages{
		extensionMap: make(map[string]string),
		filenameMap:  make(map[string]string),
	}

	tags := make([]string, 0, len(table))
	for tag := range table {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		info := table[tag]
		for _, ext := range info.Extensions {
			ext = strings.ToLower(ext)
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			if _, taken := langs.extensionMap[ext]; !taken {
				langs.extensionMap[ext] = tag
			}
		}
		for _, name := range info.Filenames {
			if _, taken := langs.filenameMap[name]; !taken {
				langs.filenameMap[name] = tag
			}
		}
	}
	return langs, nil
}

// Tag returns the fence info string for a file: a filename match first, then the
// extension, then the bare extension itself. Files without either get no tag.
func (l *Languages) Tag(name string) string {
	base := filepath.Base(name)
	if tag, ok := l.filenameMap[base]; ok {
		return tag
	}
	ext := strings.ToLower(filepath.Ext(base))
	if ext == "" || ext == base {
		return ""
	}
	if tag, ok := l.extensionMap[ext]; ok {
		return tag
	}
	return fenceSafeTag(strings.TrimPrefix(ext, "."))
}

// fenceSafeTag drops characters that cannot appear in a fence info string.
func fenceSafeTag(tag string) string {
	return strings.Map(func(r rune) rune {
		if r == '`' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, tag)
}
