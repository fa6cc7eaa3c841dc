// Package config merges defaults, the optional config file, environment
// variables, and command-line flags into run settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"dirparse/pkg/consolidate"
	"dirparse/pkg/markdown"
	"dirparse/pkg/tokens"
)

const (
	// FileName is the config file looked up in the working directory.
	FileName = ".dirparse.yaml"

	// GlobalDirName is the config directory below $HOME.
	GlobalDirName = ".config/dirparse"

	// EnvPrefix prefixes environment variables, e.g. DIRPARSE_MAX_SIZE.
	EnvPrefix = "DIRPARSE"
)

// Keys shared by the config file, the environment, and flag bindings.
const (
	KeyOutput            = "output"
	KeyHidden            = "hidden"
	KeyEmptyDirs         = "empty_dirs"
	KeyMaxSize           = "max_size"
	KeyExcludeExt        = "exclude_ext"
	KeyExcludeDir        = "exclude_dir"
	KeyNoDefaultExcludes = "no_default_excludes"
	KeyGitignore         = "gitignore"
	KeyTokens            = "tokens"
	KeyModel             = "model"
	KeyClipboard         = "clipboard"
	KeyYes               = "yes"
	KeyDebug             = "debug"
	KeyLanguagesFile     = "languages_file"
)

// Settings is the merged configuration of one run.
type Settings struct {
	Input             string   `mapstructure:"-"`
	Output            string   `mapstructure:"output"`
	Hidden            bool     `mapstructure:"hidden"`
	EmptyDirs         bool     `mapstructure:"empty_dirs"`
	MaxSizeMB         float64  `mapstructure:"max_size"`
	ExcludeExt        []string `mapstructure:"exclude_ext"`
	ExcludeDir        []string `mapstructure:"exclude_dir"`
	NoDefaultExcludes bool     `mapstructure:"no_default_excludes"`
	Gitignore         bool     `mapstructure:"gitignore"`
	Tokens            bool     `mapstructure:"tokens"`
	Model             string   `mapstructure:"model"`
	Clipboard         bool     `mapstructure:"clipboard"`
	Yes               bool     `mapstructure:"yes"`
	Debug             bool     `mapstructure:"debug"`
	LanguagesFile     string   `mapstructure:"languages_file"`

	// ConfigFile is the file the settings were read from, if any.
	ConfigFile string `mapstructure:"-"`
}

// LoadOptions controls where configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
	Flags            *pflag.FlagSet
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"output":              KeyOutput,
	"hidden":              KeyHidden,
	"empty-dirs":          KeyEmptyDirs,
	"max-size":            KeyMaxSize,
	"exclude-ext":         KeyExcludeExt,
	"exclude-dir":         KeyExcludeDir,
	"no-default-excludes": KeyNoDefaultExcludes,
	"gitignore":           KeyGitignore,
	"tokens":              KeyTokens,
	"model":               KeyModel,
	"clipboard":           KeyClipboard,
	"yes":                 KeyYes,
	"debug":               KeyDebug,
	"languages":           KeyLanguagesFile,
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		Output:    markdown.DefaultOutputFile,
		MaxSizeMB: consolidate.DefaultMaxFileSizeMB,
		Model:     tokens.DefaultModel,
	}
}

// Load reads settings with precedence flags > environment > config file > defaults.
// A missing config file is not an error; an explicit one that is missing is.
func Load(options LoadOptions) (Settings, error) {
	v := viper.New()
	defaults := Defaults()
	v.SetDefault(KeyOutput, defaults.Output)
	v.SetDefault(KeyHidden, defaults.Hidden)
	v.SetDefault(KeyEmptyDirs, defaults.EmptyDirs)
	v.SetDefault(KeyMaxSize, defaults.MaxSizeMB)
	v.SetDefault(KeyExcludeExt, []string{})
	v.SetDefault(KeyExcludeDir, []string{})
	v.SetDefault(KeyNoDefaultExcludes, defaults.NoDefaultExcludes)
	v.SetDefault(KeyGitignore, defaults.Gitignore)
	v.SetDefault(KeyTokens, defaults.Tokens)
	v.SetDefault(KeyModel, defaults.Model)
	v.SetDefault(KeyClipboard, defaults.Clipboard)
	v.SetDefault(KeyYes, defaults.Yes)
	v.SetDefault(KeyDebug, defaults.Debug)
	v.SetDefault(KeyLanguagesFile, defaults.LanguagesFile)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if options.Flags != nil {
		for name, key := range flagKeys {
			flag := options.Flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return Settings{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	path, err := resolveConfigPath(options.WorkingDirectory, options.ExplicitFilePath)
	if err != nil {
		return Settings{}, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if readErr := v.ReadInConfig(); readErr != nil {
			return Settings{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
		}
	}

	var settings Settings
	if decodeErr := v.Unmarshal(&settings); decodeErr != nil {
		return Settings{}, fmt.Errorf("decode configuration: %w", decodeErr)
	}
	settings.ExcludeExt = splitList(settings.ExcludeExt)
	settings.ExcludeDir = splitList(settings.ExcludeDir)
	settings.ConfigFile = v.ConfigFileUsed()
	return settings, nil
}

// resolveConfigPath picks the explicit file, then the working directory file,
// then the global file. It returns "" when none exists.
func resolveConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if !filepath.IsAbs(explicitPath) && workingDirectory != "" {
			explicitPath = filepath.Join(workingDirectory, explicitPath)
		}
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("configuration file %s: %w", explicitPath, err)
		}
		return explicitPath, nil
	}

	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	candidates := []string{filepath.Join(workingDirectory, FileName)}
	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		candidates = append(candidates, filepath.Join(homeDirectory, GlobalDirName, "config.yaml"))
	}
	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", fmt.Errorf("stat configuration %s: %w", candidate, err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("configuration path %s is a directory", candidate)
		}
		return candidate, nil
	}
	return "", nil
}

// splitList accepts both list values and comma-separated strings, as produced
// by environment variables.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Options converts settings into traversal options.
func (s Settings) Options() consolidate.Options {
	opts := consolidate.Options{
		IncludeHidden:    s.Hidden,
		IncludeEmptyDirs: s.EmptyDirs,
		MaxFileSize:      int64(s.MaxSizeMB * consolidate.BytesPerMB),
		RespectGitignore: s.Gitignore,
	}
	if !s.NoDefaultExcludes {
		opts.ExcludedExtensions = append(opts.ExcludedExtensions, consolidate.DefaultExcludedExtensions...)
		opts.ExcludedDirPatterns = append(opts.ExcludedDirPatterns, consolidate.DefaultExcludedDirPatterns...)
	}
	for _, ext := range s.ExcludeExt {
		opts.ExcludedExtensions = append(opts.ExcludedExtensions, consolidate.NormalizeExtension(ext))
	}
	opts.ExcludedDirPatterns = append(opts.ExcludedDirPatterns, s.ExcludeDir...)
	return opts
}
