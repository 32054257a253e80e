// Package config loads .tagforge.yaml: per-project exclude patterns,
// language override, file-scope default, and seed macro table read
// before a directory walk begins.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"gopkg.in/yaml.v2"
)

// FileName is the configuration file a walk looks for at its root.
const FileName = ".tagforge.yaml"

// Config controls which files a walk visits, how ambiguous extensions
// are resolved, and what every parse is seeded with.
type Config struct {
	Language        string            `yaml:"language,omitempty"`
	ExcludePatterns []string          `yaml:"excludePatterns,omitempty"`
	FileScopeOnly   bool              `yaml:"fileScopeOnly,omitempty"`
	Macros          map[string]string `yaml:"macros,omitempty"`
	LanguageByExt   map[string]string `yaml:"languageByExt,omitempty"`
	Workers         int               `yaml:"workers,omitempty"`
}

// Default returns a Config with the exclude patterns a walk falls back to
// when no .tagforge.yaml is present.
func Default() *Config {
	return &Config{
		ExcludePatterns: []string{"**/build/**", "**/vendor/**", "**/third_party/**", "**/.git/**", "**/node_modules/**"},
		Workers:         4,
	}
}

// Load reads .tagforge.yaml from dir, returning Default() if it does not
// exist (including when dir is not a directory). A present-but-malformed
// file is an error.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, err
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return cfg, nil
}

// Excluded reports whether path matches any of c.ExcludePatterns. A
// pattern is interpreted as a glob against the base name, or — when it
// contains a `**` segment, as in "**/vendor/**" — as a bare path
// component to look for anywhere along path.
func (c *Config) Excluded(path string) bool {
	for _, pattern := range c.ExcludePatterns {
		if component, ok := globComponent(pattern); ok {
			if containsComponent(path, component) {
				return true
			}
			continue
		}
		if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
			return true
		}
	}
	return false
}

// globComponent extracts the bare directory name from a "**/name/**"
// style pattern, reporting false for anything else.
func globComponent(pattern string) (string, bool) {
	if !strings.Contains(pattern, "**") {
		return "", false
	}
	trimmed := strings.Trim(pattern, "*/")
	if trimmed == "" || strings.ContainsAny(trimmed, "*/") {
		return "", false
	}
	return trimmed, true
}

func containsComponent(path, component string) bool {
	for _, part := range splitPath(path) {
		if part == component {
			return true
		}
	}
	return false
}

func splitPath(path string) []string {
	var parts []string
	path = filepath.ToSlash(path)
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			if i > start {
				parts = append(parts, path[start:i])
			}
			start = i + 1
		}
	}
	return parts
}
