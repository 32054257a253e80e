package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workers != Default().Workers {
		t.Errorf("Workers = %d, want default %d", cfg.Workers, Default().Workers)
	}
	if len(cfg.ExcludePatterns) == 0 {
		t.Error("expected default exclude patterns")
	}
}

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	content := "excludePatterns:\n  - \"**/generated/**\"\nworkers: 8\nfileScopeOnly: true\nmacros:\n  NOEXPORT: \"\"\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if !cfg.FileScopeOnly {
		t.Error("expected fileScopeOnly to be true")
	}
	if len(cfg.ExcludePatterns) != 1 || cfg.ExcludePatterns[0] != "**/generated/**" {
		t.Errorf("ExcludePatterns = %v, want [**/generated/**]", cfg.ExcludePatterns)
	}
	if _, ok := cfg.Macros["NOEXPORT"]; !ok {
		t.Errorf("Macros = %v, want NOEXPORT present", cfg.Macros)
	}
}

func TestLoadMalformedYAMLIsAnError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("excludePatterns: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestExcludedMatchesDoubleStarComponent(t *testing.T) {
	cfg := Default()
	if !cfg.Excluded(filepath.Join("project", "vendor", "lib.hpp")) {
		t.Error("expected a path under vendor/ to be excluded")
	}
	if cfg.Excluded(filepath.Join("project", "src", "lib.hpp")) {
		t.Error("did not expect src/ to be excluded")
	}
}

func TestExcludedMatchesGlobPattern(t *testing.T) {
	cfg := &Config{ExcludePatterns: []string{"*.generated.hpp"}}
	if !cfg.Excluded("foo.generated.hpp") {
		t.Error("expected a glob match on the base name to be excluded")
	}
	if cfg.Excluded("foo.hpp") {
		t.Error("did not expect a non-matching name to be excluded")
	}
}
