package walk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kestrel-tags/tagforge/internal/config"
	"github.com/kestrel-tags/tagforge/internal/tagsink"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWalkDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "socket.hpp", "class Socket { void open(); };")
	writeFile(t, dir, "Animal.swift", "class Animal {\n    func speak() {\n    }\n}")
	writeFile(t, dir, "vendor/ignored.hpp", "class ShouldNotAppear {};")
	writeFile(t, dir, "readme.txt", "not source")

	cfg := config.Default()
	collector := tagsink.NewCollector()
	sink := tagsink.NewSynchronized(collector)

	results, err := Walk(dir, cfg, sink)
	if err != nil {
		t.Fatalf("Walk error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (vendor/ and .txt excluded): %+v", len(results), results)
	}
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("%s: unexpected error: %v", r.File, r.Error)
		}
	}

	var sawSocket, sawAnimal bool
	for _, rec := range collector.Records {
		if rec.Name == "Socket" {
			sawSocket = true
		}
		if rec.Name == "Animal" {
			sawAnimal = true
		}
		if rec.Name == "ShouldNotAppear" {
			t.Error("vendor/ directory should have been excluded from the walk")
		}
	}
	if !sawSocket {
		t.Error("expected a tag for Socket from socket.hpp")
	}
	if !sawAnimal {
		t.Error("expected a tag for Animal from Animal.swift")
	}
}

func TestLanguageForRespectsOverride(t *testing.T) {
	cfg := config.Default()
	cfg.LanguageByExt = map[string]string{".inc": "cpp"}

	if got := languageFor("foo.inc", cfg); got != "cpp" {
		t.Errorf("languageFor(.inc) = %q, want cpp", got)
	}
	if got := languageFor("foo.md", cfg); got != "" {
		t.Errorf("languageFor(.md) = %q, want empty", got)
	}
	if got := languageFor("foo.swift", cfg); got != "swift" {
		t.Errorf("languageFor(.swift) = %q, want swift", got)
	}
}
