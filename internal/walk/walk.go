// Package walk drives a directory scan with a bounded worker pool,
// dispatching each file to the C/C++ or Swift front end by extension and
// merging their tags and diagnostics into one result.
package walk

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kestrel-tags/tagforge/internal/config"
	"github.com/kestrel-tags/tagforge/internal/cxx"
	"github.com/kestrel-tags/tagforge/internal/diag"
	"github.com/kestrel-tags/tagforge/internal/swift"
	"github.com/kestrel-tags/tagforge/internal/tagsink"
)

var cppExtensions = map[string]bool{
	".c": true, ".cc": true, ".cxx": true, ".cpp": true,
	".h": true, ".hh": true, ".hpp": true, ".hxx": true,
}

// languageFor reports the front end that should parse path, or "" if the
// extension is not recognized. A project-wide cfg.Language override wins
// over both the per-extension table and extension sniffing.
func languageFor(path string, cfg *config.Config) string {
	if cfg.Language != "" {
		return cfg.Language
	}
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := cfg.LanguageByExt[ext]; ok {
		return lang
	}
	if ext == ".swift" {
		return "swift"
	}
	if cppExtensions[ext] {
		return "cpp"
	}
	return ""
}

// Result is the outcome of scanning one file.
type Result struct {
	File  string
	Error error
}

// Walk scans root according to cfg, committing every discovered tag to
// sink. It returns one Result per visited file; a file that failed carries
// its error in its Result, and the returned error is non-nil only when
// collecting the files under root fails. sink must be safe for concurrent Begin/Commit
// calls from multiple goroutines; Collector is not — wrap it with a
// synchronized sink when calling Walk with Workers > 1.
func Walk(root string, cfg *config.Config, sink tagsink.Sink) ([]Result, error) {
	files, err := collectFiles(root, cfg)
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}
	if workers == 0 {
		return nil, nil
	}

	jobs := make(chan string)
	resultsCh := make(chan Result, len(files))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(jobs, resultsCh, sink, cfg)
		}()
	}

	go func() {
		for _, f := range files {
			jobs <- f
		}
		close(jobs)
	}()

	wg.Wait()
	close(resultsCh)

	results := make([]Result, 0, len(files))
	for r := range resultsCh {
		results = append(results, r)
	}
	return results, nil
}

// worker owns one cxx.Engine and one swift.Engine for its whole lifetime,
// reusing each across every file it is handed (mirroring the teacher's
// one-init-many-resets lifecycle) rather than allocating per file.
func worker(jobs <-chan string, results chan<- Result, sink tagsink.Sink, cfg *config.Config) {
	cppEngine := cxx.NewEngine(sink)
	cppEngine.InitializeCpp()
	cppEngine.SetMacros(cfg.Macros)
	defer cppEngine.Cleanup()

	swiftEngine := swift.NewEngine(sink)

	for path := range jobs {
		results <- parseOne(path, cppEngine, swiftEngine, cfg)
	}
}

func parseOne(path string, cppEngine *cxx.Engine, swiftEngine *swift.Engine, cfg *config.Config) Result {
	content, err := os.ReadFile(path)
	if err != nil {
		return Result{File: path, Error: err}
	}

	if languageFor(path, cfg) == "swift" {
		swiftEngine.ParseFile(path, string(content))
		return Result{File: path}
	}

	ext := strings.ToLower(filepath.Ext(path))
	isHeader := ext == ".h" || ext == ".hh" || ext == ".hpp" || ext == ".hxx"
	fileScope := cfg.FileScopeOnly || !isHeader
	reason, batch := cppEngine.ParseFile(path, string(content), fileScope)
	if reason == cxx.RescanFailed {
		var err error
		if batch != nil {
			err = batch.Err()
		}
		if err == nil {
			err = diag.Errorf(diag.Position{File: path}, diag.ErrLogicAssert, "parse did not complete")
		}
		return Result{File: path, Error: err}
	}
	return Result{File: path}
}

func collectFiles(root string, cfg *config.Config) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && cfg.Excluded(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if cfg.Excluded(path) {
			return nil
		}
		if languageFor(path, cfg) != "" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
