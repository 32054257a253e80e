package cmd

import (
	"fmt"
	"sort"

	"github.com/kestrel-tags/tagforge/internal/config"
	"github.com/kestrel-tags/tagforge/internal/tagsink"
	"github.com/kestrel-tags/tagforge/internal/walk"
)

// runScan walks every path in paths (each a file or a directory root),
// loading .tagforge.yaml from configDir if configDir is non-empty, and
// returns every committed tag plus the per-file results in scan order.
func runScan(paths []string, configDir string) ([]tagsink.Record, []walk.Result, error) {
	var cfg *config.Config
	var err error
	if configDir != "" {
		cfg, err = config.Load(configDir)
	} else {
		cfg = config.Default()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	collector := tagsink.NewCollector()
	sink := tagsink.NewSynchronized(collector)

	var allResults []walk.Result
	for _, p := range paths {
		results, err := walk.Walk(p, cfg, sink)
		if err != nil {
			return nil, nil, fmt.Errorf("walking %s: %w", p, err)
		}
		allResults = append(allResults, results...)
	}

	// A worker pool commits tags as each file finishes, not in any
	// deterministic cross-file order; normalize by file then line so
	// repeated runs over the same tree produce the same report.
	sort.SliceStable(collector.Records, func(i, j int) bool {
		ri, rj := collector.Records[i], collector.Records[j]
		if ri.Pos.File != rj.Pos.File {
			return ri.Pos.File < rj.Pos.File
		}
		return ri.Pos.Line < rj.Pos.Line
	})

	return collector.Records, allResults, nil
}

func failedFiles(results []walk.Result) []walk.Result {
	var failed []walk.Result
	for _, r := range results {
		if r.Error != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
