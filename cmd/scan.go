package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/kestrel-tags/tagforge/internal/tagsink"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan <files/dirs...>",
	Short: "Walk source files and print an extraction report",
	Long: `scan walks the given files and directories, extracting tags from
every recognized C, C++, and Swift source file, and prints a report in
one of three formats instead of writing a tags file.

Examples:
  # Human-readable report for a directory
  tagforge scan src/

  # JSON report for scripting
  tagforge scan --format json src/

  # ctags-compatible tag lines to stdout
  tagforge scan --format ctags src/ > tags`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScanCmd,
}

var (
	scanFormat    string
	scanConfigDir string
)

func init() {
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "human", "Output format (human, json, ctags)")
	scanCmd.Flags().StringVar(&scanConfigDir, "config", "", "Directory to load .tagforge.yaml from (defaults to the first path argument)")
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	configDir := scanConfigDir
	if configDir == "" {
		configDir = args[0]
	}

	records, results, err := runScan(args, configDir)
	if err != nil {
		return err
	}

	for _, r := range failedFiles(results) {
		fmt.Fprintf(os.Stderr, "tagforge: %s: %v\n", r.File, r.Error)
	}

	switch scanFormat {
	case "json":
		return writeJSONReport(records)
	case "ctags":
		return writeCtagsReport(os.Stdout, records)
	default:
		return writeHumanReport(records, len(results))
	}
}

func writeJSONReport(records []tagsink.Record) error {
	type jsonRecord struct {
		Name        string   `json:"name"`
		Kind        string   `json:"kind"`
		File        string   `json:"file"`
		Line        int      `json:"line"`
		Scope       string   `json:"scope,omitempty"`
		Access      string   `json:"access,omitempty"`
		Type        string   `json:"type,omitempty"`
		Inheritance []string `json:"inheritance,omitempty"`
		Signature   string   `json:"signature,omitempty"`
		HasDoc      bool     `json:"hasDoc"`
	}

	out := make([]jsonRecord, 0, len(records))
	for _, r := range records {
		out = append(out, jsonRecord{
			Name:        r.Name,
			Kind:        r.Kind.String(),
			File:        r.Pos.File,
			Line:        r.Pos.Line,
			Scope:       r.Scope,
			Access:      r.Access,
			Type:        r.Type.Name,
			Inheritance: r.Inheritance,
			Signature:   r.Signature,
			HasDoc:      r.Doc != nil,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]interface{}{"tags": out})
}

func writeHumanReport(records []tagsink.Record, filesWalked int) error {
	byKind := make(map[string]int)
	documented := 0

	for _, r := range records {
		byKind[r.Kind.String()]++
		if r.Doc != nil {
			documented++
		}

		fmt.Printf("%s: %s", r.Kind, r.Name)
		if r.Scope != "" {
			fmt.Printf(" (in %s)", r.Scope)
		}
		if r.Access != "" {
			fmt.Printf(" [%s]", r.Access)
		}
		fmt.Printf("\n  %s:%d\n", r.Pos.File, r.Pos.Line)
		if r.Type.Name != "" {
			fmt.Printf("  type: %s\n", r.Type.Name)
		}
		if len(r.Inheritance) > 0 {
			fmt.Printf("  inherits: %v\n", r.Inheritance)
		}
		if r.Doc != nil && r.Doc.Brief != "" {
			fmt.Printf("  brief: %s\n", r.Doc.Brief)
		}
		fmt.Println()
	}

	fmt.Println("Summary:")
	fmt.Println("--------")
	fmt.Printf("Files scanned: %d\n", filesWalked)
	fmt.Printf("Total tags: %d\n", len(records))
	kinds := make([]string, 0, len(byKind))
	for kind := range byKind {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Printf("%s: %d\n", kind, byKind[kind])
	}
	if len(records) > 0 {
		fmt.Printf("Documented: %d (%.1f%%)\n", documented, float64(documented)/float64(len(records))*100)
	}
	return nil
}
