package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/kestrel-tags/tagforge/internal/tagsink"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <files/dirs...>",
	Short: "Walk source files and write a tags file",
	Long: `parse walks the given files and directories, extracting tags from
every recognized C, C++, and Swift source file, and writes them to a
ctags-compatible tags file.

Examples:
  # Write ./tags for the current directory
  tagforge parse .

  # Write to a specific path
  tagforge parse --output build/tags src/ include/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParseCmd,
}

var (
	parseOutput    string
	parseConfigDir string
)

func init() {
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "tags", "Path to write the tags file to")
	parseCmd.Flags().StringVar(&parseConfigDir, "config", "", "Directory to load .tagforge.yaml from (defaults to the first path argument)")
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	configDir := parseConfigDir
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

	f, err := os.Create(parseOutput)
	if err != nil {
		return fmt.Errorf("creating %s: %w", parseOutput, err)
	}
	defer f.Close()

	if err := writeCtagsReport(f, records); err != nil {
		return err
	}

	fmt.Printf("Wrote %d tags to %s\n", len(records), parseOutput)
	return nil
}

// writeCtagsReport renders records in the classic ctags line format:
// tagname<TAB>filename<TAB>line;"<TAB>kind[<TAB>key:value ...], sorted
// by tag name the way a ctags file is conventionally ordered.
func writeCtagsReport(w io.Writer, records []tagsink.Record) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	fmt.Fprintln(bw, "!_TAG_FILE_FORMAT\t2\t/extended format/")
	fmt.Fprintln(bw, "!_TAG_FILE_SORTED\t1\t/0=unsorted, 1=sorted, 2=foldcase/")

	sorted := sortedByName(records)
	for _, r := range sorted {
		fmt.Fprintf(bw, "%s\t%s\t%d;\"\t%c", r.Name, r.Pos.File, r.Pos.Line, kindLetter(r.Kind))
		if r.Scope != "" {
			fmt.Fprintf(bw, "\tscope:%s", r.Scope)
		}
		if r.Access != "" {
			fmt.Fprintf(bw, "\taccess:%s", r.Access)
		}
		if r.Type.Name != "" {
			fmt.Fprintf(bw, "\ttyperef:%s", r.Type.Name)
		}
		fmt.Fprintln(bw)
	}
	return nil
}

func sortedByName(records []tagsink.Record) []tagsink.Record {
	out := make([]tagsink.Record, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// kindLetter maps a tagsink.Kind to the single-character kind field
// ctags readers expect.
func kindLetter(k tagsink.Kind) rune {
	switch k {
	case tagsink.KindClass:
		return 'c'
	case tagsink.KindStruct:
		return 's'
	case tagsink.KindUnion:
		return 'u'
	case tagsink.KindEnum:
		return 'g'
	case tagsink.KindEnumerator:
		return 'e'
	case tagsink.KindTypedef:
		return 't'
	case tagsink.KindUsing:
		return 'u'
	case tagsink.KindNamespace:
		return 'n'
	case tagsink.KindFunction, tagsink.KindPrototype:
		return 'f'
	case tagsink.KindMember:
		return 'm'
	case tagsink.KindVariable, tagsink.KindConstant:
		return 'v'
	case tagsink.KindParameter:
		return 'z'
	case tagsink.KindMacro:
		return 'd'
	case tagsink.KindInclude:
		return 'h'
	case tagsink.KindTypeAlias:
		return 'a'
	default:
		return '?'
	}
}
