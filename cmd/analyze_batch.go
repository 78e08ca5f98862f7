package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/discountlens/internal/report"
	"github.com/KaramelBytes/discountlens/internal/utils"
)

var (
	abOutDir string
	abQuiet  bool
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze multiple CSV/TSV/XLSX files, one HTML report each",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		seen := map[string]struct{}{}
		for _, arg := range args {
			matches, _ := filepath.Glob(arg)
			if len(matches) == 0 {
				// treat as literal path if exists
				if _, err := os.Stat(arg); err == nil {
					matches = []string{arg}
				}
			}
			for _, m := range matches {
				if _, ok := seen[m]; ok {
					continue
				}
				seen[m] = struct{}{}
				files = append(files, m)
			}
		}
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		sort.Strings(files)

		c, err := effectiveConfig(cmd, nil)
		if err != nil {
			return err
		}
		// JSON payload output is single-run only
		c.JSON = ""
		out := cmd.OutOrStdout()
		copt := report.ConsoleOptions{Currency: c.Currency, NoColor: noColor}
		written := map[string]bool{}
		var lines []string

		total := len(files)
		for i, path := range files {
			if !abQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			c.Input = path
			s, err := analyzeFile(cmd, c)
			if err != nil {
				return err
			}
			if !abQuiet {
				if err := report.WriteConsole(out, s, copt); err != nil {
					return err
				}
			}

			base := filepath.Base(path)
			name := strings.TrimSuffix(base, filepath.Ext(base)) + ".html"
			dest := utils.UniquePath(filepath.Join(abOutDir, name), func(p string) bool { return written[p] })
			if dest != filepath.Join(abOutDir, name) && !abQuiet {
				fmt.Fprintf(out, "⚠ Another input already produced %s, writing to %s to avoid overwrite.\n", name, filepath.Base(dest))
			}
			if err := writeReport(c, dest, s); err != nil {
				return err
			}
			written[dest] = true
			if !abQuiet {
				fmt.Fprintf(out, "✓ Wrote %s\n\n", dest)
			}
			lines = append(lines, fmt.Sprintf("  %-24s r=%7s  %-18s → %s", base, report.Fixed(s.Correlation, 4), s.Interpretation.Label(), dest))
		}

		fmt.Fprintf(out, "✓ Analyzed %d file(s)\n", total)
		if !abQuiet {
			fmt.Fprintln(out, strings.Join(lines, "\n"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	f := analyzeBatchCmd.Flags()
	f.StringVar(&abOutDir, "out-dir", ".", "directory for the generated reports")
	f.BoolVar(&abQuiet, "quiet", false, "suppress progress and per-file console reports")
	f.StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | '|' (auto-detect if omitted)")
	f.StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to analyze (default first sheet)")
	f.StringVar(&anaCurrency, "currency", "", "currency unit shown after revenue amounts")
	f.StringVar(&anaTitle, "title", "", "report title")
	f.StringVar(&anaEngine, "engine", "", "chart engine: chartjs|echarts")
}
