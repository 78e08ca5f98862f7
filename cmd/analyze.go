package cmd

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/discountlens/internal/analysis"
	cfgpkg "github.com/KaramelBytes/discountlens/internal/config"
	"github.com/KaramelBytes/discountlens/internal/dataset"
	"github.com/KaramelBytes/discountlens/internal/logger"
	"github.com/KaramelBytes/discountlens/internal/report"
	"github.com/KaramelBytes/discountlens/internal/utils"
)

var (
	anaOutputPath string
	anaJSONPath   string
	anaDelimiter  string
	anaSheetName  string
	anaCurrency   string
	anaTitle      string
	anaEngine     string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a CSV/TSV/XLSX of discounts and revenue and write the HTML report",
	Long: `Reads product records, prints discount and revenue statistics, their Pearson
correlation, mean revenue per discount level and correlation per category,
then writes an HTML report with three charts.

The input defaults to discount_sales_data.csv and the report to
discount_analysis.html in the working directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	addAnalyzeFlags(analyzeCmd)
}

func addAnalyzeFlags(c *cobra.Command) {
	c.Flags().StringVarP(&anaOutputPath, "output", "o", "", "path of the HTML report (default discount_analysis.html)")
	c.Flags().StringVar(&anaJSONPath, "json", "", "also write the chart payload as JSON to this path")
	c.Flags().StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | '|' (auto-detect if omitted)")
	c.Flags().StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to analyze (default first sheet)")
	c.Flags().StringVar(&anaCurrency, "currency", "", "currency unit shown after revenue amounts")
	c.Flags().StringVar(&anaTitle, "title", "", "report title")
	c.Flags().StringVar(&anaEngine, "engine", "", "chart engine: chartjs|echarts")
}

// effectiveConfig layers changed command flags and the positional input over
// the loaded configuration.
func effectiveConfig(cmd *cobra.Command, args []string) (cfgpkg.Global, error) {
	base := cfg
	if base == nil {
		base = cfgpkg.Default()
	}
	c := *base
	if len(args) > 0 {
		c.Input = args[0]
	}
	f := cmd.Flags()
	if f.Changed("output") {
		c.Output = anaOutputPath
	}
	if f.Changed("json") {
		c.JSON = anaJSONPath
	}
	if f.Changed("delimiter") {
		c.Delimiter = anaDelimiter
	}
	if f.Changed("sheet-name") {
		c.Sheet = anaSheetName
	}
	if f.Changed("currency") {
		c.Currency = anaCurrency
	}
	if f.Changed("title") {
		c.Title = anaTitle
	}
	if f.Changed("engine") {
		c.Engine = anaEngine
	}
	if c.Input == "" {
		c.Input = cfgpkg.DefaultInput
	}
	if c.Output == "" {
		c.Output = cfgpkg.DefaultOutput
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	c, err := effectiveConfig(cmd, args)
	if err != nil {
		return err
	}
	s, err := analyzeFile(cmd, c)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	copt := report.ConsoleOptions{Currency: c.Currency, NoColor: noColor}
	if err := report.WriteConsole(out, s, copt); err != nil {
		return err
	}
	if err := writeReport(c, c.Output, s); err != nil {
		return err
	}
	return report.WriteFooter(out, c.Output, copt)
}

// analyzeFile loads c.Input and computes its summary.
func analyzeFile(cmd *cobra.Command, c cfgpkg.Global) (*analysis.Summary, error) {
	opt, err := c.DatasetOptions()
	if err != nil {
		return nil, err
	}
	ds, err := dataset.Load(c.Input, opt)
	if err != nil {
		return nil, err
	}
	logger.Infof("loaded %d records from %s (%d skipped)", ds.Len(), c.Input, ds.Skipped())
	s, err := analysis.Analyze(ds)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", c.Input, err)
	}
	if logger.Level() <= slog.LevelDebug {
		_, _ = pp.Fprintln(cmd.ErrOrStderr(), s)
	}
	return s, nil
}

// writeReport renders the document for s with the configured engine and
// writes it to path, plus the JSON payload when c.JSON is set.
func writeReport(c cfgpkg.Global, path string, s *analysis.Summary) error {
	payload := report.BuildPayload(s, report.NewMeta(c.Title, c.Currency))
	var buf bytes.Buffer
	var err error
	switch c.Engine {
	case cfgpkg.EngineECharts:
		err = report.RenderECharts(&buf, payload)
	default:
		err = report.RenderHTML(&buf, payload, report.HTMLOptions{ChartLibURL: c.ChartLibURL})
	}
	if err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	logger.Debugf("wrote %d bytes to %s (engine=%s, run=%s)", buf.Len(), path, c.Engine, payload.Meta.RunID)

	if c.JSON != "" {
		b, err := utils.PrettyJSON(payload)
		if err != nil {
			return err
		}
		if err := utils.SafeWriteFile(c.JSON, b); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
		logger.Debugf("wrote payload to %s", c.JSON)
	}
	return nil
}
