package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/discountlens/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set discountlens configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "input: %s\n", cfg.Input)
		fmt.Fprintf(out, "output: %s\n", cfg.Output)
		if cfg.JSON != "" {
			fmt.Fprintf(out, "json: %s\n", cfg.JSON)
		}
		if cfg.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", cfg.Delimiter)
		}
		if cfg.Sheet != "" {
			fmt.Fprintf(out, "sheet: %s\n", cfg.Sheet)
		}
		fmt.Fprintf(out, "columns.name: %s\n", strings.Join(cfg.Columns.Name, ", "))
		fmt.Fprintf(out, "columns.category: %s\n", strings.Join(cfg.Columns.Category, ", "))
		fmt.Fprintf(out, "columns.discount: %s\n", strings.Join(cfg.Columns.Discount, ", "))
		fmt.Fprintf(out, "columns.revenue: %s\n", strings.Join(cfg.Columns.Revenue, ", "))
		fmt.Fprintf(out, "currency: %s\n", cfg.Currency)
		if cfg.Title != "" {
			fmt.Fprintf(out, "title: %s\n", cfg.Title)
		}
		fmt.Fprintf(out, "engine: %s\n", cfg.Engine)
		fmt.Fprintf(out, "chart_lib_url: %s\n", cfg.ChartLibURL)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long: `Set a config value and save to disk.

Column keys (columns.name, columns.category, columns.discount, columns.revenue)
take a comma-separated list of accepted header names.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "input":
			cfg.Input = val
		case "output":
			cfg.Output = val
		case "json":
			cfg.JSON = val
		case "delimiter":
			if _, err := cfgpkg.ParseDelimiter(val); err != nil {
				return err
			}
			cfg.Delimiter = val
		case "sheet":
			cfg.Sheet = val
		case "columns.name":
			cfg.Columns.Name = splitList(val)
		case "columns.category":
			cfg.Columns.Category = splitList(val)
		case "columns.discount":
			cfg.Columns.Discount = splitList(val)
		case "columns.revenue":
			cfg.Columns.Revenue = splitList(val)
		case "currency":
			cfg.Currency = val
		case "title":
			cfg.Title = val
		case "engine":
			switch strings.ToLower(val) {
			case cfgpkg.EngineChartJS, "chart.js":
				cfg.Engine = cfgpkg.EngineChartJS
			case cfgpkg.EngineECharts:
				cfg.Engine = cfgpkg.EngineECharts
			default:
				return fmt.Errorf("invalid engine: %s (use chartjs or echarts)", val)
			}
		case "chart_lib_url":
			cfg.ChartLibURL = val
		case "log_level":
			switch strings.ToLower(val) {
			case "debug", "info", "warn", "error":
				cfg.LogLevel = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
