package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/discountlens/internal/config"
	"github.com/KaramelBytes/discountlens/internal/logger"
)

var (
	// Global flags
	cfgFile  string
	debug    bool
	noColor  bool
	logLevel string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "discountlens [file]",
	Short: "Discount vs. revenue correlation report",
	Long: `discountlens reads product records (name, category, discount percent, revenue)
from a CSV/TSV or XLSX file, prints descriptive statistics and the Pearson
correlation between discount and revenue, and writes an HTML report with charts.

Without a subcommand it behaves like "discountlens analyze".`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAnalyze,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.discountlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging and dump the computed summary")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored console output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
	addAnalyzeFlags(rootCmd)
}

func loadConfig() {
	logger.SetOutput(rootCmd.ErrOrStderr())
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		logger.Warnf("failed to load config: %v", err)
		c = cfgpkg.Default()
	}
	cfg = c

	level := cfg.LogLevel
	if rootCmd.PersistentFlags().Changed("log-level") {
		level = logLevel
	}
	if debug {
		level = "debug"
	}
	logger.SetLevel(level)
}
