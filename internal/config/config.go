package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/discountlens/internal/dataset"
	"github.com/KaramelBytes/discountlens/internal/report"
)

const (
	EngineChartJS = "chartjs"
	EngineECharts = "echarts"

	DefaultInput    = "discount_sales_data.csv"
	DefaultOutput   = "discount_analysis.html"
	DefaultCurrency = "KRW"

	dirName = ".discountlens"
)

// Columns holds header aliases per required field.
type Columns struct {
	Name     []string `mapstructure:"name" yaml:"name"`
	Category []string `mapstructure:"category" yaml:"category"`
	Discount []string `mapstructure:"discount" yaml:"discount"`
	Revenue  []string `mapstructure:"revenue" yaml:"revenue"`
}

// Global configuration structure.
type Global struct {
	Input     string  `mapstructure:"input" yaml:"input"`
	Output    string  `mapstructure:"output" yaml:"output"`
	JSON      string  `mapstructure:"json" yaml:"json,omitempty"`
	Delimiter string  `mapstructure:"delimiter" yaml:"delimiter,omitempty"`
	Sheet     string  `mapstructure:"sheet" yaml:"sheet,omitempty"`
	Columns   Columns `mapstructure:"columns" yaml:"columns"`

	// Report presentation
	Currency    string `mapstructure:"currency" yaml:"currency"`
	Title       string `mapstructure:"title" yaml:"title,omitempty"`
	Engine      string `mapstructure:"engine" yaml:"engine"`
	ChartLibURL string `mapstructure:"chart_lib_url" yaml:"chart_lib_url"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns the configuration used when no file or env overrides exist.
func Default() *Global {
	cols := dataset.DefaultColumns()
	return &Global{
		Input:  DefaultInput,
		Output: DefaultOutput,
		Columns: Columns{
			Name:     cols.Name,
			Category: cols.Category,
			Discount: cols.Discount,
			Revenue:  cols.Revenue,
		},
		Currency:    DefaultCurrency,
		Engine:      EngineChartJS,
		ChartLibURL: report.DefaultChartLibURL,
		LogLevel:    "warn",
	}
}

// Dir returns ~/.discountlens.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.discountlens/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DISCOUNTLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("input", d.Input)
	v.SetDefault("output", d.Output)
	v.SetDefault("json", "")
	v.SetDefault("delimiter", "")
	v.SetDefault("sheet", "")
	v.SetDefault("columns.name", d.Columns.Name)
	v.SetDefault("columns.category", d.Columns.Category)
	v.SetDefault("columns.discount", d.Columns.Discount)
	v.SetDefault("columns.revenue", d.Columns.Revenue)
	v.SetDefault("currency", d.Currency)
	v.SetDefault("title", "")
	v.SetDefault("engine", d.Engine)
	v.SetDefault("chart_lib_url", d.ChartLibURL)
	v.SetDefault("log_level", d.LogLevel)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks enumerated and single-character settings and normalizes
// the engine name.
func (c *Global) Validate() error {
	c.Engine = strings.ToLower(strings.TrimSpace(c.Engine))
	switch c.Engine {
	case EngineChartJS, EngineECharts:
	default:
		return fmt.Errorf("invalid engine %q (want %s or %s)", c.Engine, EngineChartJS, EngineECharts)
	}
	if _, err := ParseDelimiter(c.Delimiter); err != nil {
		return err
	}
	return nil
}

// ParseDelimiter maps a config/flag value to a CSV delimiter. Empty means
// auto-detect from the file extension and yields 0.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case "tab", "\\t", "\t":
		return '\t', nil
	case ";", "semicolon":
		return ';', nil
	case "|", "pipe":
		return '|', nil
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}
	return 0, fmt.Errorf("invalid delimiter %q", s)
}

// DatasetOptions converts the loading-related settings for dataset.Load.
// Empty alias lists fall back to the defaults.
func (c *Global) DatasetOptions() (dataset.Options, error) {
	delim, err := ParseDelimiter(c.Delimiter)
	if err != nil {
		return dataset.Options{}, err
	}
	def := dataset.DefaultColumns()
	return dataset.Options{
		Delimiter: delim,
		SheetName: c.Sheet,
		Columns: dataset.Columns{
			Name:     orDefault(c.Columns.Name, def.Name),
			Category: orDefault(c.Columns.Category, def.Category),
			Discount: orDefault(c.Columns.Discount, def.Discount),
			Revenue:  orDefault(c.Columns.Revenue, def.Revenue),
		},
	}, nil
}

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}
