package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/BurntSushi/toml"
)

// DefaultTitle is the chart title template. Fields: .Usage, .Cost, .AveragePrice.
const DefaultTitle = "Electricity usage and cost, month to date {{.Usage}} kWh and {{.Cost}} €, average price {{.AveragePrice}} c/kWh"

// FinnishTitle is the Finnish wording of DefaultTitle.
const FinnishTitle = "Sähkön kulutus ja hinta, kuukauden kertymä {{.Usage}} kWh ja {{.Cost}}€, keskihinta {{.AveragePrice}} snt/kWh"

// Config holds all spotbill configuration.
type Config struct {
	Files    FilesConfig    `toml:"files"`
	Contract ContractConfig `toml:"contract"`
	Chart    ChartConfig    `toml:"chart"`
	History  HistoryConfig  `toml:"history"`
}

// FilesConfig holds input and output locations.
type FilesConfig struct {
	UsageReport   string `toml:"usage_report"`
	UsageEncoding string `toml:"usage_encoding"`
	PriceChart    string `toml:"price_chart"`
	PriceEncoding string `toml:"price_encoding"`
	Chart         string `toml:"chart"`
}

// ContractConfig holds the electricity contract terms, in cents.
type ContractConfig struct {
	MarginCents    float64 `toml:"margin_cents"`
	BasePriceCents float64 `toml:"base_price_cents"`
}

// ChartConfig holds the chart image settings and labels.
type ChartConfig struct {
	WidthPx     int    `toml:"width_px"`
	HeightPx    int    `toml:"height_px"`
	DPI         int    `toml:"dpi"`
	Title       string `toml:"title"`
	UsageLegend string `toml:"usage_legend"`
	CostLegend  string `toml:"cost_legend"`
	XLabel      string `toml:"x_label"`
	UsageLabel  string `toml:"usage_label"`
	CostLabel   string `toml:"cost_label"`
}

// UseEnglish sets the English title and labels.
func (c *ChartConfig) UseEnglish() {
	c.Title = DefaultTitle
	c.UsageLegend = "usage"
	c.CostLegend = "cost"
	c.XLabel = "day"
	c.UsageLabel = "kWh"
	c.CostLabel = "EUR"
}

// UseFinnish sets the Finnish title and labels.
func (c *ChartConfig) UseFinnish() {
	c.Title = FinnishTitle
	c.UsageLegend = "kulutus"
	c.CostLegend = "hinta"
	c.XLabel = "päivä"
	c.UsageLabel = "kWh"
	c.CostLabel = "euroa"
}

// HistoryConfig controls the monthly summary history database.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	cfg := Config{
		Files: FilesConfig{
			UsageReport:   "report.csv",
			UsageEncoding: "UTF-16LE",
			PriceChart:    "chart.csv",
			PriceEncoding: "UTF-8",
			Chart:         "kulutus.png",
		},
		Contract: ContractConfig{
			MarginCents:    0.37,
			BasePriceCents: 350.0,
		},
		Chart: ChartConfig{
			WidthPx:  1920,
			HeightPx: 1080,
			DPI:      100,
		},
	}
	cfg.Chart.UseEnglish()
	return cfg
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "spotbill")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "spotbill")
}

// Path returns the full path to the default config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// HistoryPath returns the history database path, defaulting to the XDG cache dir.
func (c Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "spotbill", "history.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "spotbill", "history.db")
}

// Tariff returns the contract terms as a Tariff.
func (c Config) Tariff() Tariff {
	return Tariff{
		MarginCents:    c.Contract.MarginCents,
		BasePriceCents: c.Contract.BasePriceCents,
	}
}

// Validate reports settings that would produce a meaningless report.
func (c Config) Validate() error {
	var errs []error
	if c.Contract.MarginCents < 0 {
		errs = append(errs, fmt.Errorf("contract.margin_cents must not be negative, got %v", c.Contract.MarginCents))
	}
	if c.Contract.BasePriceCents < 0 {
		errs = append(errs, fmt.Errorf("contract.base_price_cents must not be negative, got %v", c.Contract.BasePriceCents))
	}
	if c.Chart.WidthPx <= 0 || c.Chart.HeightPx <= 0 {
		errs = append(errs, fmt.Errorf("chart size must be positive, got %dx%d", c.Chart.WidthPx, c.Chart.HeightPx))
	}
	if c.Chart.DPI <= 0 {
		errs = append(errs, fmt.Errorf("chart.dpi must be positive, got %d", c.Chart.DPI))
	}
	if _, err := template.New("title").Parse(c.Chart.Title); err != nil {
		errs = append(errs, fmt.Errorf("chart.title: %w", err))
	}
	if c.Files.UsageReport == "" || c.Files.PriceChart == "" {
		errs = append(errs, errors.New("files.usage_report and files.price_chart are required"))
	}
	return errors.Join(errs...)
}

// Load reads the config file at path, returning defaults if it doesn't exist.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user's flag or XDG dir
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to path, creating its directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // see Load
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
