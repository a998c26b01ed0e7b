// Package cmd implements the spotbill CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/spotbill/internal/cli"
	"github.com/theirongolddev/spotbill/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := configPath()
	fmt.Printf("  Config file: %s\n", path)
	if config.Exists(path) {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Files]")
	fmt.Printf("    Usage report: %s (%s)\n", cfg.Files.UsageReport, cfg.Files.UsageEncoding)
	fmt.Printf("    Price chart:  %s (%s)\n", cfg.Files.PriceChart, orDefault(cfg.Files.PriceEncoding, "as-is"))
	fmt.Printf("    Chart image:  %s\n", cfg.Files.Chart)
	fmt.Println()

	fmt.Println("  [Contract]")
	fmt.Printf("    Margin:     %s\n", cli.FormatCents(cfg.Contract.MarginCents))
	fmt.Printf("    Base price: %s / month\n", cli.FormatEuros(config.ToEuros(cfg.Contract.BasePriceCents)))
	fmt.Println()

	fmt.Println("  [Chart]")
	fmt.Printf("    Size:  %dx%d px at %d DPI\n", cfg.Chart.WidthPx, cfg.Chart.HeightPx, cfg.Chart.DPI)
	fmt.Printf("    Title: %s\n", cfg.Chart.Title)
	fmt.Printf("    Labels: %s / %s / %s\n", cfg.Chart.XLabel, cfg.Chart.UsageLabel, cfg.Chart.CostLabel)
	fmt.Println()

	fmt.Println("  [History]")
	if cfg.History.Enabled {
		fmt.Printf("    Enabled: %s\n", cfg.HistoryPath())
	} else {
		fmt.Println("    Disabled (use --save for a single run)")
	}
	fmt.Println()

	fmt.Println("  Run `spotbill setup` to reconfigure.")
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
