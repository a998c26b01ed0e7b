package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/spotbill/internal/config"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// setupValues holds the wizard's string inputs before they are parsed.
type setupValues struct {
	usage     string
	prices    string
	chart     string
	margin    string
	basePrice string
	language  string
	history   bool
}

func runSetup(_ *cobra.Command, _ []string) error {
	path := configPath()

	// Load existing config or defaults
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	v := setupValues{
		usage:     cfg.Files.UsageReport,
		prices:    cfg.Files.PriceChart,
		chart:     cfg.Files.Chart,
		margin:    strconv.FormatFloat(cfg.Contract.MarginCents, 'f', -1, 64),
		basePrice: strconv.FormatFloat(cfg.Contract.BasePriceCents, 'f', -1, 64),
		language:  "keep",
		history:   cfg.History.Enabled,
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Usage report").
				Description("Hourly meter report exported from the network operator (UTF-16LE CSV).").
				Value(&v.usage).
				Validate(required),
			huh.NewInput().
				Title("Price chart").
				Description("Hourly spot prices, c/kWh.").
				Value(&v.prices).
				Validate(required),
			huh.NewInput().
				Title("Chart image").
				Value(&v.chart).
				Validate(required),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Margin (c/kWh)").
				Description("Added to the spot price of every kWh.").
				Value(&v.margin).
				Validate(nonNegative),
			huh.NewInput().
				Title("Monthly base price (cents)").
				Value(&v.basePrice).
				Validate(nonNegative),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Chart language").
				Description("Title, legends and axis labels.").
				Options(
					huh.NewOption("Keep current", "keep"),
					huh.NewOption("English", "en"),
					huh.NewOption("Finnish", "fi"),
				).
				Value(&v.language),
			huh.NewConfirm().
				Title("Keep a history of monthly summaries?").
				Value(&v.history),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return err
	}

	cfg.Files.UsageReport = strings.TrimSpace(v.usage)
	cfg.Files.PriceChart = strings.TrimSpace(v.prices)
	cfg.Files.Chart = strings.TrimSpace(v.chart)
	if err := v.applyContract(&cfg); err != nil {
		return err
	}
	switch v.language {
	case "en":
		cfg.Chart.UseEnglish()
	case "fi":
		cfg.Chart.UseFinnish()
	}
	cfg.History.Enabled = v.history

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Save
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", path)
	fmt.Println("  Run `spotbill setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

// parseAmount accepts a decimal point or a decimal comma.
func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
}

func nonNegative(s string) error {
	v, err := parseAmount(s)
	if err != nil {
		return errors.New("not a number")
	}
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

// applyContract parses the margin and base price answers into cfg.
func (v setupValues) applyContract(cfg *config.Config) error {
	margin, err := parseAmount(v.margin)
	if err != nil {
		return fmt.Errorf("margin: %w", err)
	}
	base, err := parseAmount(v.basePrice)
	if err != nil {
		return fmt.Errorf("base price: %w", err)
	}
	cfg.Contract.MarginCents = margin
	cfg.Contract.BasePriceCents = base
	return nil
}
