package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/spotbill/internal/cli"
	"github.com/theirongolddev/spotbill/internal/store"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var flagDelete bool

var historyCmd = &cobra.Command{
	Use:   "history [YYYY-MM]",
	Short: "List stored monthly summaries, or show one stored month by day",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagDelete, "delete", false, "Remove the given month from history")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	h, err := store.Open(cfg.HistoryPath())
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()

	if len(args) == 1 {
		month, err := time.Parse("2006-01", args[0])
		if err != nil {
			return fmt.Errorf("invalid month %q, want YYYY-MM", args[0])
		}
		if flagDelete {
			if err := h.Delete(month); err != nil {
				return err
			}
			log.Info().Str("month", args[0]).Msg("removed from history")
			return nil
		}
		return showStoredMonth(h, month)
	}
	if flagDelete {
		return errors.New("--delete needs a month")
	}

	records, err := h.List()
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("\n  No stored months.")
		fmt.Println("  Run `spotbill --save` or set history.enabled in the config.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("HISTORY"))
	fmt.Println()

	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		s := rec.Summary
		delta := ""
		// records are newest first, so the previous month is the next entry
		if i+1 < len(records) && records[i+1].Summary.Month.Equal(s.Month.AddDate(0, -1, 0)) {
			delta = cli.FormatDelta(s.TotalCost, records[i+1].Summary.TotalCost)
		}
		rows = append(rows, []string{
			s.Month.Format("2006-01"),
			fmt.Sprintf("%d", s.Days),
			cli.FormatPrice(s.TotalUsage),
			cli.FormatPrice(s.AveragePrice),
			cli.FormatPrice(s.TotalCost),
			delta,
			humanize.Time(rec.GeneratedAt),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Days", "kWh", "c/kWh", "Total €", "Change", "Saved"},
		Rows:    rows,
	}))
	count, err := h.Count()
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	fmt.Println(cli.RenderNote(fmt.Sprintf("%d months in %s", count, cfg.HistoryPath()), false))
	fmt.Println()
	return nil
}

// showStoredMonth prints the days saved for month without reading the inputs.
func showStoredMonth(h *store.History, month time.Time) error {
	rec, err := h.Get(month)
	if err != nil {
		return err
	}
	days, err := h.Days(month)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("STORED  %s", month.Format("January 2006"))))
	fmt.Println()
	printDays(days, rec.Summary)
	fmt.Println(cli.RenderNote("saved "+humanize.Time(rec.GeneratedAt)+" from "+rec.Source.Path, false))
	fmt.Println()
	return nil
}
