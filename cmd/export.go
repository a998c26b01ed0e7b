package cmd

import (
	"fmt"

	"github.com/theirongolddev/spotbill/internal/cli"
	"github.com/theirongolddev/spotbill/internal/export"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	flagExportFormat string
	flagExportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the monthly statement as PDF or XLSX",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "pdf", "Statement format: pdf or xlsx")
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output file (default statement-YYYY-MM.<format>)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(flagExportFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	report, err := buildReport(cfg)
	if err != nil {
		return err
	}

	title, err := cli.FormatTitle(cfg.Chart.Title, report.Summary)
	if err != nil {
		return err
	}

	out := flagExportOut
	if out == "" {
		out = fmt.Sprintf("statement-%s.%s", report.Summary.Month.Format("2006-01"), format)
	}

	n, err := export.Write(out, format, export.Statement{
		Title:   title,
		Tariff:  cfg.Tariff(),
		Summary: report.Summary,
		Days:    report.Days,
	})
	if err != nil {
		return err
	}

	log.Info().Str("path", out).Str("size", humanize.Bytes(uint64(n))).Msg("statement written")
	return recordMonth(cfg, report)
}
