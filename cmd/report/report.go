// Package report implements the spending report command.
package report

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/spendscope/spendscope/cmd/root"
	"github.com/spendscope/spendscope/internal/common"
	"github.com/spendscope/spendscope/internal/dateutils"
	"github.com/spendscope/spendscope/internal/logging"
	"github.com/spendscope/spendscope/internal/report"
)

var (
	period     string
	format     string
	byCategory bool
	fromStr    string
	toStr      string

	// Cmd is the report command.
	Cmd = &cobra.Command{
		Use:   "report",
		Short: "Produce spending summaries from a purchase CSV file",
		Long: `Report sums purchase amounts by category and over time. The time
breakdown supports daily, weekly and monthly buckets and an optional
per-category split. Output is text or JSON, to stdout or --output.`,
		Run: run,
	}
)

func init() {
	Cmd.Flags().StringVar(&period, "period", "", "Bucket granularity: daily, weekly or monthly (default from config)")
	Cmd.Flags().StringVar(&format, "format", "", "Output format: text or json (default from config)")
	Cmd.Flags().BoolVar(&byCategory, "by-category", false, "Split the time breakdown per category")
	Cmd.Flags().StringVar(&fromStr, "from", "", "Start of the analysis window (e.g. 2026-01-01)")
	Cmd.Flags().StringVar(&toStr, "to", "", "End of the analysis window (e.g. 2026-06-30)")
}

func parseRange() (report.Range, error) {
	var r report.Range
	var err error
	if fromStr != "" {
		if r.Start, err = dateutils.ParseDate(fromStr); err != nil {
			return r, fmt.Errorf("invalid --from value: %w", err)
		}
	}
	if toStr != "" {
		if r.End, err = dateutils.ParseDate(toStr); err != nil {
			return r, fmt.Errorf("invalid --to value: %w", err)
		}
	}
	return r, nil
}

func run(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Input == "" {
		root.Log.Fatal("--input is required")
	}

	purchases, err := common.ReadPurchasesFromCSV(root.SharedFlags.Input)
	if err != nil {
		root.Log.Fatalf("Failed to read purchases: %v", err)
	}

	window, err := parseRange()
	if err != nil {
		root.Log.Fatalf("%v", err)
	}

	reportPeriod := report.Period(period)
	if period == "" {
		reportPeriod = report.Period(root.Cfg.Report.Period)
	}
	outputFormat := format
	if outputFormat == "" {
		outputFormat = root.Cfg.Report.Format
	}

	timeline, err := report.SpendingOverTime(purchases, reportPeriod, window, byCategory)
	if err != nil {
		root.Log.Fatalf("Failed to compute spending over time: %v", err)
	}

	spendingReport := &report.SpendingReport{
		GeneratedAt: time.Now(),
		Categories:  report.SpendingByCategory(purchases, window),
		Timeline:    timeline,
	}

	generator := report.NewGenerator(logging.NewLogrusAdapterFromLogger(root.Log))
	rendered, err := generator.Generate(spendingReport, outputFormat)
	if err != nil {
		root.Log.Fatalf("Failed to render report: %v", err)
	}

	if root.SharedFlags.Output != "" {
		if err := os.WriteFile(root.SharedFlags.Output, rendered, 0o644); err != nil {
			root.Log.Fatalf("Failed to write report: %v", err)
		}
		return
	}
	fmt.Print(string(rendered))
}
