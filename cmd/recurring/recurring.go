// Package recurring implements the recurring-purchase detection command.
package recurring

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spendscope/spendscope/cmd/root"
	"github.com/spendscope/spendscope/internal/common"
	"github.com/spendscope/spendscope/internal/features"
)

var (
	minOccurrences    int
	maxAmountVariance float64
	maxDaysVariance   float64
	global            bool

	// Cmd is the recurring command.
	Cmd = &cobra.Command{
		Use:   "recurring",
		Short: "Detect recurring purchases in a purchase CSV file",
		Long: `Recurring groups purchases by owner and normalized description and
flags groups that repeat with near-constant amount and cadence. Candidate
groups are printed; with --output the flagged records are written as CSV.`,
		Run: run,
	}
)

func init() {
	Cmd.Flags().IntVar(&minOccurrences, "min-occurrences", 0, "Minimum repetitions for a recurring group (default from config)")
	Cmd.Flags().Float64Var(&maxAmountVariance, "max-amount-variance", 0, "Amount coefficient-of-variation ceiling (default from config)")
	Cmd.Flags().Float64Var(&maxDaysVariance, "max-days-variance", 0, "Day-gap standard-deviation ceiling (default from config)")
	Cmd.Flags().BoolVar(&global, "global", false, "Compare purchases across all owners instead of per owner")
}

func detectorOptions(cmd *cobra.Command) features.DetectorOptions {
	opts := root.Cfg.DetectorOptions()
	if cmd.Flags().Changed("min-occurrences") {
		opts.MinOccurrences = minOccurrences
	}
	if cmd.Flags().Changed("max-amount-variance") {
		opts.MaxAmountVariance = maxAmountVariance
	}
	if cmd.Flags().Changed("max-days-variance") {
		opts.MaxDaysVariance = maxDaysVariance
	}
	if global {
		opts.GroupByOwner = false
	}
	return opts
}

func run(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Input == "" {
		root.Log.Fatal("--input is required")
	}

	purchases, err := common.ReadPurchasesFromCSV(root.SharedFlags.Input)
	if err != nil {
		root.Log.Fatalf("Failed to read purchases: %v", err)
	}

	opts := detectorOptions(cmd)
	summaries, err := features.SummarizeGroups(purchases, opts)
	if err != nil {
		root.Log.Fatalf("Recurring-purchase detection failed: %v", err)
	}

	if len(summaries) == 0 {
		fmt.Println("No candidate recurring groups found")
	}
	for _, s := range summaries {
		marker := " "
		if s.Recurring {
			marker = "*"
		}
		owner := s.Owner
		if owner == "" {
			owner = "-"
		}
		fmt.Printf("%s %-12s %-32s x%-3d avg %10s  amount-cv %.3f  gap-sd %.1fd\n",
			marker, owner, s.Description, s.Count, s.AverageAmount.StringFixed(2),
			s.AmountVariation, s.DayGapDeviation)
	}

	if root.SharedFlags.Output != "" {
		flagged, err := features.IdentifyRecurring(purchases, opts)
		if err != nil {
			root.Log.Fatalf("Recurring-purchase detection failed: %v", err)
		}
		if err := common.WritePurchasesToCSV(flagged, root.SharedFlags.Output); err != nil {
			root.Log.Fatalf("Failed to write output: %v", err)
		}
	}
}
