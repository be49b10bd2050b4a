// Package analyze implements the command running the full analysis pipeline.
package analyze

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spendscope/spendscope/cmd/root"
	"github.com/spendscope/spendscope/internal/common"
	"github.com/spendscope/spendscope/internal/features"
	"github.com/spendscope/spendscope/internal/logging"
	"github.com/spendscope/spendscope/internal/models"
	"github.com/spendscope/spendscope/internal/store"
)

var (
	minOccurrences    int
	maxAmountVariance float64
	maxDaysVariance   float64
	global            bool
	categoriesFile    string

	// Cmd is the analyze command.
	Cmd = &cobra.Command{
		Use:   "analyze",
		Short: "Run the full analysis pipeline over a purchase CSV file",
		Long: `Analyze reads purchase records from the input CSV, flags recurring
purchases, assigns keyword-derived categories, computes calendar features and
purchase gaps, and writes the augmented records to the output CSV.`,
		Run: run,
	}
)

func init() {
	Cmd.Flags().IntVar(&minOccurrences, "min-occurrences", 0, "Minimum repetitions for a recurring group (default from config)")
	Cmd.Flags().Float64Var(&maxAmountVariance, "max-amount-variance", 0, "Amount coefficient-of-variation ceiling (default from config)")
	Cmd.Flags().Float64Var(&maxDaysVariance, "max-days-variance", 0, "Day-gap standard-deviation ceiling (default from config)")
	Cmd.Flags().BoolVar(&global, "global", false, "Compare purchases across all owners instead of per owner")
	Cmd.Flags().StringVarP(&categoriesFile, "categories", "c", "", "Categories YAML file (default from config)")
}

// detectorOptions merges configuration defaults with explicit flag overrides.
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

// loadCategories resolves the categories file and loads the keyword rules.
func loadCategories() ([]models.CategoryConfig, error) {
	file := categoriesFile
	if file == "" {
		file = root.Cfg.Categories.File
	}
	catStore := store.NewCategoryStore(file, logging.NewLogrusAdapterFromLogger(root.Log))
	return catStore.LoadCategories()
}

func run(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Input == "" || root.SharedFlags.Output == "" {
		root.Log.Fatal("Both --input and --output are required")
	}

	purchases, err := common.ReadPurchasesFromCSV(root.SharedFlags.Input)
	if err != nil {
		root.Log.Fatalf("Failed to read purchases: %v", err)
	}

	categories, err := loadCategories()
	if err != nil {
		root.Log.Fatalf("Failed to load categories: %v", err)
	}

	opts := detectorOptions(cmd)
	purchases, err = features.IdentifyRecurring(purchases, opts)
	if err != nil {
		root.Log.Fatalf("Recurring-purchase detection failed: %v", err)
	}

	purchases = features.CategorizeByKeywords(purchases, categories)

	purchases, err = features.ExtractTimeFeatures(purchases)
	if err != nil {
		root.Log.Fatalf("Time-feature extraction failed: %v", err)
	}

	purchases, err = features.CalculateFrequency(purchases, opts.GroupByOwner)
	if err != nil {
		root.Log.Fatalf("Frequency calculation failed: %v", err)
	}

	recurring := 0
	categorized := 0
	for _, p := range purchases {
		if p.IsRecurring {
			recurring++
		}
		if p.DerivedCategory != models.CategoryUncategorized {
			categorized++
		}
	}
	root.Log.WithFields(logrus.Fields{
		"purchases":   len(purchases),
		"recurring":   recurring,
		"categorized": categorized,
	}).Info("Analysis complete")

	if err := common.WritePurchasesToCSV(purchases, root.SharedFlags.Output); err != nil {
		root.Log.Fatalf("Failed to write output: %v", err)
	}
}
