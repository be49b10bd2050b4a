// Package categorize implements the keyword categorization command.
package categorize

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/spendscope/spendscope/cmd/root"
	"github.com/spendscope/spendscope/internal/common"
	"github.com/spendscope/spendscope/internal/features"
	"github.com/spendscope/spendscope/internal/logging"
	"github.com/spendscope/spendscope/internal/store"
)

var (
	categoriesFile string

	// Cmd is the categorize command.
	Cmd = &cobra.Command{
		Use:   "categorize",
		Short: "Assign keyword-derived categories to purchases",
		Long: `Categorize matches each purchase description against the ordered
category keyword rules and assigns the derived category. With --output the
categorized records are written as CSV; otherwise per-category counts are
printed.`,
		Run: run,
	}
)

func init() {
	Cmd.Flags().StringVarP(&categoriesFile, "categories", "c", "", "Categories YAML file (default from config)")
}

func run(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Input == "" {
		root.Log.Fatal("--input is required")
	}

	purchases, err := common.ReadPurchasesFromCSV(root.SharedFlags.Input)
	if err != nil {
		root.Log.Fatalf("Failed to read purchases: %v", err)
	}

	file := categoriesFile
	if file == "" {
		file = root.Cfg.Categories.File
	}
	catStore := store.NewCategoryStore(file, logging.NewLogrusAdapterFromLogger(root.Log))
	categories, err := catStore.LoadCategories()
	if err != nil {
		root.Log.Fatalf("Failed to load categories: %v", err)
	}
	if len(categories) == 0 {
		root.Log.Warn("No category rules loaded; everything will be uncategorized")
	}

	purchases = features.CategorizeByKeywords(purchases, categories)

	if root.SharedFlags.Output != "" {
		if err := common.WritePurchasesToCSV(purchases, root.SharedFlags.Output); err != nil {
			root.Log.Fatalf("Failed to write output: %v", err)
		}
		return
	}

	counts := make(map[string]int)
	for _, p := range purchases {
		counts[p.DerivedCategory]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%-24s %d\n", name, counts[name])
	}
}
