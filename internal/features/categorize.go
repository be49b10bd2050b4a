package features

import (
	"strings"

	"github.com/spendscope/spendscope/internal/models"
)

// CategorizeByKeywords assigns a derived category to each purchase by
// testing its description against the ordered category configuration.
// Matching is a case-insensitive substring test; later categories override
// earlier matches, so specific categories listed after broad catch-alls win.
// Purchases matching no category keep the Uncategorized sentinel. No other
// field is touched.
func CategorizeByKeywords(purchases []models.Purchase, categories []models.CategoryConfig) []models.Purchase {
	result := make([]models.Purchase, len(purchases))
	for i, p := range purchases {
		p.DerivedCategory = models.CategoryUncategorized
		text := strings.ToLower(p.Description)

		for _, category := range categories {
			for _, keyword := range category.Keywords {
				if keyword == "" {
					continue
				}
				if strings.Contains(text, strings.ToLower(keyword)) {
					p.DerivedCategory = category.Name
					break // later categories may still override
				}
			}
		}
		result[i] = p
	}
	return result
}
