// Package models provides the data structures used throughout the application.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryUncategorized is the sentinel category for purchases that no
// keyword rule matched.
const CategoryUncategorized = "Uncategorized"

// Purchase represents a single recorded purchase together with the fields
// the analysis pipeline derives from it. The derived fields are recomputed
// on every run and are never treated as authoritative input.
type Purchase struct {
	ID          string          // stable identifier, assigned at import when missing
	Owner       string          // grouping key, typically the owning user; empty means global
	Description string          // free-text merchant or purchase description
	Amount      decimal.Decimal // signed monetary value
	Date        time.Time       // purchase timestamp, at least day resolution
	Category    string          // user-assigned category, may be empty

	// Recurring-purchase detection output.
	IsRecurring bool

	// Keyword categorization output.
	DerivedCategory string

	// Purchase-frequency output. Fractional days since the previous purchase
	// by the same owner; -1 when no prior purchase exists.
	DaysSinceLast float64

	// Calendar features derived from Date.
	Year       int
	Month      int
	Day        int
	DayOfWeek  int // 0=Monday .. 6=Sunday
	Weekend    bool
	Hour       int
	Quarter    int
	WeekOfYear int
}

// NewPurchase creates a Purchase with the sentinel defaults in place.
func NewPurchase() Purchase {
	return Purchase{
		DerivedCategory: CategoryUncategorized,
	}
}

// AmountFloat returns the amount as a float64 for statistical computations.
// Monetary arithmetic should stay on the decimal type; this accessor exists
// for variance math where relative precision is sufficient.
func (p *Purchase) AmountFloat() float64 {
	f, _ := p.Amount.Float64()
	return f
}

// EffectiveCategory returns the user-assigned category when present and the
// derived category otherwise.
func (p *Purchase) EffectiveCategory() string {
	if p.Category != "" {
		return p.Category
	}
	if p.DerivedCategory != "" {
		return p.DerivedCategory
	}
	return CategoryUncategorized
}

// ParseAmount parses a string amount to decimal.Decimal, tolerating common
// formatting artifacts such as currency symbols and thousand separators.
func ParseAmount(amountStr string) decimal.Decimal {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, "'", "")
	for _, symbol := range []string{"CHF", "EUR", "USD", "$", "€"} {
		amount = strings.ReplaceAll(amount, symbol, "")
	}
	// Replace comma with dot for decimal separator
	amount = strings.ReplaceAll(amount, ",", ".")

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}
	return dec
}
