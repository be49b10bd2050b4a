// Package report computes aggregate spending summaries from analyzed
// purchase data and renders them for output.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendscope/spendscope/internal/dateutils"
	"github.com/spendscope/spendscope/internal/models"
)

// Period selects the bucketing granularity for spending over time.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Range bounds an analysis window. Zero values leave the corresponding side
// unbounded.
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// CategoryTotal is one row of a spending-by-category summary.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// TimeBucket is one row of a spending-over-time summary.
type TimeBucket struct {
	Start    time.Time       `json:"period"`
	Category string          `json:"category,omitempty"`
	Total    decimal.Decimal `json:"total"`
}

// SpendingByCategory sums purchase amounts per effective category within the
// given range, largest total first.
func SpendingByCategory(purchases []models.Purchase, r Range) []CategoryTotal {
	totals := make(map[string]*CategoryTotal)
	for _, p := range purchases {
		if !r.contains(p.Date) {
			continue
		}
		category := p.EffectiveCategory()
		row, ok := totals[category]
		if !ok {
			row = &CategoryTotal{Category: category, Total: decimal.Zero}
			totals[category] = row
		}
		row.Total = row.Total.Add(p.Amount)
		row.Count++
	}

	result := make([]CategoryTotal, 0, len(totals))
	for _, row := range totals {
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Total.Equal(result[j].Total) {
			return result[i].Total.GreaterThan(result[j].Total)
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// SpendingOverTime sums purchase amounts per time bucket within the given
// range, optionally broken down per category. Buckets are keyed by their
// start (midnight of the day, the Monday of the week, or the first of the
// month) and returned in chronological order.
func SpendingOverTime(purchases []models.Purchase, period Period, r Range, byCategory bool) ([]TimeBucket, error) {
	bucketStart, err := bucketFunc(period)
	if err != nil {
		return nil, err
	}

	type bucketKey struct {
		start    time.Time
		category string
	}
	totals := make(map[bucketKey]decimal.Decimal)
	for _, p := range purchases {
		if !r.contains(p.Date) {
			continue
		}
		key := bucketKey{start: bucketStart(p.Date)}
		if byCategory {
			key.category = p.EffectiveCategory()
		}
		totals[key] = totals[key].Add(p.Amount)
	}

	result := make([]TimeBucket, 0, len(totals))
	for key, total := range totals {
		result = append(result, TimeBucket{Start: key.start, Category: key.category, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Start.Equal(result[j].Start) {
			return result[i].Start.Before(result[j].Start)
		}
		return result[i].Category < result[j].Category
	})
	return result, nil
}

func bucketFunc(period Period) (func(time.Time) time.Time, error) {
	switch period {
	case PeriodDaily:
		return dateutils.StartOfDay, nil
	case PeriodWeekly:
		return dateutils.StartOfWeek, nil
	case PeriodMonthly:
		return dateutils.StartOfMonth, nil
	default:
		return nil, fmt.Errorf("unsupported report period: %s", period)
	}
}
