// Package features implements the purchase feature-engineering pipeline:
// calendar feature extraction, purchase-frequency calculation,
// recurring-purchase detection and keyword categorization.
//
// Every function is a pure batch transformation: it validates its whole
// input first, then returns a newly allocated augmented slice without
// mutating the records it was given. Callers processing independent owners
// may invoke them concurrently.
package features

import (
	"fmt"
	"time"

	"github.com/spendscope/spendscope/internal/models"
	"github.com/spendscope/spendscope/internal/pipelineerror"
)

// ExtractTimeFeatures returns a copy of the purchases augmented with
// calendar attributes derived from each purchase date: year, month, day,
// day of week (0=Monday..6=Sunday), weekend flag, hour, quarter and ISO
// week number.
func ExtractTimeFeatures(purchases []models.Purchase) ([]models.Purchase, error) {
	if err := requireDates(purchases); err != nil {
		return nil, err
	}

	result := make([]models.Purchase, len(purchases))
	for i, p := range purchases {
		p.Year = p.Date.Year()
		p.Month = int(p.Date.Month())
		p.Day = p.Date.Day()
		p.DayOfWeek = mondayIndexed(p.Date.Weekday())
		p.Weekend = p.DayOfWeek >= 5
		p.Hour = p.Date.Hour()
		p.Quarter = (int(p.Date.Month())-1)/3 + 1
		_, p.WeekOfYear = p.Date.ISOWeek()
		result[i] = p
	}
	return result, nil
}

// requireDates rejects the whole batch when any purchase carries no
// timestamp, before any augmentation happens.
func requireDates(purchases []models.Purchase) error {
	for i, p := range purchases {
		if p.Date.IsZero() {
			return &pipelineerror.InvalidInputError{
				Field:  "date",
				Reason: fmt.Sprintf("purchase at index %d has no timestamp", i),
			}
		}
	}
	return nil
}

// mondayIndexed converts Go's Sunday-based weekday to the 0=Monday..6=Sunday
// numbering used by the calendar features.
func mondayIndexed(d time.Weekday) int {
	return (int(d) + 6) % 7
}
