package features

import (
	"sort"

	"github.com/spendscope/spendscope/internal/models"
)

// NoPriorPurchase is the DaysSinceLast sentinel for the earliest purchase of
// each owner.
const NoPriorPurchase = -1

const secondsPerDay = 86400

// CalculateFrequency returns the purchases sorted by date ascending, each
// augmented with the elapsed time, in fractional days, since the previous
// purchase by the same owner. When groupByOwner is false the gap is taken
// against the previous purchase overall. The sort is stable: purchases with
// equal timestamps keep their relative input order. The first purchase of
// each owner receives the NoPriorPurchase sentinel.
func CalculateFrequency(purchases []models.Purchase, groupByOwner bool) ([]models.Purchase, error) {
	if err := requireDates(purchases); err != nil {
		return nil, err
	}

	result := make([]models.Purchase, len(purchases))
	copy(result, purchases)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	previous := make(map[string]int) // owner key -> index of previous purchase
	for i := range result {
		key := ""
		if groupByOwner {
			key = result[i].Owner
		}
		if j, ok := previous[key]; ok {
			delta := result[i].Date.Sub(result[j].Date)
			result[i].DaysSinceLast = delta.Seconds() / secondsPerDay
		} else {
			result[i].DaysSinceLast = NoPriorPurchase
		}
		previous[key] = i
	}
	return result, nil
}
