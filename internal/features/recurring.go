package features

import (
	"math"
	"sort"

	"github.com/spendscope/spendscope/internal/models"
	"github.com/spendscope/spendscope/internal/pipelineerror"
	"github.com/spendscope/spendscope/internal/textutils"
)

// DetectorOptions configures the recurring-purchase detector.
type DetectorOptions struct {
	// MinOccurrences is the minimum number of repetitions required before a
	// group can be considered recurring. Must be at least 2.
	MinOccurrences int

	// MaxAmountVariance is the ceiling on the amount coefficient of
	// variation (population standard deviation divided by mean), as a
	// fraction. 0.1 allows 10% relative dispersion.
	MaxAmountVariance float64

	// MaxDaysVariance is the ceiling on the population standard deviation of
	// whole-day gaps between consecutive occurrences, in days.
	MaxDaysVariance float64

	// GroupByOwner scopes comparisons to each owner. When false, purchases
	// are compared globally by normalized description alone.
	GroupByOwner bool
}

// DefaultDetectorOptions returns the documented detector defaults.
func DefaultDetectorOptions() DetectorOptions {
	return DetectorOptions{
		MinOccurrences:    3,
		MaxAmountVariance: 0.1,
		MaxDaysVariance:   5,
		GroupByOwner:      true,
	}
}

func (o DetectorOptions) validate() error {
	if o.MinOccurrences < 2 {
		return &pipelineerror.ConfigError{
			Param:  "min_occurrences",
			Value:  o.MinOccurrences,
			Reason: "must be at least 2 to establish a pattern",
		}
	}
	if o.MaxAmountVariance < 0 {
		return &pipelineerror.ConfigError{
			Param:  "max_amount_variance",
			Value:  o.MaxAmountVariance,
			Reason: "must not be negative",
		}
	}
	if o.MaxDaysVariance < 0 {
		return &pipelineerror.ConfigError{
			Param:  "max_days_variance",
			Value:  o.MaxDaysVariance,
			Reason: "must not be negative",
		}
	}
	return nil
}

// groupKey identifies a recurring-purchase candidate group. Purchases are
// partitioned by owner (optional) and normalized description, so each
// purchase belongs to exactly one group per detection pass.
type groupKey struct {
	owner string
	desc  string
}

func keyFor(p models.Purchase, opts DetectorOptions) groupKey {
	key := groupKey{desc: textutils.NormalizeDescription(p.Description)}
	if opts.GroupByOwner {
		key.owner = p.Owner
	}
	return key
}

// IdentifyRecurring flags purchases that represent the same recurring
// obligation despite natural variation in exact amount and date.
//
// Purchases are grouped by (owner, normalized description). Groups with
// fewer than MinOccurrences members are discarded. Each surviving group is
// sorted by date; it is recurring when the amount coefficient of variation
// is at most MaxAmountVariance and the standard deviation of whole-day gaps
// between consecutive occurrences is at most MaxDaysVariance, both bounds
// inclusive. The decision is computed once per group and projected onto all
// of its members, so a group is flagged entirely or not at all.
//
// The returned slice preserves input order. IsRecurring is owned by the
// detector: it is set or cleared for every record processed, regardless of
// any value the caller left in it.
func IdentifyRecurring(purchases []models.Purchase, opts DetectorOptions) ([]models.Purchase, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := requireDates(purchases); err != nil {
		return nil, err
	}

	groups := make(map[groupKey][]models.Purchase)
	for _, p := range purchases {
		key := keyFor(p, opts)
		groups[key] = append(groups[key], p)
	}

	decisions := make(map[groupKey]bool, len(groups))
	for key, members := range groups {
		if len(members) < opts.MinOccurrences {
			continue
		}
		stats := evaluateGroup(members)
		decisions[key] = stats.passes(opts)
	}

	result := make([]models.Purchase, len(purchases))
	for i, p := range purchases {
		p.IsRecurring = decisions[keyFor(p, opts)]
		result[i] = p
	}
	return result, nil
}

// groupStats holds the dispersion measures computed for one candidate group.
type groupStats struct {
	amountVariation float64 // coefficient of variation of amounts
	zeroMean        bool    // amounts sum to zero, variation is undefined
	dayGapDeviation float64 // population stddev of whole-day gaps
}

// passes applies the recurrence test. A zero mean amount makes the relative
// dispersion undefined and is treated as failing the amount test.
func (s groupStats) passes(opts DetectorOptions) bool {
	if s.zeroMean {
		return false
	}
	return s.amountVariation <= opts.MaxAmountVariance &&
		s.dayGapDeviation <= opts.MaxDaysVariance
}

// evaluateGroup computes amount and timing dispersion for one group. Members
// are sorted by date before gap computation; the input slice is not touched.
func evaluateGroup(members []models.Purchase) groupStats {
	sorted := make([]models.Purchase, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var stats groupStats

	amounts := make([]float64, len(sorted))
	for i := range sorted {
		amounts[i] = sorted[i].AmountFloat()
	}
	// A singleton has no dispersion. Unreachable through IdentifyRecurring
	// since the occurrence floor is at least 2.
	if len(amounts) > 1 {
		m := mean(amounts)
		if m == 0 {
			stats.zeroMean = true
		} else {
			stats.amountVariation = popStdDev(amounts, m) / m
		}
	}

	if len(sorted) > 2 {
		gaps := make([]float64, 0, len(sorted)-1)
		for i := 1; i < len(sorted); i++ {
			days := int(sorted[i].Date.Sub(sorted[i-1].Date).Hours() / 24)
			gaps = append(gaps, float64(days))
		}
		stats.dayGapDeviation = popStdDev(gaps, mean(gaps))
	}
	// With two members there is a single gap, which has no dispersion.

	return stats
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// popStdDev computes the population standard deviation around a
// pre-computed mean.
func popStdDev(values []float64, mean float64) float64 {
	sumSquares := 0.0
	for _, v := range values {
		d := v - mean
		sumSquares += d * d
	}
	return math.Sqrt(sumSquares / float64(len(values)))
}
