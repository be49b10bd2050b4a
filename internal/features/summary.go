package features

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendscope/spendscope/internal/models"
)

// GroupSummary describes one candidate recurring group: purchases sharing an
// owner and a normalized description, with the dispersion measures the
// detector evaluated.
type GroupSummary struct {
	Owner           string          `json:"owner,omitempty"`
	Description     string          `json:"description"`
	Count           int             `json:"count"`
	AverageAmount   decimal.Decimal `json:"averageAmount"`
	AmountVariation float64         `json:"amountVariation"`
	DayGapDeviation float64         `json:"dayGapDeviation"`
	FirstDate       time.Time       `json:"firstDate"`
	LastDate        time.Time       `json:"lastDate"`
	Recurring       bool            `json:"recurring"`
}

// SummarizeGroups evaluates the same partition as IdentifyRecurring and
// returns one summary per group meeting the occurrence floor, recurring
// groups first, larger groups before smaller ones.
func SummarizeGroups(purchases []models.Purchase, opts DetectorOptions) ([]GroupSummary, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := requireDates(purchases); err != nil {
		return nil, err
	}

	groups := make(map[groupKey][]models.Purchase)
	for _, p := range purchases {
		groups[keyFor(p, opts)] = append(groups[keyFor(p, opts)], p)
	}

	var summaries []GroupSummary
	for key, members := range groups {
		if len(members) < opts.MinOccurrences {
			continue
		}

		stats := evaluateGroup(members)

		total := decimal.Zero
		first, last := members[0].Date, members[0].Date
		for _, p := range members {
			total = total.Add(p.Amount)
			if p.Date.Before(first) {
				first = p.Date
			}
			if p.Date.After(last) {
				last = p.Date
			}
		}

		summaries = append(summaries, GroupSummary{
			Owner:           key.owner,
			Description:     key.desc,
			Count:           len(members),
			AverageAmount:   total.Div(decimal.NewFromInt(int64(len(members)))).Round(2),
			AmountVariation: stats.amountVariation,
			DayGapDeviation: stats.dayGapDeviation,
			FirstDate:       first,
			LastDate:        last,
			Recurring:       stats.passes(opts),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Recurring != summaries[j].Recurring {
			return summaries[i].Recurring
		}
		if summaries[i].Count != summaries[j].Count {
			return summaries[i].Count > summaries[j].Count
		}
		if summaries[i].Owner != summaries[j].Owner {
			return summaries[i].Owner < summaries[j].Owner
		}
		return summaries[i].Description < summaries[j].Description
	})
	return summaries, nil
}
