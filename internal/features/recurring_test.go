package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendscope/spendscope/internal/models"
	"github.com/spendscope/spendscope/internal/pipelineerror"
)

func TestIdentifyRecurringUniformSubscription(t *testing.T) {
	// Same obligation despite varying spellings: normalization groups them.
	purchases := []models.Purchase{
		purchaseAt("alice", "NETFLIX 123", 15.99, day(1)),
		purchaseAt("alice", "Netflix", 15.99, day(31)),
		purchaseAt("alice", "netflix!", 15.99, day(61)),
	}

	result, err := IdentifyRecurring(purchases, DefaultDetectorOptions())
	require.NoError(t, err)
	for _, p := range result {
		assert.True(t, p.IsRecurring, "expected %q to be recurring", p.Description)
	}
}

func TestIdentifyRecurringAmountVarianceTooHigh(t *testing.T) {
	purchases := []models.Purchase{
		purchaseAt("alice", "NETFLIX 123", 15.99, day(1)),
		purchaseAt("alice", "Netflix", 15.99, day(31)),
		purchaseAt("alice", "netflix!", 45.00, day(61)),
	}

	result, err := IdentifyRecurring(purchases, DefaultDetectorOptions())
	require.NoError(t, err)
	for _, p := range result {
		assert.False(t, p.IsRecurring)
	}
}

func TestIdentifyRecurringOccurrenceFloor(t *testing.T) {
	// Two perfectly uniform occurrences still sit below the default floor.
	purchases := []models.Purchase{
		purchaseAt("alice", "Netflix", 15.99, day(1)),
		purchaseAt("alice", "Netflix", 15.99, day(31)),
	}

	result, err := IdentifyRecurring(purchases, DefaultDetectorOptions())
	require.NoError(t, err)
	for _, p := range result {
		assert.False(t, p.IsRecurring)
	}

	// Lowering the floor to 2 lets the group through.
	opts := DefaultDetectorOptions()
	opts.MinOccurrences = 2
	result, err = IdentifyRecurring(purchases, opts)
	require.NoError(t, err)
	for _, p := range result {
		assert.True(t, p.IsRecurring)
	}
}

func TestIdentifyRecurringTimingVarianceTooHigh(t *testing.T) {
	// Equal amounts, erratic cadence: gaps of 5 and 55 days.
	purchases := []models.Purchase{
		purchaseAt("alice", "Gym", 29.90, day(1)),
		purchaseAt("alice", "Gym", 29.90, day(6)),
		purchaseAt("alice", "Gym", 29.90, day(61)),
	}

	result, err := IdentifyRecurring(purchases, DefaultDetectorOptions())
	require.NoError(t, err)
	for _, p := range result {
		assert.False(t, p.IsRecurring)
	}
}

func TestIdentifyRecurringDaysVarianceBoundaryInclusive(t *testing.T) {
	// Gaps of 25 and 35 days: mean 30, population stddev exactly 5.
	purchases := []models.Purchase{
		purchaseAt("alice", "Rent", 1200, day(1)),
		purchaseAt("alice", "Rent", 1200, day(26)),
		purchaseAt("alice", "Rent", 1200, day(61)),
	}

	result, err := IdentifyRecurring(purchases, DefaultDetectorOptions())
	require.NoError(t, err)
	for _, p := range result {
		assert.True(t, p.IsRecurring)
	}

	// Gaps of 24 and 36 days: stddev 6, past the ceiling.
	purchases = []models.Purchase{
		purchaseAt("alice", "Rent", 1200, day(1)),
		purchaseAt("alice", "Rent", 1200, day(25)),
		purchaseAt("alice", "Rent", 1200, day(61)),
	}
	result, err = IdentifyRecurring(purchases, DefaultDetectorOptions())
	require.NoError(t, err)
	for _, p := range result {
		assert.False(t, p.IsRecurring)
	}
}

func TestIdentifyRecurringZeroMeanAmounts(t *testing.T) {
	// Amounts summing to zero make relative dispersion undefined; the group
	// must fail the amount test rather than divide by zero.
	purchases := []models.Purchase{
		purchaseAt("alice", "Refund Loop", 10, day(1)),
		purchaseAt("alice", "Refund Loop", -10, day(31)),
		purchaseAt("alice", "Refund Loop", 0, day(61)),
	}

	result, err := IdentifyRecurring(purchases, DefaultDetectorOptions())
	require.NoError(t, err)
	for _, p := range result {
		assert.False(t, p.IsRecurring)
	}
}

func TestIdentifyRecurringAllZeroAmounts(t *testing.T) {
	purchases := []models.Purchase{
		purchaseAt("alice", "Free Trial", 0, day(1)),
		purchaseAt("alice", "Free Trial", 0, day(31)),
		purchaseAt("alice", "Free Trial", 0, day(61)),
	}

	result, err := IdentifyRecurring(purchases, DefaultDetectorOptions())
	require.NoError(t, err)
	for _, p := range result {
		assert.False(t, p.IsRecurring)
	}
}

func TestIdentifyRecurringOwnerScoping(t *testing.T) {
	// Two owners with two occurrences each: per owner nobody reaches the
	// floor of 3, globally the four together do.
	purchases := []models.Purchase{
		purchaseAt("alice", "Spotify", 9.99, day(1)),
		purchaseAt("bob", "Spotify", 9.99, day(16)),
		purchaseAt("alice", "Spotify", 9.99, day(31)),
		purchaseAt("bob", "Spotify", 9.99, day(46)),
	}

	result, err := IdentifyRecurring(purchases, DefaultDetectorOptions())
	require.NoError(t, err)
	for _, p := range result {
		assert.False(t, p.IsRecurring)
	}

	opts := DefaultDetectorOptions()
	opts.GroupByOwner = false
	result, err = IdentifyRecurring(purchases, opts)
	require.NoError(t, err)
	for _, p := range result {
		assert.True(t, p.IsRecurring)
	}
}

func TestIdentifyRecurringAllOrNothingPerGroup(t *testing.T) {
	purchases := []models.Purchase{
		purchaseAt("alice", "Netflix", 15.99, day(1)),
		purchaseAt("alice", "Netflix", 15.99, day(31)),
		purchaseAt("alice", "Netflix", 15.99, day(61)),
		purchaseAt("alice", "Groceries", 87.13, day(2)),
		purchaseAt("alice", "Groceries", 12.40, day(9)),
		purchaseAt("alice", "Groceries", 55.20, day(33)),
	}

	result, err := IdentifyRecurring(purchases, DefaultDetectorOptions())
	require.NoError(t, err)

	flags := make(map[string]map[bool]int)
	for _, p := range result {
		if flags[p.Description] == nil {
			flags[p.Description] = make(map[bool]int)
		}
		flags[p.Description][p.IsRecurring]++
	}
	for desc, counts := range flags {
		assert.Len(t, counts, 1, "group %q has mixed recurring flags", desc)
	}
}

func TestIdentifyRecurringIdempotent(t *testing.T) {
	purchases := []models.Purchase{
		purchaseAt("alice", "Netflix", 15.99, day(1)),
		purchaseAt("alice", "Netflix", 15.99, day(31)),
		purchaseAt("alice", "Netflix", 15.99, day(61)),
		purchaseAt("alice", "Groceries", 87.13, day(2)),
	}

	once, err := IdentifyRecurring(purchases, DefaultDetectorOptions())
	require.NoError(t, err)
	twice, err := IdentifyRecurring(once, DefaultDetectorOptions())
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestIdentifyRecurringOwnsTheFlag(t *testing.T) {
	// A caller-set flag on a non-recurring record is cleared.
	p := purchaseAt("alice", "One Off", 250, day(1))
	p.IsRecurring = true

	result, err := IdentifyRecurring([]models.Purchase{p}, DefaultDetectorOptions())
	require.NoError(t, err)
	assert.False(t, result[0].IsRecurring)
}

func TestIdentifyRecurringPreservesInputOrder(t *testing.T) {
	purchases := []models.Purchase{
		purchaseAt("alice", "Netflix", 15.99, day(61)),
		purchaseAt("alice", "Groceries", 87.13, day(2)),
		purchaseAt("alice", "Netflix", 15.99, day(1)),
		purchaseAt("alice", "Netflix", 15.99, day(31)),
	}

	result, err := IdentifyRecurring(purchases, DefaultDetectorOptions())
	require.NoError(t, err)
	require.Len(t, result, 4)
	for i := range purchases {
		assert.Equal(t, purchases[i].Date, result[i].Date)
		assert.Equal(t, purchases[i].Description, result[i].Description)
	}
}

func TestIdentifyRecurringInvalidOptions(t *testing.T) {
	purchases := []models.Purchase{purchaseAt("alice", "Netflix", 15.99, day(1))}

	tests := []struct {
		name   string
		mutate func(*DetectorOptions)
	}{
		{"floor below two", func(o *DetectorOptions) { o.MinOccurrences = 1 }},
		{"negative amount variance", func(o *DetectorOptions) { o.MaxAmountVariance = -0.1 }},
		{"negative days variance", func(o *DetectorOptions) { o.MaxDaysVariance = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultDetectorOptions()
			tt.mutate(&opts)

			result, err := IdentifyRecurring(purchases, opts)
			assert.Nil(t, result)

			var configErr *pipelineerror.ConfigError
			require.ErrorAs(t, err, &configErr)
		})
	}
}

func TestIdentifyRecurringRejectsZeroTimestamp(t *testing.T) {
	purchases := []models.Purchase{
		purchaseAt("alice", "Netflix", 15.99, time.Time{}),
	}

	_, err := IdentifyRecurring(purchases, DefaultDetectorOptions())

	var invalidInput *pipelineerror.InvalidInputError
	require.ErrorAs(t, err, &invalidInput)
}

func TestIdentifyRecurringEmptyDescriptionsFormAGroup(t *testing.T) {
	// The empty normalized key is a valid, if unhelpful, grouping key.
	purchases := []models.Purchase{
		purchaseAt("alice", "#1", 5, day(1)),
		purchaseAt("alice", "#2", 5, day(31)),
		purchaseAt("alice", "#3", 5, day(61)),
	}

	result, err := IdentifyRecurring(purchases, DefaultDetectorOptions())
	require.NoError(t, err)
	for _, p := range result {
		assert.True(t, p.IsRecurring)
	}
}
