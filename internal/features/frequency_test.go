package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendscope/spendscope/internal/models"
)

func day(d int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d-1)
}

func TestCalculateFrequencyPerOwner(t *testing.T) {
	purchases := []models.Purchase{
		purchaseAt("alice", "Coffee", 3.80, day(10)),
		purchaseAt("bob", "Lunch", 12.00, day(11)),
		purchaseAt("alice", "Coffee", 3.80, day(13)),
		purchaseAt("bob", "Lunch", 12.00, day(18)),
	}

	result, err := CalculateFrequency(purchases, true)
	require.NoError(t, err)
	require.Len(t, result, 4)

	// Result is sorted by date ascending.
	assert.Equal(t, "alice", result[0].Owner)
	assert.Equal(t, float64(NoPriorPurchase), result[0].DaysSinceLast)
	assert.Equal(t, "bob", result[1].Owner)
	assert.Equal(t, float64(NoPriorPurchase), result[1].DaysSinceLast)
	assert.Equal(t, "alice", result[2].Owner)
	assert.Equal(t, 3.0, result[2].DaysSinceLast)
	assert.Equal(t, "bob", result[3].Owner)
	assert.Equal(t, 7.0, result[3].DaysSinceLast)
}

func TestCalculateFrequencyGlobal(t *testing.T) {
	purchases := []models.Purchase{
		purchaseAt("alice", "Coffee", 3.80, day(10)),
		purchaseAt("bob", "Lunch", 12.00, day(12)),
	}

	result, err := CalculateFrequency(purchases, false)
	require.NoError(t, err)
	assert.Equal(t, float64(NoPriorPurchase), result[0].DaysSinceLast)
	assert.Equal(t, 2.0, result[1].DaysSinceLast)
}

func TestCalculateFrequencyFractionalDays(t *testing.T) {
	morning := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	result, err := CalculateFrequency([]models.Purchase{
		purchaseAt("alice", "Breakfast", 9.00, morning),
		purchaseAt("alice", "Dinner", 24.00, evening),
	}, true)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, result[1].DaysSinceLast, 1e-9)
}

func TestCalculateFrequencyStableSortOnTies(t *testing.T) {
	ts := day(5)
	purchases := []models.Purchase{
		purchaseAt("alice", "First", 1, ts),
		purchaseAt("alice", "Second", 2, ts),
		purchaseAt("alice", "Third", 3, ts),
	}

	result, err := CalculateFrequency(purchases, true)
	require.NoError(t, err)
	assert.Equal(t, "First", result[0].Description)
	assert.Equal(t, "Second", result[1].Description)
	assert.Equal(t, "Third", result[2].Description)
	assert.Equal(t, 0.0, result[1].DaysSinceLast)
	assert.Equal(t, 0.0, result[2].DaysSinceLast)
}

func TestCalculateFrequencyDoesNotMutateInput(t *testing.T) {
	purchases := []models.Purchase{
		purchaseAt("alice", "Late", 1, day(20)),
		purchaseAt("alice", "Early", 1, day(10)),
	}

	_, err := CalculateFrequency(purchases, true)
	require.NoError(t, err)

	// Input order and gap fields are untouched.
	assert.Equal(t, "Late", purchases[0].Description)
	assert.Zero(t, purchases[0].DaysSinceLast)
}

func TestCalculateFrequencyRejectsZeroTimestamp(t *testing.T) {
	_, err := CalculateFrequency([]models.Purchase{
		purchaseAt("alice", "Broken", 1, time.Time{}),
	}, true)
	assert.Error(t, err)
}
