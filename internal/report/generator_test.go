package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendscope/spendscope/internal/logging"
)

func sampleReport() *SpendingReport {
	return &SpendingReport{
		GeneratedAt: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
		Categories: []CategoryTotal{
			{Category: "Housing", Total: decimal.NewFromInt(1200), Count: 1},
			{Category: "Groceries", Total: decimal.NewFromInt(100), Count: 2},
		},
		Timeline: []TimeBucket{
			{Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Total: decimal.NewFromInt(100)},
			{Start: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Total: decimal.NewFromInt(1200)},
		},
	}
}

func TestGenerateJSON(t *testing.T) {
	g := NewGenerator(&logging.MockLogger{})

	data, err := g.Generate(sampleReport(), "json")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "categories")
	assert.Contains(t, decoded, "timeline")
}

func TestGenerateText(t *testing.T) {
	g := NewGenerator(&logging.MockLogger{})

	data, err := g.Generate(sampleReport(), "text")
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "Spending by category")
	assert.Contains(t, text, "Housing")
	assert.Contains(t, text, "1200.00")
	assert.Contains(t, text, "Spending over time")
	assert.Contains(t, text, "2026-02-01")
}

func TestGenerateTextEmptyReport(t *testing.T) {
	g := NewGenerator(&logging.MockLogger{})

	data, err := g.Generate(&SpendingReport{}, "text")
	require.NoError(t, err)
	assert.Contains(t, string(data), "No purchases")
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	g := NewGenerator(&logging.MockLogger{})

	_, err := g.Generate(sampleReport(), "xml")
	assert.Error(t, err)
}
