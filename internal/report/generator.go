package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spendscope/spendscope/internal/logging"
)

// SpendingReport aggregates the summaries the CLI emits.
type SpendingReport struct {
	GeneratedAt time.Time       `json:"generatedAt"`
	Categories  []CategoryTotal `json:"categories,omitempty"`
	Timeline    []TimeBucket    `json:"timeline,omitempty"`
}

// Generator renders spending reports in the supported output formats.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a report generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(nil)
	}
	return &Generator{logger: logger.WithField("component", "ReportGenerator")}
}

// Generate renders a spending report in the specified format ("json" or
// "text") and returns it as a byte slice.
func (g *Generator) Generate(rep *SpendingReport, format string) ([]byte, error) {
	switch format {
	case "json":
		return g.generateJSON(rep)
	case "text":
		return g.generateText(rep), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) generateJSON(rep *SpendingReport) ([]byte, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return data, nil
}

func (g *Generator) generateText(rep *SpendingReport) []byte {
	var b strings.Builder

	if len(rep.Categories) > 0 {
		b.WriteString("Spending by category\n")
		for _, row := range rep.Categories {
			fmt.Fprintf(&b, "  %-24s %12s  (%d purchases)\n", row.Category, row.Total.StringFixed(2), row.Count)
		}
	}

	if len(rep.Timeline) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Spending over time\n")
		for _, bucket := range rep.Timeline {
			label := bucket.Start.Format("2006-01-02")
			if bucket.Category != "" {
				fmt.Fprintf(&b, "  %s  %-24s %12s\n", label, bucket.Category, bucket.Total.StringFixed(2))
			} else {
				fmt.Fprintf(&b, "  %s  %12s\n", label, bucket.Total.StringFixed(2))
			}
		}
	}

	if b.Len() == 0 {
		b.WriteString("No purchases in the selected range\n")
	}
	return []byte(b.String())
}
