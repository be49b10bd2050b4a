// Package common provides shared CSV input and output for purchase data.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/spendscope/spendscope/internal/dateutils"
	"github.com/spendscope/spendscope/internal/models"
	"github.com/spendscope/spendscope/internal/pipelineerror"
)

var log = logrus.New()

// Delimiter is the CSV field separator used for both reading and writing.
var Delimiter rune = ','

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// SetDelimiter sets the CSV field separator used for both reading and
// writing.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// purchaseRow mirrors models.Purchase for CSV round-tripping. Date and
// amount travel as strings so files produced by other tools parse cleanly.
type purchaseRow struct {
	ID              string  `csv:"ID"`
	Owner           string  `csv:"Owner"`
	Description     string  `csv:"Description"`
	Amount          string  `csv:"Amount"`
	Date            string  `csv:"Date"`
	Category        string  `csv:"Category"`
	IsRecurring     bool    `csv:"IsRecurring"`
	DerivedCategory string  `csv:"DerivedCategory"`
	DaysSinceLast   float64 `csv:"DaysSinceLast"`
	Year            int     `csv:"Year"`
	Month           int     `csv:"Month"`
	Day             int     `csv:"Day"`
	DayOfWeek       int     `csv:"DayOfWeek"`
	Weekend         bool    `csv:"Weekend"`
	Hour            int     `csv:"Hour"`
	Quarter         int     `csv:"Quarter"`
	WeekOfYear      int     `csv:"WeekOfYear"`
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv. TCSVRow is
// the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string) ([]TCSVRow, error) {
	log.WithField("file", filePath).Info("Reading CSV file")

	file, err := os.Open(filePath)
	if err != nil {
		log.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = Delimiter
		return r
	})

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		log.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.WithField("count", len(rows)).Info("Successfully read CSV data")
	return rows, nil
}

// WriteCSVFile writes a slice of structs to a CSV file using gocsv.
func WriteCSVFile[TCSVRow any](rows []TCSVRow, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		w := csv.NewWriter(out)
		w.Comma = Delimiter
		return gocsv.NewSafeCSVWriter(w)
	})

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing CSV file: %w", err)
	}
	return nil
}

// ReadPurchasesFromCSV loads purchase records from a CSV file. Timestamps
// are parsed with the common date layouts and amounts with the tolerant
// amount parser. Rows without an ID are assigned one.
func ReadPurchasesFromCSV(filePath string) ([]models.Purchase, error) {
	rows, err := ReadCSVFile[*purchaseRow](filePath)
	if err != nil {
		return nil, &pipelineerror.LoadError{Source: filePath, Err: err}
	}

	purchases := make([]models.Purchase, 0, len(rows))
	for i, row := range rows {
		date, err := dateutils.ParseDate(row.Date)
		if err != nil {
			return nil, &pipelineerror.LoadError{
				Source: filePath,
				Err:    fmt.Errorf("row %d: %w", i+1, err),
			}
		}

		p := models.NewPurchase()
		p.ID = row.ID
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		p.Owner = row.Owner
		p.Description = row.Description
		p.Amount = models.ParseAmount(row.Amount)
		p.Date = date
		p.Category = row.Category
		purchases = append(purchases, p)
	}

	log.WithField("count", len(purchases)).Info("Loaded purchases")
	return purchases, nil
}

// WritePurchasesToCSV writes purchases, including every derived field, to a
// CSV file in a standardized format.
func WritePurchasesToCSV(purchases []models.Purchase, filePath string) error {
	rows := make([]purchaseRow, 0, len(purchases))
	for _, p := range purchases {
		rows = append(rows, purchaseRow{
			ID:              p.ID,
			Owner:           p.Owner,
			Description:     p.Description,
			Amount:          p.Amount.String(),
			Date:            dateutils.FormatDate(p.Date, ""),
			Category:        p.Category,
			IsRecurring:     p.IsRecurring,
			DerivedCategory: p.DerivedCategory,
			DaysSinceLast:   p.DaysSinceLast,
			Year:            p.Year,
			Month:           p.Month,
			Day:             p.Day,
			DayOfWeek:       p.DayOfWeek,
			Weekend:         p.Weekend,
			Hour:            p.Hour,
			Quarter:         p.Quarter,
			WeekOfYear:      p.WeekOfYear,
		})
	}

	if err := WriteCSVFile(rows, filePath); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"count": len(rows), "file": filePath}).Info("Wrote purchases")
	return nil
}
