package dataprocessing

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"brentstats/pkg/contracts/domain"
)

// Price table columns
const (
	DateColumn  = "Date"
	PriceColumn = "Price"
)

// priceDateLayout accepts one- or two-digit days, e.g. 20-May-87 and 2-Jan-06
const priceDateLayout = "2-Jan-06"

// PriceSeries is a cleaned price table sorted ascending by date
type PriceSeries struct {
	Points  []domain.PricePoint
	Rows    int // data rows read from the file
	Dropped int // rows skipped for an unparseable date or price
}

// Start returns the first date of the series
func (s *PriceSeries) Start() time.Time { return s.Points[0].Date }

// End returns the last date of the series
func (s *PriceSeries) End() time.Time { return s.Points[len(s.Points)-1].Date }

// Prices returns the price column in date order
func (s *PriceSeries) Prices() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Price
	}
	return out
}

// LoadPrices reads a Date/Price table from a CSV or XLSX file. Rows with an
// unparseable date or a non-positive or non-numeric price are dropped and
// counted; the remaining rows are sorted by date.
func LoadPrices(path string) (*PriceSeries, error) {
	var (
		dates, prices []string
		raw           []float64
		err           error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		dates, prices, err = readPriceCSV(path)
	case ".xlsx", ".xlsm":
		dates, prices, raw, err = readPriceXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	out := &PriceSeries{Rows: len(dates)}
	for i := range dates {
		date, ok := parsePriceDate(dates[i], raw, i)
		if !ok {
			out.Dropped++
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(prices[i]), 64)
		if err != nil || price <= 0 || math.IsInf(price, 0) || math.IsNaN(price) {
			out.Dropped++
			continue
		}
		out.Points = append(out.Points, domain.PricePoint{Date: date, Price: price})
	}

	if len(out.Points) == 0 {
		return nil, fmt.Errorf("%s: %w (%d rows read)", path, ErrNoValidRows, out.Rows)
	}

	slices.SortStableFunc(out.Points, func(a, b domain.PricePoint) int {
		return a.Date.Compare(b.Date)
	})
	return out, nil
}

// parsePriceDate parses s with the price layout, falling back to an Excel
// serial date when raw holds one for row i.
func parsePriceDate(s string, raw []float64, i int) (time.Time, bool) {
	if t, err := time.Parse(priceDateLayout, strings.TrimSpace(s)); err == nil {
		return t, true
	}
	if raw != nil && !math.IsNaN(raw[i]) {
		t, err := excelize.ExcelDateToTime(raw[i], false)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func readPriceCSV(path string) (dates, prices []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open prices file: %w", err)
	}
	defer f.Close()

	// everything stays a string so malformed cells can be dropped row by row
	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, nil, fmt.Errorf("read prices csv: %w", df.Err)
	}

	for _, name := range []string{DateColumn, PriceColumn} {
		if !slices.Contains(df.Names(), name) {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	return df.Col(DateColumn).Records(), df.Col(PriceColumn).Records(), nil
}

// readPriceXLSX reads the first sheet. raw carries the numeric value of each
// date cell, or NaN when the cell is text.
func readPriceXLSX(path string) (dates, prices []string, raw []float64, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open prices workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: workbook has no sheets", ErrMissingColumn)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, DateColumn)
	}

	dateIdx, priceIdx := -1, -1
	for j, header := range rows[0] {
		switch strings.TrimSpace(header) {
		case DateColumn:
			dateIdx = j
		case PriceColumn:
			priceIdx = j
		}
	}
	if dateIdx < 0 {
		return nil, nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, DateColumn)
	}
	if priceIdx < 0 {
		return nil, nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, PriceColumn)
	}

	for _, row := range rows[1:] {
		cell := func(j int) string {
			if j < len(row) {
				return row[j]
			}
			return ""
		}
		if strings.TrimSpace(cell(dateIdx)) == "" && strings.TrimSpace(cell(priceIdx)) == "" {
			continue
		}

		d := cell(dateIdx)
		dates = append(dates, d)
		prices = append(prices, cell(priceIdx))

		serial, err := strconv.ParseFloat(strings.TrimSpace(d), 64)
		if err != nil {
			serial = math.NaN()
		}
		raw = append(raw, serial)
	}

	return dates, prices, raw, nil
}
