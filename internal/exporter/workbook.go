package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"brentstats/internal/files"
	"brentstats/pkg/contracts/domain"
)

// Workbook sheet names
const (
	SheetSummary = "Summary"
	SheetReturns = "Returns"
	SheetEvents  = "Events"
)

const isoDate = "2006-01-02"

// WorkbookData is everything an exploration run stores in its workbook
type WorkbookData struct {
	Source      string
	DroppedRows int
	Prices      domain.PriceDescription
	Returns     domain.ReturnDescription
	Series      []domain.ReturnObservation
	Events      []domain.Event
}

// WriteWorkbook saves data as an XLSX workbook at path. The Events sheet is
// written even when no events were loaded.
func WriteWorkbook(path string, data WorkbookData) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetReturns, SheetEvents} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSummarySheet(f, data, header); err != nil {
		return err
	}
	if err := writeReturnsSheet(f, data.Series, header); err != nil {
		return err
	}
	if err := writeEventsSheet(f, data.Events, header); err != nil {
		return err
	}

	return files.WriteAtomic(path, func(w io.Writer) error {
		if err := f.Write(w); err != nil {
			return fmt.Errorf("failed to save workbook: %w", err)
		}
		return nil
	})
}

func writeSummarySheet(f *excelize.File, data WorkbookData, header int) error {
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Source", data.Source},
		{"Records", data.Prices.Count},
		{"Dropped rows", data.DroppedRows},
		{"Start date", data.Prices.Start.Format(isoDate)},
		{"End date", data.Prices.End.Format(isoDate)},
		{"Min price", data.Prices.Min},
		{"Max price", data.Prices.Max},
		{"Mean price", data.Prices.Mean},
		{"Price std", data.Prices.Std},
		{"Median price", data.Prices.Median},
		{"Coefficient of variation", data.Prices.CoefficientOfVariation},
		{"Log returns", data.Returns.Count},
		{"Log returns mean", data.Returns.Mean},
		{"Log returns std", data.Returns.Std},
	}
	if err := writeRows(f, SheetSummary, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "A1", "B1", header); err != nil {
		return fmt.Errorf("failed to style summary header: %w", err)
	}
	return f.SetColWidth(SheetSummary, "A", "A", 26)
}

func writeReturnsSheet(f *excelize.File, series []domain.ReturnObservation, header int) error {
	rows := make([][]interface{}, 0, len(series)+1)
	rows = append(rows, []interface{}{"Date", "Log_Returns"})
	for _, r := range series {
		rows = append(rows, []interface{}{r.Date.Format(isoDate), r.LogReturn})
	}
	if err := writeRows(f, SheetReturns, rows); err != nil {
		return err
	}
	return f.SetCellStyle(SheetReturns, "A1", "B1", header)
}

func writeEventsSheet(f *excelize.File, events []domain.Event, header int) error {
	rows := make([][]interface{}, 0, len(events)+1)
	rows = append(rows, []interface{}{"Date", "Event_Description"})
	for _, e := range events {
		rows = append(rows, []interface{}{e.Date.Format(isoDate), e.Description})
	}
	if err := writeRows(f, SheetEvents, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetEvents, "A1", "B1", header); err != nil {
		return fmt.Errorf("failed to style events header: %w", err)
	}
	return f.SetColWidth(SheetEvents, "B", "B", 60)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
