// Package spreadsheet reads and writes the xlsx files the counter
// exchanges with the outside world.
package spreadsheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/evtushenkodev/BeerCounter/internal/ledger/dto"
	"github.com/evtushenkodev/BeerCounter/internal/model"
	"github.com/xuri/excelize/v2"
)

var reportHeader = []interface{}{"Name", "EndAmount", "Received", "Sold"}

type XLSX struct{}

func New() *XLSX {
	return &XLSX{}
}

// Import walks every sheet and collects (name, quantity) pairs from the
// first two columns. Rows missing either cell are skipped.
func (x *XLSX) Import(path string) ([]dto.ImportItem, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet %q: %w", path, err)
	}
	defer f.Close()

	var items []dto.ImportItem
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		for _, row := range rows {
			if len(row) < 2 {
				continue
			}
			name := strings.TrimSpace(row[0])
			quantity, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
			if name == "" || err != nil {
				continue
			}
			items = append(items, dto.ImportItem{Name: name, Quantity: quantity})
		}
	}
	return items, nil
}

// ExportReport writes the header, one row per item and the final Total
// row to a fresh workbook.
func (x *XLSX) ExportReport(rows []model.ReconciliationRow, totals model.ReconciliationTotals, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Shift Data"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &reportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{row.Name, row.EndAmount, row.Received, row.Sold}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %q: %w", row.Name, err)
		}
	}

	totalCell := fmt.Sprintf("A%d", len(rows)+2)
	totalValues := []interface{}{"Total", totals.EndAmount, totals.Received, totals.Sold}
	if err := f.SetSheetRow(sheet, totalCell, &totalValues); err != nil {
		return fmt.Errorf("write totals: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save spreadsheet %q: %w", path, err)
	}
	return nil
}
