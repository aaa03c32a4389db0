// Package export renders expense lists as CSV or XLSX downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"budgetbuddy/internal/models"
)

// Format is a supported export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const sheetName = "Expenses"

var header = []string{"Date", "Description", "Category", "Amount"}

// ParseFormat accepts "csv" or "xlsx" in any case. An empty value means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename returns the attachment name for an export generated at t.
func (f Format) Filename(t time.Time) string {
	return fmt.Sprintf("expenses_%s.%s", t.Format("20060102"), f)
}

// Write renders expenses in format f.
func Write(w io.Writer, f Format, expenses []models.Expense) error {
	if f == FormatXLSX {
		return WriteXLSX(w, expenses)
	}
	return WriteCSV(w, expenses)
}

func row(e models.Expense) []string {
	category := ""
	if e.Category != nil {
		category = e.Category.Name
	}
	return []string{
		time.Time(e.ExpenseDate).Format("2006-01-02"),
		e.Description,
		category,
		e.Amount.StringFixed(2),
	}
}

// WriteCSV writes a header row followed by one row per expense.
func WriteCSV(w io.Writer, expenses []models.Expense) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, e := range expenses {
		if err := writer.Write(row(e)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes a single-sheet workbook with a bold header, numeric
// amounts and a total row.
func WriteXLSX(w io.Writer, expenses []models.Expense) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#6366F1"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	amountFormat := "#,##0.00"
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &amountFormat})
	if err != nil {
		return err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &amountFormat,
	})
	if err != nil {
		return err
	}

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", "D1", headerStyle); err != nil {
		return err
	}

	total := decimal.Zero
	for i, e := range expenses {
		cells := row(e)
		amount, _ := e.Amount.Round(2).Float64()
		values := []interface{}{cells[0], cells[1], cells[2], amount}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
		total = total.Add(e.Amount)
	}

	last := len(expenses) + 1
	if len(expenses) > 0 {
		if err := f.SetCellStyle(sheetName, "D2", fmt.Sprintf("D%d", last), amountStyle); err != nil {
			return err
		}
	}

	totalRow := last + 1
	if err := f.SetCellValue(sheetName, fmt.Sprintf("C%d", totalRow), "Total"); err != nil {
		return err
	}
	totalCell := fmt.Sprintf("D%d", totalRow)
	totalValue, _ := total.Round(2).Float64()
	if err := f.SetCellValue(sheetName, totalCell, totalValue); err != nil {
		return err
	}
	if len(expenses) > 0 {
		if err := f.SetCellFormula(sheetName, totalCell, fmt.Sprintf("SUM(D2:D%d)", last)); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheetName, fmt.Sprintf("C%d", totalRow), totalCell, totalStyle); err != nil {
		return err
	}

	for col, width := range map[string]float64{"A": 12, "B": 32, "C": 18, "D": 12} {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return err
		}
	}

	return f.Write(w)
}
