package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dvloznov/ledger-converter/internal/config"
)

// readXLSX decodes a modern workbook. Only the first sheet is read.
func readXLSX(data []byte, inst config.Institution) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}

	formatted, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read raw rows: %w", err)
	}

	grid := make([][]string, len(formatted))
	for i := range formatted {
		grid[i] = make([]string, len(formatted[i]))
		for j := range formatted[i] {
			rawCell := ""
			if i < len(raw) && j < len(raw[i]) {
				rawCell = raw[i][j]
			}
			grid[i][j] = cellValue(formatted[i][j], rawCell)
		}
	}
	return tableRows(grid, inst), nil
}

// cellValue resolves one spreadsheet cell to its string form. A cell that is
// stored as a number but rendered through a date format is a native date;
// re-encode it as calendar YYYY-MM-DD here so the normalizer never has to
// second-guess the workbook's display format.
func cellValue(formatted, raw string) string {
	formatted = strings.TrimSpace(formatted)
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == formatted {
		return formatted
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return formatted
	}
	if !strings.ContainsAny(formatted, "/-") {
		return formatted
	}
	t, ok := SerialDate(serial)
	if !ok {
		return formatted
	}
	return t.Format("2006-01-02")
}
