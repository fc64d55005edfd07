package ingest

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/extrame/xls"

	"github.com/dvloznov/ledger-converter/internal/config"
)

// readXLS decodes a legacy OLE2 workbook. Only the first sheet is read. The
// reader yields cells as strings, so native dates arrive either formatted or
// as serial day counts; the normalizer's fallback chain handles the latter.
func readXLS(data []byte, inst config.Institution) ([]Row, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("workbook has no sheets")
	}

	grid := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol())
		for c := 0; c < row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		grid = append(grid, cells)
	}
	return tableRows(grid, inst), nil
}
