// Package ingest decodes raw statement files (CSV, XLS, XLSX) into ordered
// raw row records keyed by the original column headers.
package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dvloznov/ledger-converter/internal/config"
)

// ErrUnsupportedExtension is returned for files outside {csv, xls, xlsx},
// before any decoding is attempted.
var ErrUnsupportedExtension = errors.New("unsupported file extension")

// ReadRows decodes a statement file into raw row records. The institution
// configuration supplies the header offset and, for spreadsheets, the
// header-row location strategy.
func ReadRows(data []byte, filename string, inst config.Institution, log zerolog.Logger) ([]Row, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return readCSV(data, inst, log)
	case ".xlsx":
		return readXLSX(data, inst)
	case ".xls":
		return readXLS(data, inst)
	default:
		return nil, fmt.Errorf("%w %q: expected .csv, .xls or .xlsx", ErrUnsupportedExtension, ext)
	}
}

// tableRows turns a raw cell grid into row records, applying the header-row
// location algorithm shared by both spreadsheet paths.
func tableRows(grid [][]string, inst config.Institution) []Row {
	headerIdx := inst.SkipRows
	if inst.LocatesHeaderByMarker {
		for i, cells := range grid {
			if len(cells) > 0 && strings.EqualFold(strings.TrimSpace(cells[0]), "date") {
				headerIdx = i
				break
			}
		}
	}
	if headerIdx >= len(grid) {
		return nil
	}

	headers := make([]string, len(grid[headerIdx]))
	for i, h := range grid[headerIdx] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(grid)-headerIdx-1)
	for _, cells := range grid[headerIdx+1:] {
		rows = append(rows, NewRow(headers, cells))
	}
	return rows
}
