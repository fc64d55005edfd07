package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dvloznov/ledger-converter/internal/config"
)

// readCSV parses delimited text. The first physical line is the header row;
// SkipRows then discards leading data records, not header-finding rows.
// Malformed rows are logged and skipped, never aborting the run.
func readCSV(data []byte, inst config.Institution, log zerolog.Logger) ([]Row, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	line := 1
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Int("line", line).Msg("skipping malformed row")
			continue
		}
		rows = append(rows, NewRow(header, record))
	}

	if inst.SkipRows > 0 {
		if inst.SkipRows >= len(rows) {
			return nil, nil
		}
		rows = rows[inst.SkipRows:]
	}
	return rows, nil
}
