package ingest

import "time"

// Spreadsheets encode dates as day counts from the legacy 1899-12-30 epoch.
// A bare number is only reinterpreted as a date when it would land between
// serialDateMin (1970-01-01) and serialDateMax (2099-12-31); outside that
// window it is far more likely an amount or an identifier. The bounds are a
// heuristic and deliberately live behind this one function.
const (
	serialDateMin = 25569
	serialDateMax = 73050
)

var serialDateEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// SerialDate reinterprets a spreadsheet serial day count as a calendar date.
// Fractional day parts (time of day) are discarded.
func SerialDate(serial float64) (time.Time, bool) {
	if serial < serialDateMin || serial > serialDateMax {
		return time.Time{}, false
	}
	return serialDateEpoch.AddDate(0, 0, int(serial)), true
}
