package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dvloznov/ledger-converter/internal/ingest"
)

var (
	dayFirstPattern  = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4})$`)
	yearFirstPattern = regexp.MustCompile(`^(\d{4})[/.\-](\d{1,2})[/.\-](\d{1,2})$`)
	isoDatePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Layouts tried by the generic parsing stage, most specific first. The
// US-style numeric forms come last so an explicit day-first hint always wins
// before ambiguity can creep in.
var genericLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"02 Jan 06",
	"1/2/2006",
	"1/2/06",
}

// IsISODate reports whether s is a zero-padded YYYY-MM-DD string. Such
// strings compare correctly with plain lexicographic ordering.
func IsISODate(s string) bool {
	return isoDatePattern.MatchString(s)
}

// NormalizeDate resolves a raw date cell to calendar YYYY-MM-DD. The chain:
// hint-driven strict parse, generic layout parse, spreadsheet serial-number
// reinterpretation. All results are expressed in calendar (UTC) components so
// no timezone can shift the day. Returns false when nothing matched; the
// caller keeps the raw string in that case.
func NormalizeDate(raw, hint string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if iso, ok := parseWithHint(raw, hint); ok {
		return iso, true
	}
	if iso, ok := parseGeneric(raw); ok {
		return iso, true
	}
	if iso, ok := parseSerial(raw); ok {
		return iso, true
	}
	return "", false
}

// parseWithHint applies the institution's (or user's) date-format hint. The
// three canonical tokens are matched strictly against their numeric-separator
// pattern and validated as real calendar dates; any other non-empty hint is
// translated to a time layout and tried as-is.
func parseWithHint(raw, hint string) (string, bool) {
	switch hint {
	case "":
		return "", false
	case "DD/MM/YYYY":
		m := dayFirstPattern.FindStringSubmatch(raw)
		if m == nil {
			return "", false
		}
		return calendarDate(atoi(m[3]), atoi(m[2]), atoi(m[1]))
	case "MM/DD/YYYY":
		m := dayFirstPattern.FindStringSubmatch(raw)
		if m == nil {
			return "", false
		}
		return calendarDate(atoi(m[3]), atoi(m[1]), atoi(m[2]))
	case "YYYY/MM/DD":
		m := yearFirstPattern.FindStringSubmatch(raw)
		if m == nil {
			return "", false
		}
		return calendarDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	default:
		t, err := time.Parse(hintLayout(hint), raw)
		if err != nil {
			return "", false
		}
		return t.Format("2006-01-02"), true
	}
}

func parseGeneric(raw string) (string, bool) {
	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// parseSerial handles date cells that survived ingestion as bare numbers,
// e.g. unformatted spreadsheet cells. The plausible-range check lives in
// ingest.SerialDate.
func parseSerial(raw string) (string, bool) {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", false
	}
	t, ok := ingest.SerialDate(serial)
	if !ok {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// calendarDate validates the components as a real calendar date: time.Date
// normalizes overflow (month 31 becomes a different year), so a component
// round-trip mismatch means the input was not a valid date in this order.
func calendarDate(year, month, day int) (string, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// hintTokens maps free-form hint tokens to time layout fragments. Numeric
// day and month use the non-padded layouts, which accept one or two digits.
var hintTokens = []struct{ token, layout string }{
	{"YYYY", "2006"},
	{"YY", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "1"},
	{"M", "1"},
	{"DD", "2"},
	{"D", "2"},
}

// hintLayout translates a free-form hint such as "DD MMM YYYY" into a Go
// time layout ("2 Jan 2006").
func hintLayout(hint string) string {
	var b strings.Builder
	for i := 0; i < len(hint); {
		matched := false
		for _, t := range hintTokens {
			if strings.HasPrefix(hint[i:], t.token) {
				b.WriteString(t.layout)
				i += len(t.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(hint[i])
			i++
		}
	}
	return b.String()
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
