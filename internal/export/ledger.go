// Package export maps canonical transactions into the fixed five-column
// ledger-import format and serializes it as CSV.
package export

import (
	"encoding/csv"
	"strings"
	"time"

	"github.com/dvloznov/ledger-converter/internal/domain"
	"github.com/dvloznov/ledger-converter/internal/normalize"
)

// Options selects how descriptions and payees land in the output.
type Options struct {
	// ImportMemos carries descriptions into the output at all.
	ImportMemos bool
	// SwapPayeesMemos moves the description into the Payee column instead of
	// Memo. A transaction with an explicit payee ignores this option.
	SwapPayeesMemos bool
	// OutputDateFormat is one of Day/Month/Year, Month/Day/Year or
	// Year/Month/Day; anything else leaves dates in YYYY-MM-DD form.
	OutputDateFormat string
}

// Record is one line of the ledger import file. At most one of Outflow and
// Inflow is non-empty; both are empty when the amount is exactly zero.
type Record struct {
	Date     string
	Payee    string
	Category string
	Memo     string
	Outflow  string
	Inflow   string
}

var header = []string{"Date", "Payee", "Category", "Memo", "Outflow", "Inflow"}

// ToLedgerRecords maps transactions into ledger records. It is total: any
// well-formed transaction sequence produces a record per transaction.
func ToLedgerRecords(txs []domain.Transaction, opts Options) []Record {
	records := make([]Record, 0, len(txs))
	for _, tx := range txs {
		rec := Record{
			Date: formatDate(tx.Date, opts.OutputDateFormat),
			// Category stays empty; the destination ledger tool assigns it.
			Category: "",
		}

		switch {
		case tx.HasPayee():
			// An explicit payee column wins over the swap option.
			rec.Payee = tx.Payee
			rec.Memo = tx.Description
		case opts.ImportMemos && opts.SwapPayeesMemos:
			rec.Payee = tx.Description
		case opts.ImportMemos:
			rec.Memo = tx.Description
		}

		switch sign := tx.Amount.Sign(); {
		case sign < 0:
			rec.Outflow = tx.Amount.Abs().StringFixed(2)
		case sign > 0:
			rec.Inflow = tx.Amount.StringFixed(2)
		}

		records = append(records, rec)
	}
	return records
}

// Serialize renders the records as CSV with the fixed header line. The
// output is deterministic: the same records and options always yield
// byte-identical text.
func Serialize(records []Record) string {
	var b strings.Builder
	w := csv.NewWriter(&b)

	w.Write(header)
	for _, rec := range records {
		w.Write([]string{rec.Date, rec.Payee, rec.Category, rec.Memo, rec.Outflow, rec.Inflow})
	}
	w.Flush()

	return b.String()
}

// formatDate rewrites a canonical YYYY-MM-DD date into the user-selected
// display format. Dates that failed to normalize upstream pass through
// unchanged, as does any unrecognized format token.
func formatDate(date, format string) string {
	if !normalize.IsISODate(date) {
		return date
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	switch format {
	case "Day/Month/Year":
		return t.Format("02/01/2006")
	case "Month/Day/Year":
		return t.Format("01/02/2006")
	case "Year/Month/Day":
		return t.Format("2006/01/02")
	default:
		return date
	}
}
