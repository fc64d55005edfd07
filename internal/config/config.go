// Package config defines the per-institution field mappings that drive the
// conversion pipeline. Bank-specific quirks live here as plain data plus an
// injectable amount transform, not as a type hierarchy.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountTransform derives the signed amount for one statement row from the
// raw outflow, inflow and amount cells. Institutions with unusual sign
// conventions supply their own; everything else goes through ParseAmount.
type AmountTransform func(outflowRaw, inflowRaw, amountRaw string) decimal.Decimal

// Institution describes how to read one bank's export format.
//
// Exactly one of AmountField or the OutflowField/InflowField pair must be
// set. TransformAmount, when present, takes precedence over both.
type Institution struct {
	// Label is the display name shown by the CLI and the API; it carries no
	// conversion semantics.
	Label string

	DateField        string
	DescriptionField string
	// PayeeField names an optional column whose non-blank values are treated
	// as an authoritative payee distinct from the description.
	PayeeField string

	AmountField  string
	OutflowField string
	InflowField  string

	TransformAmount AmountTransform

	// SkipRows is the number of leading rows before the header row in a
	// spreadsheet, or the number of leading data rows to discard in a CSV.
	SkipRows int

	// DateFormat is a parsing hint: one of DD/MM/YYYY, MM/DD/YYYY,
	// YYYY/MM/DD, or a free-form layout hint such as "DD MMM YYYY".
	DateFormat string

	// LocatesHeaderByMarker marks export variants whose header row shifts
	// between releases. The ingester then scans for the first row whose
	// first cell reads "date", falling back to SkipRows.
	LocatesHeaderByMarker bool
}

// Registry maps institution keys to their configurations. It is treated as
// immutable once constructed and is passed explicitly to the pipeline.
type Registry map[string]Institution

// UnknownInstitutionError is returned when no configuration exists for a
// requested institution key.
type UnknownInstitutionError struct {
	Key string
}

func (e *UnknownInstitutionError) Error() string {
	return fmt.Sprintf("Unsupported bank type: %s. No configuration found.", e.Key)
}

// Lookup resolves an institution key.
func (r Registry) Lookup(key string) (Institution, error) {
	inst, ok := r[key]
	if !ok {
		return Institution{}, &UnknownInstitutionError{Key: key}
	}
	return inst, nil
}

// Keys returns the registered institution keys in sorted order.
func (r Registry) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseAmount strips currency symbols, thousands separators and other
// non-numeric noise from a raw cell and parses the remainder. Values that
// still fail to parse resolve to zero rather than an error; the destination
// ledger tool lets the user fix individual records after import.
func ParseAmount(raw string) decimal.Decimal {
	var b strings.Builder
	for _, c := range raw {
		if (c >= '0' && c <= '9') || c == '.' || c == '-' {
			b.WriteRune(c)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

// DefaultRegistry returns the built-in institution set.
func DefaultRegistry() Registry {
	return Registry{
		"td": {
			Label:            "TD Canada Trust",
			DateField:        "Date",
			DescriptionField: "Description",
			OutflowField:     "Debit",
			InflowField:      "Credit",
			DateFormat:       "MM/DD/YYYY",
		},
		"cibc": {
			Label:            "CIBC",
			DateField:        "Date",
			DescriptionField: "Transaction Description",
			AmountField:      "Transaction Amount",
			// CIBC exports charges as positive numbers; flip the sign so
			// outflows end up negative.
			TransformAmount: func(_, _, amountRaw string) decimal.Decimal {
				return ParseAmount(amountRaw).Neg()
			},
			DateFormat: "MM/DD/YYYY",
		},
		"barclays": {
			Label:            "Barclays UK",
			DateField:        "Date",
			DescriptionField: "Memo",
			PayeeField:       "Counterparty",
			AmountField:      "Amount",
			DateFormat:       "DD/MM/YYYY",
		},
		"amex": {
			Label:            "American Express (summary export)",
			DateField:        "Date",
			DescriptionField: "Description",
			AmountField:      "Amount",
			// Charges are positive in the summary workbook.
			TransformAmount: func(_, _, amountRaw string) decimal.Decimal {
				return ParseAmount(amountRaw).Neg()
			},
			SkipRows:              11,
			DateFormat:            "DD MMM YYYY",
			LocatesHeaderByMarker: true,
		},
		"revolut": {
			Label:            "Revolut",
			DateField:        "Completed Date",
			DescriptionField: "Description",
			AmountField:      "Amount",
			DateFormat:       "YYYY/MM/DD",
		},
		"n26": {
			Label:            "N26",
			DateField:        "Date",
			DescriptionField: "Payment reference",
			PayeeField:       "Payee",
			AmountField:      "Amount (EUR)",
		},
	}
}
