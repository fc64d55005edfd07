// Package domain holds the institution-agnostic transaction shape shared by
// the ingestion, normalization and export stages.
package domain

import "github.com/shopspring/decimal"

// Transaction is one normalized statement line.
//
// Date is a calendar date in YYYY-MM-DD form or, when the raw cell could not
// be parsed, the original string from the statement. It is never empty for a
// retained transaction. Amount is signed: negative is money out, positive is
// money in. Payee is empty unless the institution maps a dedicated payee
// column and that cell was non-blank.
type Transaction struct {
	Date        string
	Description string
	Amount      decimal.Decimal
	Payee       string
}

// HasPayee reports whether a dedicated payee column produced a value for this
// transaction. The exporter gives such payees precedence over the
// payee/memo swap option.
func (t Transaction) HasPayee() bool { return t.Payee != "" }
