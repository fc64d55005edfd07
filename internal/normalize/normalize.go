// Package normalize maps raw statement rows into canonical transactions:
// ISO dates, signed amounts, trimmed descriptions and optional payees.
package normalize

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/ledger-converter/internal/config"
	"github.com/dvloznov/ledger-converter/internal/domain"
	"github.com/dvloznov/ledger-converter/internal/ingest"
)

// Options carries the user-supplied overrides for one conversion run.
type Options struct {
	// DateFormat overrides the institution's own DateFormat hint when set.
	DateFormat string
	// StartDate is an inclusive YYYY-MM-DD lower bound. Transactions whose
	// date failed to normalize are always kept; they cannot be compared
	// reliably, and over-inclusion is the safer failure mode.
	StartDate string
}

// Normalize maps raw rows to canonical transactions. Rows lacking a date or
// a description are dropped with a warning; unparseable amounts degrade to
// zero and unparseable dates keep their raw string. Nothing here returns an
// error: only configuration and decode failures abort a conversion.
func Normalize(rows []ingest.Row, inst config.Institution, opts Options, log zerolog.Logger) []domain.Transaction {
	hint := inst.DateFormat
	if opts.DateFormat != "" {
		hint = opts.DateFormat
	}

	txs := make([]domain.Transaction, 0, len(rows))
	for i, row := range rows {
		rawDate := strings.TrimSpace(row.Get(inst.DateField))
		description := strings.TrimSpace(row.Get(inst.DescriptionField))
		if rawDate == "" || description == "" {
			log.Warn().Int("row", i).Msg("dropping row without date or description")
			continue
		}

		date, ok := NormalizeDate(rawDate, hint)
		if !ok {
			log.Warn().Int("row", i).Str("date", rawDate).Msg("could not parse date, keeping raw value")
			date = rawDate
		}

		tx := domain.Transaction{
			Date:        date,
			Description: description,
			Amount:      resolveAmount(row, inst),
		}
		if inst.PayeeField != "" {
			tx.Payee = strings.TrimSpace(row.Get(inst.PayeeField))
		}
		txs = append(txs, tx)
	}

	return filterByStartDate(txs, opts.StartDate)
}

// resolveAmount derives the signed amount for one row. The institution's
// transform, when present, overrides the field combination.
func resolveAmount(row ingest.Row, inst config.Institution) decimal.Decimal {
	outflowRaw := row.Get(inst.OutflowField)
	inflowRaw := row.Get(inst.InflowField)
	amountRaw := row.Get(inst.AmountField)

	if inst.TransformAmount != nil {
		return inst.TransformAmount(outflowRaw, inflowRaw, amountRaw)
	}
	if inst.AmountField != "" {
		return config.ParseAmount(amountRaw)
	}
	return config.ParseAmount(inflowRaw).Sub(config.ParseAmount(outflowRaw))
}

// filterByStartDate keeps transactions dated on or after the bound. Both
// sides are zero-padded ISO dates, so lexicographic comparison is exact.
// A malformed bound disables the filter.
func filterByStartDate(txs []domain.Transaction, startDate string) []domain.Transaction {
	if !IsISODate(startDate) {
		return txs
	}
	kept := txs[:0]
	for _, tx := range txs {
		if !IsISODate(tx.Date) || tx.Date >= startDate {
			kept = append(kept, tx)
		}
	}
	return kept
}
