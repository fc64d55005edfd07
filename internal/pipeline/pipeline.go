// Package pipeline composes ingestion, normalization and export into the
// conversion entry points consumed by the CLI and the HTTP shell.
package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvloznov/ledger-converter/internal/config"
	"github.com/dvloznov/ledger-converter/internal/domain"
	"github.com/dvloznov/ledger-converter/internal/export"
	"github.com/dvloznov/ledger-converter/internal/ingest"
	"github.com/dvloznov/ledger-converter/internal/logger"
	"github.com/dvloznov/ledger-converter/internal/normalize"
)

// Converter runs conversions against an immutable institution registry.
// A Converter is safe for concurrent use: each call works on its own data
// and the registry is never written after construction.
type Converter struct {
	registry config.Registry
	log      zerolog.Logger
}

// New creates a converter over the given registry.
func New(registry config.Registry, log zerolog.Logger) *Converter {
	return &Converter{registry: registry, log: log}
}

// Registry exposes the institution table for listing endpoints.
func (c *Converter) Registry() config.Registry {
	return c.registry
}

// Parse converts one statement file into canonical transactions.
//
// It fails only on configuration errors (unknown institution, unsupported
// extension) or decode errors; row-level problems degrade or drop individual
// rows with warnings. Zero surviving transactions is a successful, empty
// result, not an error.
func (c *Converter) Parse(ctx context.Context, data []byte, filename, bankKey, dateFormat, startDate string) ([]domain.Transaction, error) {
	log := c.runLogger(ctx, bankKey, filename)

	inst, err := c.registry.Lookup(bankKey)
	if err != nil {
		return nil, err
	}

	rows, err := ingest.ReadRows(data, filename, inst, log)
	if err != nil {
		return nil, err
	}

	txs := normalize.Normalize(rows, inst, normalize.Options{
		DateFormat: dateFormat,
		StartDate:  startDate,
	}, log)

	log.Info().Int("rows", len(rows)).Int("transactions", len(txs)).Msg("conversion completed")
	return txs, nil
}

// Convert runs the full pipeline and returns the serialized ledger CSV along
// with the number of transactions it contains.
func (c *Converter) Convert(ctx context.Context, data []byte, filename, bankKey, dateFormat, startDate string, opts export.Options) (string, int, error) {
	txs, err := c.Parse(ctx, data, filename, bankKey, dateFormat, startDate)
	if err != nil {
		return "", 0, err
	}
	records := export.ToLedgerRecords(txs, opts)
	return export.Serialize(records), len(records), nil
}

// runLogger scopes a logger to one conversion run, preferring a logger
// carried in the context.
func (c *Converter) runLogger(ctx context.Context, bankKey, filename string) zerolog.Logger {
	log := c.log
	if ctxLog, ok := ctx.Value(logger.LoggerKey).(zerolog.Logger); ok {
		log = ctxLog
	}
	return log.With().
		Str("run_id", uuid.NewString()).
		Str("bank", bankKey).
		Str("file", filename).
		Logger()
}
