// Package handlers implements the HTTP surface of the converter. It is a
// thin I/O shell: file bytes in, ledger CSV out, no conversion logic.
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dvloznov/ledger-converter/internal/api/middleware"
	"github.com/dvloznov/ledger-converter/internal/config"
	"github.com/dvloznov/ledger-converter/internal/export"
	"github.com/dvloznov/ledger-converter/internal/ingest"
	"github.com/dvloznov/ledger-converter/internal/pipeline"
)

// maxUploadBytes caps statement uploads at 32 MiB.
const maxUploadBytes = 32 << 20

// ConvertHandler handles conversion endpoints.
type ConvertHandler struct {
	converter *pipeline.Converter
	log       zerolog.Logger
}

// NewConvertHandler creates a new conversion handler.
func NewConvertHandler(converter *pipeline.Converter, log zerolog.Logger) *ConvertHandler {
	return &ConvertHandler{converter: converter, log: log}
}

// ListBanks handles GET /api/banks
func (h *ConvertHandler) ListBanks(w http.ResponseWriter, r *http.Request) {
	registry := h.converter.Registry()

	banks := make([]map[string]string, 0, len(registry))
	for _, key := range registry.Keys() {
		banks = append(banks, map[string]string{
			"key":   key,
			"label": registry[key].Label,
		})
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"banks": banks,
		"count": len(banks),
	})
}

// Convert handles POST /api/convert. It accepts a multipart form with the
// statement under "file" and the conversion options as form fields, and
// responds with the ledger CSV as a download.
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "A statement file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read upload")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to read upload")
		return
	}

	bankKey := r.FormValue("bank")
	if bankKey == "" {
		middleware.WriteError(w, http.StatusBadRequest, "A bank key is required")
		return
	}

	opts := export.Options{
		ImportMemos:      r.FormValue("import_memos") == "true",
		SwapPayeesMemos:  r.FormValue("swap_payees_memos") == "true",
		OutputDateFormat: r.FormValue("output_date_format"),
	}

	csvText, count, err := h.converter.Convert(
		r.Context(),
		data,
		fileHeader.Filename,
		bankKey,
		r.FormValue("date_format"),
		r.FormValue("start_date"),
		opts,
	)
	if err != nil {
		// Configuration errors are the caller's fault; decode errors mean
		// the file itself could not be processed.
		status := http.StatusUnprocessableEntity
		var unknownInst *config.UnknownInstitutionError
		if errors.Is(err, ingest.ErrUnsupportedExtension) || errors.As(err, &unknownInst) {
			status = http.StatusBadRequest
		}
		middleware.WriteError(w, status, err.Error())
		return
	}

	if count == 0 {
		// Parsed fine but nothing survived; the front end shows this hint
		// instead of offering an empty download.
		middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"count": 0,
			"hint":  "No transactions found. Check the selected bank, the date format and the start date filter.",
		})
		return
	}

	base := strings.TrimSuffix(fileHeader.Filename, filepath.Ext(fileHeader.Filename))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", base+"_ledger.csv"))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, csvText)
}
