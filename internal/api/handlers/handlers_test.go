package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dvloznov/ledger-converter/internal/config"
	"github.com/dvloznov/ledger-converter/internal/pipeline"
)

func newTestHandler() *ConvertHandler {
	converter := pipeline.New(config.DefaultRegistry(), zerolog.Nop())
	return NewConvertHandler(converter, zerolog.Nop())
}

func multipartRequest(t *testing.T, filename string, fileBody []byte, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write(fileBody)
	for k, v := range fields {
		w.WriteField(k, v)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/convert", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestListBanks(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ListBanks(rec, httptest.NewRequest(http.MethodGet, "/api/banks", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Banks []map[string]string `json:"banks"`
		Count int                 `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Count == 0 || len(body.Banks) != body.Count {
		t.Errorf("unexpected bank listing: %+v", body)
	}
}

func TestConvert_ReturnsCSVDownload(t *testing.T) {
	statement := []byte("Date,Description,Debit,Credit\n01/15/2023,COFFEE,3.50,\n")
	req := multipartRequest(t, "statement.csv", statement, map[string]string{
		"bank":         "td",
		"import_memos": "true",
	})

	rec := httptest.NewRecorder()
	newTestHandler().Convert(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "statement_ledger.csv") {
		t.Errorf("Content-Disposition = %q, want the derived filename", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "Date,Payee,Category,Memo,Outflow,Inflow\n") {
		t.Errorf("body missing ledger header: %s", rec.Body.String())
	}
}

func TestConvert_UnknownBankIsBadRequest(t *testing.T) {
	req := multipartRequest(t, "statement.csv", []byte("Date\n"), map[string]string{"bank": "monopoly"})

	rec := httptest.NewRecorder()
	newTestHandler().Convert(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestConvert_EmptyResultReturnsHint(t *testing.T) {
	statement := []byte("Date,Description,Debit,Credit\n01/15/2023,COFFEE,3.50,\n")
	req := multipartRequest(t, "statement.csv", statement, map[string]string{
		"bank":       "td",
		"start_date": "2024-01-01",
	})

	rec := httptest.NewRecorder()
	newTestHandler().Convert(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Count int    `json:"count"`
		Hint  string `json:"hint"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Count != 0 || body.Hint == "" {
		t.Errorf("expected a zero count with a hint, got %+v", body)
	}
}

func TestConvert_MissingFile(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("bank", "td")
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/convert", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	rec := httptest.NewRecorder()
	newTestHandler().Convert(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
