package ingest

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dvloznov/ledger-converter/internal/config"
	"github.com/dvloznov/ledger-converter/internal/logger"
)

func TestReadRows_CSV(t *testing.T) {
	data := []byte("Date,Description,Amount\n" +
		"01/15/2023,COFFEE,-3.50\n" +
		"01/30/2023,SALARY,1000.00\n")

	rows, err := ReadRows(data, "statement.csv", config.Institution{}, logger.NewWithWriter(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("ReadRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if got := rows[0].Get("Description"); got != "COFFEE" {
		t.Errorf("Description = %q, want COFFEE", got)
	}
	if got := rows[1].Get("Amount"); got != "1000.00" {
		t.Errorf("Amount = %q, want 1000.00", got)
	}
}

func TestReadRows_CSVSkipRows(t *testing.T) {
	data := []byte("Date,Description,Amount\n" +
		"pending summary line,,\n" +
		"01/15/2023,COFFEE,-3.50\n")

	rows, err := ReadRows(data, "statement.csv", config.Institution{SkipRows: 1}, logger.NewWithWriter(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("ReadRows failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if got := rows[0].Get("Description"); got != "COFFEE" {
		t.Errorf("Description = %q, want COFFEE", got)
	}
}

func TestReadRows_CSVMalformedRowLoggedNotFatal(t *testing.T) {
	data := []byte("Date,Description,Amount\n" +
		"01/15/2023,bro\"ken,-3.50\n" +
		"01/30/2023,SALARY,1000.00\n")

	var buf bytes.Buffer
	rows, err := ReadRows(data, "statement.csv", config.Institution{}, logger.NewWithWriter(&buf))
	if err != nil {
		t.Fatalf("ReadRows failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want the one well-formed row", len(rows))
	}
	if got := rows[0].Get("Description"); got != "SALARY" {
		t.Errorf("Description = %q, want SALARY", got)
	}
	if !strings.Contains(buf.String(), "malformed") {
		t.Errorf("expected a malformed-row warning, got: %s", buf.String())
	}
}

func TestReadRows_EmptyCSVRejected(t *testing.T) {
	_, err := ReadRows(nil, "statement.csv", config.Institution{}, logger.NewWithWriter(&bytes.Buffer{}))
	if err == nil {
		t.Fatal("expected an error for an empty file")
	}
}

func TestReadRows_UnsupportedExtension(t *testing.T) {
	for _, name := range []string{"statement.pdf", "statement.txt", "statement"} {
		_, err := ReadRows([]byte("x"), name, config.Institution{}, logger.NewWithWriter(&bytes.Buffer{}))
		if !errors.Is(err, ErrUnsupportedExtension) {
			t.Errorf("%s: error = %v, want ErrUnsupportedExtension", name, err)
		}
	}
}
