package ingest

import "strings"

// Row is one parsed statement line keyed by the original column headers.
// Header order is preserved so case-folded lookups stay deterministic when
// two headers differ only in capitalization.
type Row struct {
	headers []string
	cells   map[string]string
}

// NewRow builds a row from a header line and a value line. Values beyond the
// header width are dropped; missing trailing values read as empty.
func NewRow(headers, values []string) Row {
	cells := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(values) {
			cells[h] = strings.TrimSpace(values[i])
		} else {
			cells[h] = ""
		}
	}
	return Row{headers: headers, cells: cells}
}

// Get resolves a configured field name against the row's actual headers:
// exact match first, then a case-folded scan. Institutions vary header
// capitalization across export versions.
func (r Row) Get(field string) string {
	if field == "" {
		return ""
	}
	if v, ok := r.cells[field]; ok {
		return v
	}
	for _, h := range r.headers {
		if strings.EqualFold(h, field) {
			return r.cells[h]
		}
	}
	return ""
}

// Headers returns the row's column headers in their original order.
func (r Row) Headers() []string {
	return r.headers
}
