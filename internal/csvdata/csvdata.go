// Package csvdata reads delimited text files into ordered, header-keyed
// records for the merge engine.
//
// The first row is treated as the header; every following row becomes a map
// from cleaned column name to cell value, preserving source order. Common
// spreadsheet-export artifacts are handled up front: UTF-8 byte order marks,
// Excel formula-wrapped values (="..."), and stray surrounding quotes or
// whitespace in headers.
package csvdata

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Record is one parsed data row, keyed by cleaned header name.
type Record map[string]string

// Parse reads CSV data from r into ordered records. The returned slice is
// empty (nil) when the input holds a header but no data rows, or nothing at
// all; the caller decides whether that is an error.
//
// Rows with fewer cells than the header keep only the cells present; rows
// with extra cells have the extras dropped, matching how header-keyed
// readers commonly behave. Fully empty rows are skipped.
func Parse(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(skipBOM(r))
	cr.FieldsPerRecord = -1 // ragged rows handled below

	raw, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	header := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		header[i] = CleanHeader(h)
	}

	var records []Record
	for _, row := range raw[1:] {
		if isEmptyRow(row) {
			continue
		}

		rec := make(Record, len(header))
		for i, name := range header {
			if i >= len(row) {
				break
			}
			rec[name] = CleanCell(row[i])
		}
		records = append(records, rec)
	}

	return records, nil
}

// CleanHeader normalizes a header cell: BOM remnants, surrounding quotes and
// whitespace, and Excel ="..." formula wrappers are stripped.
func CleanHeader(s string) string {
	return CleanCell(strings.TrimPrefix(s, "\ufeff"))
}

// CleanCell strips Excel formula wrappers (="value") and surrounding
// whitespace from a cell value. Interior content is untouched.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		s = s[2 : len(s)-1]
	}
	return s
}

// isEmptyRow reports whether every cell is blank after trimming.
func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// skipBOM returns a reader with a leading UTF-8 byte order mark removed.
// Windows spreadsheet exports routinely carry one, and encoding/csv would
// otherwise fold it into the first header name.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(3); err == nil && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		br.Discard(3)
	}
	return br
}
