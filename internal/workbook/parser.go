// Package workbook reads the HR source workbook with excelize and
// turns its sheets into normalized domain records. Sheet and header
// names are matched loosely: spreadsheet exports pad headers with
// whitespace and embed newlines, so lookups normalize before
// comparing. A missing sheet or a missing required header is fatal for
// the extraction run.
package workbook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "peoplecli/internal/errors"
)

// Reader wraps an open workbook file.
type Reader struct {
	file *excelize.File
	path string
}

// Open opens the workbook at path.
func Open(path string) (*Reader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewNotFoundError(
			fmt.Sprintf("failed to open workbook %s", path), err)
	}
	return &Reader{file: f, path: path}, nil
}

// OpenFile wraps an already-open excelize file. Used by tests that
// build workbooks in memory.
func OpenFile(f *excelize.File) *Reader {
	return &Reader{file: f}
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// sheetRows returns all rows of the named sheet. Sheet names are
// matched exactly first and then with trimmed whitespace, since
// exports sometimes carry trailing spaces in sheet names.
func (r *Reader) sheetRows(name string) ([][]string, error) {
	rows, err := r.file.GetRows(name)
	if err == nil {
		return rows, nil
	}

	want := strings.TrimSpace(strings.ToLower(name))
	for _, candidate := range r.file.GetSheetList() {
		if strings.TrimSpace(strings.ToLower(candidate)) == want {
			return r.file.GetRows(candidate)
		}
	}

	return nil, apperrors.NewNotFoundError(
		fmt.Sprintf("sheet %q not found in workbook", name), err)
}

// normalizeHeader collapses the whitespace noise spreadsheet exports
// put into header cells: embedded newlines, double spaces, padding.
func normalizeHeader(h string) string {
	h = strings.ReplaceAll(h, "\n", " ")
	fields := strings.Fields(h)
	return strings.ToLower(strings.Join(fields, " "))
}

// findHeaderRow scans the first rows of a sheet for the row containing
// every required header and returns its index plus a header->column
// map. Required names are matched as prefixes of the normalized cell
// so verbose headers like "Geo Factor for tech roles (Including...)"
// can be addressed by their stable prefix.
func findHeaderRow(rows [][]string, required ...string) (int, map[string]int, error) {
	const scanLimit = 10

	for i := 0; i < len(rows) && i < scanLimit; i++ {
		columns := make(map[string]int)
		for j, cell := range rows[i] {
			norm := normalizeHeader(cell)
			if norm == "" {
				continue
			}
			for _, want := range required {
				if _, taken := columns[want]; taken {
					continue
				}
				if strings.HasPrefix(norm, normalizeHeader(want)) {
					columns[want] = j
				}
			}
		}
		if len(columns) == len(required) {
			return i, columns, nil
		}
	}

	return 0, nil, apperrors.NewValidationError(
		fmt.Sprintf("required headers not found: %s", strings.Join(required, ", ")), nil)
}

// optionalColumns maps each present optional header to its column,
// using the same normalized prefix matching as findHeaderRow. Absent
// headers are simply left out of the result.
func optionalColumns(headerRow []string, names ...string) map[string]int {
	found := make(map[string]int)
	for j, c := range headerRow {
		norm := normalizeHeader(c)
		if norm == "" {
			continue
		}
		for _, want := range names {
			if _, taken := found[want]; taken {
				continue
			}
			if strings.HasPrefix(norm, normalizeHeader(want)) {
				found[want] = j
			}
		}
	}
	return found
}

// cell returns the trimmed value at column idx, or empty string when
// the row is shorter than idx (excelize drops trailing empty cells).
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseFloat parses a spreadsheet numeric cell, tolerating currency
// formatting ("$1,234.50").
func parseFloat(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(s), "$"), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseOptionalFloat returns a pointer for optional numeric columns:
// nil when the cell is blank or non-numeric.
func parseOptionalFloat(s string) *float64 {
	if v, ok := parseFloat(s); ok {
		return &v
	}
	return nil
}

// parseInt parses an integer cell, tolerating currency formatting and
// decimal renderings of whole numbers ("300000.0").
func parseInt(s string) (int64, bool) {
	v, ok := parseFloat(s)
	if !ok {
		return 0, false
	}
	return int64(v), true
}

// isBlankRow reports whether every cell of the row is empty.
func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
