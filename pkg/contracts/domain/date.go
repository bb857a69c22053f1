package domain

import (
	"strings"
	"time"
)

// DateFormat is the canonical date layout used in all CSV outputs.
const DateFormat = "2006-01-02"

// acceptedDateFormats lists the layouts we tolerate on input. Workbook
// exports are inconsistent: some sheets carry ISO dates, others the
// US short form or Excel's default datetime rendering.
var acceptedDateFormats = []string{
	DateFormat,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"Jan 2, 2006",
}

// Date is a calendar date that marshals to the canonical layout in CSV
// files. The zero value marshals to an empty cell.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a cell value using the accepted layouts. An empty
// cell yields the zero Date with no error.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	var lastErr error
	for _, layout := range acceptedDateFormats {
		t, err := time.Parse(layout, s)
		if err == nil {
			return Date{t}, nil
		}
		lastErr = err
	}
	return Date{}, lastErr
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (d Date) MarshalCSV() (string, error) {
	if d.IsZero() {
		return "", nil
	}
	return d.Format(DateFormat), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (d *Date) UnmarshalCSV(s string) error {
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
