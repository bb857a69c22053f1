package exporter

import (
	"fmt"
)

// FormatFloat formats a float64 value for CSV output with exactly 2
// decimal places, so values like 13.4 appear as 13.40 and repeated
// runs stay byte-identical.
func FormatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// FormatOptionalFloat renders an optional numeric field: empty cell
// for nil.
func FormatOptionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return FormatFloat(*f)
}
