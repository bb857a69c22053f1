package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	apperrors "peoplecli/internal/errors"
	"peoplecli/pkg/contracts/domain"
)

// noData is rendered wherever a metric's inputs were absent.
const noData = "no data"

// Generator renders the cleaning summary report. The clock is
// injectable so tests can pin the generated-at line.
type Generator struct {
	Now func() time.Time
}

// NewGenerator creates a report generator using the wall clock.
func NewGenerator() *Generator {
	return &Generator{Now: time.Now}
}

// Save renders the report for the given summary to outputPath.
func (g *Generator) Save(summary Summary, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return apperrors.NewStorageError("failed to create report directory", err)
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return apperrors.NewStorageError("failed to create report file", err)
	}
	defer file.Close()

	return g.Write(file, summary)
}

// Write renders the report to w.
func (g *Generator) Write(w io.Writer, summary Summary) error {
	// Grouped number formatting ($1,234,567.89) for dollar amounts.
	p := message.NewPrinter(language.English)

	fmt.Fprintf(w, "CANDIDATE COMPENSATION DATA - CLEANING SUMMARY REPORT\n")
	fmt.Fprintf(w, "=====================================================\n\n")
	fmt.Fprintf(w, "Generated: %s\n\n", g.Now().Format("2006-01-02 15:04:05"))

	fmt.Fprintf(w, "OVERVIEW\n")
	fmt.Fprintf(w, "--------\n")
	fmt.Fprintf(w, "Input Records: %d\n", summary.InputCount)
	fmt.Fprintf(w, "Complete Records: %d\n", summary.CompleteCount)
	fmt.Fprintf(w, "Incomplete Records: %d\n", summary.IncompleteCount)
	fmt.Fprintf(w, "Completion Rate: %.1f%%\n\n", summary.CompletionRate)

	fmt.Fprintf(w, "CLEANING OPERATIONS\n")
	fmt.Fprintf(w, "-------------------\n")
	fmt.Fprintf(w, "Dates interpolated: %d\n", summary.Cleaning.DatesInterpolated)
	fmt.Fprintf(w, "Geo factors refreshed: %d\n", summary.Cleaning.GeoFactorsUpdated)
	fmt.Fprintf(w, "Blank locations set to Unknown: %d\n", summary.Cleaning.UnknownLocationCount)
	fmt.Fprintf(w, "Targets derived from paybands: %d\n", summary.Cleaning.TargetCalculated)
	fmt.Fprintf(w, "Variances calculated: %d\n", summary.Cleaning.VarianceCalculated)
	fmt.Fprintf(w, "Rows without payband match: %d\n", summary.Cleaning.NoPaybandMatch)
	if len(summary.Cleaning.MissingCountries) > 0 {
		fmt.Fprintf(w, "Countries missing from geo table: %s\n",
			strings.Join(summary.Cleaning.MissingCountries, ", "))
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "DATASET\n")
	fmt.Fprintf(w, "-------\n")
	fmt.Fprintf(w, "Date Range: %s\n", dateRange(summary.DateMin, summary.DateMax))
	fmt.Fprintf(w, "Unique Locations: %d\n\n", summary.UniqueLocations)

	fmt.Fprintf(w, "ROLE TYPE BREAKDOWN\n")
	fmt.Fprintf(w, "-------------------\n")
	writeBreakdown(w, summary.RoleTypes)
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "LOCATION BREAKDOWN\n")
	fmt.Fprintf(w, "------------------\n")
	writeBreakdown(w, summary.Locations)
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "COMPENSATION VARIANCE (current base - geo-adjusted target)\n")
	fmt.Fprintf(w, "----------------------------------------------------------\n")
	writeDistStats(w, p, summary.Variance)
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "LEVEL ALIGNMENT (target-level cash vs current-level target)\n")
	fmt.Fprintf(w, "-----------------------------------------------------------\n")
	if summary.LevelGap == nil {
		fmt.Fprintf(w, "%s\n", noData)
	} else {
		fmt.Fprintf(w, "Candidates already at target level: %d\n", summary.LevelAlignedCount)
		fmt.Fprintf(w, "Candidates with level gap: %d\n", summary.LevelGapCount)
		writeDistStats(w, p, summary.LevelGap)
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "KEY INSIGHTS\n")
	fmt.Fprintf(w, "------------\n")
	fmt.Fprintf(w, "1. Data completeness: %.1f%% of input records (%d/%d) passed the completeness check\n",
		summary.CompletionRate, summary.CompleteCount, summary.InputCount)
	if summary.Variance != nil {
		fmt.Fprintf(w, "2. Compensation gap: average %s between current base and geo-adjusted target\n",
			p.Sprintf("$%.0f", summary.Variance.Mean))
	} else {
		fmt.Fprintf(w, "2. Compensation gap: %s\n", noData)
	}
	if summary.LevelGap != nil && summary.CompleteCount > 0 {
		alignRate := float64(summary.LevelAlignedCount) / float64(summary.CompleteCount) * 100
		fmt.Fprintf(w, "3. Level alignment: %.1f%% of candidates (%d/%d) are already at their target level\n",
			alignRate, summary.LevelAlignedCount, summary.CompleteCount)
	} else {
		fmt.Fprintf(w, "3. Level alignment: %s\n", noData)
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "RECOMMENDATIONS\n")
	fmt.Fprintf(w, "---------------\n")
	fmt.Fprintf(w, "1. Review the incomplete-records file to determine whether missing data can be obtained\n")
	fmt.Fprintf(w, "2. Investigate candidates with a level gap for promotion planning\n")
	fmt.Fprintf(w, "3. Analyze compensation variance for budget planning and equity adjustments\n")

	return nil
}

// writeBreakdown renders a category breakdown, or "no data".
func writeBreakdown(w io.Writer, rows []CategoryCount) {
	if len(rows) == 0 {
		fmt.Fprintf(w, "%s\n", noData)
		return
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s: %d (%.1f%%)\n", row.Name, row.Count, row.Percent)
	}
}

// writeDistStats renders distribution statistics, or "no data".
func writeDistStats(w io.Writer, p *message.Printer, stats *DistStats) {
	if stats == nil {
		fmt.Fprintf(w, "%s\n", noData)
		return
	}
	fmt.Fprintf(w, "Records: %d\n", stats.Count)
	fmt.Fprintf(w, "Mean: %s\n", p.Sprintf("$%.2f", stats.Mean))
	fmt.Fprintf(w, "Median: %s\n", p.Sprintf("$%.2f", stats.Median))
	fmt.Fprintf(w, "Min: %s\n", p.Sprintf("$%.2f", stats.Min))
	fmt.Fprintf(w, "Max: %s\n", p.Sprintf("$%.2f", stats.Max))
	fmt.Fprintf(w, "Std Dev: %s\n", p.Sprintf("$%.2f", stats.StdDev))
}

// dateRange formats the dataset's date span, or "no data".
func dateRange(min, max domain.Date) string {
	if min.IsZero() || max.IsZero() {
		return noData
	}
	return fmt.Sprintf("%s to %s", min.Format(domain.DateFormat), max.Format(domain.DateFormat))
}
