// Package headcount reconstructs month-end rosters from the current
// headcount and the exits log. For every month between the earliest
// start date on record and one month past the latest current hire, it
// emits one row per employee active at that month's end.
package headcount

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"peoplecli/pkg/contracts/domain"
)

// Tenure range labels for the historical roster, measured at the end
// of each month.
const (
	Tenure1To30Days      = "1-30 days"
	Tenure1To3Months     = "1-3 months"
	Tenure3To6Months     = "3-6 months"
	Tenure6MonthsTo1Year = "6 months-1 year"
	Tenure1To5Years      = "1-5 years"
	Tenure5PlusYears     = "5+ years"
)

// Status values distinguishing still-active employees from those who
// later exited.
const (
	StatusActive      = "Active"
	StatusLaterExited = "Active (Later Exited)"
)

// Stats summarizes one reconstruction run.
type Stats struct {
	MonthCount    int
	RecordCount   int
	FirstMonth    string
	LastMonth     string
	CurrentCount  int
	ExitCount     int
	SkippedNoDate int
}

// Result carries the reconstructed roster plus run statistics.
type Result struct {
	Records []domain.HeadcountRecord
	Stats   Stats
}

// Builder reconstructs historical month-end rosters.
type Builder struct {
	logger *slog.Logger
}

// NewBuilder creates a builder.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger}
}

// Build walks every month from the earliest start date to one month
// past the latest current hire and records each employee active at the
// month's end. Rows sort by year, month, then employee name. Employees
// without a start date cannot be placed and are skipped with a count.
func (b *Builder) Build(ctx context.Context, current []domain.Employee, exits []domain.ExitRecord) Result {
	result := Result{Stats: Stats{
		CurrentCount: len(current),
		ExitCount:    len(exits),
	}}

	earliest, latest, ok := dateSpan(current, exits)
	if !ok {
		b.logger.WarnContext(ctx, "No dated employees, nothing to reconstruct")
		return result
	}

	// One month past the latest current hire so their first full month
	// is covered.
	first := time.Date(earliest.Year(), earliest.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(latest.Year(), latest.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	b.logger.InfoContext(ctx, "Reconstructing historical headcount",
		slog.Int("current", len(current)),
		slog.Int("exits", len(exits)),
		slog.String("first_month", monthName(first)),
		slog.String("last_month", monthName(last)))

	for month := first; !month.After(last); month = month.AddDate(0, 1, 0) {
		monthEnd := month.AddDate(0, 1, -1)
		result.Stats.MonthCount++

		for _, emp := range current {
			if emp.StartDate.IsZero() {
				continue
			}
			if emp.StartDate.After(monthEnd) {
				continue
			}
			result.Records = append(result.Records, monthRecord(month, monthEnd,
				emp.Name, emp.StartDate, emp.Department, emp.Org, emp.Manager,
				emp.LevelDistinction, emp.Country, StatusActive))
		}

		for _, exit := range exits {
			if exit.StartDate.IsZero() || exit.LastDate.IsZero() {
				continue
			}
			// Active through this month end: started on or before it and
			// left strictly after it.
			if exit.StartDate.After(monthEnd) || !exit.LastDate.After(monthEnd) {
				continue
			}
			result.Records = append(result.Records, monthRecord(month, monthEnd,
				exit.Name, exit.StartDate, exit.Department, exit.Org, exit.Manager,
				exit.LevelDistinction, exit.Country, StatusLaterExited))
		}
	}

	result.Stats.SkippedNoDate = countUndated(current, exits)
	result.Stats.RecordCount = len(result.Records)
	result.Stats.FirstMonth = monthName(first)
	result.Stats.LastMonth = monthName(last)

	sort.SliceStable(result.Records, func(i, j int) bool {
		a, b := result.Records[i], result.Records[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.MonthNumber != b.MonthNumber {
			return a.MonthNumber < b.MonthNumber
		}
		return a.Name < b.Name
	})

	b.logger.InfoContext(ctx, "Historical headcount reconstructed",
		slog.Int("months", result.Stats.MonthCount),
		slog.Int("records", result.Stats.RecordCount),
		slog.Int("skipped_no_date", result.Stats.SkippedNoDate))

	return result
}

// monthRecord assembles one employee-month row.
func monthRecord(month, monthEnd time.Time, name string, start domain.Date,
	department, org, manager, levelDistinction, country, status string) domain.HeadcountRecord {

	tenureDays := int(monthEnd.Sub(start.Time).Hours() / 24)
	return domain.HeadcountRecord{
		Name:             name,
		Month:            monthName(month),
		Year:             month.Year(),
		MonthNumber:      int(month.Month()),
		StartDate:        start,
		TenureDays:       tenureDays,
		TenureRange:      TenureRangeAt(tenureDays),
		Department:       department,
		Org:              org,
		Manager:          manager,
		LevelDistinction: levelDistinction,
		Country:          country,
		Status:           status,
	}
}

// TenureRangeAt buckets a tenure measured in days.
func TenureRangeAt(days int) string {
	switch {
	case days <= 30:
		return Tenure1To30Days
	case days <= 90:
		return Tenure1To3Months
	case days <= 180:
		return Tenure3To6Months
	case days <= 365:
		return Tenure6MonthsTo1Year
	case days <= 1825:
		return Tenure1To5Years
	default:
		return Tenure5PlusYears
	}
}

// monthName formats a month as "January 2025".
func monthName(t time.Time) string {
	return fmt.Sprintf("%s %d", t.Month().String(), t.Year())
}

// dateSpan finds the earliest start date across both inputs and the
// latest start date among current employees.
func dateSpan(current []domain.Employee, exits []domain.ExitRecord) (earliest, latest time.Time, ok bool) {
	for _, emp := range current {
		if emp.StartDate.IsZero() {
			continue
		}
		if earliest.IsZero() || emp.StartDate.Before(earliest) {
			earliest = emp.StartDate.Time
		}
		if latest.IsZero() || emp.StartDate.After(latest) {
			latest = emp.StartDate.Time
		}
	}
	for _, exit := range exits {
		if exit.StartDate.IsZero() {
			continue
		}
		if earliest.IsZero() || exit.StartDate.Before(earliest) {
			earliest = exit.StartDate.Time
		}
	}
	return earliest, latest, !earliest.IsZero() && !latest.IsZero()
}

// countUndated counts inputs that could not be placed in any month.
func countUndated(current []domain.Employee, exits []domain.ExitRecord) int {
	n := 0
	for _, emp := range current {
		if emp.StartDate.IsZero() {
			n++
		}
	}
	for _, exit := range exits {
		if exit.StartDate.IsZero() || exit.LastDate.IsZero() {
			n++
		}
	}
	return n
}
