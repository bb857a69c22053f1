// Package report aggregates cleaned candidate records into descriptive
// statistics and renders them into a fixed narrative text report. The
// generator is a pure function of its inputs: metrics whose inputs are
// absent render as "no data" instead of aborting the report.
package report

import (
	"math"
	"sort"

	"peoplecli/internal/cleaning"
	"peoplecli/pkg/contracts/domain"
)

// DistStats describes the distribution of one numeric metric.
type DistStats struct {
	Count  int
	Mean   float64
	Median float64
	Min    float64
	Max    float64
	StdDev float64
}

// CategoryCount is one (category, count, share) row of a breakdown.
type CategoryCount struct {
	Name    string
	Count   int
	Percent float64
}

// Summary holds everything the narrative template needs.
type Summary struct {
	InputCount      int
	CompleteCount   int
	IncompleteCount int
	CompletionRate  float64

	DateMin domain.Date
	DateMax domain.Date

	UniqueLocations int
	RoleTypes       []CategoryCount
	Locations       []CategoryCount

	// Variance is nil when no record carried a computable variance.
	Variance *DistStats

	// LevelGap compares target-level cash against current-level target
	// cash; nil when no record carried both.
	LevelGap          *DistStats
	LevelAlignedCount int
	LevelGapCount     int

	Cleaning cleaning.Stats
}

// Summarize computes the report statistics for the complete-record set
// of a cleaning run.
func Summarize(complete []domain.EnrichedRecord, stats cleaning.Stats) Summary {
	s := Summary{
		InputCount:      stats.InputCount,
		CompleteCount:   len(complete),
		IncompleteCount: stats.IncompleteCount,
		Cleaning:        stats,
	}
	if s.InputCount > 0 {
		s.CompletionRate = float64(s.CompleteCount) / float64(s.InputCount) * 100
	}

	locations := make(map[string]int)
	roleTypes := make(map[string]int)
	var variances, levelGaps []float64

	for _, rec := range complete {
		if !rec.Date.IsZero() {
			if s.DateMin.IsZero() || rec.Date.Before(s.DateMin.Time) {
				s.DateMin = rec.Date
			}
			if s.DateMax.IsZero() || rec.Date.After(s.DateMax.Time) {
				s.DateMax = rec.Date
			}
		}
		if rec.Location != "" {
			locations[rec.Location]++
		}
		if rec.RoleType != "" {
			roleTypes[rec.RoleType]++
		}
		if rec.Variance != nil {
			variances = append(variances, *rec.Variance)
		}
		if rec.TargetLevelCash != nil && rec.TargetCash != nil {
			gap := *rec.TargetLevelCash - *rec.TargetCash
			levelGaps = append(levelGaps, gap)
			if math.Abs(gap) < 0.01 {
				s.LevelAlignedCount++
			} else {
				s.LevelGapCount++
			}
		}
	}

	s.UniqueLocations = len(locations)
	s.Locations = toCategoryCounts(locations, len(complete))
	s.RoleTypes = toCategoryCounts(roleTypes, len(complete))
	s.Variance = distStats(variances)
	s.LevelGap = distStats(levelGaps)

	return s
}

// distStats computes distribution statistics, or nil for no data.
func distStats(values []float64) *DistStats {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))

	var sqSum float64
	for _, v := range sorted {
		d := v - mean
		sqSum += d * d
	}
	stdDev := 0.0
	if len(sorted) > 1 {
		stdDev = math.Sqrt(sqSum / float64(len(sorted)-1))
	}

	return &DistStats{
		Count:  len(sorted),
		Mean:   mean,
		Median: median(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		StdDev: stdDev,
	}
}

// median expects a sorted slice.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// toCategoryCounts converts a counter map into rows sorted by
// descending count, then name, so rendering is deterministic.
func toCategoryCounts(m map[string]int, total int) []CategoryCount {
	out := make([]CategoryCount, 0, len(m))
	for name, count := range m {
		pct := 0.0
		if total > 0 {
			pct = float64(count) / float64(total) * 100
		}
		out = append(out, CategoryCount{Name: name, Count: count, Percent: pct})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
