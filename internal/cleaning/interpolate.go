package cleaning

import (
	"time"

	"peoplecli/pkg/contracts/domain"
)

// InterpolateDates fills missing dates in candidate-number order.
// Interior gaps are filled linearly in time between the surrounding
// known dates; gaps after the last known date repeat it; gaps before
// the first known date stay blank. The date is the only field the
// pipeline interpolates - compensation gaps are never guessed.
// Returns the number of dates filled.
func InterpolateDates(records []domain.CandidateRecord) int {
	known := make([]int, 0, len(records))
	for i, r := range records {
		if !r.Date.IsZero() {
			known = append(known, i)
		}
	}
	if len(known) == 0 {
		return 0
	}

	filled := 0

	// Interior gaps: linear between neighboring known dates.
	for k := 0; k+1 < len(known); k++ {
		lo, hi := known[k], known[k+1]
		if hi-lo <= 1 {
			continue
		}
		start := records[lo].Date.Time
		span := records[hi].Date.Sub(start)
		steps := hi - lo
		for i := lo + 1; i < hi; i++ {
			frac := float64(i-lo) / float64(steps)
			t := start.Add(time.Duration(frac * float64(span))).Truncate(24 * time.Hour)
			records[i].Date = domain.Date{Time: t}
			filled++
		}
	}

	// Trailing gap: repeat the last known date.
	last := known[len(known)-1]
	for i := last + 1; i < len(records); i++ {
		records[i].Date = records[last].Date
		filled++
	}

	return filled
}
