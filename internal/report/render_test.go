package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peoplecli/internal/cleaning"
	"peoplecli/pkg/contracts/domain"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
}

func sampleSummary() Summary {
	complete := []domain.EnrichedRecord{
		enriched("Candidate 1", "United States", "Tech", domain.NewDate(2025, 1, 5), floatPtr(-25000)),
		enriched("Candidate 2", "Chile", "Tech", domain.NewDate(2025, 2, 10), floatPtr(15000)),
	}
	return Summarize(complete, cleaning.Stats{
		InputCount:        3,
		CompleteCount:     2,
		IncompleteCount:   1,
		DatesInterpolated: 1,
		GeoFactorsUpdated: 2,
		MissingCountries:  []string{"Atlantis"},
	})
}

func TestWrite_Sections(t *testing.T) {
	var buf bytes.Buffer
	gen := &Generator{Now: fixedClock()}

	require.NoError(t, gen.Write(&buf, sampleSummary()))
	out := buf.String()

	assert.Contains(t, out, "CANDIDATE COMPENSATION DATA - CLEANING SUMMARY REPORT")
	assert.Contains(t, out, "Generated: 2025-06-01 12:00:00")
	assert.Contains(t, out, "Input Records: 3")
	assert.Contains(t, out, "Complete Records: 2")
	assert.Contains(t, out, "Completion Rate: 66.7%")
	assert.Contains(t, out, "Date Range: 2025-01-05 to 2025-02-10")
	assert.Contains(t, out, "Countries missing from geo table: Atlantis")
	assert.Contains(t, out, "United States: 1 (50.0%)")
	assert.Contains(t, out, "RECOMMENDATIONS")
}

func TestWrite_CurrencyGrouping(t *testing.T) {
	var buf bytes.Buffer
	gen := &Generator{Now: fixedClock()}

	require.NoError(t, gen.Write(&buf, sampleSummary()))

	// Variance values are -25000 and 15000: min carries a thousands
	// separator.
	assert.Contains(t, buf.String(), "Min: $-25,000.00")
	assert.Contains(t, buf.String(), "Max: $15,000.00")
}

func TestWrite_NoDataFallbacks(t *testing.T) {
	var buf bytes.Buffer
	gen := &Generator{Now: fixedClock()}

	empty := Summarize(nil, cleaning.Stats{InputCount: 4, IncompleteCount: 4})
	require.NoError(t, gen.Write(&buf, empty))
	out := buf.String()

	assert.Contains(t, out, "Date Range: no data")
	assert.Contains(t, out, "2. Compensation gap: no data")
	assert.Contains(t, out, "3. Level alignment: no data")
}

func TestWrite_Deterministic(t *testing.T) {
	gen := &Generator{Now: fixedClock()}
	summary := sampleSummary()

	var a, b bytes.Buffer
	require.NoError(t, gen.Write(&a, summary))
	require.NoError(t, gen.Write(&b, summary))

	assert.Equal(t, a.String(), b.String())
}

func TestSave_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "cleaning.txt")
	gen := &Generator{Now: fixedClock()}

	require.NoError(t, gen.Save(sampleSummary(), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "OVERVIEW")
}
