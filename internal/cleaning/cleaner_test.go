package cleaning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peoplecli/internal/config"
	"peoplecli/pkg/contracts/domain"
)

func testGeoFactors() []domain.GeoFactor {
	return []domain.GeoFactor{
		{Country: "United States", Region: "US", TechFactor: 1.0, NonTechFactor: 1.0},
		{Country: "Chile", Region: "Non US", TechFactor: 0.65, NonTechFactor: 0.55},
		{Country: "Spain", Region: "Non US", TechFactor: 0.75, NonTechFactor: 0.70},
	}
}

func testPaybands() []domain.PaybandEntry {
	return []domain.PaybandEntry{
		{CompID: 1, RoleCategory: "Engineering", LevelID: 4, LevelCode: "L4",
			SeniorityID: 2, Seniority: "Seasoned", CashBase: 300000, EquityValue: 100000},
		{CompID: 2, RoleCategory: "Engineering", LevelID: 5, LevelCode: "L5",
			SeniorityID: 2, Seniority: "Seasoned", CashBase: 360000, EquityValue: 140000},
		{CompID: 3, RoleCategory: "Engineering", LevelID: 4, LevelCode: "L4",
			SeniorityID: 1, Seniority: "Early", CashBase: 250000, EquityValue: 80000},
		{CompID: 4, RoleCategory: "Operations", LevelID: 3, LevelCode: "L3",
			SeniorityID: 2, Seniority: "Seasoned", CashBase: 140000, EquityValue: 30000},
	}
}

func completeCandidate(name string) domain.CandidateRecord {
	return domain.CandidateRecord{
		Name:            name,
		Date:            domain.NewDate(2025, 1, 10),
		Location:        "United States",
		RoleType:        "Tech",
		HighPotential:   "No",
		CompType:        "Cash+Equity",
		CurrentLevel:    "L4 (Senior)",
		TargetLevel:     "L4 (Senior)",
		PaybandCategory: "Engineering",
		CurrentBase:     "300000",
	}
}

func newTestCleaner() *Cleaner {
	return NewCleaner(nil, config.CleaningConfig{PaybandSeniority: "Seasoned", VarianceTolerance: 0.01})
}

func TestClean_VarianceFormula(t *testing.T) {
	// Base 300000 against payband base 300000 at factor 1.0.
	result := newTestCleaner().Clean(context.Background(),
		[]domain.CandidateRecord{completeCandidate("Candidate 1")},
		testGeoFactors(), testPaybands())

	require.Len(t, result.Complete, 1)
	require.Empty(t, result.Incomplete)

	rec := result.Complete[0]
	require.NotNil(t, rec.TargetCash)
	assert.InDelta(t, 300000, *rec.TargetCash, 0.01)
	require.NotNil(t, rec.Variance)
	assert.InDelta(t, 0, *rec.Variance, 0.01)
	require.NotNil(t, rec.TargetEquity)
	assert.InDelta(t, 100000, *rec.TargetEquity, 0.01)
}

func TestClean_GeoAdjustedVariance(t *testing.T) {
	cand := completeCandidate("Candidate 2")
	cand.Location = "Chile"
	cand.CurrentBase = "170000"

	result := newTestCleaner().Clean(context.Background(),
		[]domain.CandidateRecord{cand}, testGeoFactors(), testPaybands())

	require.Len(t, result.Complete, 1)
	rec := result.Complete[0]

	// Target = 300000 * 0.65; variance = current - target.
	require.NotNil(t, rec.TargetCash)
	assert.InDelta(t, 195000, *rec.TargetCash, 0.01)
	require.NotNil(t, rec.Variance)
	assert.InDelta(t, 170000-195000, *rec.Variance, 0.01)
	require.NotNil(t, rec.GeoFactor)
	assert.InDelta(t, 0.65, *rec.GeoFactor, 1e-9)
}

func TestClean_NonTechUsesNonTechFactor(t *testing.T) {
	cand := completeCandidate("Candidate 3")
	cand.Location = "Chile"
	cand.RoleType = "Non-Tech"
	cand.PaybandCategory = "Operations"
	cand.CurrentLevel = "L3"
	cand.TargetLevel = ""

	result := newTestCleaner().Clean(context.Background(),
		[]domain.CandidateRecord{cand}, testGeoFactors(), testPaybands())

	require.Len(t, result.Complete, 1)
	rec := result.Complete[0]
	require.NotNil(t, rec.GeoFactor)
	assert.InDelta(t, 0.55, *rec.GeoFactor, 1e-9)
	require.NotNil(t, rec.TargetCash)
	assert.InDelta(t, 140000*0.55, *rec.TargetCash, 0.01)
	assert.Nil(t, rec.TargetLevelCash)
}

func TestClean_PartitionProperty(t *testing.T) {
	blankLocation := completeCandidate("Candidate 4")
	blankLocation.Location = ""

	noHighPotential := completeCandidate("Candidate 5")
	noHighPotential.HighPotential = ""

	candidates := []domain.CandidateRecord{
		completeCandidate("Candidate 1"),
		completeCandidate("Candidate 2"),
		blankLocation,
		noHighPotential,
	}

	result := newTestCleaner().Clean(context.Background(),
		candidates, testGeoFactors(), testPaybands())

	// Every input row lands in exactly one partition.
	assert.Equal(t, len(candidates), len(result.Complete)+len(result.Incomplete))
	assert.Equal(t, 2, result.Stats.CompleteCount)
	assert.Equal(t, 2, result.Stats.IncompleteCount)

	seen := make(map[string]int)
	for _, r := range result.Complete {
		seen[r.Name]++
	}
	for _, r := range result.Incomplete {
		seen[r.Name]++
	}
	for name, count := range seen {
		assert.Equal(t, 1, count, name)
	}
}

func TestClean_BlankLocationIncomplete(t *testing.T) {
	// Blank location routes to incomplete regardless of other fields.
	cand := completeCandidate("Candidate 6")
	cand.Location = ""

	result := newTestCleaner().Clean(context.Background(),
		[]domain.CandidateRecord{cand}, testGeoFactors(), testPaybands())

	require.Empty(t, result.Complete)
	require.Len(t, result.Incomplete, 1)

	rec := result.Incomplete[0]
	assert.Equal(t, domain.UnknownLocation, rec.Location)
	assert.Contains(t, rec.GapReasons, GapLocation)

	// The averaged geo factor still fills in so the output row is as
	// complete as the data allows.
	require.NotNil(t, rec.GeoFactor)
	assert.InDelta(t, 0.8, *rec.GeoFactor, 1e-9) // mean(1.0, 0.65, 0.75)
	assert.Equal(t, 1, result.Stats.UnknownLocationCount)
}

func TestClean_MissingCountryIncomplete(t *testing.T) {
	// A country absent from the geo table must land in incomplete.
	cand := completeCandidate("Candidate 7")
	cand.Location = "Atlantis"
	cand.GeoFactor = nil

	result := newTestCleaner().Clean(context.Background(),
		[]domain.CandidateRecord{cand}, testGeoFactors(), testPaybands())

	require.Empty(t, result.Complete)
	require.Len(t, result.Incomplete, 1)
	assert.Contains(t, result.Incomplete[0].GapReasons, GapGeoFactor)
	assert.Equal(t, []string{"Atlantis"}, result.Stats.MissingCountries)
}

func TestClean_NoPaybandMatchIncomplete(t *testing.T) {
	cand := completeCandidate("Candidate 8")
	cand.PaybandCategory = "Design"

	result := newTestCleaner().Clean(context.Background(),
		[]domain.CandidateRecord{cand}, testGeoFactors(), testPaybands())

	require.Empty(t, result.Complete)
	require.Len(t, result.Incomplete, 1)
	assert.Contains(t, result.Incomplete[0].GapReasons, GapPaybandMatch)
	assert.Nil(t, result.Incomplete[0].Variance)
}

func TestClean_UnparseableBaseIncomplete(t *testing.T) {
	cand := completeCandidate("Candidate 9")
	cand.CurrentBase = "DNP"

	result := newTestCleaner().Clean(context.Background(),
		[]domain.CandidateRecord{cand}, testGeoFactors(), testPaybands())

	require.Empty(t, result.Complete)
	require.Len(t, result.Incomplete, 1)

	rec := result.Incomplete[0]
	assert.Contains(t, rec.GapReasons, GapCurrentBase)
	// The raw marker survives into the output.
	assert.Equal(t, "DNP", rec.CurrentBase)
	assert.Nil(t, rec.Variance)
	// Targets still derive from the reference tables.
	require.NotNil(t, rec.TargetCash)
	assert.InDelta(t, 300000, *rec.TargetCash, 0.01)
}

func TestClean_GeoFactorRefreshed(t *testing.T) {
	stale := 0.9
	cand := completeCandidate("Candidate 10")
	cand.Location = "Spain"
	cand.GeoFactor = &stale

	result := newTestCleaner().Clean(context.Background(),
		[]domain.CandidateRecord{cand}, testGeoFactors(), testPaybands())

	require.Len(t, result.Complete, 1)
	require.NotNil(t, result.Complete[0].GeoFactor)
	assert.InDelta(t, 0.75, *result.Complete[0].GeoFactor, 1e-9)
	assert.Equal(t, 1, result.Stats.GeoFactorsUpdated)
}

func TestClean_TargetLevelCash(t *testing.T) {
	cand := completeCandidate("Candidate 11")
	cand.TargetLevel = "L5 (Staff)"

	result := newTestCleaner().Clean(context.Background(),
		[]domain.CandidateRecord{cand}, testGeoFactors(), testPaybands())

	require.Len(t, result.Complete, 1)
	rec := result.Complete[0]
	require.NotNil(t, rec.TargetLevelCash)
	assert.InDelta(t, 360000, *rec.TargetLevelCash, 0.01)
	// Current-level target stays on the current level's band.
	require.NotNil(t, rec.TargetCash)
	assert.InDelta(t, 300000, *rec.TargetCash, 0.01)
}

func TestClean_SortsAndNumbersCandidates(t *testing.T) {
	candidates := []domain.CandidateRecord{
		completeCandidate("Candidate 12"),
		completeCandidate("Candidate 3"),
		completeCandidate("Candidate 7"),
	}

	result := newTestCleaner().Clean(context.Background(),
		candidates, testGeoFactors(), testPaybands())

	require.Len(t, result.Complete, 3)
	assert.Equal(t, 3, result.Complete[0].CandidateNumber)
	assert.Equal(t, 7, result.Complete[1].CandidateNumber)
	assert.Equal(t, 12, result.Complete[2].CandidateNumber)
}

func TestClean_Deterministic(t *testing.T) {
	blank := completeCandidate("Candidate 2")
	blank.Location = ""
	candidates := []domain.CandidateRecord{completeCandidate("Candidate 1"), blank}

	a := newTestCleaner().Clean(context.Background(), candidates, testGeoFactors(), testPaybands())
	b := newTestCleaner().Clean(context.Background(), candidates, testGeoFactors(), testPaybands())

	assert.Equal(t, a, b)
}

func TestClean_DoesNotMutateInput(t *testing.T) {
	cand := completeCandidate("Candidate 1")
	cand.Location = ""
	candidates := []domain.CandidateRecord{cand}

	newTestCleaner().Clean(context.Background(), candidates, testGeoFactors(), testPaybands())

	assert.Equal(t, "", candidates[0].Location)
	assert.Equal(t, 0, candidates[0].CandidateNumber)
}
