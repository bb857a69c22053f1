package app

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peoplecli/internal/config"
	"peoplecli/internal/exporter"
	"peoplecli/pkg/contracts/domain"
)

func testPaths(t *testing.T) *config.Paths {
	t.Helper()
	paths, err := config.GetPaths(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirectories())
	return paths
}

func writeTestCSV(t *testing.T, path string, records interface{}) {
	t.Helper()
	require.NoError(t, exporter.NewCSVWriter(nil).WriteRecords(path, records, csvOptions))
}

func TestCleanStage_EndToEnd(t *testing.T) {
	paths := testPaths(t)

	factor := 1.0
	writeTestCSV(t, paths.CandidatesCSV, []domain.CandidateRecord{{
		Name:            "Candidate 1",
		Date:            domain.NewDate(2025, 1, 10),
		Location:        "United States",
		RoleType:        "Tech",
		HighPotential:   "No",
		CompType:        "Cash+Equity",
		CurrentLevel:    "L4 (Senior)",
		PaybandCategory: "Engineering",
		CurrentBase:     "290000",
		GeoFactor:       &factor,
	}})
	writeTestCSV(t, paths.GeoFactorsCSV, []domain.GeoFactor{
		{Country: "United States", Region: "US", TechFactor: 1.0, NonTechFactor: 1.0},
	})
	writeTestCSV(t, paths.PaybandsCSV, []domain.PaybandEntry{
		{CompID: 1, RoleCategory: "Engineering", LevelID: 4, LevelCode: "L4",
			SeniorityID: 2, Seniority: "Seasoned", CashBase: 300000, EquityValue: 100000},
	})

	stage := CleanStage(nil, config.CleaningConfig{PaybandSeniority: "Seasoned", VarianceTolerance: 0.01}, paths)
	require.NoError(t, stage.Run(context.Background()))

	var complete []domain.EnrichedRecord
	require.NoError(t, exporter.ReadRecords(paths.CompleteRecordsCSV, &complete))
	require.Len(t, complete, 1)
	require.NotNil(t, complete[0].Variance)
	assert.InDelta(t, -10000, *complete[0].Variance, 0.01)

	reportText, err := os.ReadFile(paths.CleaningReportTXT)
	require.NoError(t, err)
	assert.Contains(t, string(reportText), "Complete Records: 1")
}

func TestCleanStage_MissingInputFails(t *testing.T) {
	paths := testPaths(t)
	stage := CleanStage(nil, config.CleaningConfig{}, paths)
	assert.Error(t, stage.Run(context.Background()))
}

func TestActiveCompStage_EndToEnd(t *testing.T) {
	paths := testPaths(t)

	writeTestCSV(t, paths.HeadcountCSV, []domain.Employee{{
		Name:             "Employee 1",
		Country:          "United States",
		StartDate:        domain.NewDate(2024, 1, 1),
		LevelDistinction: "L4 Seasoned",
		PaybandGranular:  "Engineering",
	}})
	writeTestCSV(t, paths.PaybandsCSV, []domain.PaybandEntry{
		{CompID: 1, RoleCategory: "Engineering", LevelID: 4, LevelCode: "L4",
			SeniorityID: 2, Seniority: "Seasoned", CashBase: 300000, EquityValue: 100000},
	})
	writeTestCSV(t, paths.GeoFactorsCSV, []domain.GeoFactor{
		{Country: "United States", Region: "US", TechFactor: 1.0, NonTechFactor: 1.0},
	})

	stage := ActiveCompStage(nil, paths)
	require.NoError(t, stage.Run(context.Background()))

	var records []domain.ActiveCompRecord
	require.NoError(t, exporter.ReadRecords(paths.ActiveCompCSV, &records))
	require.Len(t, records, 1)
	assert.Equal(t, domain.MatchStatusMatched, records[0].MatchStatus)
	require.NotNil(t, records[0].TargetBase)
	assert.InDelta(t, 300000, *records[0].TargetBase, 0.01)
}

func TestHeadcountStage_EndToEnd(t *testing.T) {
	paths := testPaths(t)

	writeTestCSV(t, paths.HeadcountCSV, []domain.Employee{{
		Name:      "Employee 1",
		StartDate: domain.NewDate(2025, 1, 15),
	}})
	writeTestCSV(t, paths.ExitsCSV, []domain.ExitRecord{})

	stage := HeadcountStage(nil, paths)
	require.NoError(t, stage.Run(context.Background()))

	var records []domain.HeadcountRecord
	require.NoError(t, exporter.ReadRecords(paths.HistoricalHeadcountCSV, &records))
	// January plus the one-month buffer.
	require.Len(t, records, 2)
	assert.Equal(t, "January 2025", records[0].Month)
	assert.Equal(t, "February 2025", records[1].Month)
}

func TestReportStage_RebuildsFromPartitions(t *testing.T) {
	paths := testPaths(t)

	variance := -10000.0
	target := 300000.0
	writeTestCSV(t, paths.CompleteRecordsCSV, []domain.EnrichedRecord{{
		CandidateRecord: domain.CandidateRecord{
			Name: "Candidate 1", Location: "United States", RoleType: "Tech",
		},
		TargetCash: &target,
		Variance:   &variance,
	}})
	writeTestCSV(t, paths.IncompleteRecordsCSV, []domain.EnrichedRecord{{
		CandidateRecord: domain.CandidateRecord{
			Name: "Candidate 2", Location: domain.UnknownLocation,
		},
		GapReasons: "location",
	}})

	stage := ReportStage(nil, paths)
	require.NoError(t, stage.Run(context.Background()))

	reportText, err := os.ReadFile(paths.CleaningReportTXT)
	require.NoError(t, err)
	assert.Contains(t, string(reportText), "Input Records: 2")
	assert.Contains(t, string(reportText), "Completion Rate: 50.0%")
	assert.Contains(t, string(reportText), "Blank locations set to Unknown: 1")
}

func TestDeriveStats(t *testing.T) {
	target := 1.0
	complete := []domain.EnrichedRecord{{TargetCash: &target, Variance: &target}}
	incomplete := []domain.EnrichedRecord{{
		CandidateRecord: domain.CandidateRecord{Location: domain.UnknownLocation},
		GapReasons:      "location, payband_match",
	}}

	stats := deriveStats(complete, incomplete)

	assert.Equal(t, 2, stats.InputCount)
	assert.Equal(t, 1, stats.TargetCalculated)
	assert.Equal(t, 1, stats.VarianceCalculated)
	assert.Equal(t, 1, stats.UnknownLocationCount)
	assert.Equal(t, 1, stats.NoPaybandMatch)
}
