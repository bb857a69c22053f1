package workbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"peoplecli/internal/config"
	apperrors "peoplecli/internal/errors"
	"peoplecli/pkg/contracts/domain"
)

// buildWorkbook assembles an in-memory workbook with the given sheets,
// each sheet a slice of rows.
func buildWorkbook(t *testing.T, sheets map[string][][]interface{}) *Reader {
	t.Helper()

	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cellRef, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cellRef, &row))
		}
	}

	t.Cleanup(func() { f.Close() })
	return OpenFile(f)
}

func candidateHeader() []interface{} {
	return []interface{}{
		"Candidate Name + GH URL", "Date", "Location",
		"Tech/Non-Tech/Quota Carrying", "High Potential?", "Geo Factor",
		"Comp Type", "Current Level", "Target Level", "Final Pay Band",
		"$ Base Comp", "Current Equity",
	}
}

func TestCandidates(t *testing.T) {
	r := buildWorkbook(t, map[string][][]interface{}{
		config.SheetCandidates: {
			candidateHeader(),
			{"Candidate 1", "2025-01-15", "United States", "Tech", "Yes", "1.0",
				"Cash+Equity", "L4 (Senior)", "L4 (Senior)", "Engineering", "300000", "50000"},
			{"Candidate 2", "", "", "Non-Tech", "", "",
				"Cash", "L3", "", "Operations", "DNP", ""},
			{"", "", "", "", "", "", "", "", "", "", "", ""},
		},
	})

	records, err := r.Candidates()
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Candidate 1", first.Name)
	assert.Equal(t, "United States", first.Location)
	assert.Equal(t, "L4 (Senior)", first.CurrentLevel)
	assert.Equal(t, "Engineering", first.PaybandCategory)
	require.NotNil(t, first.GeoFactor)
	assert.InDelta(t, 1.0, *first.GeoFactor, 1e-9)
	require.NotNil(t, first.CurrentEquity)
	assert.InDelta(t, 50000, *first.CurrentEquity, 1e-9)
	assert.Equal(t, domain.NewDate(2025, 1, 15), first.Date)

	second := records[1]
	assert.Empty(t, second.Location)
	assert.Nil(t, second.GeoFactor)
	assert.Equal(t, "DNP", second.CurrentBase)
	assert.True(t, second.Date.IsZero())
}

func TestCandidates_MissingHeader(t *testing.T) {
	r := buildWorkbook(t, map[string][][]interface{}{
		config.SheetCandidates: {
			{"Candidate Name + GH URL", "Date", "Location"},
			{"Candidate 1", "2025-01-15", "Chile"},
		},
	})

	_, err := r.Candidates()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestCandidates_MissingSheet(t *testing.T) {
	r := buildWorkbook(t, map[string][][]interface{}{
		"Unrelated": {{"a"}},
	})

	_, err := r.Candidates()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}

func TestGeoFactors(t *testing.T) {
	r := buildWorkbook(t, map[string][][]interface{}{
		config.SheetGeoFactors: {
			{"Country", "Us or Non US", "Geo Factor for non tech roles",
				"Geo Factor for tech roles (Including Solutions Engineering, but excluding P. I.)"},
			{"United States", "US", "1.0", "1.0"},
			{"Chile", "Non US", "0.55", "0.65"},
			{"", "", "", ""},
		},
	})

	factors, err := r.GeoFactors()
	require.NoError(t, err)
	require.Len(t, factors, 2)

	assert.Equal(t, "Chile", factors[1].Country)
	assert.InDelta(t, 0.65, factors[1].TechFactor, 1e-9)
	assert.InDelta(t, 0.55, factors[1].NonTechFactor, 1e-9)
	assert.InDelta(t, 0.65, factors[1].FactorFor(true), 1e-9)
	assert.InDelta(t, 0.55, factors[1].FactorFor(false), 1e-9)
}

func TestGeoFactors_BadFactorFatal(t *testing.T) {
	r := buildWorkbook(t, map[string][][]interface{}{
		config.SheetGeoFactors: {
			{"Country", "Us or Non US", "Geo Factor for non tech roles",
				"Geo Factor for tech roles"},
			{"Chile", "Non US", "not-a-number", "0.65"},
		},
	})

	_, err := r.GeoFactors()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

// paybandSheet mimics the source layout: a role banner row, a
// seniority triplet row, then four stacked value rows per level.
func paybandSheet() [][]interface{} {
	return [][]interface{}{
		{"", "", "Engineering", "", "", "Operations", "", ""},
		{"", "", "", "", "", "", "", ""},
		{"", "", "Early", "Seasoned", "Veteran", "Early", "Seasoned", "Veteran"},
		{"L4", "Cash", "250000", "300000", "350000", "150000", "180000", "200000"},
		{"", "Equity value", "80000", "100000", "120000", "30000", "40000", "50000"},
		{"", "Equity units", "800", "1000", "1200", "300", "400", "500"},
		{"", "Annual total", "330000", "400000", "470000", "180000", "220000", "250000"},
		{"M4", "Cash", "280000", "320000", "380000", "", "", ""},
		{"", "Equity value", "90000", "110000", "130000", "", "", ""},
		{"", "Equity units", "900", "1100", "1300", "", "", ""},
		{"", "Annual total", "370000", "430000", "510000", "", "", ""},
	}
}

func TestPaybands(t *testing.T) {
	r := buildWorkbook(t, map[string][][]interface{}{
		config.SheetPaybands: paybandSheet(),
	})

	entries, err := r.Paybands()
	require.NoError(t, err)

	// Engineering: L4 + M4, three seniorities each. Operations: L4
	// only (M4 columns are blank).
	require.Len(t, entries, 9)

	var engL4Seasoned *domain.PaybandEntry
	for i := range entries {
		e := &entries[i]
		if e.RoleCategory == "Engineering" && e.LevelCode == "L4" && e.Seniority == domain.SenioritySeasoned {
			engL4Seasoned = e
		}
	}
	require.NotNil(t, engL4Seasoned)
	assert.Equal(t, int64(300000), engL4Seasoned.CashBase)
	assert.Equal(t, int64(100000), engL4Seasoned.EquityValue)
	assert.Equal(t, int64(1000), engL4Seasoned.EquityUnits)
	assert.Equal(t, int64(400000), engL4Seasoned.AnnualTotal)
	assert.Equal(t, 4, engL4Seasoned.LevelID)
	assert.Equal(t, 2, engL4Seasoned.SeniorityID)

	// comp IDs are assigned sequentially and uniquely.
	seen := make(map[int]bool)
	for _, e := range entries {
		assert.False(t, seen[e.CompID])
		seen[e.CompID] = true
	}
}

func TestPaybands_NoSeniorityGroups(t *testing.T) {
	r := buildWorkbook(t, map[string][][]interface{}{
		config.SheetPaybands: {
			{"Engineering"},
			{"L4", "Cash", "300000"},
		},
	})

	_, err := r.Paybands()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestHeadcount(t *testing.T) {
	r := buildWorkbook(t, map[string][][]interface{}{
		config.SheetHeadcount: {
			{"Employee Name", "Department", "Org", "Manager", "Country",
				"Start Date", "Level distinction", "Payband (granular)",
				"Base Annual Compensation\n(USD)", "Current total Equity \n(value)",
				"Perf Score H1 25"},
			{"Employee 1", "Engineering", "R&D", "Manager 1", "United States",
				"2023-06-01", "L4 Seasoned", "Engineering - Backend", "280,000", "90000", "4"},
			{"Employee 2", "Finance", "G&A", "", "Chile",
				"2025-02-10", "M3", "Operations - Finance - Accounting - Mgmt", "", "", ""},
		},
	})

	employees, err := r.Headcount()
	require.NoError(t, err)
	require.Len(t, employees, 2)

	assert.Equal(t, "Employee 1", employees[0].Name)
	assert.Equal(t, domain.NewDate(2023, 6, 1), employees[0].StartDate)
	require.NotNil(t, employees[0].CurrentBase)
	assert.InDelta(t, 280000, *employees[0].CurrentBase, 1e-9)
	assert.Equal(t, "4", employees[0].PerfScore)

	assert.Nil(t, employees[1].CurrentBase)
	assert.Equal(t, "M3", employees[1].LevelDistinction)
}

func TestExits(t *testing.T) {
	r := buildWorkbook(t, map[string][][]interface{}{
		config.SheetExits: {
			{"Employee Name", "Department", "Org", "Manager", "Country",
				"Level distinction", "Start Date", "Last Date", "Regrettable?"},
			{"Employee 9", "Sales", "GTM", "Manager 2", "Brazil",
				"L3 Early", "2024-01-08", "2025-03-31", "Yes"},
		},
	})

	exits, err := r.Exits()
	require.NoError(t, err)
	require.Len(t, exits, 1)

	assert.Equal(t, "Employee 9", exits[0].Name)
	assert.Equal(t, domain.NewDate(2024, 1, 8), exits[0].StartDate)
	assert.Equal(t, domain.NewDate(2025, 3, 31), exits[0].LastDate)
	assert.Equal(t, "Yes", exits[0].Regrettable)
}

func TestFindHeaderRow_SkipsBannerRows(t *testing.T) {
	rows := [][]string{
		{"Some banner text"},
		{},
		{"Country", "Us or Non US"},
	}

	idx, cols, err := findHeaderRow(rows, "Country", "Us or Non US")
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
	assert.Equal(t, 0, cols["Country"])
	assert.Equal(t, 1, cols["Us or Non US"])
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"300000", 300000, true},
		{"$1,234.50", 1234.5, true},
		{" 0.65 ", 0.65, true},
		{"", 0, false},
		{"DNP", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseFloat(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-9, tt.in)
		}
	}
}
