package domain

// Employee is one normalized row of the current headcount sheet.
type Employee struct {
	Name             string   `csv:"employee_name" validate:"required"`
	Department       string   `csv:"department"`
	Org              string   `csv:"org"`
	Manager          string   `csv:"manager"`
	Country          string   `csv:"country"`
	StartDate        Date     `csv:"start_date"`
	LevelDistinction string   `csv:"level_distinction"`
	PaybandGranular  string   `csv:"payband_granular"`
	CurrentBase      *float64 `csv:"current_base"`
	CurrentEquity    *float64 `csv:"current_equity"`
	PerfScore        string   `csv:"perf_score_h1"`
}

// ExitRecord is one normalized row of the exits sheet (2024 onwards).
type ExitRecord struct {
	Name             string `csv:"employee_name" validate:"required"`
	Department       string `csv:"department"`
	Org              string `csv:"org"`
	Manager          string `csv:"manager"`
	Country          string `csv:"country"`
	LevelDistinction string `csv:"level_distinction"`
	StartDate        Date   `csv:"start_date"`
	LastDate         Date   `csv:"last_date"`
	// Regrettable marks exits the organization would have preferred
	// to prevent ("Yes"/"No" in the source sheet).
	Regrettable string `csv:"regrettable"`
}

// Match status values for active compensation rows.
const (
	MatchStatusMatched = "Matched"
	MatchStatusNoMatch = "No Match"
)

// ActiveCompRecord is the enriched output row for one active employee:
// the headcount fields plus parsed level information, payband match
// results and geo-adjusted targets.
type ActiveCompRecord struct {
	Name             string   `csv:"employee_name"`
	Department       string   `csv:"department"`
	Org              string   `csv:"org"`
	Country          string   `csv:"country"`
	StartDate        Date     `csv:"start_date"`
	TenureRange      string   `csv:"tenure_range"`
	LevelDistinction string   `csv:"level_distinction"`
	ParsedLevelCode  string   `csv:"parsed_level_code"`
	ParsedSeniority  string   `csv:"parsed_seniority"`
	MatchedSeniority string   `csv:"matched_seniority"`
	PaybandGranular  string   `csv:"payband_granular"`
	TechClass        string   `csv:"tech_classification"`
	CurrentBase      *float64 `csv:"current_base"`
	CurrentEquity    *float64 `csv:"current_equity"`
	TargetBase       *float64 `csv:"target_base_geo_adjusted"`
	TargetEquity     *float64 `csv:"target_equity_geo_adjusted"`
	GeoFactor        float64  `csv:"geo_factor"`
	PaybandCashBase  *float64 `csv:"payband_cash_base"`
	PaybandEquity    *float64 `csv:"payband_equity_value"`
	PerfScore        string   `csv:"perf_score_h1"`
	MatchStatus      string   `csv:"match_status"`
}

// HeadcountRecord is one employee-month row of the reconstructed
// historical headcount: the employee was active at the end of the
// named month.
type HeadcountRecord struct {
	Name             string `csv:"employee_name"`
	Month            string `csv:"month"`
	Year             int    `csv:"year"`
	MonthNumber      int    `csv:"month_number"`
	StartDate        Date   `csv:"start_date"`
	TenureDays       int    `csv:"tenure_days"`
	TenureRange      string `csv:"tenure_range"`
	Department       string `csv:"department"`
	Org              string `csv:"org"`
	Manager          string `csv:"manager"`
	LevelDistinction string `csv:"level_distinction"`
	Country          string `csv:"country"`
	// Status distinguishes employees still active today from those
	// active in the month but exited later.
	Status string `csv:"status"`
}
