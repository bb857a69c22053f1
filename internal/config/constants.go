package config

// Application constants - fixed file names and directory layout for
// the people-analytics pipeline.
const (
	// Application Info
	AppName    = "People Pulse"
	AppVersion = "0.1.0"

	// Directory layout (relative to the base directory)
	DefaultDataDir    = "data"
	DefaultSourceDir  = "data/source"
	DefaultReportsDir = "data/reports"
	DefaultLogsDir    = "logs"

	// Source workbook
	WorkbookFileName = "hr_comp_data.xlsx"

	// Workbook sheet names
	SheetCandidates = "Candidate Comp Data from 2025"
	SheetGeoFactors = "GeoFactors"
	SheetPaybands   = "Paybands"
	SheetHeadcount  = "Current Headcount"
	SheetExits      = "Exits - 2024 onwards"

	// Normalized CSVs written by the extractor
	CandidatesCSV = "candidate_comp_data.csv"
	GeoFactorsCSV = "geofactors_data.csv"
	PaybandsCSV   = "payband_database.csv"
	ExitsCSV      = "exits_2024_onwards.csv"
	HeadcountCSV  = "current_headcount.csv"

	// Cleaner outputs
	CompleteRecordsCSV   = "complete_candidate_records.csv"
	IncompleteRecordsCSV = "incomplete_candidate_records.csv"
	CleaningReportTXT    = "candidate_cleaning_report.txt"

	// Downstream outputs
	ActiveCompCSV          = "active_employee_compensation.csv"
	HistoricalHeadcountCSV = "historical_headcount_detailed.csv"

	// ConfigFileName is the optional YAML configuration file looked up
	// in the base directory.
	ConfigFileName = "peoplecli.yaml"

	// EnvPrefix namespaces all environment variable overrides.
	EnvPrefix = "PEOPLE"
)
