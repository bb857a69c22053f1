package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the pipeline paths.
// This is the single source of truth for ALL file paths in the
// application: stages communicate exclusively through the files named
// here.
type Paths struct {
	BaseDir    string
	DataDir    string
	SourceDir  string
	ReportsDir string
	LogsDir    string

	// Source workbook
	WorkbookFile string

	// Normalized CSVs (extractor outputs, cleaner inputs)
	CandidatesCSV string
	GeoFactorsCSV string
	PaybandsCSV   string
	ExitsCSV      string
	HeadcountCSV  string

	// Cleaner outputs
	CompleteRecordsCSV   string
	IncompleteRecordsCSV string
	CleaningReportTXT    string

	// Downstream outputs
	ActiveCompCSV          string
	HistoricalHeadcountCSV string
}

// GetPaths returns the pipeline paths rooted at the given base
// directory. An empty base falls back to the PEOPLE_BASE_DIR
// environment variable and then to the current working directory,
// matching the convention that each stage operates on files in the
// directory it is invoked from.
func GetPaths(baseDir string) (*Paths, error) {
	if baseDir == "" {
		baseDir = os.Getenv(EnvPrefix + "_BASE_DIR")
	}
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = wd
	}

	baseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	p := &Paths{
		BaseDir:    baseDir,
		DataDir:    filepath.Join(baseDir, DefaultDataDir),
		SourceDir:  filepath.Join(baseDir, DefaultSourceDir),
		ReportsDir: filepath.Join(baseDir, DefaultReportsDir),
		LogsDir:    filepath.Join(baseDir, DefaultLogsDir),
	}

	p.WorkbookFile = filepath.Join(p.SourceDir, WorkbookFileName)

	p.CandidatesCSV = filepath.Join(p.ReportsDir, CandidatesCSV)
	p.GeoFactorsCSV = filepath.Join(p.ReportsDir, GeoFactorsCSV)
	p.PaybandsCSV = filepath.Join(p.ReportsDir, PaybandsCSV)
	p.ExitsCSV = filepath.Join(p.ReportsDir, ExitsCSV)
	p.HeadcountCSV = filepath.Join(p.ReportsDir, HeadcountCSV)

	p.CompleteRecordsCSV = filepath.Join(p.ReportsDir, CompleteRecordsCSV)
	p.IncompleteRecordsCSV = filepath.Join(p.ReportsDir, IncompleteRecordsCSV)
	p.CleaningReportTXT = filepath.Join(p.ReportsDir, CleaningReportTXT)

	p.ActiveCompCSV = filepath.Join(p.ReportsDir, ActiveCompCSV)
	p.HistoricalHeadcountCSV = filepath.Join(p.ReportsDir, HistoricalHeadcountCSV)

	return p, nil
}

// EnsureDirectories creates all required directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.SourceDir,
		p.ReportsDir,
		p.LogsDir,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetLogPath returns the path for a log file.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// GetReportPath returns the path for a generated report file.
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// LogPathResolution logs the resolved paths for debugging.
func (p *Paths) LogPathResolution() {
	slog.Debug("Resolved pipeline paths",
		slog.String("base_dir", p.BaseDir),
		slog.String("source_dir", p.SourceDir),
		slog.String("reports_dir", p.ReportsDir),
		slog.String("logs_dir", p.LogsDir))
}

// FileExists checks if a file exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
