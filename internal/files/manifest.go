package files

import (
	"os"

	"peoplecli/internal/config"
)

// Artifact is one pipeline output with its on-disk state.
type Artifact struct {
	Label string
	Path  string
	// Present is false when the stage that writes the file has not run
	// or failed.
	Present bool
	Size    int64
}

// Manifest snapshots every file the pipeline is expected to produce.
// The order matches the stage order, so a printed manifest reads like
// the pipeline's data flow.
func Manifest(paths *config.Paths) []Artifact {
	expected := []struct {
		label string
		path  string
	}{
		{"Candidate records", paths.CandidatesCSV},
		{"Geo factors", paths.GeoFactorsCSV},
		{"Payband database", paths.PaybandsCSV},
		{"Current headcount", paths.HeadcountCSV},
		{"Exits", paths.ExitsCSV},
		{"Complete candidates", paths.CompleteRecordsCSV},
		{"Incomplete candidates", paths.IncompleteRecordsCSV},
		{"Cleaning report", paths.CleaningReportTXT},
		{"Active compensation", paths.ActiveCompCSV},
		{"Historical headcount", paths.HistoricalHeadcountCSV},
	}

	artifacts := make([]Artifact, 0, len(expected))
	for _, e := range expected {
		artifact := Artifact{Label: e.label, Path: e.path}
		if info, err := os.Stat(e.path); err == nil && !info.IsDir() {
			artifact.Present = true
			artifact.Size = info.Size()
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts
}
