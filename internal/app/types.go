// Package app wires the pipeline stages together: each stage reads the
// files an earlier stage produced, does its work, and writes its own
// outputs. Stages can run as standalone binaries or chained by the
// runner, which keeps going past stage failures so independent outputs
// are still produced.
package app

import "time"

// Stage identifiers.
const (
	StageIDExtract    = "extract"
	StageIDClean      = "clean"
	StageIDReport     = "report"
	StageIDActiveComp = "activecomp"
	StageIDHeadcount  = "headcount"
)

// Stage display names.
const (
	StageNameExtract    = "Workbook Extraction"
	StageNameClean      = "Candidate Cleaning"
	StageNameReport     = "Cleaning Report"
	StageNameActiveComp = "Active Compensation"
	StageNameHeadcount  = "Historical Headcount"
)

// Stage status values.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// StageResult records one stage execution.
type StageResult struct {
	ID       string
	Name     string
	Status   string
	Duration time.Duration
	Err      error
	// Outputs lists the files the stage produced.
	Outputs []string
}
