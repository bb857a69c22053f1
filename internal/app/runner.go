package app

import (
	"context"
	"log/slog"
	"time"
)

// Stage is one unit of pipeline work.
type Stage struct {
	ID   string
	Name string
	// Outputs lists the files the stage writes on success.
	Outputs []string
	Run     func(ctx context.Context) error
}

// Runner executes stages sequentially. A failed stage does not stop
// the run: later stages that do not depend on its outputs can still
// succeed, and ones that do will fail on their own missing inputs.
type Runner struct {
	logger *slog.Logger
	stages []Stage
}

// NewRunner creates a runner over the given stages.
func NewRunner(logger *slog.Logger, stages ...Stage) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger, stages: stages}
}

// Run executes every stage in order and returns their results. The
// second return value is false when any stage failed.
func (r *Runner) Run(ctx context.Context) ([]StageResult, bool) {
	results := make([]StageResult, 0, len(r.stages))
	allOK := true

	for _, stage := range r.stages {
		if ctx.Err() != nil {
			results = append(results, StageResult{
				ID: stage.ID, Name: stage.Name, Status: StatusSkipped, Err: ctx.Err(),
			})
			allOK = false
			continue
		}

		r.logger.InfoContext(ctx, "Stage starting",
			slog.String("stage", stage.ID),
			slog.String("name", stage.Name))

		start := time.Now()
		err := stage.Run(ctx)
		elapsed := time.Since(start)

		result := StageResult{
			ID:       stage.ID,
			Name:     stage.Name,
			Duration: elapsed,
			Outputs:  stage.Outputs,
		}
		if err != nil {
			result.Status = StatusFailed
			result.Err = err
			allOK = false
			r.logger.ErrorContext(ctx, "Stage failed",
				slog.String("stage", stage.ID),
				slog.Duration("duration", elapsed),
				slog.String("error", err.Error()))
		} else {
			result.Status = StatusCompleted
			r.logger.InfoContext(ctx, "Stage completed",
				slog.String("stage", stage.ID),
				slog.Duration("duration", elapsed))
		}
		results = append(results, result)
	}

	return results, allOK
}
