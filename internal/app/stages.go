package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"peoplecli/internal/cleaning"
	"peoplecli/internal/compensation"
	"peoplecli/internal/config"
	"peoplecli/internal/exporter"
	"peoplecli/internal/headcount"
	"peoplecli/internal/report"
	"peoplecli/internal/validation"
	"peoplecli/internal/workbook"
	"peoplecli/pkg/contracts/domain"
)

// csvOptions is the shared export format: BOM-prefixed so the files
// open cleanly in Excel.
var csvOptions = exporter.WriteOptions{BOMPrefix: true}

// ExtractStage reads every sheet of the source workbook and writes the
// normalized CSVs. All sheets are attempted even when one fails, so a
// damaged sheet does not block the others.
func ExtractStage(logger *slog.Logger, paths *config.Paths) Stage {
	if logger == nil {
		logger = slog.Default()
	}
	return Stage{
		ID:   StageIDExtract,
		Name: StageNameExtract,
		Outputs: []string{
			paths.CandidatesCSV, paths.GeoFactorsCSV, paths.PaybandsCSV,
			paths.HeadcountCSV, paths.ExitsCSV,
		},
		Run: func(ctx context.Context) error {
			validator := validation.NewFileValidator(logger)
			if err := validator.ValidateWorkbook(paths.WorkbookFile); err != nil {
				return err
			}
			if err := validator.ValidateOutputDirectory(paths.ReportsDir); err != nil {
				return err
			}

			reader, err := workbook.Open(paths.WorkbookFile)
			if err != nil {
				return err
			}
			defer reader.Close()

			writer := exporter.NewCSVWriter(logger)
			var errs []error

			extract := func(sheet, outPath string, read func() (interface{}, int, error)) {
				records, count, err := read()
				if err != nil {
					logger.ErrorContext(ctx, "Sheet extraction failed",
						slog.String("sheet", sheet),
						slog.String("error", err.Error()))
					errs = append(errs, fmt.Errorf("%s: %w", sheet, err))
					return
				}
				if err := writer.WriteRecords(outPath, records, csvOptions); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", sheet, err))
					return
				}
				logger.InfoContext(ctx, "Sheet extracted",
					slog.String("sheet", sheet),
					slog.Int("records", count))
			}

			extract(config.SheetCandidates, paths.CandidatesCSV, func() (interface{}, int, error) {
				recs, err := reader.Candidates()
				return recs, len(recs), err
			})
			extract(config.SheetGeoFactors, paths.GeoFactorsCSV, func() (interface{}, int, error) {
				recs, err := reader.GeoFactors()
				return recs, len(recs), err
			})
			extract(config.SheetPaybands, paths.PaybandsCSV, func() (interface{}, int, error) {
				recs, err := reader.Paybands()
				return recs, len(recs), err
			})
			extract(config.SheetHeadcount, paths.HeadcountCSV, func() (interface{}, int, error) {
				recs, err := reader.Headcount()
				return recs, len(recs), err
			})
			extract(config.SheetExits, paths.ExitsCSV, func() (interface{}, int, error) {
				recs, err := reader.Exits()
				return recs, len(recs), err
			})

			return errors.Join(errs...)
		},
	}
}

// CleanStage joins the normalized candidate CSV against the reference
// tables and writes the complete and incomplete partitions plus the
// cleaning summary report.
func CleanStage(logger *slog.Logger, cfg config.CleaningConfig, paths *config.Paths) Stage {
	if logger == nil {
		logger = slog.Default()
	}
	return Stage{
		ID:   StageIDClean,
		Name: StageNameClean,
		Outputs: []string{
			paths.CompleteRecordsCSV, paths.IncompleteRecordsCSV, paths.CleaningReportTXT,
		},
		Run: func(ctx context.Context) error {
			if err := validation.NewFileValidator(logger).ValidateCSVInputs(
				paths.CandidatesCSV, paths.GeoFactorsCSV, paths.PaybandsCSV); err != nil {
				return err
			}

			var candidates []domain.CandidateRecord
			if err := exporter.ReadRecords(paths.CandidatesCSV, &candidates); err != nil {
				return err
			}
			var geoFactors []domain.GeoFactor
			if err := exporter.ReadRecords(paths.GeoFactorsCSV, &geoFactors); err != nil {
				return err
			}
			var paybands []domain.PaybandEntry
			if err := exporter.ReadRecords(paths.PaybandsCSV, &paybands); err != nil {
				return err
			}

			result := cleaning.NewCleaner(logger, cfg).Clean(ctx, candidates, geoFactors, paybands)

			writer := exporter.NewCSVWriter(logger)
			if err := writer.WriteRecords(paths.CompleteRecordsCSV, result.Complete, csvOptions); err != nil {
				return err
			}
			if err := writer.WriteRecords(paths.IncompleteRecordsCSV, result.Incomplete, csvOptions); err != nil {
				return err
			}

			summary := report.Summarize(result.Complete, result.Stats)
			return report.NewGenerator().Save(summary, paths.CleaningReportTXT)
		},
	}
}

// ReportStage regenerates the cleaning summary report from the
// partition CSVs, so the report can be rebuilt without re-running the
// cleaner. Run statistics that only the cleaner knows (interpolated
// dates, refreshed factors) are reconstructed where the CSVs carry the
// evidence and left at zero where they do not.
func ReportStage(logger *slog.Logger, paths *config.Paths) Stage {
	if logger == nil {
		logger = slog.Default()
	}
	return Stage{
		ID:      StageIDReport,
		Name:    StageNameReport,
		Outputs: []string{paths.CleaningReportTXT},
		Run: func(ctx context.Context) error {
			if err := validation.NewFileValidator(logger).ValidateCSVInputs(
				paths.CompleteRecordsCSV, paths.IncompleteRecordsCSV); err != nil {
				return err
			}

			var complete, incomplete []domain.EnrichedRecord
			if err := exporter.ReadRecords(paths.CompleteRecordsCSV, &complete); err != nil {
				return err
			}
			if err := exporter.ReadRecords(paths.IncompleteRecordsCSV, &incomplete); err != nil {
				return err
			}

			summary := report.Summarize(complete, deriveStats(complete, incomplete))
			logger.InfoContext(ctx, "Regenerating cleaning report",
				slog.Int("complete", len(complete)),
				slog.Int("incomplete", len(incomplete)))

			return report.NewGenerator().Save(summary, paths.CleaningReportTXT)
		},
	}
}

// ActiveCompStage enriches the current headcount with payband matches
// and geo-adjusted targets.
func ActiveCompStage(logger *slog.Logger, paths *config.Paths) Stage {
	if logger == nil {
		logger = slog.Default()
	}
	return Stage{
		ID:      StageIDActiveComp,
		Name:    StageNameActiveComp,
		Outputs: []string{paths.ActiveCompCSV},
		Run: func(ctx context.Context) error {
			if err := validation.NewFileValidator(logger).ValidateCSVInputs(
				paths.HeadcountCSV, paths.PaybandsCSV, paths.GeoFactorsCSV); err != nil {
				return err
			}

			var employees []domain.Employee
			if err := exporter.ReadRecords(paths.HeadcountCSV, &employees); err != nil {
				return err
			}
			var paybands []domain.PaybandEntry
			if err := exporter.ReadRecords(paths.PaybandsCSV, &paybands); err != nil {
				return err
			}
			var geoFactors []domain.GeoFactor
			if err := exporter.ReadRecords(paths.GeoFactorsCSV, &geoFactors); err != nil {
				return err
			}

			result := compensation.NewCalculator(logger).Calculate(ctx, employees, paybands, geoFactors)

			return exporter.NewCSVWriter(logger).WriteRecords(
				paths.ActiveCompCSV, result.Records, csvOptions)
		},
	}
}

// HeadcountStage reconstructs month-end rosters from the current
// headcount and the exits log.
func HeadcountStage(logger *slog.Logger, paths *config.Paths) Stage {
	if logger == nil {
		logger = slog.Default()
	}
	return Stage{
		ID:      StageIDHeadcount,
		Name:    StageNameHeadcount,
		Outputs: []string{paths.HistoricalHeadcountCSV},
		Run: func(ctx context.Context) error {
			if err := validation.NewFileValidator(logger).ValidateCSVInputs(
				paths.HeadcountCSV, paths.ExitsCSV); err != nil {
				return err
			}

			var employees []domain.Employee
			if err := exporter.ReadRecords(paths.HeadcountCSV, &employees); err != nil {
				return err
			}
			var exits []domain.ExitRecord
			if err := exporter.ReadRecords(paths.ExitsCSV, &exits); err != nil {
				return err
			}

			result := headcount.NewBuilder(logger).Build(ctx, employees, exits)

			return exporter.NewCSVWriter(logger).WriteRecords(
				paths.HistoricalHeadcountCSV, result.Records, csvOptions)
		},
	}
}

// deriveStats rebuilds the cleaning statistics the partition CSVs can
// still attest to.
func deriveStats(complete, incomplete []domain.EnrichedRecord) cleaning.Stats {
	stats := cleaning.Stats{
		InputCount:      len(complete) + len(incomplete),
		CompleteCount:   len(complete),
		IncompleteCount: len(incomplete),
	}

	countDerived := func(records []domain.EnrichedRecord) {
		for _, rec := range records {
			if rec.TargetCash != nil {
				stats.TargetCalculated++
			}
			if rec.Variance != nil {
				stats.VarianceCalculated++
			}
			if rec.TargetLevelCash != nil {
				stats.TargetLevelMatched++
			}
		}
	}
	countDerived(complete)
	countDerived(incomplete)

	for _, rec := range incomplete {
		if rec.Location == domain.UnknownLocation {
			stats.UnknownLocationCount++
		}
		if strings.Contains(rec.GapReasons, cleaning.GapPaybandMatch) {
			stats.NoPaybandMatch++
		}
	}

	return stats
}
