package workbook

import (
	"log/slog"

	"peoplecli/internal/config"
	"peoplecli/pkg/contracts/domain"
)

// Candidate sheet headers. The name column doubles as the hiring-tool
// URL in the source export, hence the odd header.
const (
	hdrCandidateName = "Candidate Name + GH URL"
	hdrDate          = "Date"
	hdrLocation      = "Location"
	hdrRoleType      = "Tech/Non-Tech/Quota Carrying"
	hdrHighPotential = "High Potential?"
	hdrGeoFactor     = "Geo Factor"
	hdrCompType      = "Comp Type"
	hdrCurrentLevel  = "Current Level"
	hdrTargetLevel   = "Target Level"
	hdrPayband       = "Final Pay Band"
	hdrBaseComp      = "$ Base Comp"
	hdrEquity        = "Current Equity"
)

// Candidates extracts the candidate compensation sheet. Rows with a
// blank name cell are skipped; every other row is kept as-is, data
// gaps included, because completeness is the cleaner's decision.
func (r *Reader) Candidates() ([]domain.CandidateRecord, error) {
	rows, err := r.sheetRows(config.SheetCandidates)
	if err != nil {
		return nil, err
	}

	headerRow, cols, err := findHeaderRow(rows,
		hdrCandidateName, hdrDate, hdrLocation, hdrRoleType,
		hdrHighPotential, hdrGeoFactor, hdrCompType, hdrCurrentLevel,
		hdrPayband, hdrBaseComp)
	if err != nil {
		return nil, err
	}

	// Optional columns: older exports predate them.
	optional := optionalColumns(rows[headerRow], hdrTargetLevel, hdrEquity)

	var records []domain.CandidateRecord
	for _, row := range rows[headerRow+1:] {
		if isBlankRow(row) {
			continue
		}
		name := cell(row, cols[hdrCandidateName])
		if name == "" {
			continue
		}

		date, dateErr := domain.ParseDate(cell(row, cols[hdrDate]))
		if dateErr != nil {
			// Dates are optional and later interpolated; a malformed
			// cell degrades to blank instead of failing the extract.
			slog.Warn("unparseable date cell, treating as blank",
				slog.String("candidate", name),
				slog.String("value", cell(row, cols[hdrDate])))
			date = domain.Date{}
		}

		rec := domain.CandidateRecord{
			Name:            name,
			Date:            date,
			Location:        cell(row, cols[hdrLocation]),
			RoleType:        cell(row, cols[hdrRoleType]),
			HighPotential:   cell(row, cols[hdrHighPotential]),
			CompType:        cell(row, cols[hdrCompType]),
			CurrentLevel:    cell(row, cols[hdrCurrentLevel]),
			PaybandCategory: cell(row, cols[hdrPayband]),
			CurrentBase:     cell(row, cols[hdrBaseComp]),
			GeoFactor:       parseOptionalFloat(cell(row, cols[hdrGeoFactor])),
		}
		if idx, ok := optional[hdrTargetLevel]; ok {
			rec.TargetLevel = cell(row, idx)
		}
		if idx, ok := optional[hdrEquity]; ok {
			rec.CurrentEquity = parseOptionalFloat(cell(row, idx))
		}

		records = append(records, rec)
	}

	slog.Info("Extracted candidate records",
		slog.Int("count", len(records)),
		slog.String("sheet", config.SheetCandidates))

	return records, nil
}
