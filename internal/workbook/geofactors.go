package workbook

import (
	"fmt"
	"log/slog"

	"peoplecli/internal/config"
	apperrors "peoplecli/internal/errors"
	"peoplecli/pkg/contracts/domain"
)

// GeoFactors sheet headers. The tech column's full header names its
// inclusions and exclusions; matching stops at the stable prefix.
const (
	hdrCountry       = "Country"
	hdrRegion        = "Us or Non US"
	hdrNonTechFactor = "Geo Factor for non tech roles"
	hdrTechFactor    = "Geo Factor for tech roles"
)

// GeoFactors extracts the geographic adjustment table. Rows without a
// country are skipped; rows with a country but unparseable factors are
// fatal, since a half-read reference table would silently misprice
// every joined record.
func (r *Reader) GeoFactors() ([]domain.GeoFactor, error) {
	rows, err := r.sheetRows(config.SheetGeoFactors)
	if err != nil {
		return nil, err
	}

	headerRow, cols, err := findHeaderRow(rows,
		hdrCountry, hdrRegion, hdrNonTechFactor, hdrTechFactor)
	if err != nil {
		return nil, err
	}

	var factors []domain.GeoFactor
	for i, row := range rows[headerRow+1:] {
		country := cell(row, cols[hdrCountry])
		if country == "" {
			continue
		}

		tech, okTech := parseFloat(cell(row, cols[hdrTechFactor]))
		nonTech, okNonTech := parseFloat(cell(row, cols[hdrNonTechFactor]))
		if !okTech || !okNonTech {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("unparseable geo factor for country %q (row %d)", country, headerRow+i+2), nil)
		}

		factors = append(factors, domain.GeoFactor{
			Country:       country,
			Region:        cell(row, cols[hdrRegion]),
			TechFactor:    tech,
			NonTechFactor: nonTech,
		})
	}

	if len(factors) == 0 {
		return nil, apperrors.NewValidationError("geo factors sheet contains no data rows", nil)
	}

	slog.Info("Extracted geo factors",
		slog.Int("count", len(factors)),
		slog.String("sheet", config.SheetGeoFactors))

	return factors, nil
}
