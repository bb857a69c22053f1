package domain

import (
	"strconv"
	"strings"
)

// RoleType classifies a role for geo-factor selection.
type RoleType string

const (
	RoleTech          RoleType = "Tech"
	RoleNonTech       RoleType = "Non-Tech"
	RoleQuotaCarrying RoleType = "Quota Carrying"
)

// UnknownLocation is the sentinel written into the location field when
// the source cell is blank. Records carrying it are treated as
// incomplete but still receive the averaged geo factor so their output
// row is as filled-in as possible.
const UnknownLocation = "Unknown"

// CandidateRecord is one normalized row of the candidate compensation
// sheet. String fields keep the raw cell value: current base in
// particular can hold markers like "DNP" or "TBD" that must survive
// into the incomplete-records output unchanged.
type CandidateRecord struct {
	CandidateNumber int      `csv:"candidate_number"`
	Name            string   `csv:"candidate_name" validate:"required"`
	Date            Date     `csv:"date"`
	Location        string   `csv:"location" validate:"required,ne=Unknown"`
	RoleType        string   `csv:"role_type"`
	HighPotential   string   `csv:"high_potential" validate:"required"`
	CompType        string   `csv:"comp_type" validate:"required"`
	CurrentLevel    string   `csv:"current_level" validate:"required"`
	TargetLevel     string   `csv:"target_level"`
	PaybandCategory string   `csv:"payband_category"`
	CurrentBase     string   `csv:"current_base" validate:"required"`
	CurrentEquity   *float64 `csv:"current_equity"`
	GeoFactor       *float64 `csv:"geo_factor" validate:"required"`
}

// IsTechRole reports whether the record's role type selects the tech
// geo factor column. Quota-carrying and other non-tech roles use the
// non-tech column.
func (c *CandidateRecord) IsTechRole() bool {
	return strings.EqualFold(strings.TrimSpace(c.RoleType), string(RoleTech))
}

// CurrentBaseValue parses the current base cell as a dollar amount.
// Placeholder markers ("DNP", "N/A", "TBD") and blank cells return
// ok=false.
func (c *CandidateRecord) CurrentBaseValue() (float64, bool) {
	raw := strings.TrimSpace(c.CurrentBase)
	switch raw {
	case "", "DNP", "N/A", "TBD":
		return 0, false
	}
	raw = strings.ReplaceAll(strings.TrimPrefix(raw, "$"), ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// LevelCode returns the two-character payband level code ("L4", "M3")
// embedded in a level field such as "L4 (Senior)".
func LevelCode(level string) string {
	level = strings.TrimSpace(level)
	if len(level) < 2 {
		return ""
	}
	return level[:2]
}

// EnrichedRecord is a CandidateRecord plus the values derived by the
// cleaner. Pointer fields stay nil (empty CSV cells) when the inputs
// needed to derive them are missing.
type EnrichedRecord struct {
	CandidateRecord

	// TargetCash is the geo-adjusted payband cash for the current
	// level: payband cash base x geo factor.
	TargetCash *float64 `csv:"target_cash"`

	// TargetEquity is the geo-adjusted payband equity value for the
	// current level.
	TargetEquity *float64 `csv:"target_equity"`

	// TargetLevelCash is the geo-adjusted payband cash for the target
	// level rather than the current one.
	TargetLevelCash *float64 `csv:"target_level_cash"`

	// Variance is current base minus target cash. Negative values mean
	// the candidate is paid below the geo-adjusted target.
	Variance *float64 `csv:"variance"`

	// GapReasons names the fields that failed the completeness check,
	// comma separated. Empty for complete records.
	GapReasons string `csv:"gap_reasons"`

	// Complete mirrors which output partition the record belongs to.
	// It is not written to CSV: membership is expressed by the file
	// the record lands in.
	Complete bool `csv:"-"`
}
