// Package compensation enriches the current headcount with payband
// matches and geo-adjusted compensation targets. Matching is tolerant:
// an employee whose level or role finds no payband row is still
// emitted, flagged No Match, so the output always covers the full
// roster.
package compensation

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"peoplecli/pkg/contracts/domain"
)

// levelDistinctionPattern splits values like "L4 Seasoned" or "M3"
// into a level code and an optional seniority.
var levelDistinctionPattern = regexp.MustCompile(`^([LM]\d+)(?:\s+(Early|Seasoned|Veteran))?$`)

// nonTechPaybands are the granular payband categories classified as
// Non-Tech; every other category is Tech.
var nonTechPaybands = map[string]bool{
	"Operations - Finance - Accounting - Mgmt": true,
	"Operations - Finance - FP&A - Mgmt":       true,
}

// Tenure range labels, ordered from shortest to longest.
const (
	TenureFutureStart = "Future Start Date"
	TenureUnknown     = "Unknown"
	Tenure0To90Days   = "0-90 days"
	Tenure3To6Months  = "3-6 months"
	Tenure6To12Months = "6-12 months"
	Tenure1To2Years   = "1-2 years"
	Tenure2To5Years   = "2-5 years"
	Tenure5PlusYears  = "5+ years"
)

// Stats summarizes one calculation run.
type Stats struct {
	EmployeeCount  int
	MatchedCount   int
	UnmatchedCount int
	MatchRate      float64
	// MissingCountries lists countries absent from the geo factor
	// table; those employees fall back to a factor of 1.0.
	MissingCountries []string
}

// Result carries the enriched roster plus run statistics.
type Result struct {
	Records []domain.ActiveCompRecord
	Stats   Stats
}

// bandKey indexes payband rows by role category and level code.
type bandKey struct {
	role  string
	level string
}

// Calculator matches active employees against the payband database and
// applies geo factor adjustments. The clock is injectable so tenure
// ranges are stable under test.
type Calculator struct {
	logger *slog.Logger
	Now    func() time.Time
}

// NewCalculator creates a calculator using the wall clock.
func NewCalculator(logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{logger: logger, Now: time.Now}
}

// Calculate enriches every employee with level parsing, tech
// classification, tenure range, payband match and geo-adjusted
// targets. The output preserves the roster order.
func (c *Calculator) Calculate(ctx context.Context, employees []domain.Employee,
	paybands []domain.PaybandEntry, geoFactors []domain.GeoFactor) Result {

	bands := indexPaybands(paybands)
	geo := indexGeoFactors(geoFactors)

	c.logger.InfoContext(ctx, "Starting active compensation calculation",
		slog.Int("employees", len(employees)),
		slog.Int("payband_rows", len(paybands)),
		slog.Int("geo_countries", len(geo)))

	result := Result{
		Records: make([]domain.ActiveCompRecord, 0, len(employees)),
		Stats:   Stats{EmployeeCount: len(employees)},
	}
	missing := make(map[string]bool)
	now := c.Now()

	for _, emp := range employees {
		levelCode, seniority := ParseLevelDistinction(emp.LevelDistinction)
		techClass := TechClassification(emp.PaybandGranular)

		rec := domain.ActiveCompRecord{
			Name:             emp.Name,
			Department:       emp.Department,
			Org:              emp.Org,
			Country:          emp.Country,
			StartDate:        emp.StartDate,
			TenureRange:      TenureRange(emp.StartDate, now),
			LevelDistinction: emp.LevelDistinction,
			ParsedLevelCode:  levelCode,
			ParsedSeniority:  seniority,
			PaybandGranular:  emp.PaybandGranular,
			TechClass:        techClass,
			CurrentBase:      emp.CurrentBase,
			CurrentEquity:    emp.CurrentEquity,
			PerfScore:        emp.PerfScore,
			GeoFactor:        1.0,
			MatchStatus:      domain.MatchStatusNoMatch,
		}

		if factor, ok := lookupGeoFactor(geo, emp.Country, techClass); ok {
			rec.GeoFactor = factor
		} else if strings.TrimSpace(emp.Country) != "" && techClass != "" {
			missing[strings.TrimSpace(emp.Country)] = true
		}

		if band, ok := matchPayband(bands, emp.PaybandGranular, levelCode, seniority); ok {
			cash := float64(band.CashBase)
			equity := float64(band.EquityValue)
			targetBase := cash * rec.GeoFactor
			targetEquity := equity * rec.GeoFactor

			rec.PaybandCashBase = &cash
			rec.PaybandEquity = &equity
			rec.TargetBase = &targetBase
			rec.TargetEquity = &targetEquity
			rec.MatchedSeniority = band.Seniority
			rec.MatchStatus = domain.MatchStatusMatched
			result.Stats.MatchedCount++
		} else {
			result.Stats.UnmatchedCount++
			c.logger.DebugContext(ctx, "No payband match",
				slog.String("employee", emp.Name),
				slog.String("level_distinction", emp.LevelDistinction),
				slog.String("payband", emp.PaybandGranular))
		}

		result.Records = append(result.Records, rec)
	}

	if result.Stats.EmployeeCount > 0 {
		result.Stats.MatchRate = float64(result.Stats.MatchedCount) /
			float64(result.Stats.EmployeeCount) * 100
	}
	result.Stats.MissingCountries = sortedKeys(missing)

	for _, country := range result.Stats.MissingCountries {
		c.logger.WarnContext(ctx, "Country not in geo factor table, using 1.0",
			slog.String("country", country))
	}

	c.logger.InfoContext(ctx, "Active compensation calculation finished",
		slog.Int("matched", result.Stats.MatchedCount),
		slog.Int("unmatched", result.Stats.UnmatchedCount),
		slog.Float64("match_rate", result.Stats.MatchRate))

	return result
}

// ParseLevelDistinction splits a level distinction into level code and
// seniority. "L4 Seasoned" yields ("L4", "Seasoned"); "L3" yields
// ("L3", ""); anything else yields two empty strings.
func ParseLevelDistinction(value string) (levelCode, seniority string) {
	m := levelDistinctionPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return "", ""
	}
	return m[1], m[2]
}

// TechClassification returns Tech or Non-Tech for a granular payband
// category, or "" when the category is blank.
func TechClassification(paybandGranular string) string {
	trimmed := strings.TrimSpace(paybandGranular)
	if trimmed == "" {
		return ""
	}
	if nonTechPaybands[trimmed] {
		return string(domain.RoleNonTech)
	}
	return string(domain.RoleTech)
}

// TenureRange buckets an employee's tenure as of now.
func TenureRange(start domain.Date, now time.Time) string {
	if start.IsZero() {
		return TenureUnknown
	}
	days := int(now.Sub(start.Time).Hours() / 24)
	switch {
	case days < 0:
		return TenureFutureStart
	case days <= 90:
		return Tenure0To90Days
	case days <= 180:
		return Tenure3To6Months
	case days <= 365:
		return Tenure6To12Months
	case days <= 730:
		return Tenure1To2Years
	case days <= 1825:
		return Tenure2To5Years
	default:
		return Tenure5PlusYears
	}
}

// indexPaybands groups payband rows by (role, level), preserving the
// database order within each group.
func indexPaybands(paybands []domain.PaybandEntry) map[bandKey][]domain.PaybandEntry {
	index := make(map[bandKey][]domain.PaybandEntry)
	for _, band := range paybands {
		key := bandKey{
			role:  strings.TrimSpace(band.RoleCategory),
			level: band.LevelCode,
		}
		index[key] = append(index[key], band)
	}
	return index
}

// matchPayband finds the payband row for an employee. With a parsed
// seniority the match is exact; without one, Seasoned is preferred,
// then the first row for the level and role.
func matchPayband(index map[bandKey][]domain.PaybandEntry,
	paybandGranular, levelCode, seniority string) (domain.PaybandEntry, bool) {

	role := strings.TrimSpace(paybandGranular)
	if role == "" || levelCode == "" {
		return domain.PaybandEntry{}, false
	}

	candidates := index[bandKey{role: role, level: levelCode}]
	if len(candidates) == 0 {
		return domain.PaybandEntry{}, false
	}

	if seniority != "" {
		for _, band := range candidates {
			if band.Seniority == seniority {
				return band, true
			}
		}
		return domain.PaybandEntry{}, false
	}

	for _, band := range candidates {
		if band.Seniority == domain.SenioritySeasoned {
			return band, true
		}
	}
	return candidates[0], true
}

// indexGeoFactors maps trimmed country names to their factor rows.
func indexGeoFactors(geoFactors []domain.GeoFactor) map[string]domain.GeoFactor {
	index := make(map[string]domain.GeoFactor, len(geoFactors))
	for _, gf := range geoFactors {
		index[strings.TrimSpace(gf.Country)] = gf
	}
	return index
}

// lookupGeoFactor resolves the factor for a country and tech
// classification. A blank country or classification reports found with
// the neutral factor, matching the roster's partial rows.
func lookupGeoFactor(index map[string]domain.GeoFactor, country, techClass string) (float64, bool) {
	trimmed := strings.TrimSpace(country)
	if trimmed == "" || techClass == "" {
		return 1.0, true
	}
	gf, ok := index[trimmed]
	if !ok {
		return 1.0, false
	}
	return gf.FactorFor(techClass == string(domain.RoleTech)), true
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
