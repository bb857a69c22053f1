package cleaning

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"peoplecli/internal/config"
	"peoplecli/pkg/contracts/domain"
)

// candidateNumberPattern extracts the ordinal from candidate names
// like "Candidate 17" (optionally followed by a tracking URL).
var candidateNumberPattern = regexp.MustCompile(`Candidate\s+(\d+)`)

// Gap reason labels written into the incomplete-records output.
const (
	GapLocation      = "location"
	GapHighPotential = "high_potential"
	GapCompType      = "comp_type"
	GapCurrentLevel  = "current_level"
	GapCurrentBase   = "current_base"
	GapGeoFactor     = "geo_factor"
	GapPaybandMatch  = "payband_match"
)

// structFieldGaps maps validator struct fields to gap reason labels.
var structFieldGaps = map[string]string{
	"Location":      GapLocation,
	"HighPotential": GapHighPotential,
	"CompType":      GapCompType,
	"CurrentLevel":  GapCurrentLevel,
	"CurrentBase":   GapCurrentBase,
	"GeoFactor":     GapGeoFactor,
}

// Stats summarizes one cleaning run.
type Stats struct {
	InputCount           int
	CompleteCount        int
	IncompleteCount      int
	DatesInterpolated    int
	GeoFactorsUpdated    int
	UnknownLocationCount int
	VarianceCalculated   int
	TargetCalculated     int
	TargetLevelMatched   int
	NoPaybandMatch       int
	MissingCountries     []string
}

// Result carries the two output partitions plus run statistics. Every
// input record appears in exactly one partition.
type Result struct {
	Complete   []domain.EnrichedRecord
	Incomplete []domain.EnrichedRecord
	Stats      Stats
}

// Cleaner joins candidate records against the reference tables,
// derives targets and variance, and partitions rows by completeness.
type Cleaner struct {
	logger   *slog.Logger
	cfg      config.CleaningConfig
	validate *validator.Validate
}

// NewCleaner creates a cleaner with the given configuration.
func NewCleaner(logger *slog.Logger, cfg config.CleaningConfig) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PaybandSeniority == "" {
		cfg.PaybandSeniority = domain.SenioritySeasoned
	}
	if cfg.VarianceTolerance <= 0 {
		cfg.VarianceTolerance = 0.01
	}
	return &Cleaner{
		logger:   logger,
		cfg:      cfg,
		validate: validator.New(),
	}
}

// Clean runs the full cleaning pass. The input slice is not modified.
func (c *Cleaner) Clean(ctx context.Context, candidates []domain.CandidateRecord,
	geoFactors []domain.GeoFactor, paybands []domain.PaybandEntry) Result {

	geo := NewGeoLookup(geoFactors)
	bands := NewPaybandLookup(paybands, c.cfg.PaybandSeniority)

	c.logger.InfoContext(ctx, "Starting candidate cleaning",
		slog.Int("candidates", len(candidates)),
		slog.Int("geo_countries", len(geoFactors)),
		slog.Int("payband_pairs", bands.Len()),
		slog.String("payband_seniority", c.cfg.PaybandSeniority))

	records := make([]domain.CandidateRecord, len(candidates))
	copy(records, candidates)

	assignCandidateNumbers(records)
	sortByCandidateNumber(records)

	result := Result{Stats: Stats{InputCount: len(records)}}
	result.Stats.DatesInterpolated = InterpolateDates(records)

	missingCountries := make(map[string]bool)

	for _, rec := range records {
		if rec.Location == "" {
			rec.Location = domain.UnknownLocation
			result.Stats.UnknownLocationCount++
		}

		c.refreshGeoFactor(&rec, geo, missingCountries, &result.Stats)

		enriched := c.enrich(rec, bands, &result.Stats)
		gaps := c.findGaps(enriched)

		if len(gaps) == 0 {
			enriched.Complete = true
			result.Complete = append(result.Complete, enriched)
		} else {
			enriched.GapReasons = strings.Join(gaps, ", ")
			result.Incomplete = append(result.Incomplete, enriched)
		}
	}

	result.Stats.CompleteCount = len(result.Complete)
	result.Stats.IncompleteCount = len(result.Incomplete)
	result.Stats.MissingCountries = sortedKeys(missingCountries)

	c.logger.InfoContext(ctx, "Cleaning finished",
		slog.Int("complete", result.Stats.CompleteCount),
		slog.Int("incomplete", result.Stats.IncompleteCount),
		slog.Int("dates_interpolated", result.Stats.DatesInterpolated),
		slog.Int("geo_updated", result.Stats.GeoFactorsUpdated),
		slog.Any("missing_countries", result.Stats.MissingCountries))

	return result
}

// refreshGeoFactor replaces the record's geo factor with the value the
// reference table dictates for its location and role type. Countries
// absent from the table leave the record untouched and are reported.
func (c *Cleaner) refreshGeoFactor(rec *domain.CandidateRecord, geo *GeoLookup,
	missingCountries map[string]bool, stats *Stats) {

	if rec.RoleType == "" {
		return
	}
	factor, ok := geo.Factor(rec.Location, rec.IsTechRole())
	if !ok {
		missingCountries[strings.TrimSpace(rec.Location)] = true
		return
	}
	if rec.GeoFactor == nil || *rec.GeoFactor != factor {
		stats.GeoFactorsUpdated++
	}
	rec.GeoFactor = &factor
}

// enrich derives target cash, target equity, target-level cash and
// variance for one record. Derivations that lack an input stay nil.
func (c *Cleaner) enrich(rec domain.CandidateRecord, bands *PaybandLookup, stats *Stats) domain.EnrichedRecord {
	enriched := domain.EnrichedRecord{CandidateRecord: rec}

	if rec.GeoFactor != nil {
		factor := *rec.GeoFactor

		if band, ok := bands.Find(rec.PaybandCategory, domain.LevelCode(rec.CurrentLevel)); ok {
			cash := float64(band.CashBase) * factor
			equity := float64(band.EquityValue) * factor
			enriched.TargetCash = &cash
			enriched.TargetEquity = &equity
			stats.TargetCalculated++
		} else if rec.PaybandCategory != "" && domain.LevelCode(rec.CurrentLevel) != "" {
			stats.NoPaybandMatch++
		}

		if band, ok := bands.Find(rec.PaybandCategory, domain.LevelCode(rec.TargetLevel)); ok {
			cash := float64(band.CashBase) * factor
			enriched.TargetLevelCash = &cash
			stats.TargetLevelMatched++
		}
	}

	if base, ok := rec.CurrentBaseValue(); ok && enriched.TargetCash != nil {
		variance := base - *enriched.TargetCash
		enriched.Variance = &variance
		stats.VarianceCalculated++
	}

	return enriched
}

// findGaps returns the sorted gap reasons keeping a record out of the
// complete set: required fields that are blank or Unknown, a current
// base that cannot be read as a number, and reference lookups that
// found no match.
func (c *Cleaner) findGaps(rec domain.EnrichedRecord) []string {
	gaps := make(map[string]bool)

	if err := c.validate.Struct(rec.CandidateRecord); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrors {
				if reason, known := structFieldGaps[fe.StructField()]; known {
					gaps[reason] = true
				}
			}
		}
	}

	if _, ok := rec.CurrentBaseValue(); !ok && strings.TrimSpace(rec.CurrentBase) != "" {
		gaps[GapCurrentBase] = true
	}

	if rec.TargetCash == nil {
		// Distinguish a failed payband lookup from a missing geo
		// factor: the latter already has its own reason.
		if rec.GeoFactor != nil {
			gaps[GapPaybandMatch] = true
		}
	}

	return sortedKeys(gaps)
}

// assignCandidateNumbers fills CandidateNumber from the name column.
func assignCandidateNumbers(records []domain.CandidateRecord) {
	for i := range records {
		if m := candidateNumberPattern.FindStringSubmatch(records[i].Name); m != nil {
			n, _ := strconv.Atoi(m[1])
			records[i].CandidateNumber = n
		}
	}
}

// sortByCandidateNumber orders records by number, then name, so the
// interpolation order and the output order are stable.
func sortByCandidateNumber(records []domain.CandidateRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CandidateNumber != records[j].CandidateNumber {
			return records[i].CandidateNumber < records[j].CandidateNumber
		}
		return records[i].Name < records[j].Name
	})
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
