package cleaning

import (
	"math"
	"sort"
	"strings"

	"peoplecli/pkg/contracts/domain"
)

// GeoLookup resolves a (country, role type) pair to a geo factor.
// Countries are matched after trimming; a synthetic Unknown entry
// carries the mean of each factor column so rows with an unresolvable
// location still get a plausible factor in their output.
type GeoLookup struct {
	byCountry map[string]domain.GeoFactor

	// TechAverage and NonTechAverage are the column means backing the
	// Unknown entry.
	TechAverage    float64
	NonTechAverage float64
}

// NewGeoLookup builds a lookup from the extracted geo factor table.
func NewGeoLookup(factors []domain.GeoFactor) *GeoLookup {
	l := &GeoLookup{byCountry: make(map[string]domain.GeoFactor, len(factors)+1)}

	var techSum, nonTechSum float64
	for _, f := range factors {
		l.byCountry[strings.TrimSpace(f.Country)] = f
		techSum += f.TechFactor
		nonTechSum += f.NonTechFactor
	}

	if len(factors) > 0 {
		l.TechAverage = round3(techSum / float64(len(factors)))
		l.NonTechAverage = round3(nonTechSum / float64(len(factors)))
	}

	l.byCountry[domain.UnknownLocation] = domain.GeoFactor{
		Country:       domain.UnknownLocation,
		Region:        domain.UnknownLocation,
		TechFactor:    l.TechAverage,
		NonTechFactor: l.NonTechAverage,
	}

	return l
}

// Factor returns the geo factor for a country and role classification.
// ok is false when the country is not in the table at all.
func (l *GeoLookup) Factor(country string, tech bool) (float64, bool) {
	f, ok := l.byCountry[strings.TrimSpace(country)]
	if !ok {
		return 0, false
	}
	return f.FactorFor(tech), true
}

// Countries returns the known countries in sorted order, Unknown
// excluded. Used for reporting.
func (l *GeoLookup) Countries() []string {
	out := make([]string, 0, len(l.byCountry))
	for c := range l.byCountry {
		if c == domain.UnknownLocation {
			continue
		}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// paybandKey joins the lookup dimensions of the payband table.
type paybandKey struct {
	role  string
	level string
}

// PaybandLookup resolves (role category, level code) pairs to the
// payband row of a fixed seniority. Target cash is always read from
// one seniority band (Seasoned by default), matching how the reference
// table is used for candidate pricing.
type PaybandLookup struct {
	seniority string
	entries   map[paybandKey]domain.PaybandEntry
}

// NewPaybandLookup indexes the payband entries of the given seniority.
func NewPaybandLookup(entries []domain.PaybandEntry, seniority string) *PaybandLookup {
	l := &PaybandLookup{
		seniority: seniority,
		entries:   make(map[paybandKey]domain.PaybandEntry),
	}
	for _, e := range entries {
		if e.Seniority != seniority {
			continue
		}
		key := paybandKey{role: strings.TrimSpace(e.RoleCategory), level: e.LevelCode}
		if _, exists := l.entries[key]; !exists {
			l.entries[key] = e
		}
	}
	return l
}

// Find returns the payband entry for a role category and level code.
func (l *PaybandLookup) Find(roleCategory, levelCode string) (domain.PaybandEntry, bool) {
	e, ok := l.entries[paybandKey{role: strings.TrimSpace(roleCategory), level: levelCode}]
	return e, ok
}

// Len reports how many (role, level) pairs are indexed.
func (l *PaybandLookup) Len() int {
	return len(l.entries)
}
