package domain

// GeoFactor maps a country to its multiplicative payband adjustments.
// Factors are expected in (0, 1.5]; 1.0 means no adjustment.
type GeoFactor struct {
	Country       string  `csv:"country" validate:"required"`
	Region        string  `csv:"us_or_non_us"`
	TechFactor    float64 `csv:"tech_factor" validate:"gt=0,lte=1.5"`
	NonTechFactor float64 `csv:"non_tech_factor" validate:"gt=0,lte=1.5"`
}

// FactorFor selects the factor column for a role classification.
func (g *GeoFactor) FactorFor(tech bool) float64 {
	if tech {
		return g.TechFactor
	}
	return g.NonTechFactor
}

// Seniority names used in the payband table.
const (
	SeniorityEarly    = "Early"
	SenioritySeasoned = "Seasoned"
	SeniorityVeteran  = "Veteran"
)

// SeniorityID returns the stable numeric identifier for a seniority
// name, or 0 when the name is unknown.
func SeniorityID(name string) int {
	switch name {
	case SeniorityEarly:
		return 1
	case SenioritySeasoned:
		return 2
	case SeniorityVeteran:
		return 3
	}
	return 0
}

// PaybandEntry is one reference compensation row keyed by role
// category, level code and seniority.
type PaybandEntry struct {
	CompID       int    `csv:"comp_id"`
	RoleCategory string `csv:"role_category" validate:"required"`
	LevelID      int    `csv:"level_id"`
	LevelCode    string `csv:"level_code" validate:"required"`
	SeniorityID  int    `csv:"seniority_id"`
	Seniority    string `csv:"seniority_name" validate:"required,oneof=Early Seasoned Veteran"`
	CashBase     int64  `csv:"cash_base"`
	EquityValue  int64  `csv:"equity_value"`
	EquityUnits  int64  `csv:"equity_units"`
	AnnualTotal  int64  `csv:"annual_total"`
}
