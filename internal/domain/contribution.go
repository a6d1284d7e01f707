package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Regime is the social-security scheme a contribution belongs to
type Regime string

const (
	RegimeGeneral  Regime = "GENERAL"
	RegimeAutonomo Regime = "AUTONOMO"
)

// ParseRegime normalises and validates a regime name
func ParseRegime(s string) (Regime, error) {
	switch r := Regime(strings.ToUpper(strings.TrimSpace(s))); r {
	case RegimeGeneral, RegimeAutonomo:
		return r, nil
	default:
		return "", NewValidationError(KindInvalidRegime, "regime", s, "must be GENERAL or AUTONOMO")
	}
}

// Sex of the contributor, relevant to the extended gap-imputation tiers
type Sex string

const (
	SexMale   Sex = "MALE"
	SexFemale Sex = "FEMALE"
)

// ParseSex accepts MALE/FEMALE and the Spanish MASCULINO/FEMENINO, case-insensitive
func ParseSex(s string) (Sex, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MALE", "MASCULINO":
		return SexMale, nil
	case "FEMALE", "FEMENINO":
		return SexFemale, nil
	default:
		return "", NewValidationError(KindInvalidSex, "sex", s, "must be MALE/MASCULINO or FEMALE/FEMENINO")
	}
}

// Employer labels synthesised by the engine
const (
	EmployerProjected = "PROJECTED"
	EmployerGap       = "GAP"
)

// CapApplied records which contribution cap, if any, clamped an aggregated month
type CapApplied string

const (
	CapNone    CapApplied = "none"
	CapMinimum CapApplied = "minimum"
	CapMaximum CapApplied = "maximum"
)

// ContributionRecord is one month of contributions.
// After aggregation there is exactly one record per Month.
type ContributionRecord struct {
	Month         YearMonth            `json:"month_year" yaml:"month_year"`
	Amount        decimal.Decimal      `json:"amount" yaml:"amount"`
	Employer      string               `json:"employer" yaml:"employer"`
	Regime        Regime               `json:"regime" yaml:"regime"`
	MultiEmployer *MultiEmployerDetail `json:"multi_employer,omitempty" yaml:"multi_employer,omitempty"`
}

// MultiEmployerDetail keeps the per-employer breakdown of an aggregated month
type MultiEmployerDetail struct {
	Records     []ContributionRecord `json:"records" yaml:"records"`
	GrossAmount decimal.Decimal      `json:"gross_amount" yaml:"gross_amount"`
	CapApplied  CapApplied           `json:"cap_applied" yaml:"cap_applied"`
	Employers   []string             `json:"employers" yaml:"employers"`
}

// SimulationRequest is the validated input to a single computation
type SimulationRequest struct {
	Records         []ContributionRecord
	RetirementMonth YearMonth
	AccessRegime    Regime
	Sex             Sex

	// MaleSpecialConditions enables the extended gap tiers for male contributors.
	// Nothing derives it yet; callers set it explicitly.
	MaleSpecialConditions bool
}

// Round2 rounds a currency amount to 2 decimal places
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
