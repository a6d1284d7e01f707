package domain

import (
	"github.com/shopspring/decimal"
)

// Classification tells whether a month in the window is revalued
type Classification string

const (
	Revalued    Classification = "revalued"
	NonRevalued Classification = "non_revalued"
)

// Provenance tells where a month in the window came from
type Provenance string

const (
	ProvenanceOriginal   Provenance = "original"
	ProvenanceAggregated Provenance = "aggregated"
	ProvenanceProjected  Provenance = "projected"
	ProvenanceGap        Provenance = "gap"
)

// SchemeName identifies one of the two competing parameter regimes
type SchemeName string

const (
	SchemeReform SchemeName = "reform"
	SchemeLegacy SchemeName = "legacy"
)

// PeriodRecord is a month of the computation window after imputation and revaluation
type PeriodRecord struct {
	ContributionRecord
	Provenance     Provenance       `json:"provenance"`
	Classification Classification   `json:"classification"`
	BaseOriginal   *decimal.Decimal `json:"base_original,omitempty"`
	AppliedIndex   *decimal.Decimal `json:"applied_index,omitempty"`
}

// Statistics summarises a computation window
type Statistics struct {
	TotalCount       int             `json:"total_count"`
	RevaluedCount    int             `json:"revalued_count"`
	NonRevaluedCount int             `json:"non_revalued_count"`
	SumRevalued      decimal.Decimal `json:"sum_revalued"`
	SumNonRevalued   decimal.Decimal `json:"sum_non_revalued"`
	SumTotal         decimal.Decimal `json:"sum_total"`
	RegulatoryBase   decimal.Decimal `json:"regulatory_base"`
}

// SchemeResult is the outcome of one pipeline run under one parameter regime
type SchemeResult struct {
	Scheme         SchemeName     `json:"scheme"`
	Parameters     YearParameters `json:"parameters"`
	ParametersYear int            `json:"parameters_year,omitempty"` // 0 for legacy
	Records        []PeriodRecord `json:"records"`
	Statistics     Statistics     `json:"statistics"`
	GapCount       int            `json:"gap_count"`
}

// SimulationOutcome is the chosen scheme plus both scheme results for audit
type SimulationOutcome struct {
	Chosen          SchemeName   `json:"chosen_scheme"`
	Reform          SchemeResult `json:"reform"`
	Legacy          SchemeResult `json:"legacy"`
	RetirementMonth YearMonth    `json:"retirement_month_year"`
	AccessRegime    Regime       `json:"access_regime"`
	Sex             Sex          `json:"sex"`
	ProjectedMonths int          `json:"projected_months"`
}

// ChosenResult returns the result of the scheme that was selected
func (o *SimulationOutcome) ChosenResult() *SchemeResult {
	if o.Chosen == SchemeLegacy {
		return &o.Legacy
	}
	return &o.Reform
}

// Alternative returns the result of the scheme that was not selected
func (o *SimulationOutcome) Alternative() *SchemeResult {
	if o.Chosen == SchemeLegacy {
		return &o.Reform
	}
	return &o.Legacy
}
