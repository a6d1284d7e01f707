package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// YearParameters are the computation parameters in force for one calendar year
type YearParameters struct {
	MonthsIncluded int             `yaml:"bases_incluidas" json:"months_included"`
	PeriodMonths   int             `yaml:"periodo_meses" json:"period_months"`
	Divisor        decimal.Decimal `yaml:"divisor_base_reguladora" json:"divisor"`
}

// LegacyParameters are the fixed pre-reform parameters: 300 months over a 350 divisor
var LegacyParameters = YearParameters{
	MonthsIncluded: 300,
	PeriodMonths:   300,
	Divisor:        decimal.NewFromInt(350),
}

// ContributionCaps are the monthly contribution base limits for one year
type ContributionCaps struct {
	MinMonthlyBase decimal.Decimal `yaml:"base_minima_mensual" json:"min_monthly_base"`
	MaxMonthlyBase decimal.Decimal `yaml:"base_maxima_mensual" json:"max_monthly_base"`
}

// ComputationParameters maps calendar year to its parameters
type ComputationParameters map[int]YearParameters

// RevalorizationIndexTable maps a month to its revaluation multiplier
type RevalorizationIndexTable map[YearMonth]decimal.Decimal

// ContributionCapTable maps calendar year to its contribution caps
type ContributionCapTable map[int]ContributionCaps

// ReferenceData bundles the immutable lookup tables the engine reads.
// It is built once by the caller and shared read-only between computations.
type ReferenceData struct {
	Parameters ComputationParameters
	Indices    RevalorizationIndexTable
	Caps       ContributionCapTable
}

// IsEmpty reports whether every table is empty
func (rd *ReferenceData) IsEmpty() bool {
	return rd == nil || (len(rd.Parameters) == 0 && len(rd.Indices) == 0 && len(rd.Caps) == 0)
}

// ParametersFor returns the parameters for year, falling back to the nearest
// available year. The year actually used is returned alongside.
func (rd *ReferenceData) ParametersFor(year int) (YearParameters, int, error) {
	used, ok := NearestYear(rd.Parameters, year)
	if !ok {
		return YearParameters{}, 0, NewValidationError(KindReferenceDataExhausted, "parameters", "", "computation parameters table is empty")
	}
	return rd.Parameters[used], used, nil
}

// CapsFor returns the contribution caps for year, falling back to the nearest available year
func (rd *ReferenceData) CapsFor(year int) (ContributionCaps, int, error) {
	used, ok := NearestYear(rd.Caps, year)
	if !ok {
		return ContributionCaps{}, 0, NewValidationError(KindReferenceDataExhausted, "caps", "", "contribution caps table is empty")
	}
	return rd.Caps[used], used, nil
}

// IndexFor returns the revaluation index for a month, if one is published
func (rd *ReferenceData) IndexFor(ym YearMonth) (decimal.Decimal, bool) {
	idx, ok := rd.Indices[ym]
	return idx, ok
}

// NearestYear returns year itself when present, otherwise the available key
// with the smallest absolute distance. Equidistant candidates resolve to the
// earlier year.
func NearestYear[V any](table map[int]V, year int) (int, bool) {
	if len(table) == 0 {
		return 0, false
	}
	if _, ok := table[year]; ok {
		return year, true
	}

	years := make([]int, 0, len(table))
	for y := range table {
		years = append(years, y)
	}
	sort.Ints(years)

	best := years[0]
	bestDist := abs(best - year)
	for _, y := range years[1:] {
		if d := abs(y - year); d < bestDist {
			best, bestDist = y, d
		}
	}
	return best, true
}

// YearRange returns the smallest and largest year keys of a table
func YearRange[V any](table map[int]V) (first, last int, ok bool) {
	for y := range table {
		if !ok || y < first {
			first = y
		}
		if !ok || y > last {
			last = y
		}
		ok = true
	}
	return first, last, ok
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
