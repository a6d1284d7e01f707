package compare

import (
	"fmt"

	"github.com/rgehrsitz/basereg/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult holds the key metrics of one scheme run
type ComparisonResult struct {
	Scheme         domain.SchemeName `json:"scheme"`
	ParametersYear int               `json:"parametersYear,omitempty"`
	MonthsIncluded int               `json:"monthsIncluded"`
	Divisor        decimal.Decimal   `json:"divisor"`

	// Key Metrics
	GapCount       int             `json:"gapCount"`
	RevaluedCount  int             `json:"revaluedCount"`
	SumRevalued    decimal.Decimal `json:"sumRevalued"`
	SumNonRevalued decimal.Decimal `json:"sumNonRevalued"`
	SumTotal       decimal.Decimal `json:"sumTotal"`
	RegulatoryBase decimal.Decimal `json:"regulatoryBase"`

	// Comparison to the chosen scheme
	BaseDiffFromChosen decimal.Decimal `json:"baseDiffFromChosen"`
	BasePctFromChosen  decimal.Decimal `json:"basePctFromChosen"`
	GapDiffFromChosen  int             `json:"gapDiffFromChosen"`
}

// ComparisonSet compares the chosen scheme with the one it beat
type ComparisonSet struct {
	ChosenScheme       domain.SchemeName  `json:"chosenScheme"`
	ChosenResult       *ComparisonResult  `json:"chosenResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	RetirementMonth    string             `json:"retirementMonth"`
	ProjectedMonths    int                `json:"projectedMonths"`
	RequestPath        string             `json:"requestPath,omitempty"`
}

// MetricsCalculator extracts key metrics from scheme results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for a scheme result
func (mc *MetricsCalculator) CalculateMetrics(res *domain.SchemeResult) ComparisonResult {
	return ComparisonResult{
		Scheme:         res.Scheme,
		ParametersYear: res.ParametersYear,
		MonthsIncluded: res.Parameters.MonthsIncluded,
		Divisor:        res.Parameters.Divisor,
		GapCount:       res.GapCount,
		RevaluedCount:  res.Statistics.RevaluedCount,
		SumRevalued:    res.Statistics.SumRevalued,
		SumNonRevalued: res.Statistics.SumNonRevalued,
		SumTotal:       res.Statistics.SumTotal,
		RegulatoryBase: res.Statistics.RegulatoryBase,
	}
}

// CalculateComparison fills in the deltas of alt relative to chosen
func (mc *MetricsCalculator) CalculateComparison(alt, chosen ComparisonResult) ComparisonResult {
	alt.BaseDiffFromChosen = alt.RegulatoryBase.Sub(chosen.RegulatoryBase)
	if !chosen.RegulatoryBase.IsZero() {
		alt.BasePctFromChosen = alt.BaseDiffFromChosen.
			Div(chosen.RegulatoryBase).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	alt.GapDiffFromChosen = alt.GapCount - chosen.GapCount
	return alt
}

// GenerateRecommendations explains the choice and points at what drives the result
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	if compSet.ChosenResult == nil {
		return recommendations
	}
	chosen := compSet.ChosenResult

	for _, alt := range compSet.AlternativeResults {
		diff := alt.BaseDiffFromChosen.Neg()
		if diff.IsZero() {
			recommendations = append(recommendations,
				fmt.Sprintf("Tie: %s and %s yield the same regulatory base; %s applies", chosen.Scheme, alt.Scheme, chosen.Scheme))
			continue
		}
		recommendations = append(recommendations,
			fmt.Sprintf("Best Base: %s yields €%s more per month than %s", chosen.Scheme, diff.StringFixed(2), alt.Scheme))
	}

	if chosen.GapCount > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Gaps: %d of %d months were imputed; documenting missing contributions may raise the base",
				chosen.GapCount, chosen.MonthsIncluded))
	}
	if compSet.ProjectedMonths > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Projection: %d months before retirement were projected from the recent average", compSet.ProjectedMonths))
	}
	return recommendations
}
