package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/basereg/internal/domain"
	"github.com/shopspring/decimal"
)

// WhatIfResult compares the chosen scheme of a base request against a transformed variant
type WhatIfResult struct {
	Transforms      []string         `json:"transforms"`
	Base            ComparisonResult `json:"base"`
	Variant         ComparisonResult `json:"variant"`
	BaseRetirement  string           `json:"base_retirement_month_year"`
	VariantRetire   string           `json:"variant_retirement_month_year"`
	BaseDifference  decimal.Decimal  `json:"base_difference"`
	BasePctChange   decimal.Decimal  `json:"base_pct_change"`
	SchemeChanged   bool             `json:"scheme_changed"`
	GapDifference   int              `json:"gap_difference"`
	Recommendations []string         `json:"recommendations"`
}

// CompareWhatIf simulates both requests and reports how the variant moves the chosen base
func (ce *CompareEngine) CompareWhatIf(base, variant domain.SimulationRequest, descriptions []string) (*WhatIfResult, error) {
	baseOutcome, err := ce.CalcEngine.Simulate(base)
	if err != nil {
		return nil, fmt.Errorf("failed to simulate base request: %w", err)
	}
	variantOutcome, err := ce.CalcEngine.Simulate(variant)
	if err != nil {
		return nil, fmt.Errorf("failed to simulate variant request: %w", err)
	}

	baseMetrics := ce.MetricsCalculator.CalculateMetrics(baseOutcome.ChosenResult())
	variantMetrics := ce.MetricsCalculator.CalculateMetrics(variantOutcome.ChosenResult())
	variantMetrics = ce.MetricsCalculator.CalculateComparison(variantMetrics, baseMetrics)

	res := &WhatIfResult{
		Transforms:     descriptions,
		Base:           baseMetrics,
		Variant:        variantMetrics,
		BaseRetirement: baseOutcome.RetirementMonth.String(),
		VariantRetire:  variantOutcome.RetirementMonth.String(),
		BaseDifference: variantMetrics.BaseDiffFromChosen,
		BasePctChange:  variantMetrics.BasePctFromChosen,
		SchemeChanged:  baseOutcome.Chosen != variantOutcome.Chosen,
		GapDifference:  variantMetrics.GapDiffFromChosen,
	}
	res.Recommendations = whatIfRecommendations(res)
	return res, nil
}

func whatIfRecommendations(res *WhatIfResult) []string {
	var recs []string
	switch {
	case res.BaseDifference.IsPositive():
		recs = append(recs, fmt.Sprintf("Variant raises the regulatory base by €%s per month (%s%%)",
			res.BaseDifference.StringFixed(2), res.BasePctChange.StringFixed(2)))
	case res.BaseDifference.IsNegative():
		recs = append(recs, fmt.Sprintf("Variant lowers the regulatory base by €%s per month (%s%%)",
			res.BaseDifference.Abs().StringFixed(2), res.BasePctChange.StringFixed(2)))
	default:
		recs = append(recs, "Variant leaves the regulatory base unchanged")
	}
	if res.SchemeChanged {
		recs = append(recs, fmt.Sprintf("Chosen scheme changes from %s to %s", res.Base.Scheme, res.Variant.Scheme))
	}
	if res.GapDifference < 0 {
		recs = append(recs, fmt.Sprintf("Variant imputes %d fewer gap months", -res.GapDifference))
	}
	return recs
}

// FormatWhatIf renders a WhatIfResult as a plain-text table
func FormatWhatIf(res *WhatIfResult) string {
	var sb strings.Builder
	sb.WriteString("WHAT-IF ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	for _, t := range res.Transforms {
		sb.WriteString(fmt.Sprintf("• %s\n", t))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%-12s %-10s %-12s %8s %14s\n", "", "Scheme", "Retirement", "Gaps", "Base"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-12s %-10s %-12s %8d %14s\n", "Base", res.Base.Scheme, res.BaseRetirement,
		res.Base.GapCount, "€"+res.Base.RegulatoryBase.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("%-12s %-10s %-12s %8d %14s\n", "Variant", res.Variant.Scheme, res.VariantRetire,
		res.Variant.GapCount, "€"+res.Variant.RegulatoryBase.StringFixed(2)))
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	for _, rec := range res.Recommendations {
		sb.WriteString(fmt.Sprintf("• %s\n", rec))
	}
	return sb.String()
}
