package compare

import (
	"fmt"

	"github.com/rgehrsitz/basereg/internal/calculation"
	"github.com/rgehrsitz/basereg/internal/domain"
)

// CompareEngine runs a simulation and summarises the two schemes
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// Compare simulates req and compares the chosen scheme with the alternative
func (ce *CompareEngine) Compare(req domain.SimulationRequest) (*ComparisonSet, error) {
	outcome, err := ce.CalcEngine.Simulate(req)
	if err != nil {
		return nil, fmt.Errorf("failed to simulate: %w", err)
	}
	return ce.CompareOutcome(outcome), nil
}

// CompareOutcome builds a comparison from an existing outcome
func (ce *CompareEngine) CompareOutcome(outcome *domain.SimulationOutcome) *ComparisonSet {
	chosen := ce.MetricsCalculator.CalculateMetrics(outcome.ChosenResult())
	alt := ce.MetricsCalculator.CalculateMetrics(outcome.Alternative())
	alt = ce.MetricsCalculator.CalculateComparison(alt, chosen)

	compSet := &ComparisonSet{
		ChosenScheme:       outcome.Chosen,
		ChosenResult:       &chosen,
		AlternativeResults: []ComparisonResult{alt},
		RetirementMonth:    outcome.RetirementMonth.String(),
		ProjectedMonths:    outcome.ProjectedMonths,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet
}
