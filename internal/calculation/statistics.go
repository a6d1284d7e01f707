package calculation

import (
	"fmt"

	"github.com/rgehrsitz/basereg/internal/domain"
	"github.com/shopspring/decimal"
)

// StatisticsCalculator sums a classified window and derives the regulatory base
type StatisticsCalculator struct{}

// NewStatisticsCalculator creates a new statistics calculator
func NewStatisticsCalculator() *StatisticsCalculator {
	return &StatisticsCalculator{}
}

// Calculate tallies the window and divides the total by divisor
func (sc *StatisticsCalculator) Calculate(records []domain.PeriodRecord, divisor decimal.Decimal) (domain.Statistics, error) {
	if !divisor.IsPositive() {
		return domain.Statistics{}, fmt.Errorf("divisor must be positive, got %s", divisor)
	}

	stats := domain.Statistics{
		SumRevalued:    decimal.Zero,
		SumNonRevalued: decimal.Zero,
	}
	for _, rec := range records {
		switch rec.Classification {
		case domain.Revalued:
			stats.RevaluedCount++
			stats.SumRevalued = stats.SumRevalued.Add(rec.Amount)
		default:
			stats.NonRevaluedCount++
			stats.SumNonRevalued = stats.SumNonRevalued.Add(rec.Amount)
		}
	}
	stats.TotalCount = len(records)
	stats.SumRevalued = domain.Round2(stats.SumRevalued)
	stats.SumNonRevalued = domain.Round2(stats.SumNonRevalued)
	stats.SumTotal = domain.Round2(stats.SumRevalued.Add(stats.SumNonRevalued))
	stats.RegulatoryBase = domain.Round2(stats.SumTotal.Div(divisor))
	return stats, nil
}
