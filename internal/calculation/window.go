package calculation

import (
	"fmt"

	"github.com/rgehrsitz/basereg/internal/domain"
	"github.com/shopspring/decimal"
)

// Gap ordinal tiers for the GENERAL regime
const (
	fullMinimumGaps    = 48 // every contributor: 100% of the minimum base
	extendedFullGaps   = 60 // extended population: 100% up to here
	extendedEightyGaps = 84 // extended population: 80% up to here, 50% beyond
)

var (
	eightyPercent = decimal.NewFromFloat(0.8)
	fiftyPercent  = decimal.NewFromFloat(0.5)
)

// GapRule computes the amount imputed for a month with no contribution
type GapRule struct {
	Reference             *domain.ReferenceData
	AccessRegime          domain.Regime
	Sex                   domain.Sex
	MaleSpecialConditions bool
	Logger                Logger
}

// extendedTiers reports whether the contributor benefits from the 49-84 month tiers
func (gr *GapRule) extendedTiers() bool {
	return gr.Sex == domain.SexFemale || (gr.Sex == domain.SexMale && gr.MaleSpecialConditions)
}

// Amount returns the imputed amount for the gap at month with the given 1-based ordinal
func (gr *GapRule) Amount(month domain.YearMonth, ordinal int) (decimal.Decimal, error) {
	if gr.AccessRegime == domain.RegimeAutonomo {
		return decimal.Zero, nil
	}

	caps, capsYear, err := gr.Reference.CapsFor(month.Year)
	if err != nil {
		return decimal.Zero, fmt.Errorf("gap %d at %s: %w", ordinal, month, err)
	}
	if capsYear != month.Year && gr.Logger != nil {
		gr.Logger.Debugf("no minimum base for %d, using %d", month.Year, capsYear)
	}
	minBase := domain.Round2(caps.MinMonthlyBase)

	if ordinal <= fullMinimumGaps {
		return minBase, nil
	}
	if !gr.extendedTiers() {
		return domain.Round2(minBase.Mul(fiftyPercent)), nil
	}
	switch {
	case ordinal <= extendedFullGaps:
		return minBase, nil
	case ordinal <= extendedEightyGaps:
		return domain.Round2(minBase.Mul(eightyPercent)), nil
	default:
		return domain.Round2(minBase.Mul(fiftyPercent)), nil
	}
}

// gapImputer numbers the gaps met during one backward walk. A fresh imputer
// is created for every scheme run so ordinals never leak between runs.
type gapImputer struct {
	rule  *GapRule
	count int
}

func newGapImputer(rule *GapRule) *gapImputer {
	return &gapImputer{rule: rule}
}

// next imputes the following gap and returns its record
func (gi *gapImputer) next(month domain.YearMonth) (domain.PeriodRecord, error) {
	gi.count++
	amount, err := gi.rule.Amount(month, gi.count)
	if err != nil {
		return domain.PeriodRecord{}, err
	}
	return domain.PeriodRecord{
		ContributionRecord: domain.ContributionRecord{
			Month:    month,
			Amount:   amount,
			Employer: domain.EmployerGap,
			Regime:   gi.rule.AccessRegime,
		},
		Provenance: domain.ProvenanceGap,
	}, nil
}

// PeriodWindowBuilder assembles the fixed-length window ending the month before retirement
type PeriodWindowBuilder struct {
	Rule *GapRule
}

// NewPeriodWindowBuilder creates a builder that imputes gaps with rule
func NewPeriodWindowBuilder(rule *GapRule) *PeriodWindowBuilder {
	return &PeriodWindowBuilder{Rule: rule}
}

// Build walks backward from the month before retirement for n months. Known
// months are emitted as indexed; missing months are imputed. The result holds
// exactly n contiguous months, most recent first, and the number of gaps.
func (pb *PeriodWindowBuilder) Build(index map[domain.YearMonth]domain.PeriodRecord, retirement domain.YearMonth, n int) ([]domain.PeriodRecord, int, error) {
	if n < 0 {
		return nil, 0, fmt.Errorf("window length must not be negative, got %d", n)
	}

	imputer := newGapImputer(pb.Rule)
	window := make([]domain.PeriodRecord, 0, n)
	month := retirement.Prev()
	for i := 0; i < n; i++ {
		if rec, ok := index[month]; ok {
			window = append(window, rec)
		} else {
			gap, err := imputer.next(month)
			if err != nil {
				return nil, 0, err
			}
			window = append(window, gap)
		}
		month = month.Prev()
	}
	return window, imputer.count, nil
}
