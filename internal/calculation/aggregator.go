package calculation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rgehrsitz/basereg/internal/domain"
	"github.com/shopspring/decimal"
)

// CoherenceCheck decides whether the regimes contributing in the same month
// form a legally possible combination. A non-nil error aborts the computation;
// errors that are not already a ValidationError are reported as
// KindIncoherentMultiEmployer.
type CoherenceCheck func(month domain.YearMonth, records []domain.ContributionRecord) error

// AcceptAllCombinations is the default CoherenceCheck. No combination rules
// are enforced yet.
func AcceptAllCombinations(domain.YearMonth, []domain.ContributionRecord) error {
	return nil
}

// RecordAggregator merges concurrent multi-employer records into one capped amount per month
type RecordAggregator struct {
	Reference *domain.ReferenceData
	Coherence CoherenceCheck
	Logger    Logger
}

// NewRecordAggregator creates an aggregator that accepts every regime combination
func NewRecordAggregator(ref *domain.ReferenceData, logger Logger) *RecordAggregator {
	if logger == nil {
		logger = NopLogger{}
	}
	return &RecordAggregator{Reference: ref, Coherence: AcceptAllCombinations, Logger: logger}
}

// Aggregate returns exactly one record per month, most recent month first.
// Months with a single record pass through unchanged.
func (ra *RecordAggregator) Aggregate(records []domain.ContributionRecord) ([]domain.ContributionRecord, error) {
	byMonth := make(map[domain.YearMonth][]domain.ContributionRecord)
	months := make([]domain.YearMonth, 0, len(records))
	for _, r := range records {
		if _, seen := byMonth[r.Month]; !seen {
			months = append(months, r.Month)
		}
		byMonth[r.Month] = append(byMonth[r.Month], r)
	}

	sort.Slice(months, func(i, j int) bool { return months[i].After(months[j]) })

	result := make([]domain.ContributionRecord, 0, len(months))
	for _, month := range months {
		group := byMonth[month]
		if len(group) == 1 {
			result = append(result, group[0])
			continue
		}

		check := ra.Coherence
		if check == nil {
			check = AcceptAllCombinations
		}
		if err := check(month, group); err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				return nil, fmt.Errorf("multi-employer month %s: %w", month, err)
			}
			return nil, domain.NewValidationError(domain.KindIncoherentMultiEmployer, "records", month.String(), err.Error())
		}

		merged, err := ra.mergeMonth(month, group)
		if err != nil {
			return nil, err
		}
		result = append(result, merged)
	}
	return result, nil
}

// mergeMonth sums a month's records and clamps the total to that year's caps
func (ra *RecordAggregator) mergeMonth(month domain.YearMonth, group []domain.ContributionRecord) (domain.ContributionRecord, error) {
	gross := decimal.Zero
	principal := group[0]
	employers := make([]string, 0, len(group))
	for _, r := range group {
		gross = gross.Add(r.Amount)
		if r.Amount.GreaterThan(principal.Amount) {
			principal = r
		}
		employers = append(employers, r.Employer)
	}

	caps, capsYear, err := ra.Reference.CapsFor(month.Year)
	if err != nil {
		return domain.ContributionRecord{}, fmt.Errorf("aggregating %s: %w", month, err)
	}
	if capsYear != month.Year {
		ra.Logger.Debugf("no contribution caps for %d, using %d", month.Year, capsYear)
	}

	final := gross
	capApplied := domain.CapNone
	switch {
	case gross.LessThan(caps.MinMonthlyBase):
		final = caps.MinMonthlyBase
		capApplied = domain.CapMinimum
	case gross.GreaterThan(caps.MaxMonthlyBase):
		final = caps.MaxMonthlyBase
		capApplied = domain.CapMaximum
	}

	individual := make([]domain.ContributionRecord, len(group))
	copy(individual, group)

	return domain.ContributionRecord{
		Month:    month,
		Amount:   domain.Round2(final),
		Employer: fmt.Sprintf("%d employers aggregated", len(group)),
		Regime:   principal.Regime,
		MultiEmployer: &domain.MultiEmployerDetail{
			Records:     individual,
			GrossAmount: domain.Round2(gross),
			CapApplied:  capApplied,
			Employers:   employers,
		},
	}, nil
}
