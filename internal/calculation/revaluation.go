package calculation

import (
	"github.com/rgehrsitz/basereg/internal/domain"
	"github.com/shopspring/decimal"
)

// nonRevaluedMonths is the span immediately before retirement kept at face value
const nonRevaluedMonths = 24

// RevaluationClassifier tags window months and applies historical indices to older ones
type RevaluationClassifier struct {
	Reference *domain.ReferenceData
	Logger    Logger
}

// NewRevaluationClassifier creates a classifier reading indices from ref
func NewRevaluationClassifier(ref *domain.ReferenceData, logger Logger) *RevaluationClassifier {
	if logger == nil {
		logger = NopLogger{}
	}
	return &RevaluationClassifier{Reference: ref, Logger: logger}
}

// Classify returns a copy of window where months within the 24 before
// retirement are non_revalued and older months are revalued. A revalued month
// with no published index keeps its amount and records an index of 1.
func (rc *RevaluationClassifier) Classify(window []domain.PeriodRecord, retirement domain.YearMonth) []domain.PeriodRecord {
	threshold := retirement.AddMonths(-nonRevaluedMonths)
	out := make([]domain.PeriodRecord, len(window))
	missing := 0
	for i, rec := range window {
		if !rec.Month.Before(threshold) {
			rec.Classification = domain.NonRevalued
			out[i] = rec
			continue
		}

		rec.Classification = domain.Revalued
		original := rec.Amount
		index, ok := rc.Reference.IndexFor(rec.Month)
		if ok {
			rec.Amount = domain.Round2(original.Mul(index))
		} else {
			index = decimal.NewFromInt(1)
			missing++
		}
		rec.BaseOriginal = &original
		rec.AppliedIndex = &index
		out[i] = rec
	}
	if missing > 0 {
		rc.Logger.Debugf("%d revalued months had no published index, kept at face value", missing)
	}
	return out
}
