package calculation

import (
	"github.com/rgehrsitz/basereg/internal/domain"
	"github.com/shopspring/decimal"
)

// trailingMonths is how many months, ending at the latest record, feed the projected amount
const trailingMonths = 6

// GapProjector extends a record set with simulated months up to retirement
type GapProjector struct{}

// NewGapProjector creates a new projector
func NewGapProjector() *GapProjector {
	return &GapProjector{}
}

// Project returns one synthetic record per month after the latest known record
// through the month before retirement. Each carries the rounded mean of the
// trailing six months. No records are produced when retirement is not after
// the latest record.
func (gp *GapProjector) Project(records []domain.ContributionRecord, retirement domain.YearMonth, regime domain.Regime) []domain.ContributionRecord {
	if len(records) == 0 {
		return nil
	}

	latest := records[0]
	for _, r := range records[1:] {
		if r.Month.After(latest.Month) {
			latest = r
		}
	}
	if !retirement.After(latest.Month) {
		return nil
	}

	mean := gp.trailingMean(records, latest)

	var projected []domain.ContributionRecord
	last := retirement.Prev()
	for month := latest.Month.Next(); !month.After(last); month = month.Next() {
		projected = append(projected, domain.ContributionRecord{
			Month:    month,
			Amount:   mean,
			Employer: domain.EmployerProjected,
			Regime:   regime,
		})
	}
	return projected
}

// trailingMean averages the records within the six months ending at latest
func (gp *GapProjector) trailingMean(records []domain.ContributionRecord, latest domain.ContributionRecord) decimal.Decimal {
	from := latest.Month.AddMonths(-(trailingMonths - 1))
	sum := decimal.Zero
	count := 0
	for _, r := range records {
		if !r.Month.Before(from) && !r.Month.After(latest.Month) {
			sum = sum.Add(r.Amount)
			count++
		}
	}
	if count == 0 {
		return latest.Amount
	}
	return domain.Round2(sum.Div(decimal.NewFromInt(int64(count))))
}
