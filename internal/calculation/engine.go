package calculation

import (
	"fmt"

	"github.com/rgehrsitz/basereg/internal/domain"
)

// Engine orchestrates the regulatory-base pipeline under the reform and
// legacy parameter regimes and keeps the more favourable result.
// An Engine holds no per-computation state and may be shared between goroutines
// as long as its Logger is safe for concurrent use.
type Engine struct {
	Reference  *domain.ReferenceData
	Aggregator *RecordAggregator
	Projector  *GapProjector
	Classifier *RevaluationClassifier
	Stats      *StatisticsCalculator
	Logger     Logger
}

// NewEngine creates an engine over an immutable reference-data snapshot
func NewEngine(ref *domain.ReferenceData) *Engine {
	e := &Engine{
		Reference: ref,
		Projector: NewGapProjector(),
		Stats:     NewStatisticsCalculator(),
	}
	e.SetLogger(nil)
	return e
}

// SetLogger installs logger on the engine and its components; nil installs NopLogger
func (e *Engine) SetLogger(logger Logger) {
	if logger == nil {
		logger = NopLogger{}
	}
	e.Logger = logger
	if e.Aggregator == nil {
		e.Aggregator = NewRecordAggregator(e.Reference, logger)
	} else {
		e.Aggregator.Logger = logger
	}
	if e.Classifier == nil {
		e.Classifier = NewRevaluationClassifier(e.Reference, logger)
	} else {
		e.Classifier.Logger = logger
	}
}

// Simulate runs the full computation for one request. Any error in either
// scheme run aborts the computation; no partial outcome is returned.
func (e *Engine) Simulate(req domain.SimulationRequest) (*domain.SimulationOutcome, error) {
	if e.Reference.IsEmpty() {
		return nil, domain.NewValidationError(domain.KindReferenceDataExhausted, "reference", "", "all reference tables are empty")
	}
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	aggregated, err := e.Aggregator.Aggregate(req.Records)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate records: %w", err)
	}
	projected := e.Projector.Project(aggregated, req.RetirementMonth, req.AccessRegime)
	if len(projected) > 0 {
		e.Logger.Debugf("projected %d months from %s to %s", len(projected), projected[0].Month, projected[len(projected)-1].Month)
	}
	index := indexRecords(aggregated, projected)

	reformParams, reformYear, err := e.Reference.ParametersFor(req.RetirementMonth.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reform parameters: %w", err)
	}
	if reformYear != req.RetirementMonth.Year {
		e.Logger.Debugf("no computation parameters for %d, using %d", req.RetirementMonth.Year, reformYear)
	}

	reform, err := e.runScheme(domain.SchemeReform, reformParams, reformYear, index, req)
	if err != nil {
		return nil, fmt.Errorf("reform scheme: %w", err)
	}
	legacy, err := e.runScheme(domain.SchemeLegacy, domain.LegacyParameters, 0, index, req)
	if err != nil {
		return nil, fmt.Errorf("legacy scheme: %w", err)
	}

	outcome := &domain.SimulationOutcome{
		Chosen:          SelectScheme(reform, legacy),
		Reform:          *reform,
		Legacy:          *legacy,
		RetirementMonth: req.RetirementMonth,
		AccessRegime:    req.AccessRegime,
		Sex:             req.Sex,
		ProjectedMonths: len(projected),
	}
	e.Logger.Infof("chose %s scheme: regulatory base %s (reform %s, legacy %s)",
		outcome.Chosen,
		outcome.ChosenResult().Statistics.RegulatoryBase.StringFixed(2),
		reform.Statistics.RegulatoryBase.StringFixed(2),
		legacy.Statistics.RegulatoryBase.StringFixed(2))
	return outcome, nil
}

// runScheme builds, classifies and sums one window. Each call gets its own gap numbering.
func (e *Engine) runScheme(name domain.SchemeName, params domain.YearParameters, paramsYear int, index map[domain.YearMonth]domain.PeriodRecord, req domain.SimulationRequest) (*domain.SchemeResult, error) {
	if params.MonthsIncluded <= 0 {
		return nil, fmt.Errorf("months included must be positive, got %d", params.MonthsIncluded)
	}

	rule := &GapRule{
		Reference:             e.Reference,
		AccessRegime:          req.AccessRegime,
		Sex:                   req.Sex,
		MaleSpecialConditions: req.MaleSpecialConditions,
		Logger:                e.Logger,
	}
	window, gaps, err := NewPeriodWindowBuilder(rule).Build(index, req.RetirementMonth, params.MonthsIncluded)
	if err != nil {
		return nil, fmt.Errorf("failed to build window: %w", err)
	}

	classified := e.Classifier.Classify(window, req.RetirementMonth)
	stats, err := e.Stats.Calculate(classified, params.Divisor)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate statistics: %w", err)
	}

	e.Logger.Debugf("%s: %d months, %d gaps, regulatory base %s", name, len(classified), gaps, stats.RegulatoryBase.StringFixed(2))
	return &domain.SchemeResult{
		Scheme:         name,
		Parameters:     params,
		ParametersYear: paramsYear,
		Records:        classified,
		Statistics:     stats,
		GapCount:       gaps,
	}, nil
}

// SelectScheme picks reform unless legacy yields a strictly higher regulatory base
func SelectScheme(reform, legacy *domain.SchemeResult) domain.SchemeName {
	if reform.Statistics.RegulatoryBase.GreaterThanOrEqual(legacy.Statistics.RegulatoryBase) {
		return domain.SchemeReform
	}
	return domain.SchemeLegacy
}

// indexRecords keys real and projected records by month with their provenance
func indexRecords(aggregated, projected []domain.ContributionRecord) map[domain.YearMonth]domain.PeriodRecord {
	index := make(map[domain.YearMonth]domain.PeriodRecord, len(aggregated)+len(projected))
	for _, r := range aggregated {
		prov := domain.ProvenanceOriginal
		if r.MultiEmployer != nil {
			prov = domain.ProvenanceAggregated
		}
		index[r.Month] = domain.PeriodRecord{ContributionRecord: r, Provenance: prov}
	}
	for _, r := range projected {
		index[r.Month] = domain.PeriodRecord{ContributionRecord: r, Provenance: domain.ProvenanceProjected}
	}
	return index
}
