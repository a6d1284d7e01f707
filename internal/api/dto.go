package api

import (
	"sort"

	"github.com/rgehrsitz/basereg/internal/domain"
)

// ExtractionMetadata describes the submitted records
type ExtractionMetadata struct {
	RecordCount   int      `json:"record_count"`
	EmployerCount int      `json:"employer_count"`
	Employers     []string `json:"employers"`
	EarliestMonth string   `json:"earliest_month_year,omitempty"`
	LatestMonth   string   `json:"latest_month_year,omitempty"`
}

// SimulateResponse is the body returned by POST /api/simulate
type SimulateResponse struct {
	RunID      string             `json:"run_id"`
	Extraction ExtractionMetadata `json:"extraction"`
	*domain.SimulationOutcome
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
	RunID   string `json:"run_id,omitempty"`
}

// HealthResponse is the body returned by GET /health
type HealthResponse struct {
	Status string `json:"status"`
}

func describeRecords(records []domain.ContributionRecord) ExtractionMetadata {
	meta := ExtractionMetadata{RecordCount: len(records), Employers: []string{}}
	seen := map[string]bool{}
	var earliest, latest domain.YearMonth
	for i, r := range records {
		if !seen[r.Employer] {
			seen[r.Employer] = true
			meta.Employers = append(meta.Employers, r.Employer)
		}
		if i == 0 || r.Month.Before(earliest) {
			earliest = r.Month
		}
		if i == 0 || r.Month.After(latest) {
			latest = r.Month
		}
	}
	sort.Strings(meta.Employers)
	meta.EmployerCount = len(meta.Employers)
	if len(records) > 0 {
		meta.EarliestMonth = earliest.String()
		meta.LatestMonth = latest.String()
	}
	return meta
}
