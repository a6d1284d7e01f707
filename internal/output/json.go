package output

import (
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/basereg/internal/domain"
)

// JSONFormatter serialises the full outcome, both schemes included
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(outcome *domain.SimulationOutcome) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(outcome, "", "  ")
	}
	return json.Marshal(outcome)
}
