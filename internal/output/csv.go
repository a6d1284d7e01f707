package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/basereg/internal/domain"
)

// CSVFormatter writes the chosen scheme's window, one row per month
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(outcome *domain.SimulationOutcome) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scheme", "MonthYear", "Amount", "BaseOriginal", "AppliedIndex", "Employer", "Regime", "Provenance", "Classification"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	chosen := outcome.ChosenResult()
	for _, rec := range chosen.Records {
		original, index := "", ""
		if rec.BaseOriginal != nil {
			original = rec.BaseOriginal.StringFixed(2)
		}
		if rec.AppliedIndex != nil {
			index = rec.AppliedIndex.String()
		}
		row := []string{
			string(chosen.Scheme),
			rec.Month.String(),
			rec.Amount.StringFixed(2),
			original,
			index,
			rec.Employer,
			string(rec.Regime),
			string(rec.Provenance),
			string(rec.Classification),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSVSummarizer writes one row per scheme
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "summary-csv" }

func (c CSVSummarizer) Format(outcome *domain.SimulationOutcome) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scheme", "Chosen", "MonthsIncluded", "Divisor", "Gaps", "SumRevalued", "SumNonRevalued", "SumTotal", "RegulatoryBase"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, res := range []*domain.SchemeResult{&outcome.Reform, &outcome.Legacy} {
		s := res.Statistics
		row := []string{
			string(res.Scheme),
			strconv.FormatBool(res.Scheme == outcome.Chosen),
			strconv.Itoa(res.Parameters.MonthsIncluded),
			res.Parameters.Divisor.String(),
			strconv.Itoa(res.GapCount),
			s.SumRevalued.StringFixed(2),
			s.SumNonRevalued.StringFixed(2),
			s.SumTotal.StringFixed(2),
			s.RegulatoryBase.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
