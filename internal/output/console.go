package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/basereg/internal/domain"
)

// ConsoleFormatter renders a short summary of the chosen scheme
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(outcome *domain.SimulationOutcome) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "REGULATORY BASE SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("=", 40))
	writeRequestEcho(&buf, outcome)

	chosen := outcome.ChosenResult()
	alt := outcome.Alternative()
	fmt.Fprintf(&buf, "Chosen scheme: %s\n", chosen.Scheme)
	fmt.Fprintf(&buf, "Regulatory base: %s\n", FormatCurrency(chosen.Statistics.RegulatoryBase))
	diff := chosen.Statistics.RegulatoryBase.Sub(alt.Statistics.RegulatoryBase)
	fmt.Fprintf(&buf, "%s scheme: %s (Δ %s)\n", alt.Scheme, FormatCurrency(alt.Statistics.RegulatoryBase), FormatCurrency(diff))
	return buf.Bytes(), nil
}

// ConsoleVerboseFormatter renders both schemes and the chosen window month by month
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(outcome *domain.SimulationOutcome) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "REGULATORY BASE SIMULATION")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	writeRequestEcho(&buf, outcome)
	fmt.Fprintf(&buf, "Projected months:  %d\n", outcome.ProjectedMonths)
	fmt.Fprintln(&buf)

	for _, res := range []*domain.SchemeResult{&outcome.Reform, &outcome.Legacy} {
		marker := ""
		if res.Scheme == outcome.Chosen {
			marker = " (chosen)"
		}
		fmt.Fprintf(&buf, "SCHEME: %s%s\n", strings.ToUpper(string(res.Scheme)), marker)
		fmt.Fprintln(&buf, strings.Repeat("-", 50))
		writeSchemeStats(&buf, res)
		fmt.Fprintln(&buf)
	}

	chosen := outcome.ChosenResult()
	fmt.Fprintf(&buf, "COMPUTATION WINDOW (%s, most recent first)\n", chosen.Scheme)
	fmt.Fprintln(&buf, strings.Repeat("-", 81))
	fmt.Fprintf(&buf, "%-8s %12s %12s %8s %-10s %-12s %s\n", "Month", "Amount", "Original", "Index", "Source", "Class", "Employer")
	for _, rec := range chosen.Records {
		original, index := "", ""
		if rec.BaseOriginal != nil {
			original = rec.BaseOriginal.StringFixed(2)
		}
		if rec.AppliedIndex != nil {
			index = rec.AppliedIndex.String()
		}
		fmt.Fprintf(&buf, "%-8s %12s %12s %8s %-10s %-12s %s\n",
			rec.Month, rec.Amount.StringFixed(2), original, index, rec.Provenance, rec.Classification, rec.Employer)
	}
	return buf.Bytes(), nil
}

func writeRequestEcho(buf *bytes.Buffer, outcome *domain.SimulationOutcome) {
	fmt.Fprintf(buf, "Retirement month:  %s\n", outcome.RetirementMonth)
	fmt.Fprintf(buf, "Access regime:     %s\n", outcome.AccessRegime)
	fmt.Fprintf(buf, "Sex:               %s\n", outcome.Sex)
}

func writeSchemeStats(buf *bytes.Buffer, res *domain.SchemeResult) {
	p := res.Parameters
	if res.ParametersYear != 0 {
		fmt.Fprintf(buf, "  Parameters (%d):  %d months, divisor %s\n", res.ParametersYear, p.MonthsIncluded, p.Divisor.String())
	} else {
		fmt.Fprintf(buf, "  Parameters:        %d months, divisor %s\n", p.MonthsIncluded, p.Divisor.String())
	}
	s := res.Statistics
	fmt.Fprintf(buf, "  Months:            %d (%d revalued, %d non-revalued, %d gaps)\n", s.TotalCount, s.RevaluedCount, s.NonRevaluedCount, res.GapCount)
	fmt.Fprintf(buf, "  Sum revalued:      %s\n", FormatCurrency(s.SumRevalued))
	fmt.Fprintf(buf, "  Sum non-revalued:  %s\n", FormatCurrency(s.SumNonRevalued))
	fmt.Fprintf(buf, "  Sum total:         %s\n", FormatCurrency(s.SumTotal))
	fmt.Fprintf(buf, "  Regulatory base:   %s\n", FormatCurrency(s.RegulatoryBase))
}
