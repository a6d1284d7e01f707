package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scheme",
		"Type",
		"Months Included",
		"Divisor",
		"Gaps",
		"Sum Total",
		"Regulatory Base",
		"Base Diff from Chosen",
		"Base % Change",
		"Gap Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.ChosenResult != nil {
		if err := writer.Write(cf.formatRow(compSet.ChosenResult, "chosen")); err != nil {
			return "", err
		}
	}
	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, schemeType string) []string {
	return []string{
		string(result.Scheme),
		schemeType,
		strconv.Itoa(result.MonthsIncluded),
		result.Divisor.String(),
		strconv.Itoa(result.GapCount),
		result.SumTotal.StringFixed(2),
		result.RegulatoryBase.StringFixed(2),
		result.BaseDiffFromChosen.StringFixed(2),
		result.BasePctFromChosen.StringFixed(2),
		strconv.Itoa(result.GapDiffFromChosen),
	}
}
