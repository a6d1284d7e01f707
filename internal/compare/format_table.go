package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing the schemes
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("REGULATORY BASE SCHEME COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Chosen Scheme: %s\n", compSet.ChosenScheme))
	sb.WriteString(fmt.Sprintf("Retirement: %s\n", compSet.RetirementMonth))
	if compSet.RequestPath != "" {
		sb.WriteString(fmt.Sprintf("Request: %s\n", compSet.RequestPath))
	}
	sb.WriteString("\n")

	nameWidth := 18
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scheme",
		numWidth, "Months",
		numWidth, "Gaps",
		numWidth, "Sum Total",
		numWidth, "Base"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.ChosenResult != nil {
		sb.WriteString(tf.formatRow(compSet.ChosenResult, nameWidth, numWidth, true))
	}
	for _, alt := range compSet.AlternativeResults {
		sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO CHOSEN\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.Scheme))
			sb.WriteString(fmt.Sprintf("  Regulatory Base:  %s€%s (%s%%)\n",
				tf.deltaSymbol(alt.BaseDiffFromChosen),
				alt.BaseDiffFromChosen.Abs().StringFixed(2),
				alt.BasePctFromChosen.StringFixed(2)))
			if alt.GapDiffFromChosen != 0 {
				sb.WriteString(fmt.Sprintf("  Imputed Gaps:     %+d months\n", alt.GapDiffFromChosen))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isChosen bool) string {
	name := string(result.Scheme)
	if isChosen {
		name += " (chosen)"
	}
	return fmt.Sprintf("%-*s %*d %*d %*s %*s\n",
		nameWidth, name,
		numWidth, result.MonthsIncluded,
		numWidth, result.GapCount,
		numWidth, "€"+result.SumTotal.StringFixed(2),
		numWidth, "€"+result.RegulatoryBase.StringFixed(2))
}

// deltaSymbol returns a sign for deltas; negative amounts carry their own
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// FormatCompact creates a single-line summary
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder
	if compSet.ChosenResult != nil {
		sb.WriteString(fmt.Sprintf("Chosen: %s €%s", compSet.ChosenScheme, compSet.ChosenResult.RegulatoryBase.StringFixed(2)))
	}
	for _, alt := range compSet.AlternativeResults {
		change := "="
		if alt.BaseDiffFromChosen.IsNegative() {
			change = fmt.Sprintf("-€%s", alt.BaseDiffFromChosen.Abs().StringFixed(2))
		} else if alt.BaseDiffFromChosen.IsPositive() {
			change = fmt.Sprintf("+€%s", alt.BaseDiffFromChosen.StringFixed(2))
		}
		sb.WriteString(fmt.Sprintf(" | %s: %s", alt.Scheme, change))
	}
	return sb.String()
}
