package compare

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/basereg/internal/domain"
	"github.com/shopspring/decimal"
)

func testComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		ChosenScheme:    domain.SchemeLegacy,
		RetirementMonth: "06/2025",
		RequestPath:     "/path/to/request.yaml",
		ChosenResult: &ComparisonResult{
			Scheme:         domain.SchemeLegacy,
			MonthsIncluded: 300,
			Divisor:        decimal.NewFromInt(350),
			GapCount:       291,
			SumTotal:       decimal.RequireFromString("195663.60"),
			RegulatoryBase: decimal.RequireFromString("559.04"),
		},
		AlternativeResults: []ComparisonResult{
			{
				Scheme:             domain.SchemeReform,
				ParametersYear:     2025,
				MonthsIncluded:     300,
				Divisor:            decimal.NewFromInt(400),
				GapCount:           291,
				SumTotal:           decimal.RequireFromString("195663.60"),
				RegulatoryBase:     decimal.RequireFromString("489.16"),
				BaseDiffFromChosen: decimal.RequireFromString("-69.88"),
				BasePctFromChosen:  decimal.RequireFromString("-12.5"),
				GapDiffFromChosen:  3,
			},
		},
		Recommendations: []string{
			"Best Base: legacy yields €69.88 more per month than reform",
		},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}

	result := formatter.Format(testComparisonSet())

	if result == "" {
		t.Fatal("Expected formatted output, got empty string")
	}
	for _, want := range []string{
		"REGULATORY BASE SCHEME COMPARISON",
		"Chosen Scheme: legacy",
		"Retirement: 06/2025",
		"Request: /path/to/request.yaml",
		"legacy (chosen)",
		"€559.04",
		"Regulatory Base:  -€69.88 (-12.50%)",
		"Imputed Gaps:     +3 months",
		"RECOMMENDATIONS",
		"• Best Base: legacy",
	} {
		if !contains(result, want) {
			t.Errorf("Expected %q in output:\n%s", want, result)
		}
	}
}

func TestTableFormatter_Format_NoAlternatives(t *testing.T) {
	formatter := &TableFormatter{}
	compSet := testComparisonSet()
	compSet.AlternativeResults = nil
	compSet.Recommendations = nil

	result := formatter.Format(compSet)

	if contains(result, "COMPARISON TO CHOSEN") {
		t.Error("Did not expect comparison section without alternatives")
	}
	if contains(result, "RECOMMENDATIONS") {
		t.Error("Did not expect recommendations section")
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	formatter := &TableFormatter{}

	result := formatter.FormatCompact(testComparisonSet())

	expected := "Chosen: legacy €559.04 | reform: -€69.88"
	if result != expected {
		t.Errorf("Expected %q, got %q", expected, result)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := &CSVFormatter{}

	result, err := formatter.Format(testComparisonSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(result)).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[1][0] != "legacy" || rows[1][1] != "chosen" {
		t.Errorf("Unexpected chosen row: %v", rows[1])
	}
	want := []string{"reform", "alternative", "300", "400", "291", "195663.60", "489.16", "-69.88", "-12.50", "3"}
	for i := range want {
		if rows[2][i] != want[i] {
			t.Errorf("Column %d: expected %q, got %q", i, want[i], rows[2][i])
		}
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		formatter := &JSONFormatter{Pretty: pretty}

		result, err := formatter.Format(testComparisonSet())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		var decoded map[string]interface{}
		if err := json.Unmarshal([]byte(result), &decoded); err != nil {
			t.Fatalf("Output is not valid JSON: %v", err)
		}
		if decoded["chosenScheme"] != "legacy" {
			t.Errorf("Expected chosenScheme legacy, got %v", decoded["chosenScheme"])
		}
		if pretty && !contains(result, "\n  \"chosenScheme\"") {
			t.Error("Expected indented output")
		}
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
