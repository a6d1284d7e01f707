package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/basereg/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRequestYAML = `
retirement_month_year: "06/2025"
access_regime: general
sex: MASCULINO
records:
  - month_year: "01/2025"
    amount: 1500.50
    employer: Empresa A
    regime: GENERAL
  - month_year: "12/2024"
    amount: "1450.75"
    employer: Empresa A
    regime: general
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	req, err := parser.LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, req)
	assert.Contains(t, err.Error(), "failed to read file")
	assert.False(t, domain.IsClientError(err))
}

func TestInputParser_LoadFromFile_ValidYAML(t *testing.T) {
	parser := NewInputParser()

	req, err := parser.LoadFromFile(writeFile(t, "request.yaml", validRequestYAML))

	require.NoError(t, err)
	assert.Equal(t, domain.MustParseYearMonth("06/2025"), req.RetirementMonth)
	assert.Equal(t, domain.RegimeGeneral, req.AccessRegime)
	assert.Equal(t, domain.SexMale, req.Sex)
	assert.False(t, req.MaleSpecialConditions)
	require.Len(t, req.Records, 2)
	assert.Equal(t, "1500.5", req.Records[0].Amount.String())
	assert.Equal(t, "1450.75", req.Records[1].Amount.String())
	assert.Equal(t, domain.RegimeGeneral, req.Records[1].Regime)
	assert.Equal(t, "Empresa A", req.Records[1].Employer)
}

func TestInputParser_LoadFromFile_ValidJSON(t *testing.T) {
	body := `{"records":[{"month_year":"03/2024","amount":1200,"employer":"X","regime":"AUTONOMO"}],
"retirement_month_year":"01/2026","access_regime":"AUTONOMO","sex":"female","male_special_conditions":false}`
	parser := NewInputParser()

	req, err := parser.LoadFromFile(writeFile(t, "request.json", body))

	require.NoError(t, err)
	assert.Equal(t, domain.SexFemale, req.Sex)
	assert.Equal(t, domain.RegimeAutonomo, req.Records[0].Regime)
}

func TestInputParser_Parse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
		field string
	}{
		{"malformed", "records: [unclosed", domain.ErrInvalidInputShape, ""},
		{"records not a list", "records: 12\n", domain.ErrInvalidInputShape, ""},
		{"non numeric amount", "records:\n  - {month_year: \"01/2025\", amount: abc, employer: A, regime: GENERAL}\n", domain.ErrInvalidInputShape, ""},
		{"no records", "retirement_month_year: \"06/2025\"\naccess_regime: GENERAL\nsex: MALE\n", domain.ErrEmptyRecordSet, "records"},
		{"bad record month", "records:\n  - {month_year: \"2025-01\", amount: 1, employer: A, regime: GENERAL}\n", domain.ErrInvalidDateFormat, "records[0].month_year"},
		{"bad record regime", "records:\n  - {month_year: \"01/2025\", amount: 1, employer: A, regime: MIXTO}\n", domain.ErrInvalidRegime, "records[0].regime"},
		{"negative amount", "records:\n  - {month_year: \"01/2025\", amount: -5, employer: A, regime: GENERAL}\n", domain.ErrNegativeAmount, "records[0].amount"},
		{"bad retirement", "records:\n  - {month_year: \"01/2025\", amount: 1, employer: A, regime: GENERAL}\nretirement_month_year: \"6/2025\"\n", domain.ErrInvalidDateFormat, "retirement_month_year"},
		{"bad access regime", "records:\n  - {month_year: \"01/2025\", amount: 1, employer: A, regime: GENERAL}\nretirement_month_year: \"06/2025\"\naccess_regime: X\n", domain.ErrInvalidRegime, "access_regime"},
		{"bad sex", "records:\n  - {month_year: \"01/2025\", amount: 1, employer: A, regime: GENERAL}\nretirement_month_year: \"06/2025\"\naccess_regime: GENERAL\nsex: OTRO\n", domain.ErrInvalidSex, "sex"},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := parser.Parse([]byte(tt.input))

			assert.Nil(t, req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, domain.IsClientError(err))

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			if tt.field != "" {
				assert.Equal(t, tt.field, ve.Field)
			}
		})
	}
}

func TestInputParser_Parse_RoundsAmountsToCents(t *testing.T) {
	input := `
retirement_month_year: "06/2025"
access_regime: GENERAL
sex: MALE
records:
  - {month_year: "01/2025", amount: 1500.555, employer: A, regime: GENERAL}
  - {month_year: "12/2024", amount: "1450.754", employer: A, regime: GENERAL}
`
	req, err := NewInputParser().Parse([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, "1500.56", req.Records[0].Amount.String())
	assert.Equal(t, "1450.75", req.Records[1].Amount.String())
}

func TestInputParser_ValidateRequest(t *testing.T) {
	parser := NewInputParser()

	assert.ErrorIs(t, parser.ValidateRequest(nil), domain.ErrInvalidInputShape)

	req, err := parser.Parse([]byte(validRequestYAML))
	require.NoError(t, err)
	assert.NoError(t, parser.ValidateRequest(req))
}
