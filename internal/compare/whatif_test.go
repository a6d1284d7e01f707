package compare

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/basereg/internal/calculation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareEngine_CompareWhatIf_Unchanged(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine(legacyWinsReference()))

	res, err := ce.CompareWhatIf(testRequest(), testRequest(), []string{"Postpone retirement by 0 months"})
	require.NoError(t, err)

	assert.True(t, res.BaseDifference.IsZero())
	assert.False(t, res.SchemeChanged)
	assert.Equal(t, res.Base.RegulatoryBase.String(), res.Variant.RegulatoryBase.String())
	assert.Equal(t, []string{"Variant leaves the regulatory base unchanged"}, res.Recommendations)
}

func TestCompareEngine_CompareWhatIf_HigherContributions(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine(legacyWinsReference()))

	variant := testRequest()
	for i := range variant.Records {
		variant.Records[i].Amount = variant.Records[i].Amount.Mul(decimal.NewFromInt(2))
	}

	res, err := ce.CompareWhatIf(testRequest(), variant, []string{"Scale all contributions by 2"})
	require.NoError(t, err)

	assert.True(t, res.BaseDifference.IsPositive(), "doubling payslips should raise the base")
	assert.True(t, res.Variant.RegulatoryBase.GreaterThan(res.Base.RegulatoryBase))
	assert.Equal(t, "06/2025", res.BaseRetirement)
	assert.Equal(t, "06/2025", res.VariantRetire)
	require.NotEmpty(t, res.Recommendations)
	assert.True(t, strings.HasPrefix(res.Recommendations[0], "Variant raises the regulatory base by €"))

	out := FormatWhatIf(res)
	assert.Contains(t, out, "WHAT-IF ANALYSIS")
	assert.Contains(t, out, "• Scale all contributions by 2")
	assert.Contains(t, out, "€"+res.Variant.RegulatoryBase.StringFixed(2))
}

func TestCompareEngine_CompareWhatIf_Errors(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine(legacyWinsReference()))

	bad := testRequest()
	bad.Records = nil

	_, err := ce.CompareWhatIf(bad, testRequest(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to simulate base request")

	_, err = ce.CompareWhatIf(testRequest(), bad, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to simulate variant request")
}
