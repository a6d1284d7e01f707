package calculation

import (
	"testing"

	"github.com/rgehrsitz/basereg/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGapRule_GeneralRegime(t *testing.T) {
	tests := []struct {
		name     string
		ordinal  int
		sex      domain.Sex
		special  bool
		expected string
	}{
		{name: "first gap", ordinal: 1, sex: domain.SexMale, expected: "1080.00"},
		{name: "last full-minimum gap for men", ordinal: 48, sex: domain.SexMale, expected: "1080.00"},
		{name: "male without special conditions past 48", ordinal: 49, sex: domain.SexMale, expected: "540.00"},
		{name: "male with special conditions at 49", ordinal: 49, sex: domain.SexMale, special: true, expected: "1080.00"},
		{name: "female at 49", ordinal: 49, sex: domain.SexFemale, expected: "1080.00"},
		{name: "female at 60", ordinal: 60, sex: domain.SexFemale, expected: "1080.00"},
		{name: "female at 61", ordinal: 61, sex: domain.SexFemale, expected: "864.00"},
		{name: "female at 70", ordinal: 70, sex: domain.SexFemale, expected: "864.00"},
		{name: "female at 84", ordinal: 84, sex: domain.SexFemale, expected: "864.00"},
		{name: "female at 85", ordinal: 85, sex: domain.SexFemale, expected: "540.00"},
		{name: "female at 100", ordinal: 100, sex: domain.SexFemale, expected: "540.00"},
		{name: "male with special conditions at 70", ordinal: 70, sex: domain.SexMale, special: true, expected: "864.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := &GapRule{
				Reference:             testReference(),
				AccessRegime:          domain.RegimeGeneral,
				Sex:                   tt.sex,
				MaleSpecialConditions: tt.special,
			}
			amount, err := rule.Amount(domain.MustParseYearMonth("03/2020"), tt.ordinal)
			require.NoError(t, err)
			assertDecimal(t, tt.expected, amount)
		})
	}
}

func TestGapRule_AutonomoIsAlwaysZero(t *testing.T) {
	for _, sex := range []domain.Sex{domain.SexMale, domain.SexFemale} {
		rule := &GapRule{Reference: testReference(), AccessRegime: domain.RegimeAutonomo, Sex: sex}
		for _, ordinal := range []int{1, 48, 49, 60, 61, 84, 85, 300} {
			amount, err := rule.Amount(domain.MustParseYearMonth("03/2020"), ordinal)
			require.NoError(t, err)
			assert.True(t, amount.IsZero(), "sex %s ordinal %d: expected 0, got %s", sex, ordinal, amount)
		}
	}
}

func TestGapRule_RoundsFractionalMinimum(t *testing.T) {
	ref := testReference()
	ref.Caps = domain.ContributionCapTable{
		2023: {MinMonthlyBase: dec("1260.03"), MaxMonthlyBase: dec("4495.50")},
	}
	rule := &GapRule{Reference: ref, AccessRegime: domain.RegimeGeneral, Sex: domain.SexFemale}

	eighty, err := rule.Amount(domain.MustParseYearMonth("01/2023"), 70)
	require.NoError(t, err)
	assertDecimal(t, "1008.02", eighty) // 1008.024

	half, err := rule.Amount(domain.MustParseYearMonth("01/2023"), 90)
	require.NoError(t, err)
	assertDecimal(t, "630.02", half) // 630.015 rounds half away from zero
}

func TestGapRule_RoundsFractionalMinimumInFullTiers(t *testing.T) {
	ref := testReference()
	ref.Caps = domain.ContributionCapTable{
		2023: {MinMonthlyBase: dec("1000.005"), MaxMonthlyBase: dec("4495.50")},
	}
	rule := &GapRule{Reference: ref, AccessRegime: domain.RegimeGeneral, Sex: domain.SexFemale}

	for _, ordinal := range []int{1, 48, 55} {
		amount, err := rule.Amount(domain.MustParseYearMonth("01/2023"), ordinal)
		require.NoError(t, err)
		assert.Equal(t, "1000.01", amount.String(), "ordinal %d", ordinal)
	}
}

func TestGapRule_NearestYearFallback(t *testing.T) {
	ref := testReference()
	ref.Caps = domain.ContributionCapTable{
		2010: {MinMonthlyBase: dec("738.90"), MaxMonthlyBase: dec("3198.00")},
		2020: {MinMonthlyBase: dec("1108.33"), MaxMonthlyBase: dec("4070.10")},
	}
	rule := &GapRule{Reference: ref, AccessRegime: domain.RegimeGeneral, Sex: domain.SexMale}

	amount, err := rule.Amount(domain.MustParseYearMonth("06/2024"), 1)
	require.NoError(t, err)
	assertDecimal(t, "1108.33", amount)

	// 2015 is equidistant from 2010 and 2020; the earlier year wins.
	amount, err = rule.Amount(domain.MustParseYearMonth("06/2015"), 1)
	require.NoError(t, err)
	assertDecimal(t, "738.90", amount)
}

func TestGapRule_EmptyCapsTable(t *testing.T) {
	ref := testReference()
	ref.Caps = domain.ContributionCapTable{}
	rule := &GapRule{Reference: ref, AccessRegime: domain.RegimeGeneral, Sex: domain.SexMale}

	_, err := rule.Amount(domain.MustParseYearMonth("06/2024"), 1)

	assert.ErrorIs(t, err, domain.ErrReferenceDataExhausted)
}

func TestPeriodWindowBuilder_ExactContiguousWindow(t *testing.T) {
	retirement := domain.MustParseYearMonth("06/2025")
	index := indexRecords(fixtureRecords(), nil)
	builder := NewPeriodWindowBuilder(&GapRule{Reference: testReference(), AccessRegime: domain.RegimeGeneral, Sex: domain.SexMale})

	for _, n := range []int{1, 24, 120, 300, 348} {
		window, gaps, err := builder.Build(index, retirement, n)
		require.NoError(t, err)
		require.Len(t, window, n)
		assertContiguous(t, window, retirement.Prev())

		known := 0
		for _, rec := range window {
			if rec.Provenance != domain.ProvenanceGap {
				known++
			}
		}
		assert.Equal(t, n-known, gaps, "n=%d", n)
	}
}

func TestPeriodWindowBuilder_KeepsProvenanceAndImputesGaps(t *testing.T) {
	retirement := domain.MustParseYearMonth("06/2025")
	projected := NewGapProjector().Project(fixtureRecords(), retirement, domain.RegimeGeneral)
	index := indexRecords(fixtureRecords(), projected)
	builder := NewPeriodWindowBuilder(&GapRule{Reference: testReference(), AccessRegime: domain.RegimeGeneral, Sex: domain.SexMale})

	window, gaps, err := builder.Build(index, retirement, 12)

	require.NoError(t, err)
	assert.Equal(t, 3, gaps)
	assert.Equal(t, domain.ProvenanceProjected, window[0].Provenance) // 05/2025
	assert.Equal(t, domain.ProvenanceProjected, window[3].Provenance) // 02/2025
	assert.Equal(t, domain.ProvenanceOriginal, window[4].Provenance)  // 01/2025
	assert.Equal(t, domain.ProvenanceOriginal, window[8].Provenance)  // 09/2024
	for _, gap := range window[9:] {
		assert.Equal(t, domain.ProvenanceGap, gap.Provenance)
		assert.Equal(t, domain.EmployerGap, gap.Employer)
		assert.Equal(t, domain.RegimeGeneral, gap.Regime)
		assertDecimal(t, "1080.00", gap.Amount)
	}
}

func TestPeriodWindowBuilder_GapCounterRestartsEachBuild(t *testing.T) {
	retirement := domain.MustParseYearMonth("06/2025")
	index := indexRecords(fixtureRecords(), nil)
	builder := NewPeriodWindowBuilder(&GapRule{Reference: testReference(), AccessRegime: domain.RegimeGeneral, Sex: domain.SexMale})

	first, firstGaps, err := builder.Build(index, retirement, 300)
	require.NoError(t, err)
	second, secondGaps, err := builder.Build(index, retirement, 300)
	require.NoError(t, err)

	assert.Equal(t, firstGaps, secondGaps)
	// The first gap of each walk is ordinal 1 and therefore priced at the full minimum.
	assertDecimal(t, "1080.00", second[0].Amount)
	assert.Equal(t, first, second)
}

func TestPeriodWindowBuilder_ZeroLength(t *testing.T) {
	builder := NewPeriodWindowBuilder(&GapRule{Reference: testReference(), AccessRegime: domain.RegimeGeneral, Sex: domain.SexMale})

	window, gaps, err := builder.Build(nil, domain.MustParseYearMonth("06/2025"), 0)

	require.NoError(t, err)
	assert.Empty(t, window)
	assert.Zero(t, gaps)

	_, _, err = builder.Build(nil, domain.MustParseYearMonth("06/2025"), -1)
	assert.Error(t, err)
}
