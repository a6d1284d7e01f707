package calculation

import (
	"testing"

	"github.com/rgehrsitz/basereg/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// testReference builds reference data with flat caps (1080 / 4495) for 1990-2025
// and 2025 parameters equal to the legacy ones.
func testReference() *domain.ReferenceData {
	caps := domain.ContributionCapTable{}
	for y := 1990; y <= 2025; y++ {
		caps[y] = domain.ContributionCaps{
			MinMonthlyBase: decimal.NewFromInt(1080),
			MaxMonthlyBase: decimal.NewFromInt(4495),
		}
	}
	return &domain.ReferenceData{
		Parameters: domain.ComputationParameters{
			2025: {MonthsIncluded: 300, PeriodMonths: 300, Divisor: decimal.NewFromInt(350)},
		},
		Indices: domain.RevalorizationIndexTable{},
		Caps:    caps,
	}
}

func record(month string, amount string, employer string, regime domain.Regime) domain.ContributionRecord {
	return domain.ContributionRecord{
		Month:    domain.MustParseYearMonth(month),
		Amount:   decimal.RequireFromString(amount),
		Employer: employer,
		Regime:   regime,
	}
}

// fixtureRecords are five known months from 09/2024 to 01/2025
func fixtureRecords() []domain.ContributionRecord {
	return []domain.ContributionRecord{
		record("01/2025", "1500.50", "Empresa A", domain.RegimeGeneral),
		record("12/2024", "1450.75", "Empresa A", domain.RegimeGeneral),
		record("11/2024", "1400.25", "Empresa B", domain.RegimeGeneral),
		record("10/2024", "1350.00", "Empresa B", domain.RegimeGeneral),
		record("09/2024", "1300.50", "Empresa C", domain.RegimeGeneral),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

// assertContiguous checks the window runs backward month by month from first without repeats
func assertContiguous(t *testing.T, window []domain.PeriodRecord, first domain.YearMonth) {
	t.Helper()
	seen := make(map[domain.YearMonth]bool, len(window))
	expected := first
	for i, rec := range window {
		assert.Equal(t, expected, rec.Month, "record %d out of sequence", i)
		assert.False(t, seen[rec.Month], "duplicate month %s", rec.Month)
		seen[rec.Month] = true
		expected = expected.Prev()
	}
}
