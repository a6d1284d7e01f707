package calculation

import (
	"fmt"

	"github.com/rgehrsitz/basereg/internal/domain"
)

// ValidateRequest checks a typed request before any computation starts.
// The first violation found is returned.
func ValidateRequest(req domain.SimulationRequest) error {
	if len(req.Records) == 0 {
		return domain.NewValidationError(domain.KindEmptyRecordSet, "records", "", "at least one contribution record is required")
	}
	if req.RetirementMonth.IsZero() {
		return domain.NewValidationError(domain.KindInvalidDateFormat, "retirement_month_year", "", "retirement month is required")
	}
	if req.AccessRegime != domain.RegimeGeneral && req.AccessRegime != domain.RegimeAutonomo {
		return domain.NewValidationError(domain.KindInvalidRegime, "access_regime", string(req.AccessRegime), "must be GENERAL or AUTONOMO")
	}
	if req.Sex != domain.SexMale && req.Sex != domain.SexFemale {
		return domain.NewValidationError(domain.KindInvalidSex, "sex", string(req.Sex), "must be MALE or FEMALE")
	}

	for i, r := range req.Records {
		if r.Month.IsZero() {
			return domain.NewValidationError(domain.KindInvalidDateFormat, recordField(i, "month_year"), "", "month is required")
		}
		if r.Amount.IsNegative() {
			return domain.NewValidationError(domain.KindNegativeAmount, recordField(i, "amount"), r.Amount.String(), "amount must not be negative")
		}
		if r.Regime != domain.RegimeGeneral && r.Regime != domain.RegimeAutonomo {
			return domain.NewValidationError(domain.KindInvalidRegime, recordField(i, "regime"), string(r.Regime), "must be GENERAL or AUTONOMO")
		}
	}
	return nil
}

func recordField(i int, name string) string {
	return fmt.Sprintf("records[%d].%s", i, name)
}
