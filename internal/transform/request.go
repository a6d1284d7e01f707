package transform

import (
	"fmt"

	"github.com/rgehrsitz/basereg/internal/domain"
	"github.com/shopspring/decimal"
)

// PostponeRetirement moves the retirement month later by Months.
// The extra months before retirement are projected by the engine.
type PostponeRetirement struct {
	Months int
}

func (pr *PostponeRetirement) Name() string {
	return "postpone_retirement"
}

func (pr *PostponeRetirement) Description() string {
	return fmt.Sprintf("Postpone retirement by %d months", pr.Months)
}

func (pr *PostponeRetirement) Validate(base *domain.SimulationRequest) error {
	if base == nil {
		return NewTransformError(pr.Name(), "validate", "base request cannot be nil", nil)
	}
	if pr.Months < 0 {
		return NewTransformError(pr.Name(), "validate", fmt.Sprintf("months must be non-negative, got %d", pr.Months), nil)
	}
	return nil
}

func (pr *PostponeRetirement) Apply(base *domain.SimulationRequest) (*domain.SimulationRequest, error) {
	modified := CloneRequest(base)
	modified.RetirementMonth = base.RetirementMonth.AddMonths(pr.Months)
	return modified, nil
}

// SetRetirementMonth sets an absolute retirement month
type SetRetirementMonth struct {
	Month domain.YearMonth
}

func (sr *SetRetirementMonth) Name() string {
	return "set_retirement_date"
}

func (sr *SetRetirementMonth) Description() string {
	return fmt.Sprintf("Set retirement to %s", sr.Month)
}

func (sr *SetRetirementMonth) Validate(base *domain.SimulationRequest) error {
	if base == nil {
		return NewTransformError(sr.Name(), "validate", "base request cannot be nil", nil)
	}
	if sr.Month.IsZero() {
		return NewTransformError(sr.Name(), "validate", "month cannot be zero", nil)
	}
	for _, rec := range base.Records {
		if !rec.Month.Before(sr.Month) {
			return NewTransformError(sr.Name(), "validate",
				fmt.Sprintf("retirement %s must be after every contribution month (found %s)", sr.Month, rec.Month), nil)
		}
	}
	return nil
}

func (sr *SetRetirementMonth) Apply(base *domain.SimulationRequest) (*domain.SimulationRequest, error) {
	modified := CloneRequest(base)
	modified.RetirementMonth = sr.Month
	return modified, nil
}

// AddContribution appends a payslip, for example a documented month that was missing
type AddContribution struct {
	Record domain.ContributionRecord
}

func (ac *AddContribution) Name() string {
	return "add_contribution"
}

func (ac *AddContribution) Description() string {
	return fmt.Sprintf("Add %s contribution of €%s for %s", ac.Record.Regime, ac.Record.Amount.StringFixed(2), ac.Record.Month)
}

func (ac *AddContribution) Validate(base *domain.SimulationRequest) error {
	if base == nil {
		return NewTransformError(ac.Name(), "validate", "base request cannot be nil", nil)
	}
	if ac.Record.Month.IsZero() {
		return NewTransformError(ac.Name(), "validate", "month cannot be zero", nil)
	}
	if ac.Record.Amount.IsNegative() {
		return NewTransformError(ac.Name(), "validate", "amount must not be negative", nil)
	}
	if !ac.Record.Month.Before(base.RetirementMonth) {
		return NewTransformError(ac.Name(), "validate",
			fmt.Sprintf("month %s is not before retirement %s", ac.Record.Month, base.RetirementMonth), nil)
	}
	return nil
}

func (ac *AddContribution) Apply(base *domain.SimulationRequest) (*domain.SimulationRequest, error) {
	modified := CloneRequest(base)
	rec := ac.Record
	rec.Amount = domain.Round2(rec.Amount)
	if rec.Regime == "" {
		rec.Regime = base.AccessRegime
	}
	modified.Records = append(modified.Records, rec)
	return modified, nil
}

// RemoveContributions drops every payslip of one month
type RemoveContributions struct {
	Month domain.YearMonth
}

func (rc *RemoveContributions) Name() string {
	return "remove_contribution"
}

func (rc *RemoveContributions) Description() string {
	return fmt.Sprintf("Remove contributions for %s", rc.Month)
}

func (rc *RemoveContributions) Validate(base *domain.SimulationRequest) error {
	if base == nil {
		return NewTransformError(rc.Name(), "validate", "base request cannot be nil", nil)
	}
	remaining := 0
	found := false
	for _, rec := range base.Records {
		if rec.Month == rc.Month {
			found = true
		} else {
			remaining++
		}
	}
	if !found {
		return NewTransformError(rc.Name(), "validate", fmt.Sprintf("no contributions for %s", rc.Month), nil)
	}
	if remaining == 0 {
		return NewTransformError(rc.Name(), "validate", "cannot remove the only contribution month", nil)
	}
	return nil
}

func (rc *RemoveContributions) Apply(base *domain.SimulationRequest) (*domain.SimulationRequest, error) {
	modified := CloneRequest(base)
	kept := modified.Records[:0]
	for _, rec := range modified.Records {
		if rec.Month != rc.Month {
			kept = append(kept, rec)
		}
	}
	modified.Records = kept
	return modified, nil
}

// ScaleContributions multiplies every payslip amount by Factor, rounded to cents
type ScaleContributions struct {
	Factor decimal.Decimal
}

func (sc *ScaleContributions) Name() string {
	return "scale_contributions"
}

func (sc *ScaleContributions) Description() string {
	return fmt.Sprintf("Scale all contributions by %s", sc.Factor.String())
}

func (sc *ScaleContributions) Validate(base *domain.SimulationRequest) error {
	if base == nil {
		return NewTransformError(sc.Name(), "validate", "base request cannot be nil", nil)
	}
	if sc.Factor.IsNegative() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", sc.Factor), nil)
	}
	return nil
}

func (sc *ScaleContributions) Apply(base *domain.SimulationRequest) (*domain.SimulationRequest, error) {
	modified := CloneRequest(base)
	for i := range modified.Records {
		modified.Records[i].Amount = modified.Records[i].Amount.Mul(sc.Factor).Round(2)
	}
	return modified, nil
}

// SetAccessRegime changes the regime under which retirement is requested
type SetAccessRegime struct {
	Regime domain.Regime
}

func (sa *SetAccessRegime) Name() string {
	return "set_access_regime"
}

func (sa *SetAccessRegime) Description() string {
	return fmt.Sprintf("Set access regime to %s", sa.Regime)
}

func (sa *SetAccessRegime) Validate(base *domain.SimulationRequest) error {
	if base == nil {
		return NewTransformError(sa.Name(), "validate", "base request cannot be nil", nil)
	}
	if _, err := domain.ParseRegime(string(sa.Regime)); err != nil {
		return NewTransformError(sa.Name(), "validate", "invalid regime", err)
	}
	return nil
}

func (sa *SetAccessRegime) Apply(base *domain.SimulationRequest) (*domain.SimulationRequest, error) {
	modified := CloneRequest(base)
	modified.AccessRegime = sa.Regime
	return modified, nil
}

// SetSpecialConditions toggles the extended gap tiers for male contributors
type SetSpecialConditions struct {
	Enabled bool
}

func (ss *SetSpecialConditions) Name() string {
	return "set_special_conditions"
}

func (ss *SetSpecialConditions) Description() string {
	if ss.Enabled {
		return "Enable male special conditions"
	}
	return "Disable male special conditions"
}

func (ss *SetSpecialConditions) Validate(base *domain.SimulationRequest) error {
	if base == nil {
		return NewTransformError(ss.Name(), "validate", "base request cannot be nil", nil)
	}
	return nil
}

func (ss *SetSpecialConditions) Apply(base *domain.SimulationRequest) (*domain.SimulationRequest, error) {
	modified := CloneRequest(base)
	modified.MaleSpecialConditions = ss.Enabled
	return modified, nil
}
