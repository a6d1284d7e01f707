package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rgehrsitz/basereg/internal/calculation"
	"github.com/rgehrsitz/basereg/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RecordInput is one contribution record as submitted by a caller
type RecordInput struct {
	MonthYear string          `yaml:"month_year" json:"month_year"`
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
	Employer  string          `yaml:"employer" json:"employer"`
	Regime    string          `yaml:"regime" json:"regime"`
}

// RequestInput is the untyped shape of a simulation request file or API body
type RequestInput struct {
	Records               []RecordInput `yaml:"records" json:"records"`
	RetirementMonthYear   string        `yaml:"retirement_month_year" json:"retirement_month_year"`
	AccessRegime          string        `yaml:"access_regime" json:"access_regime"`
	Sex                   string        `yaml:"sex" json:"sex"`
	MaleSpecialConditions bool          `yaml:"male_special_conditions" json:"male_special_conditions"`
}

// InputParser handles parsing of simulation request files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a request from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.SimulationRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes a YAML or JSON document and converts it into a validated request
func (ip *InputParser) Parse(data []byte) (*domain.SimulationRequest, error) {
	var in RequestInput
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, domain.NewValidationError(domain.KindInvalidInputShape, "", "", fmt.Sprintf("failed to parse request: %v", err))
	}
	return ip.ToRequest(in)
}

// ToRequest converts raw input into a typed request. Every field is checked
// eagerly and the first violation is returned.
func (ip *InputParser) ToRequest(in RequestInput) (*domain.SimulationRequest, error) {
	if len(in.Records) == 0 {
		return nil, domain.NewValidationError(domain.KindEmptyRecordSet, "records", "", "at least one contribution record is required")
	}

	req := &domain.SimulationRequest{
		Records:               make([]domain.ContributionRecord, 0, len(in.Records)),
		MaleSpecialConditions: in.MaleSpecialConditions,
	}
	for i, r := range in.Records {
		rec, err := convertRecord(i, r)
		if err != nil {
			return nil, err
		}
		req.Records = append(req.Records, rec)
	}

	var err error
	if req.RetirementMonth, err = domain.ParseYearMonth(in.RetirementMonthYear); err != nil {
		return nil, withField(err, "retirement_month_year")
	}
	if req.AccessRegime, err = domain.ParseRegime(in.AccessRegime); err != nil {
		return nil, withField(err, "access_regime")
	}
	if req.Sex, err = domain.ParseSex(in.Sex); err != nil {
		return nil, err
	}

	if err := ip.ValidateRequest(req); err != nil {
		return nil, err
	}
	return req, nil
}

// ValidateRequest validates an already typed request
func (ip *InputParser) ValidateRequest(req *domain.SimulationRequest) error {
	if req == nil {
		return domain.NewValidationError(domain.KindInvalidInputShape, "", "", "request is required")
	}
	return calculation.ValidateRequest(*req)
}

func convertRecord(i int, r RecordInput) (domain.ContributionRecord, error) {
	month, err := domain.ParseYearMonth(r.MonthYear)
	if err != nil {
		return domain.ContributionRecord{}, withField(err, fmt.Sprintf("records[%d].month_year", i))
	}
	regime, err := domain.ParseRegime(r.Regime)
	if err != nil {
		return domain.ContributionRecord{}, withField(err, fmt.Sprintf("records[%d].regime", i))
	}
	if r.Amount.IsNegative() {
		return domain.ContributionRecord{}, domain.NewValidationError(domain.KindNegativeAmount,
			fmt.Sprintf("records[%d].amount", i), r.Amount.String(), "amount must not be negative")
	}
	return domain.ContributionRecord{
		Month:    month,
		Amount:   domain.Round2(r.Amount),
		Employer: r.Employer,
		Regime:   regime,
	}, nil
}

// withField re-targets a validation error at the field it was raised for
func withField(err error, field string) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return domain.NewValidationError(ve.Kind, field, ve.Value, ve.Message)
	}
	return err
}
