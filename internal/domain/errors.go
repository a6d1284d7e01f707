package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure raised while ingesting or computing a simulation
type ErrorKind string

const (
	KindInvalidInputShape       ErrorKind = "invalid_input_shape"
	KindEmptyRecordSet          ErrorKind = "empty_record_set"
	KindInvalidDateFormat       ErrorKind = "invalid_date_format"
	KindInvalidRegime           ErrorKind = "invalid_regime"
	KindInvalidSex              ErrorKind = "invalid_sex"
	KindNegativeAmount          ErrorKind = "negative_amount"
	KindIncoherentMultiEmployer ErrorKind = "incoherent_multi_employer_combination"
	KindReferenceDataExhausted  ErrorKind = "reference_data_exhausted"
)

// Sentinel errors, one per kind. Use with errors.Is().
var (
	ErrInvalidInputShape       = errors.New("invalid input shape")
	ErrEmptyRecordSet          = errors.New("empty record set")
	ErrInvalidDateFormat       = errors.New("invalid date format")
	ErrInvalidRegime           = errors.New("invalid regime")
	ErrInvalidSex              = errors.New("invalid sex")
	ErrNegativeAmount          = errors.New("negative amount")
	ErrIncoherentMultiEmployer = errors.New("incoherent multi-employer combination")
	ErrReferenceDataExhausted  = errors.New("reference data exhausted")
)

var sentinels = map[ErrorKind]error{
	KindInvalidInputShape:       ErrInvalidInputShape,
	KindEmptyRecordSet:          ErrEmptyRecordSet,
	KindInvalidDateFormat:       ErrInvalidDateFormat,
	KindInvalidRegime:           ErrInvalidRegime,
	KindInvalidSex:              ErrInvalidSex,
	KindNegativeAmount:          ErrNegativeAmount,
	KindIncoherentMultiEmployer: ErrIncoherentMultiEmployer,
	KindReferenceDataExhausted:  ErrReferenceDataExhausted,
}

// ValidationError carries the kind of failure together with the offending field and value
type ValidationError struct {
	Kind    ErrorKind
	Field   string
	Value   string
	Message string
}

// NewValidationError creates a ValidationError
func NewValidationError(kind ErrorKind, field, value, message string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Value: value, Message: message}
}

func (e *ValidationError) Error() string {
	msg := string(e.Kind)
	if e.Field != "" {
		msg += " in " + e.Field
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" (%q)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return sentinels[e.Kind]
}

// IsClientError returns true if the error is due to invalid caller input
// rather than a configuration problem.
func IsClientError(err error) bool {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	return ve.Kind != KindReferenceDataExhausted
}
