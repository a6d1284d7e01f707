package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	err := NewValidationError(KindNegativeAmount, "records[2].amount", "-1", "amount must not be negative")
	assert.Equal(t, `negative_amount in records[2].amount ("-1"): amount must not be negative`, err.Error())

	bare := &ValidationError{Kind: KindEmptyRecordSet}
	assert.Equal(t, "empty_record_set", bare.Error())
}

func TestValidationError_Unwrap(t *testing.T) {
	wrapped := fmt.Errorf("reform scheme: %w", NewValidationError(KindReferenceDataExhausted, "caps", "", "empty"))

	assert.True(t, errors.Is(wrapped, ErrReferenceDataExhausted))
	assert.False(t, errors.Is(wrapped, ErrInvalidSex))

	var ve *ValidationError
	assert.True(t, errors.As(wrapped, &ve))
	assert.Equal(t, "caps", ve.Field)
}

func TestIsClientError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"validation", NewValidationError(KindInvalidSex, "sex", "X", ""), true},
		{"wrapped validation", fmt.Errorf("ctx: %w", NewValidationError(KindInvalidInputShape, "", "", "")), true},
		{"reference exhausted", NewValidationError(KindReferenceDataExhausted, "", "", ""), false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsClientError(tt.err))
		})
	}
}
