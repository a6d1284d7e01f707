package transform

import (
	"fmt"

	"github.com/rgehrsitz/basereg/internal/domain"
)

// RequestTransform modifies a simulation request to explore a what-if variant.
// Transforms never mutate their input.
type RequestTransform interface {
	// Apply returns a modified copy of base.
	Apply(base *domain.SimulationRequest) (*domain.SimulationRequest, error)

	// Name returns a short identifier such as "postpone_retirement".
	Name() string

	// Description returns a human-readable summary of the change.
	Description() string

	// Validate checks the transform parameters against base without applying them.
	Validate(base *domain.SimulationRequest) error
}

// ApplyTransforms applies transforms in order, each receiving the output of the previous one
func ApplyTransforms(base *domain.SimulationRequest, transforms []RequestTransform) (*domain.SimulationRequest, error) {
	if base == nil {
		return nil, fmt.Errorf("base request cannot be nil")
	}

	if len(transforms) == 0 {
		return CloneRequest(base), nil
	}

	current := base
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}

	return current, nil
}

// Describe joins the descriptions of transforms
func Describe(transforms []RequestTransform) []string {
	out := make([]string, 0, len(transforms))
	for _, t := range transforms {
		if t != nil {
			out = append(out, t.Description())
		}
	}
	return out
}

// CloneRequest deep-copies a request so transforms can edit records freely
func CloneRequest(req *domain.SimulationRequest) *domain.SimulationRequest {
	if req == nil {
		return nil
	}
	clone := *req
	clone.Records = make([]domain.ContributionRecord, len(req.Records))
	copy(clone.Records, req.Records)
	return &clone
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError
func NewTransformError(transformName, operation, reason string, err error) *TransformError {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
