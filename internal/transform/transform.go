package transform

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
)

// ProfileTransform defines the interface for what-if changes to a taxpayer profile.
// Transforms are composable: each receives the output of the previous one and
// never modifies its input.
type ProfileTransform interface {
	// Apply returns a modified copy of base.
	Apply(base *domain.TaxProfile) (*domain.TaxProfile, error)

	// Name returns a short identifier for this transform (e.g., "add_deduction").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against base without applying.
	Validate(base *domain.TaxProfile) error
}

// ApplyTransforms applies a sequence of transforms to a base profile.
// Returns an error if any transform fails to validate or apply.
func ApplyTransforms(base *domain.TaxProfile, transforms []ProfileTransform) (*domain.TaxProfile, error) {
	if base == nil {
		return nil, fmt.Errorf("base profile cannot be nil")
	}

	if len(transforms) == 0 {
		out := base.DeepCopy()
		return &out, nil
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

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
