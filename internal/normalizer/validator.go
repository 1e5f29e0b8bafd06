package normalizer

import (
	"errors"
	"fmt"

	"messecrawl/internal/models"
)

// Input errors. Both wrap ErrInput.
var (
	ErrInput        = errors.New("invalid input")
	ErrSourceAbsent = fmt.Errorf("%w: record sequence is absent", ErrInput)
	ErrEmptySource  = fmt.Errorf("%w: record sequence is empty", ErrInput)
)

// Validator checks the record sequence as a whole. Individual records are never rejected.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate reports ErrSourceAbsent for a nil sequence and ErrEmptySource for an empty one.
func (v *Validator) Validate(records []models.RawExhibitor) error {
	if records == nil {
		return ErrSourceAbsent
	}

	if len(records) == 0 {
		return ErrEmptySource
	}

	return nil
}
