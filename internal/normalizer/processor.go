// Package normalizer turns raw exhibitor records into flat CSV rows.
package normalizer

import (
	"fmt"

	"messecrawl/internal/models"
)

// Processor validates a record sequence and normalizes it.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a new processor instance.
func NewProcessor() *Processor {
	return NewProcessorWithTransformer(NewTransformer())
}

// NewProcessorWithTransformer creates a processor around an existing transformer.
func NewProcessorWithTransformer(t *Transformer) *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: t,
	}
}

// Process returns one row per record, in input order.
func (p *Processor) Process(records []models.RawExhibitor) ([]models.ExhibitorRow, error) {
	if err := p.validator.Validate(records); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return p.transformer.Transform(records), nil
}
