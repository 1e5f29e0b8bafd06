// Package validator reports data quality problems in normalized exhibitor rows.
package validator

import (
	"errors"
	"fmt"
	"io"

	"messecrawl/internal/config"
	"messecrawl/internal/models"
)

// ErrRequiredFieldEmpty marks a row whose required column is empty.
var ErrRequiredFieldEmpty = errors.New("required field is empty")

// ValidationError represents a validation error with context.
type ValidationError struct {
	Err     error
	Field   string
	Company string
	Message string
	Row     int
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []string
	Stats    ValidationStats
	IsValid  bool
}

// ValidationStats counts rows with empty derived fields.
type ValidationStats struct {
	TotalRows          int
	ValidRows          int
	InvalidRows        int
	MissingCompanyName int
	MissingCity        int
	MissingCountry     int
	MissingHall        int
	MissingStand       int
	MissingProductLink int
	DuplicateLinks     int
}

// RowValidator checks normalized rows against the configured required fields.
type RowValidator struct {
	required []string
}

// NewRowValidator creates a new validator.
func NewRowValidator(cfg *config.Config) *RowValidator {
	return &RowValidator{required: cfg.Validation.RequiredFields}
}

// Validate inspects every row. Rows are never modified or dropped.
func (v *RowValidator) Validate(rows []models.ExhibitorRow) *ValidationResult {
	result := &ValidationResult{IsValid: true}
	result.Stats.TotalRows = len(rows)

	seenLinks := make(map[string]int)

	for i, row := range rows {
		rowNum := i + 1
		rowValid := true

		for _, field := range v.required {
			if row.Field(field) != "" {
				continue
			}

			rowValid = false
			result.Errors = append(result.Errors, ValidationError{
				Err:     ErrRequiredFieldEmpty,
				Field:   field,
				Company: row.CompanyName,
				Row:     rowNum,
				Message: fmt.Sprintf("%s: %s", ErrRequiredFieldEmpty, field),
			})
		}

		if rowValid {
			result.Stats.ValidRows++
		} else {
			result.Stats.InvalidRows++
		}

		countMissing(&result.Stats, row)

		if row.ProductLink != "" {
			if first, ok := seenLinks[row.ProductLink]; ok {
				result.Stats.DuplicateLinks++
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Row %d: product link duplicates row %d (%s)", rowNum, first, row.ProductLink))
			} else {
				seenLinks[row.ProductLink] = rowNum
			}
		}
	}

	result.IsValid = result.Stats.InvalidRows == 0
	result.Warnings = append(result.Warnings, missingWarnings(result.Stats)...)

	return result
}

func countMissing(stats *ValidationStats, row models.ExhibitorRow) {
	if row.CompanyName == "" {
		stats.MissingCompanyName++
	}

	if row.City == "" {
		stats.MissingCity++
	}

	if row.Country == "" {
		stats.MissingCountry++
	}

	if row.Hall == "" {
		stats.MissingHall++
	}

	if row.Stand == "" {
		stats.MissingStand++
	}

	if row.ProductLink == "" {
		stats.MissingProductLink++
	}
}

func missingWarnings(stats ValidationStats) []string {
	var warnings []string

	counts := []struct {
		field string
		n     int
	}{
		{models.ColCompanyName, stats.MissingCompanyName},
		{models.ColCity, stats.MissingCity},
		{models.ColCountry, stats.MissingCountry},
		{models.ColHall, stats.MissingHall},
		{models.ColStand, stats.MissingStand},
		{models.ColProductLink, stats.MissingProductLink},
	}

	for _, c := range counts {
		if c.n > 0 {
			warnings = append(warnings, fmt.Sprintf("%d of %d rows have an empty %s", c.n, stats.TotalRows, c.field))
		}
	}

	return warnings
}

// String returns string representation of validation result.
func (r *ValidationResult) String() string {
	status := "✅ VALID"
	if !r.IsValid {
		status = "❌ INVALID"
	}

	return fmt.Sprintf(
		"%s | Total: %d | Valid: %d | Invalid: %d | Warnings: %d",
		status,
		r.Stats.TotalRows,
		r.Stats.ValidRows,
		r.Stats.InvalidRows,
		len(r.Warnings),
	)
}

// PrintErrors prints validation errors in readable format.
func (r *ValidationResult) PrintErrors(w io.Writer) {
	if len(r.Errors) == 0 {
		return
	}

	fmt.Fprintln(w, "❌ Validation Errors:")

	for _, err := range r.Errors {
		if err.Company != "" {
			fmt.Fprintf(w, "  Row %d (%s): %s\n", err.Row, err.Company, err.Message)
		} else {
			fmt.Fprintf(w, "  Row %d: %s\n", err.Row, err.Message)
		}
	}
}

// PrintWarnings prints validation warnings.
func (r *ValidationResult) PrintWarnings(w io.Writer) {
	if len(r.Warnings) == 0 {
		return
	}

	fmt.Fprintln(w, "⚠️  Validation Warnings:")

	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "  %s\n", warn)
	}
}
