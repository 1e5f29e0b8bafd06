package validator

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messecrawl/internal/config"
	"messecrawl/internal/models"
)

func newValidator(required ...string) *RowValidator {
	cfg := config.Default()
	cfg.Validation.RequiredFields = required

	return NewRowValidator(cfg)
}

func TestRowValidator_AllValid(t *testing.T) {
	rows := []models.ExhibitorRow{
		{CompanyName: "BDE-Engineering", City: "Beverungen", Country: "DE", Hall: "15", Stand: "A18 , (7)", ProductLink: "https://www.hannovermesse.de/de/p/bde"},
		{CompanyName: "AMM Systems", City: "Johannesburg", Country: "ZA", Hall: "16", Stand: "E11", ProductLink: "https://www.hannovermesse.de/de/p/amm"},
	}

	result := newValidator(models.ColCompanyName).Validate(rows)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, 2, result.Stats.ValidRows)
	assert.Equal(t, "✅ VALID | Total: 2 | Valid: 2 | Invalid: 0 | Warnings: 0", result.String())
}

func TestRowValidator_RequiredFields(t *testing.T) {
	rows := []models.ExhibitorRow{
		{CompanyName: "A", City: "Hannover"},
		{City: "Köln"},
		{CompanyName: "C"},
	}

	result := newValidator(models.ColCompanyName, models.ColCity).Validate(rows)
	require.False(t, result.IsValid)
	require.Len(t, result.Errors, 2)

	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, models.ColCompanyName, result.Errors[0].Field)
	assert.True(t, errors.Is(result.Errors[0].Err, ErrRequiredFieldEmpty))

	assert.Equal(t, 3, result.Errors[1].Row)
	assert.Equal(t, models.ColCity, result.Errors[1].Field)
	assert.Equal(t, "C", result.Errors[1].Company)

	assert.Equal(t, 1, result.Stats.ValidRows)
	assert.Equal(t, 2, result.Stats.InvalidRows)
}

func TestRowValidator_MissingStatsAndDuplicates(t *testing.T) {
	rows := []models.ExhibitorRow{
		{CompanyName: "A", ProductLink: "https://x/a"},
		{CompanyName: "B", ProductLink: "https://x/a", Hall: "3"},
		{CompanyName: "C"},
	}

	result := newValidator().Validate(rows)
	assert.True(t, result.IsValid)

	stats := result.Stats
	assert.Equal(t, 3, stats.MissingCity)
	assert.Equal(t, 3, stats.MissingCountry)
	assert.Equal(t, 2, stats.MissingHall)
	assert.Equal(t, 3, stats.MissingStand)
	assert.Equal(t, 1, stats.MissingProductLink)
	assert.Equal(t, 0, stats.MissingCompanyName)
	assert.Equal(t, 1, stats.DuplicateLinks)

	assert.Contains(t, result.Warnings, "Row 2: product link duplicates row 1 (https://x/a)")
	assert.Contains(t, result.Warnings, "2 of 3 rows have an empty hall")
}

func TestValidationResult_Print(t *testing.T) {
	result := newValidator(models.ColCompanyName).Validate([]models.ExhibitorRow{{City: "Hannover"}})

	var buf bytes.Buffer
	result.PrintErrors(&buf)
	assert.Contains(t, buf.String(), "Row 1: required field is empty: company_name")

	buf.Reset()
	result.PrintWarnings(&buf)
	assert.Contains(t, buf.String(), "1 of 1 rows have an empty country")

	clean := newValidator().Validate(nil)

	buf.Reset()
	clean.PrintErrors(&buf)
	clean.PrintWarnings(&buf)
	assert.Empty(t, buf.String())
}
