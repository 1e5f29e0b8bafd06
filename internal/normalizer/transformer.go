package normalizer

import (
	"messecrawl/internal/models"
)

// DefaultLinkOrigin is prepended to site-relative product links.
const DefaultLinkOrigin = "https://www.hannovermesse.de"

// Transformer maps raw exhibitor records onto flat rows.
type Transformer struct {
	linkOrigin string
}

// NewTransformer creates a new transformer instance using DefaultLinkOrigin.
func NewTransformer() *Transformer {
	return NewTransformerWithOrigin(DefaultLinkOrigin)
}

// NewTransformerWithOrigin creates a transformer that absolutizes links against origin.
// An empty origin falls back to DefaultLinkOrigin.
func NewTransformerWithOrigin(origin string) *Transformer {
	if origin == "" {
		origin = DefaultLinkOrigin
	}

	return &Transformer{linkOrigin: origin}
}

// LinkOrigin returns the origin used for product links.
func (t *Transformer) LinkOrigin() string {
	return t.linkOrigin
}

// TransformRecord normalizes a single record. It never fails.
func (t *Transformer) TransformRecord(rec models.RawExhibitor) models.ExhibitorRow {
	city, country := SplitLocation(rec.Location)
	hall, stand := SplitStand(rec.Stand)

	return models.ExhibitorRow{
		CompanyName:       rec.CompanyName,
		City:              city,
		Country:           country,
		Description:       CleanDescription(rec.Description),
		Hall:              hall,
		Stand:             stand,
		ProductLink:       AbsolutizeLink(t.linkOrigin, rec.ProductLink),
		SearchSnippetType: rec.SearchSnippetType,
	}
}

// Transform normalizes every record, keeping input order.
func (t *Transformer) Transform(records []models.RawExhibitor) []models.ExhibitorRow {
	rows := make([]models.ExhibitorRow, len(records))
	for i, rec := range records {
		rows[i] = t.TransformRecord(rec)
	}

	return rows
}
