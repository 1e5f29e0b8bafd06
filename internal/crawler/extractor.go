// Package crawler fetches exhibitor search result pages and extracts raw records with a CSS selector schema.
package crawler

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"messecrawl/internal/config"
	"messecrawl/internal/models"
)

// ErrParseHTML indicates that a page could not be parsed as HTML.
var ErrParseHTML = errors.New("failed to parse html")

// Extractor applies a selector schema to a search results page.
type Extractor struct {
	schema config.SchemaConfig
}

// NewExtractor creates an extractor for the default exhibitor schema.
func NewExtractor() *Extractor {
	return &Extractor{schema: config.DefaultSchema()}
}

// NewExtractorWithSchema creates an extractor for a custom schema.
func NewExtractorWithSchema(schema config.SchemaConfig) *Extractor {
	return &Extractor{schema: schema}
}

// Extract returns one map per element matching the base selector.
// Fields whose selector matches nothing are left out of the map.
func (e *Extractor) Extract(r io.Reader) ([]map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseHTML, err)
	}

	var items []map[string]string

	doc.Find(e.schema.BaseSelector).Each(func(_ int, base *goquery.Selection) {
		item := make(map[string]string, len(e.schema.Fields))

		for _, field := range e.schema.Fields {
			if value, ok := extractField(base, field); ok {
				item[field.Name] = value
			}
		}

		items = append(items, item)
	})

	return items, nil
}

// ExtractRecords extracts items and maps them onto RawExhibitor.
func (e *Extractor) ExtractRecords(r io.Reader) ([]models.RawExhibitor, error) {
	items, err := e.Extract(r)
	if err != nil {
		return nil, err
	}

	return RecordsFromItems(items), nil
}

func extractField(base *goquery.Selection, field config.FieldConfig) (string, bool) {
	sel := base.Find(field.Selector).First()
	if sel.Length() == 0 {
		return "", false
	}

	if field.Type == config.FieldTypeAttribute {
		return sel.Attr(field.Attribute)
	}

	return strings.TrimSpace(sel.Text()), true
}

// RecordsFromItems converts extracted items to raw exhibitors. "name" is accepted for company_name.
func RecordsFromItems(items []map[string]string) []models.RawExhibitor {
	records := make([]models.RawExhibitor, 0, len(items))

	for _, item := range items {
		name, ok := item[models.ColCompanyName]
		if !ok {
			name = item["name"]
		}

		records = append(records, models.RawExhibitor{
			CompanyName:       name,
			Location:          item["location"],
			Description:       item[models.ColDescription],
			Stand:             item[models.ColStand],
			ProductLink:       item[models.ColProductLink],
			SearchSnippetType: item[models.ColSearchSnippetType],
		})
	}

	return records
}
