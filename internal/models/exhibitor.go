// Package models defines the exhibitor records that flow through the pipeline.
package models

// CSV column names, in output order.
const (
	ColCompanyName       = "company_name"
	ColCity              = "city"
	ColCountry           = "country"
	ColDescription       = "description"
	ColHall              = "hall"
	ColStand             = "stand"
	ColProductLink       = "product_link"
	ColSearchSnippetType = "search_snippet_type"
)

// CSVHeader is the fixed header row of the exported CSV.
var CSVHeader = []string{
	ColCompanyName,
	ColCity,
	ColCountry,
	ColDescription,
	ColHall,
	ColStand,
	ColProductLink,
	ColSearchSnippetType,
}

// RawExhibitor is one exhibitor entry as extracted from the search results page.
// Absent fields are empty strings.
type RawExhibitor struct {
	CompanyName       string `json:"company_name"`
	Location          string `json:"location"`
	Description       string `json:"description"`
	Stand             string `json:"stand"`
	ProductLink       string `json:"product_link"`
	SearchSnippetType string `json:"search_snippet_type"`
}

// ExhibitorRow is the normalized, flat form of a RawExhibitor.
type ExhibitorRow struct {
	CompanyName       string `json:"company_name"`
	City              string `json:"city"`
	Country           string `json:"country"`
	Description       string `json:"description"`
	Hall              string `json:"hall"`
	Stand             string `json:"stand"`
	ProductLink       string `json:"product_link"`
	SearchSnippetType string `json:"search_snippet_type"`
}

// Record returns the row's values in CSVHeader order.
func (r ExhibitorRow) Record() []string {
	return []string{
		r.CompanyName,
		r.City,
		r.Country,
		r.Description,
		r.Hall,
		r.Stand,
		r.ProductLink,
		r.SearchSnippetType,
	}
}

// Field returns the value of the named column, or "" for an unknown column.
func (r ExhibitorRow) Field(name string) string {
	switch name {
	case ColCompanyName:
		return r.CompanyName
	case ColCity:
		return r.City
	case ColCountry:
		return r.Country
	case ColDescription:
		return r.Description
	case ColHall:
		return r.Hall
	case ColStand:
		return r.Stand
	case ColProductLink:
		return r.ProductLink
	case ColSearchSnippetType:
		return r.SearchSnippetType
	}

	return ""
}

// IsColumn reports whether name is one of the CSV columns.
func IsColumn(name string) bool {
	for _, col := range CSVHeader {
		if col == name {
			return true
		}
	}

	return false
}
