package converter

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"messecrawl/internal/models"
)

// ReadRecordsFile reads raw exhibitor records from a JSON file.
func ReadRecordsFile(path string) ([]models.RawExhibitor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceRead, err)
	}
	defer f.Close()

	return ReadRecords(f)
}

// ReadRecords decodes a UTF-8 JSON array of exhibitor objects. A leading BOM is ignored;
// invalid UTF-8 yields ErrSourceRead.
//
// An empty array, an empty object or null yields ErrEmptySource. Any other
// document that is not an array yields ErrSourceRead. Array elements that are
// not objects decode to records with every field empty.
func ReadRecords(r io.Reader) ([]models.RawExhibitor, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceRead, err)
	}

	// The decoder would substitute U+FFFD, so malformed input is rejected first.
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrSourceRead)
	}

	data, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceRead, err)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrSourceRead)
	}

	doc := gjson.ParseBytes(data)

	switch {
	case doc.Type == gjson.Null:
		return nil, ErrEmptySource
	case doc.IsObject():
		if len(doc.Map()) == 0 {
			return nil, ErrEmptySource
		}

		return nil, fmt.Errorf("%w: expected a JSON array, got an object", ErrSourceRead)
	case !doc.IsArray():
		return nil, fmt.Errorf("%w: expected a JSON array, got %s", ErrSourceRead, doc.Type)
	}

	items := doc.Array()
	if len(items) == 0 {
		return nil, ErrEmptySource
	}

	records := make([]models.RawExhibitor, len(items))
	for i, item := range items {
		records[i] = recordFrom(item)
	}

	return records, nil
}

func recordFrom(item gjson.Result) models.RawExhibitor {
	if !item.IsObject() {
		return models.RawExhibitor{}
	}

	return models.RawExhibitor{
		CompanyName:       stringField(item, "company_name", "name"),
		Location:          stringField(item, "location"),
		Description:       stringField(item, "description"),
		Stand:             stringField(item, "stand"),
		ProductLink:       stringField(item, "product_link"),
		SearchSnippetType: stringField(item, "search_snippet_type"),
	}
}

// stringField returns the first key holding a scalar. Numbers and booleans keep their JSON text.
// When an object repeats a key, the last occurrence counts.
func stringField(obj gjson.Result, keys ...string) string {
	for _, key := range keys {
		v := lastValue(obj, key)

		switch v.Type {
		case gjson.String:
			return v.Str
		case gjson.Number, gjson.True, gjson.False:
			return v.Raw
		}
	}

	return ""
}

func lastValue(obj gjson.Result, key string) gjson.Result {
	var found gjson.Result

	obj.ForEach(func(k, v gjson.Result) bool {
		if k.Str == key {
			found = v
		}

		return true
	})

	return found
}
