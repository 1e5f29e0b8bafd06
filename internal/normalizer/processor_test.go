package normalizer

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messecrawl/internal/models"
)

func TestNewProcessor(t *testing.T) {
	p := NewProcessor()
	require.NotNil(t, p)
	assert.Equal(t, DefaultLinkOrigin, p.transformer.LinkOrigin())
}

func TestProcessor_Process_EndToEndRecord(t *testing.T) {
	p := NewProcessor()

	rows, err := p.Process([]models.RawExhibitor{
		{
			CompanyName: "BDE-Engineering",
			Location:    "Beverungen - DE",
			Description: "... Die BDE Engineering ...",
			Stand:       "Halle 15, Stand A18, (7)",
			ProductLink: "/de/p/bde",
		},
	})
	require.NoError(t, err)

	want := []models.ExhibitorRow{
		{
			CompanyName: "BDE-Engineering",
			City:        "Beverungen",
			Country:     "DE",
			Description: "Die BDE Engineering ...",
			Hall:        "15",
			Stand:       "A18 , (7)",
			ProductLink: "https://www.hannovermesse.de/de/p/bde",
		},
	}

	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("Process() mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessor_Process_PreservesCountAndOrder(t *testing.T) {
	records := []models.RawExhibitor{
		{CompanyName: "AMM Systems", Location: "Johannesburg - ZA", Stand: "Halle 16, Stand E11"},
		{},
		{CompanyName: "Zeta", SearchSnippetType: "Aussteller"},
		{CompanyName: "AMM Systems", Location: "Johannesburg - ZA", Stand: "Halle 16, Stand E11"},
	}

	rows, err := NewProcessor().Process(records)
	require.NoError(t, err)
	require.Len(t, rows, len(records))

	tr := NewTransformer()
	for i := range records {
		assert.Equal(t, tr.TransformRecord(records[i]), rows[i], "row %d", i)
	}

	assert.Equal(t, models.ExhibitorRow{}, rows[1])
	assert.Equal(t, "Aussteller", rows[2].SearchSnippetType)
	assert.Equal(t, rows[0], rows[3])
}

func TestProcessor_Process_Deterministic(t *testing.T) {
	records := []models.RawExhibitor{
		{CompanyName: "A", Description: "x...\n y", ProductLink: "/a"},
		{CompanyName: "B", Location: "Hannover"},
	}

	p := NewProcessor()
	first, err := p.Process(records)
	require.NoError(t, err)

	second, err := p.Process(records)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestProcessor_Process_InputErrors(t *testing.T) {
	p := NewProcessor()

	rows, err := p.Process(nil)
	assert.Nil(t, rows)
	assert.True(t, errors.Is(err, ErrSourceAbsent))
	assert.True(t, errors.Is(err, ErrInput))

	rows, err = p.Process([]models.RawExhibitor{})
	assert.Nil(t, rows)
	assert.True(t, errors.Is(err, ErrEmptySource))
	assert.True(t, errors.Is(err, ErrInput))
}

func TestTransformer_CustomOrigin(t *testing.T) {
	tr := NewTransformerWithOrigin("https://example.test")
	row := tr.TransformRecord(models.RawExhibitor{ProductLink: "/de/p/1234"})
	assert.Equal(t, "https://example.test/de/p/1234", row.ProductLink)

	assert.Equal(t, DefaultLinkOrigin, NewTransformerWithOrigin("").LinkOrigin())
}

func TestTransformer_Transform_Empty(t *testing.T) {
	rows := NewTransformer().Transform(nil)
	assert.Empty(t, rows)
}
