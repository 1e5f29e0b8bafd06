package normalizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Fertigungsmanagement", "Fertigungsmanagement"},
		{"inner ellipsis and whitespace", "Hello...   world\n\tfoo", "Hello world foo"},
		{"leading marker", "... Die BDE Engineering", "Die BDE Engineering"},
		{"leading and trailing marker", "... Die BDE Engineering ...", "Die BDE Engineering ..."},
		{"trailing marker attached", "Unsere MiX-Plattform integriert...", "Unsere MiX-Plattform integriert..."},
		{"only marker", "...", ""},
		{"marker with whitespace", "  ...\n\t ", ""},
		{"newline runs", "Zeile eins\n\n\nZeile zwei", "Zeile eins Zeile zwei"},
		{"tabs", "a\t\tb", "a b"},
		{"removal creates space run", "Lösungen ... für ... Industrie", "Lösungen für Industrie"},
		{"trim", "   padded   ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanDescription(tt.in))
		})
	}
}

func TestCleanDescription_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Hello...   world\n\tfoo",
		"... Die <strong>BDE</strong> Engineering ist ein innovatives Unternehmen ...",
		"a.....b",
		"x ......",
		"foo... ...",
		"a..\n...",
		"\t\n  ... ",
		"Energie-, Bergbau- und Fertigungsindustrien.\r\n Unsere",
	}

	for _, in := range inputs {
		once := CleanDescription(in)
		assert.Equal(t, once, CleanDescription(once), "input %q", in)
	}
}

func TestSplitLocation(t *testing.T) {
	tests := []struct {
		in          string
		wantCity    string
		wantCountry string
	}{
		{"", "", ""},
		{"Beverungen - DE", "Beverungen", "DE"},
		{"Johannesburg - ZA", "Johannesburg", "ZA"},
		{"  Hannover  ", "Hannover", ""},
		{"Hannover-Linden - DE", "Hannover-Linden", "DE"},
		{"Frankfurt am Main - DE - Hessen", "Frankfurt am Main", "DE - Hessen"},
		{" - DE", "", "DE"},
		{"Berlin - ", "Berlin", ""},
	}

	for _, tt := range tests {
		city, country := SplitLocation(tt.in)
		assert.Equal(t, tt.wantCity, city, "city of %q", tt.in)
		assert.Equal(t, tt.wantCountry, country, "country of %q", tt.in)
	}
}

func TestSplitLocation_JoinedHalves(t *testing.T) {
	pairs := [][2]string{
		{"Beverungen", "DE"},
		{"  São Paulo ", " BR "},
		{"Köln-Deutz", "DE"},
		{"", ""},
	}

	for _, p := range pairs {
		city, country := SplitLocation(p[0] + " - " + p[1])
		assert.Equal(t, strings.TrimSpace(p[0]), city)
		assert.Equal(t, strings.TrimSpace(p[1]), country)
	}
}

func TestSplitStand(t *testing.T) {
	tests := []struct {
		in        string
		wantHall  string
		wantStand string
	}{
		{"", "", ""},
		{"Halle 15, Stand A18, (7)", "15", "A18 , (7)"},
		{"Halle 16, Stand E11", "16", "E11"},
		{"Halle 9, Stand E11/2", "9", "E11/2"},
		{"Halle 27A, Stand K04", "27A", "K04"},
		{"Halle 15, Stand A18 ,(12)", "15", "A18 , (12)"},
		{"Stand C30", "", "C30"},
		{"Halle 13", "13", ""},
		{"Freigelände", "", ""},
		{"Stand a12", "", ""},
		{"Stand A18 (7)", "", "A18"},
		{"Halle\u00a015, Stand\u00a0A18", "15", "A18"},
		{"Halle\u00a015, Stand\u00a0A18\u00a0,\u00a0(7)", "15", "A18 , (7)"},
	}

	for _, tt := range tests {
		hall, stand := SplitStand(tt.in)
		assert.Equal(t, tt.wantHall, hall, "hall of %q", tt.in)
		assert.Equal(t, tt.wantStand, stand, "stand of %q", tt.in)
	}
}

func TestAbsolutizeLink(t *testing.T) {
	assert.Equal(t, "https://www.hannovermesse.de/de/p/1234", AbsolutizeLink(DefaultLinkOrigin, "/de/p/1234"))
	assert.Equal(t, "", AbsolutizeLink(DefaultLinkOrigin, ""))
	assert.Equal(t, "https://www.hannovermesse.dede/p/1", AbsolutizeLink(DefaultLinkOrigin, "de/p/1"))
	assert.Equal(t, "https://www.hannovermesse.de//x", AbsolutizeLink(DefaultLinkOrigin, "//x"))
}
