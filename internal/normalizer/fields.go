package normalizer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	ellipsis          = "..."
	locationDelimiter = " - "
)

var (
	lineBreakPattern = regexp.MustCompile(`[\n\t]+`)
	spaceRunPattern  = regexp.MustCompile(` +`)

	// \p{Zs} admits non-breaking spaces left over from &nbsp; in the page text.
	hallPattern  = regexp.MustCompile(`Halle[\s\p{Zs}]+(\d+[A-Z]?)`)
	standPattern = regexp.MustCompile(`Stand[\s\p{Zs}]+([A-Z]\d+(?:/\d+)?)(?:[\s\p{Zs}]*,[\s\p{Zs}]*\((\d+)\))?`)
)

// CleanDescription strips ellipsis markers and folds whitespace into single spaces.
//
// An ellipsis that ends the text marks a truncated teaser and is kept; it is
// attached to the preceding word the same way it was in the input. Every other
// "..." is removed before whitespace is collapsed.
func CleanDescription(text string) string {
	if text == "" {
		return ""
	}

	body := strings.TrimSpace(text)
	truncated := strings.HasSuffix(body, ellipsis)

	if truncated {
		body = strings.TrimSuffix(body, ellipsis)
	}

	spaced := endsWithSpace(body)

	body = strings.ReplaceAll(body, ellipsis, "")
	body = lineBreakPattern.ReplaceAllString(body, " ")
	body = spaceRunPattern.ReplaceAllString(body, " ")
	body = strings.TrimSpace(body)

	if !truncated || body == "" {
		return body
	}

	if spaced {
		return body + " " + ellipsis
	}

	return body + ellipsis
}

func endsWithSpace(s string) bool {
	r, size := utf8.DecodeLastRuneInString(s)

	return size > 0 && unicode.IsSpace(r)
}

// SplitLocation splits "<city> - <country>" on the first delimiter.
// Without a delimiter the whole text is the city.
func SplitLocation(text string) (city, country string) {
	if text == "" {
		return "", ""
	}

	before, after, found := strings.Cut(text, locationDelimiter)
	if !found {
		return strings.TrimSpace(text), ""
	}

	return strings.TrimSpace(before), strings.TrimSpace(after)
}

// SplitStand extracts the hall and booth designators from text such as
// "Halle 15, Stand A18, (7)". A parenthesized booth suffix is rendered as
// "A18 , (7)". Either value is empty when its designator is missing.
func SplitStand(text string) (hall, stand string) {
	if text == "" {
		return "", ""
	}

	if m := hallPattern.FindStringSubmatch(text); m != nil {
		hall = m[1]
	}

	if m := standPattern.FindStringSubmatch(text); m != nil {
		stand = m[1]
		if m[2] != "" {
			stand += " , (" + m[2] + ")"
		}
	}

	return hall, stand
}

// AbsolutizeLink prefixes a site-relative path with origin. The path is used verbatim.
func AbsolutizeLink(origin, path string) string {
	if path == "" {
		return ""
	}

	return origin + path
}
