package form

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// noResponse is the sentinel GitHub inserts for an untouched optional form
// field. Such fields are treated as absent.
const noResponse = "_No response_"

const headingMarker = "### "

var lowercaser = cases.Lower(language.Und)

// Parse decodes a GitHub issue form body into a flat key/value map.
// The body is split at "### Label" headings; the heading text is the field
// label and the following lines (trimmed) are the value. Malformed sections
// (empty label or value) and "_No response_" values are skipped. Parsing is
// pure and total: it never fails, it only drops what it cannot use.
func Parse(body string) map[string]string {
	data := make(map[string]string)

	for _, section := range splitSections(body) {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}

		label, rest, _ := strings.Cut(section, "\n")
		label = strings.TrimSpace(label)
		value := strings.TrimSpace(rest)

		if label == "" || value == "" || value == noResponse {
			continue
		}

		data[SlugifyKey(label)] = value
	}

	return data
}

// splitSections splits the body at lines starting with the heading marker,
// returning one chunk per heading with the marker stripped.
func splitSections(body string) []string {
	var sections []string
	var current strings.Builder
	started := false

	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, headingMarker) {
			if started {
				sections = append(sections, current.String())
				current.Reset()
			}
			started = true
			current.WriteString(strings.TrimPrefix(line, headingMarker))
			current.WriteString("\n")
			continue
		}
		if started {
			current.WriteString(line)
			current.WriteString("\n")
		}
	}
	if started {
		sections = append(sections, current.String())
	}

	return sections
}

// SlugifyKey resolves a form label to its canonical key: first the bilingual
// field table, then a generic slug (Unicode lowercase, punctuation stripped,
// whitespace collapsed to underscores).
func SlugifyKey(label string) string {
	if key, ok := fieldMap[label]; ok {
		return key
	}

	lowered := lowercaser.String(label)

	var b strings.Builder
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), "_")
}

// Checkboxes decodes a markdown checkbox list into the ordered labels of the
// checked entries. The item text runs from the checked marker up to an
// optional trailing parenthetical. Unchecked and unparseable lines are
// dropped silently.
func Checkboxes(value string) []string {
	if value == "" {
		return nil
	}

	var items []string
	for _, line := range strings.Split(value, "\n") {
		idx := strings.Index(line, "[x]")
		if idx < 0 {
			continue
		}
		item := line[idx+len("[x]"):]
		if paren := strings.Index(item, "("); paren >= 0 {
			item = item[:paren]
		}
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}

	return items
}
