// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert renders source metadata records as BibTeX entries and
// RIS records. One converter per source family (arXiv, Crossref); both
// omit empty fields entirely rather than emitting empty braces or tags.
package convert

import (
	"fmt"
	"strings"
)

// latexEscaper escapes the characters BibTeX values cannot carry raw.
// Backslash must be first so already-escaped characters are not doubled.
var latexEscaper = strings.NewReplacer(
	`\`, `\\`,
	`&`, `\&`,
	`%`, `\%`,
	`_`, `\_`,
	`#`, `\#`,
	`$`, `\$`,
)

func latexEscape(s string) string {
	return latexEscaper.Replace(s)
}

// field is one BibTeX key/value pair; order is preserved when rendering.
type field struct {
	key   string
	value string
}

// renderBibTeX formats a complete entry, skipping empty values and
// dropping the trailing comma after the last field.
func renderBibTeX(entryType, citeKey string, fields []field) string {
	lines := []string{fmt.Sprintf("@%s{%s,", entryType, citeKey)}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s={%s},", f.key, latexEscape(f.value)))
	}
	if len(lines) > 1 {
		lines[len(lines)-1] = strings.TrimSuffix(lines[len(lines)-1], ",")
	}
	lines = append(lines, "}")
	return strings.Join(lines, "\n")
}

// risEscape flattens a value onto a single line for RIS output.
func risEscape(s string) string {
	s = strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// risLine formats one tagged RIS line, or "" when the value is empty.
func risLine(tag, value string) string {
	value = risEscape(value)
	if value == "" {
		return ""
	}
	return tag + "  - " + value
}

// risRecord joins non-empty lines and closes the record with ER.
func risRecord(lines []string) string {
	var kept []string
	for _, ln := range lines {
		if ln != "" {
			kept = append(kept, ln)
		}
	}
	kept = append(kept, "ER  -")
	return strings.Join(kept, "\n")
}

// risAuthor converts "First Last" to "Last, First". Names that already
// contain a comma, and single-token names, pass through unchanged.
func risAuthor(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.Contains(name, ",") {
		return name
	}
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name
	}
	last := parts[len(parts)-1]
	given := strings.Join(parts[:len(parts)-1], " ")
	return last + ", " + given
}

// splitPages splits a page range on a hyphen into start and end,
// accepting en-dash and doubled-hyphen forms.
func splitPages(pages string) (string, string) {
	p := strings.TrimSpace(pages)
	p = strings.NewReplacer("–", "-", "--", "-").Replace(p)
	if start, end, ok := strings.Cut(p, "-"); ok {
		return strings.TrimSpace(start), strings.TrimSpace(end)
	}
	return p, ""
}
