// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/bibgen/internal/extract"
	"github.com/pdiddy/bibgen/internal/sources"
)

// crossrefTypeToRIS maps Crossref work types to RIS reference types.
// Unknown types fall back to GEN.
var crossrefTypeToRIS = map[string]string{
	"journal-article":     "JOUR",
	"journal-issue":       "JOUR",
	"proceedings-article": "CONF",
	"conference-paper":    "CONF",
	"book-chapter":        "CHAP",
	"book-section":        "CHAP",
	"book":                "BOOK",
	"monograph":           "BOOK",
	"report":              "RPRT",
	"posted-content":      "RPRT",
	"dissertation":        "THES",
	"thesis":              "THES",
}

// crossrefBestDate resolves the work's date, trying issued, created,
// published-print, and published-online in order and keeping the first
// with at least a year. Partial dates return zero month/day.
func crossrefBestDate(w *sources.CrossrefWork) (year, month, day int) {
	for _, d := range []sources.CrossrefDate{w.Issued, w.Created, w.PublishedPrint, w.PublishedOnline} {
		if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 || d.DateParts[0][0] == 0 {
			continue
		}
		parts := d.DateParts[0]
		year = parts[0]
		if len(parts) >= 2 {
			month = parts[1]
		}
		if len(parts) >= 3 {
			day = parts[2]
		}
		return year, month, day
	}
	return 0, 0, 0
}

// crossrefAuthors formats contributors as "Family, Given", falling back
// to the literal name for organizations.
func crossrefAuthors(w *sources.CrossrefWork) []string {
	var authors []string
	for _, a := range w.Author {
		switch {
		case a.Family != "" && a.Given != "":
			authors = append(authors, a.Family+", "+a.Given)
		case a.Name != "":
			authors = append(authors, a.Name)
		case a.Family != "":
			authors = append(authors, a.Family)
		}
	}
	return authors
}

func crossrefTitle(w *sources.CrossrefWork) string {
	if len(w.Title) > 0 {
		return w.Title[0]
	}
	return ""
}

func crossrefContainer(w *sources.CrossrefWork) string {
	if len(w.ContainerTitle) > 0 {
		return w.ContainerTitle[0]
	}
	return ""
}

// CrossrefBibTeX renders a Crossref work as a BibTeX entry. Journal
// works become @article, proceedings become @inproceedings, and
// everything else @misc. A record with no usable title is an error so
// the resolver can surface the failure.
func CrossrefBibTeX(w *sources.CrossrefWork) (string, error) {
	title := crossrefTitle(w)
	if title == "" {
		return "", fmt.Errorf("crossref record %s has no title", w.DOI)
	}

	authors := crossrefAuthors(w)
	year, _, _ := crossrefBestDate(w)
	yearStr := ""
	if year != 0 {
		yearStr = strconv.Itoa(year)
	}
	container := crossrefContainer(w)

	var entryType string
	var fields []field
	switch w.Type {
	case "journal-article", "journal-issue":
		entryType = "article"
		fields = []field{
			{"journal", container},
			{"volume", w.Volume},
			{"number", w.Issue},
			{"pages", w.Page},
		}
	case "proceedings-article", "conference-paper":
		entryType = "inproceedings"
		fields = []field{
			{"booktitle", container},
			{"pages", w.Page},
			{"publisher", w.Publisher},
		}
	default:
		entryType = "misc"
		fields = []field{
			{"howpublished", container},
		}
	}

	fields = append(fields,
		field{"title", title},
		field{"author", strings.Join(authors, " and ")},
		field{"year", yearStr},
		field{"doi", w.DOI},
		field{"url", w.URL},
	)

	// The key builder wants bare family names, not "Family, Given".
	families := make([]string, len(authors))
	for i, a := range authors {
		families[i], _, _ = strings.Cut(a, ",")
	}

	key := extract.CitationKey(families, year, title)
	return renderBibTeX(entryType, key, fields), nil
}

// CrossrefRIS renders a Crossref work as an RIS record using the full
// type table. Journal entries carry JO/JF/VL/IS; all other types carry
// the container as a secondary title plus the publisher.
func CrossrefRIS(w *sources.CrossrefWork) string {
	risType := crossrefTypeToRIS[w.Type]
	if risType == "" {
		risType = "GEN"
	}

	year, month, day := crossrefBestDate(w)
	da := ""
	switch {
	case year != 0 && month != 0 && day != 0:
		da = fmt.Sprintf("%04d/%02d/%02d", year, month, day)
	case year != 0 && month != 0:
		da = fmt.Sprintf("%04d/%02d", year, month)
	case year != 0:
		da = fmt.Sprintf("%04d", year)
	}

	lines := []string{
		risLine("TY", risType),
		risLine("TI", crossrefTitle(w)),
	}
	for _, a := range crossrefAuthors(w) {
		lines = append(lines, risLine("AU", a))
	}
	if year != 0 {
		lines = append(lines, risLine("PY", strconv.Itoa(year)))
	}
	lines = append(lines, risLine("DA", da))

	container := crossrefContainer(w)
	if risType == "JOUR" {
		lines = append(lines,
			risLine("JO", container),
			risLine("JF", container),
			risLine("VL", w.Volume),
			risLine("IS", w.Issue),
		)
	} else {
		lines = append(lines,
			risLine("T2", container),
			risLine("PB", w.Publisher),
		)
	}

	start, end := splitPages(w.Page)
	lines = append(lines,
		risLine("SP", start),
		risLine("EP", end),
		risLine("DO", w.DOI),
		risLine("UR", w.URL),
	)
	return risRecord(lines)
}
