// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/bibgen/internal/extract"
	"github.com/pdiddy/bibgen/internal/sources"
)

// ArxivDOI returns the DataCite DOI arXiv mints for a preprint,
// e.g. "10.48550/arXiv.2110.14051". The version suffix is dropped.
func ArxivDOI(arxivID string) string {
	if arxivID == "" {
		return ""
	}
	base, _, _ := strings.Cut(arxivID, "v")
	return "10.48550/arXiv." + base
}

// ArxivBibTeX renders an arXiv entry as a BibTeX @misc record.
func ArxivBibTeX(e *sources.ArxivEntry) string {
	year := 0
	if !e.Published.IsZero() {
		year = e.Published.Year()
	}
	yearStr := ""
	if year != 0 {
		yearStr = strconv.Itoa(year)
	}

	key := extract.CitationKey(e.Authors, year, e.Title)
	return renderBibTeX("misc", key, []field{
		{"title", strings.TrimSpace(e.Title)},
		{"author", strings.Join(e.Authors, " and ")},
		{"year", yearStr},
		{"eprint", e.ID},
		{"archivePrefix", "arXiv"},
		{"primaryClass", e.PrimaryCategory},
		{"url", e.EntryURL},
	})
}

// ArxivRIS renders an arXiv entry as an RIS report record (TY RPRT, the
// conventional mapping for preprints).
func ArxivRIS(e *sources.ArxivEntry) string {
	lines := []string{
		risLine("TY", "RPRT"),
		risLine("TI", e.Title),
	}
	for _, a := range e.Authors {
		lines = append(lines, risLine("AU", risAuthor(a)))
	}
	if !e.Published.IsZero() {
		lines = append(lines,
			risLine("PY", strconv.Itoa(e.Published.Year())),
			risLine("DA", e.Published.Format("2006/01/02")),
		)
	}
	lines = append(lines,
		risLine("JO", "arXiv"),
		risLine("T2", fmt.Sprintf("arXiv:%s", e.ID)),
		risLine("KW", e.PrimaryCategory),
		risLine("DO", ArxivDOI(e.ID)),
		risLine("UR", e.EntryURL),
	)
	return risRecord(lines)
}
