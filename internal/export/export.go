// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export assembles resolver results into citation files: a
// combined BibTeX or RIS document, plus an optional YAML report capturing
// the full run for later inspection.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/bibgen/pkg/types"
)

// DefaultFilename returns the conventional output filename for a format.
func DefaultFilename(format types.ExportFormat) string {
	if format == types.FormatRIS {
		return "references.ris"
	}
	return "references.bib"
}

// Combine joins the formatted entries of all successful results into one
// document, separated by blank lines. Failed results are skipped.
func Combine(results []types.Result, format types.ExportFormat) string {
	var entries []string
	for _, r := range results {
		if !r.OK {
			continue
		}
		entry := r.BibTeX
		if format == types.FormatRIS {
			entry = r.RIS
		}
		if entry != "" {
			entries = append(entries, entry)
		}
	}
	return strings.Join(entries, "\n\n")
}

// WriteFile writes a combined document to path, adding a trailing newline.
func WriteFile(path, combined string) error {
	if err := os.WriteFile(path, []byte(combined+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	return nil
}
