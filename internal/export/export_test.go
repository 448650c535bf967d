// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bibgen/pkg/types"
)

func sampleResults() []types.Result {
	return []types.Result{
		{
			Raw:          "arXiv:2110.14051",
			OK:           true,
			Source:       "arXiv",
			MatchedTitle: "A Unified Survey on Anomaly Detection",
			BibTeX:       "@misc{salehi2021a,\n  title={A Unified Survey on Anomaly Detection}\n}",
			RIS:          "TY  - RPRT\nTI  - A Unified Survey on Anomaly Detection\nER  -",
		},
		{
			Raw:     "unresolvable gibberish",
			Message: "no confident match; paste a DOI or arXiv ID directly, or provide a fuller title",
		},
		{
			Raw:          "10.1007/s11633-023-1459-z",
			OK:           true,
			Source:       "DOI/Crossref",
			MatchedTitle: "Deep Residual Learning for Image Recognition",
			BibTeX:       "@article{he2023deep,\n  title={Deep Residual Learning for Image Recognition}\n}",
			RIS:          "TY  - JOUR\nTI  - Deep Residual Learning for Image Recognition\nER  -",
		},
	}
}

func TestCombineBibTeX(t *testing.T) {
	combined := Combine(sampleResults(), types.FormatBibTeX)

	parts := strings.Split(combined, "\n\n")
	if len(parts) != 2 {
		t.Fatalf("combined document has %d entries, want 2:\n%s", len(parts), combined)
	}
	if !strings.HasPrefix(parts[0], "@misc{") || !strings.HasPrefix(parts[1], "@article{") {
		t.Errorf("entries out of order or malformed:\n%s", combined)
	}
	if strings.Contains(combined, "gibberish") {
		t.Errorf("failed result leaked into export:\n%s", combined)
	}
}

func TestCombineRIS(t *testing.T) {
	combined := Combine(sampleResults(), types.FormatRIS)

	if got := strings.Count(combined, "ER  -"); got != 2 {
		t.Errorf("combined RIS has %d records, want 2:\n%s", got, combined)
	}
	if strings.Contains(combined, "@misc") {
		t.Errorf("BibTeX leaked into RIS export:\n%s", combined)
	}
}

func TestCombineEmpty(t *testing.T) {
	if got := Combine(nil, types.FormatBibTeX); got != "" {
		t.Errorf("Combine(nil) = %q, want empty", got)
	}
	onlyFailed := []types.Result{{Raw: "x", Message: "no confident match"}}
	if got := Combine(onlyFailed, types.FormatRIS); got != "" {
		t.Errorf("Combine(failed-only) = %q, want empty", got)
	}
}

func TestDefaultFilename(t *testing.T) {
	if got := DefaultFilename(types.FormatBibTeX); got != "references.bib" {
		t.Errorf("DefaultFilename(bibtex) = %q", got)
	}
	if got := DefaultFilename(types.FormatRIS); got != "references.ris" {
		t.Errorf("DefaultFilename(ris) = %q", got)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "references.bib")
	require.NoError(t, WriteFile(path, "@misc{a,\n  title={T}\n}"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "}\n"), "file should end with a newline")
}

func TestReportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	results := sampleResults()

	require.NoError(t, WriteReportFile(path, results, 85, types.FormatBibTeX))

	rf, err := ReadReportFile(path)
	require.NoError(t, err)

	assert.Equal(t, 3, rf.Input.Entries)
	assert.Equal(t, 85, rf.Input.Threshold)
	assert.Equal(t, "bibtex", rf.Input.Format)
	assert.Equal(t, 2, rf.Summary.Resolved)
	assert.Equal(t, 1, rf.Summary.Failed)
	assert.False(t, rf.Summary.Timestamp.IsZero())

	require.Len(t, rf.Results, 3)
	assert.Equal(t, results[0].BibTeX, rf.Results[0].BibTeX)
	assert.Equal(t, results[1].Message, rf.Results[1].Message)
}

func TestReadReportFileMissing(t *testing.T) {
	_, err := ReadReportFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
