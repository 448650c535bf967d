// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the bibgen pipeline.
package types

// Result represents the outcome of resolving one citation entry. It is
// created once by the resolver, never mutated afterwards, and consumed by
// the presentation layer (CLI output, export files).
//
// Invariant: OK implies at least one of BibTeX/RIS is set; !OK implies
// both are empty and Message explains the failure.
type Result struct {
	// Raw is the original input text for this entry.
	Raw string `json:"raw" yaml:"raw"`

	// OK reports whether a sufficiently confident match was found.
	OK bool `json:"ok" yaml:"ok"`

	// Source labels the tier that produced the match, including the fuzzy
	// score when title matching was involved (e.g. "DOI/Crossref",
	// "arXiv title-match(score=92)").
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// MatchedTitle is the canonical title of the matched record.
	MatchedTitle string `json:"matched_title,omitempty" yaml:"matched_title,omitempty"`

	// BibTeX is the generated BibTeX entry.
	BibTeX string `json:"bibtex,omitempty" yaml:"bibtex,omitempty"`

	// RIS is the generated RIS record.
	RIS string `json:"ris,omitempty" yaml:"ris,omitempty"`

	// Message is a human-readable failure description, set only when !OK.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// ExportFormat selects the combined export output format.
type ExportFormat string

const (
	FormatBibTeX ExportFormat = "bibtex"
	FormatRIS    ExportFormat = "ris"
)
