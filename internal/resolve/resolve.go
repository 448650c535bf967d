// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve implements the citation resolution cascade: direct
// identifier lookups first (DOI, arXiv ID), then title searches across
// arXiv, Semantic Scholar, OpenAlex, and Crossref, each gated by a fuzzy
// match threshold. Later tiers loosen the threshold because their search
// indexes have broader recall but noisier titles.
package resolve

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/bibgen/internal/convert"
	"github.com/pdiddy/bibgen/internal/extract"
	"github.com/pdiddy/bibgen/internal/match"
	"github.com/pdiddy/bibgen/internal/sources"
	"github.com/pdiddy/bibgen/pkg/types"
)

const (
	emptyInputMessage = "empty input"
	noMatchMessage    = "no confident match; paste a DOI or arXiv ID directly, or provide a fuller title"
)

// Resolver runs the cascade. All source adapters share one response cache
// so repeated inputs in a batch never hit the network twice.
type Resolver struct {
	Arxiv    *sources.Arxiv
	Crossref *sources.Crossref
	OpenAlex *sources.OpenAlex
	Semantic *sources.SemanticScholar
	Config   types.ResolveConfig
}

// New builds a Resolver with all four source adapters wired to the given
// client. A nil client gets a default one with the configured timeout.
func New(client *http.Client, cfg types.ResolveConfig) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	cache := sources.NewCache(cfg.CacheTTL)
	return &Resolver{
		Arxiv:    &sources.Arxiv{Client: client, Config: cfg.HTTPConfig, Cache: cache},
		Crossref: &sources.Crossref{Client: client, Config: cfg.HTTPConfig, Cache: cache},
		OpenAlex: &sources.OpenAlex{Client: client, Config: cfg.HTTPConfig, Contact: cfg.Contact, Cache: cache},
		Semantic: &sources.SemanticScholar{Client: client, Config: cfg.HTTPConfig, APIKey: cfg.SemanticScholarAPIKey, Cache: cache},
		Config:   cfg,
	}
}

// ResolveOne resolves a single citation entry through the cascade:
//
//	1. embedded DOI        -> Crossref record fetch
//	2. embedded arXiv ID   -> arXiv record fetch
//	3. guessed title       -> arXiv title search, threshold t
//	4. guessed title       -> Semantic Scholar, threshold max(70, t-10)
//	5. guessed title       -> OpenAlex, threshold max(70, t-10)
//	6. guessed title       -> Crossref title search, threshold max(65, t-15)
//
// The first tier that produces a confident, convertible record wins. A
// Crossref record reached through an explicit DOI that cannot be converted
// is a hard failure (the caller named the exact work); conversion failures
// in the search tiers just fall through to the next tier.
func (r *Resolver) ResolveOne(ctx context.Context, raw string, threshold int) types.Result {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return types.Result{Raw: raw, Message: emptyInputMessage}
	}

	// Tier 1: explicit DOI.
	if doi := extract.ExtractDOI(trimmed); doi != "" {
		if work := r.Crossref.Work(ctx, doi); work != nil {
			res, err := crossrefResult(raw, work, "DOI/Crossref")
			if err != nil {
				return types.Result{Raw: raw, Source: "DOI/Crossref", Message: err.Error()}
			}
			return res
		}
	}

	// Tier 2: explicit arXiv identifier.
	if id := extract.ExtractArxivID(trimmed); id != "" {
		if entry := r.Arxiv.ByID(ctx, id); entry != nil {
			return arxivResult(raw, entry, "arXiv")
		}
	}

	title := extract.GuessTitle(trimmed)
	if title == "" {
		return types.Result{Raw: raw, Message: noMatchMessage}
	}

	// Tier 3: arXiv title search, with an unrestricted retry because the
	// ti: field index misses some listings.
	entries := r.Arxiv.SearchTitle(ctx, title, r.Config.ArxivResults)
	if len(entries) == 0 {
		entries = r.Arxiv.Search(ctx, title, r.Config.ArxivResults)
	}
	if idx, score := match.Best(title, arxivTitles(entries), threshold); idx >= 0 {
		return arxivResult(raw, &entries[idx], fmt.Sprintf("arXiv title-match(score=%d)", score))
	}

	// Tier 4: Semantic Scholar, following its external IDs back to the
	// richer sources. An arXiv listing beats a bare Crossref record for
	// preprints, so it is tried first.
	looser := max(70, threshold-10)
	papers := r.Semantic.Search(ctx, title, r.Config.SearchRows)
	if idx, score := match.Best(title, semanticTitles(papers), looser); idx >= 0 {
		p := papers[idx]
		if p.ExternalIDs.ArXiv != "" {
			if entry := r.Arxiv.ByID(ctx, p.ExternalIDs.ArXiv); entry != nil {
				return arxivResult(raw, entry, fmt.Sprintf("SemanticScholar->arXiv(score=%d)", score))
			}
		}
		if p.ExternalIDs.DOI != "" {
			if work := r.Crossref.Work(ctx, p.ExternalIDs.DOI); work != nil {
				if res, err := crossrefResult(raw, work, fmt.Sprintf("SemanticScholar->DOI/Crossref(score=%d)", score)); err == nil {
					return res
				}
			}
		}
	}

	// Tier 5: OpenAlex, resolving its DOI back through Crossref.
	oaWorks := r.OpenAlex.Search(ctx, title, r.Config.SearchRows)
	if idx, score := match.Best(title, openAlexTitles(oaWorks), looser); idx >= 0 {
		if doi := stripDOIURL(oaWorks[idx].DOI); doi != "" {
			if work := r.Crossref.Work(ctx, doi); work != nil {
				if res, err := crossrefResult(raw, work, fmt.Sprintf("OpenAlex->DOI/Crossref(score=%d)", score)); err == nil {
					return res
				}
			}
		}
	}

	// Tier 6: Crossref title search, loosest threshold. Search items carry
	// abbreviated metadata, so the matched work is re-fetched by DOI.
	loosest := max(65, threshold-15)
	crWorks := r.Crossref.SearchTitle(ctx, title, r.Config.SearchRows)
	if idx, score := match.Best(title, crossrefTitles(crWorks), loosest); idx >= 0 {
		work := &crWorks[idx]
		if work.DOI != "" {
			if full := r.Crossref.Work(ctx, work.DOI); full != nil {
				work = full
			}
		}
		if res, err := crossrefResult(raw, work, fmt.Sprintf("Crossref title-match(score=%d)", score)); err == nil {
			return res
		}
	}

	return types.Result{Raw: raw, Message: noMatchMessage}
}

// ResolveAll resolves entries sequentially, reporting per-entry progress
// and a summary to w.
func (r *Resolver) ResolveAll(ctx context.Context, entries []string, threshold int, w io.Writer) []types.Result {
	results := make([]types.Result, 0, len(entries))
	resolved := 0
	for i, raw := range entries {
		res := r.ResolveOne(ctx, raw, threshold)
		if res.OK {
			resolved++
			fmt.Fprintf(w, "resolved: [%d/%d] %s (%s)\n", i+1, len(entries), res.MatchedTitle, res.Source)
		} else {
			fmt.Fprintf(w, "failed:   [%d/%d] %s (%s)\n", i+1, len(entries), firstLine(raw), res.Message)
		}
		results = append(results, res)
	}
	fmt.Fprintf(w, "\nBatch summary: %d resolved, %d failed (total: %d)\n",
		resolved, len(entries)-resolved, len(entries))
	return results
}

func arxivResult(raw string, e *sources.ArxivEntry, source string) types.Result {
	return types.Result{
		Raw:          raw,
		OK:           true,
		Source:       source,
		MatchedTitle: e.Title,
		BibTeX:       convert.ArxivBibTeX(e),
		RIS:          convert.ArxivRIS(e),
	}
}

func crossrefResult(raw string, w *sources.CrossrefWork, source string) (types.Result, error) {
	bib, err := convert.CrossrefBibTeX(w)
	if err != nil {
		return types.Result{}, err
	}
	title := ""
	if len(w.Title) > 0 {
		title = w.Title[0]
	}
	return types.Result{
		Raw:          raw,
		OK:           true,
		Source:       source,
		MatchedTitle: title,
		BibTeX:       bib,
		RIS:          convert.CrossrefRIS(w),
	}, nil
}

func arxivTitles(entries []sources.ArxivEntry) []string {
	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.Title
	}
	return titles
}

func semanticTitles(papers []sources.SemanticPaper) []string {
	titles := make([]string, len(papers))
	for i, p := range papers {
		titles[i] = p.Title
	}
	return titles
}

func openAlexTitles(works []sources.OpenAlexWork) []string {
	titles := make([]string, len(works))
	for i, w := range works {
		titles[i] = w.Title
	}
	return titles
}

func crossrefTitles(works []sources.CrossrefWork) []string {
	titles := make([]string, len(works))
	for i, w := range works {
		if len(w.Title) > 0 {
			titles[i] = w.Title[0]
		}
	}
	return titles
}

// stripDOIURL reduces OpenAlex's URL-form DOI to a bare DOI.
func stripDOIURL(doi string) string {
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	return strings.TrimSpace(doi)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	if len(line) > 60 {
		line = line[:60] + "..."
	}
	return line
}
