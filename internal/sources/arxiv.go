// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/bibgen/internal/httputil"
	"github.com/pdiddy/bibgen/pkg/types"
)

// arxivAPIBase is the arXiv query endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivEntry is one record from the arXiv Atom feed, normalized for the
// format converters.
type ArxivEntry struct {
	// ID is the short-form identifier including any version suffix,
	// e.g. "2110.14051v2".
	ID              string
	Title           string
	Authors         []string
	Published       time.Time
	EntryURL        string
	PrimaryCategory string
}

// Arxiv queries the arXiv Atom API.
type Arxiv struct {
	Client *http.Client
	Config types.HTTPConfig
	Cache  *Cache
}

// ByID fetches a single record by arXiv identifier. A miss or any request
// failure yields nil.
func (a *Arxiv) ByID(ctx context.Context, id string) *ArxivEntry {
	key := cacheKey("arxiv.byid", id)
	if v, ok := a.Cache.get(key); ok {
		return v.(*ArxivEntry)
	}

	entries, err := a.fetch(ctx, url.Values{
		"id_list":     {id},
		"max_results": {"1"},
	})
	var entry *ArxivEntry
	if err == nil && len(entries) > 0 {
		entry = &entries[0]
	}
	a.Cache.put(key, entry)
	return entry
}

// SearchTitle issues a title-field-restricted query (ti:"...") for
// precision. Failures yield an empty slice.
func (a *Arxiv) SearchTitle(ctx context.Context, title string, max int) []ArxivEntry {
	q := strings.Trim(strings.TrimSpace(title), `"`)
	return a.search(ctx, "arxiv.searchtitle", fmt.Sprintf("ti:%q", q), max)
}

// Search issues an unrestricted query; the arXiv title index is sometimes
// picky, so the resolver retries with this after an empty SearchTitle.
func (a *Arxiv) Search(ctx context.Context, query string, max int) []ArxivEntry {
	return a.search(ctx, "arxiv.search", query, max)
}

func (a *Arxiv) search(ctx context.Context, op, query string, max int) []ArxivEntry {
	key := cacheKey(op, query, fmt.Sprintf("%d", max))
	if v, ok := a.Cache.get(key); ok {
		return v.([]ArxivEntry)
	}

	entries, err := a.fetch(ctx, url.Values{
		"search_query": {query},
		"start":        {"0"},
		"max_results":  {fmt.Sprintf("%d", max)},
	})
	if err != nil {
		entries = nil
	}
	a.Cache.put(key, entries)
	return entries
}

func (a *Arxiv) fetch(ctx context.Context, params url.Values) ([]ArxivEntry, error) {
	reqURL := arxivAPIBase + "?" + params.Encode()

	var feed arxivFeed
	if err := httputil.GetXML(ctx, a.Client, reqURL, httputil.Header(a.Config.UserAgent), &feed); err != nil {
		return nil, fmt.Errorf("arXiv API: %w", err)
	}

	var entries []ArxivEntry
	for _, e := range feed.Entries {
		id := shortArxivID(e.ID)
		if id == "" {
			continue
		}
		entry := ArxivEntry{
			ID:              id,
			Title:           strings.Join(strings.Fields(e.Title), " "),
			EntryURL:        e.ID,
			PrimaryCategory: e.PrimaryCategory.Term,
		}
		for _, au := range e.Authors {
			if name := strings.TrimSpace(au.Name); name != "" {
				entry.Authors = append(entry.Authors, name)
			}
		}
		if t, err := time.Parse(time.RFC3339, e.Published); err == nil {
			entry.Published = t
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivFeedEntry `xml:"entry"`
}

type arxivFeedEntry struct {
	ID              string          `xml:"id"`
	Title           string          `xml:"title"`
	Published       string          `xml:"published"`
	Authors         []arxivAuthor   `xml:"author"`
	PrimaryCategory arxivPrimaryCat `xml:"primary_category"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivPrimaryCat struct {
	Term string `xml:"term,attr"`
}

// shortArxivID pulls the short-form identifier from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041v1"). The
// version suffix is kept; converters strip it where needed.
func shortArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	return idURL[idx+len(prefix):]
}
