// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/bibgen/internal/httputil"
	"github.com/pdiddy/bibgen/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,year,authors,venue,externalIds,url"

// SemanticPaper is one result from the Semantic Scholar paper search.
type SemanticPaper struct {
	PaperID     string              `json:"paperId"`
	Title       string              `json:"title"`
	Year        int                 `json:"year"`
	Venue       string              `json:"venue"`
	URL         string              `json:"url"`
	Authors     []SemanticAuthor    `json:"authors"`
	ExternalIDs SemanticExternalIDs `json:"externalIds"`
}

// SemanticAuthor holds one author reference.
type SemanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

// SemanticExternalIDs carries the cross-source identifiers the resolver
// prefers over Semantic Scholar's own metadata.
type SemanticExternalIDs struct {
	DOI   string `json:"DOI"`
	ArXiv string `json:"ArXiv"`
}

// SemanticScholar queries the Semantic Scholar Graph API.
type SemanticScholar struct {
	Client *http.Client
	Config types.HTTPConfig
	APIKey string
	Cache  *Cache
}

// Search performs a paper search restricted to the fields the resolver
// needs. Failures yield an empty slice.
func (s *SemanticScholar) Search(ctx context.Context, title string, limit int) []SemanticPaper {
	key := cacheKey("semantic.search", title, fmt.Sprintf("%d", limit))
	if v, ok := s.Cache.get(key); ok {
		return v.([]SemanticPaper)
	}

	params := url.Values{
		"query":  {title},
		"limit":  {fmt.Sprintf("%d", limit)},
		"fields": {semanticFields},
	}

	header := httputil.Header(s.Config.UserAgent)
	if s.APIKey != "" {
		header.Set("x-api-key", s.APIKey)
	}

	var body struct {
		Data []SemanticPaper `json:"data"`
	}
	reqURL := semanticAPIBase + "?" + params.Encode()
	var papers []SemanticPaper
	if err := httputil.GetJSON(ctx, s.Client, reqURL, header, &body); err == nil {
		papers = body.Data
	}
	s.Cache.put(key, papers)
	return papers
}
