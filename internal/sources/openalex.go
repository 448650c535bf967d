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

// openAlexAPIBase is the OpenAlex Works endpoint. Declared as a var so
// tests can substitute an httptest server.
var openAlexAPIBase = "https://api.openalex.org/works"

// OpenAlexWork is one result from the OpenAlex Works search.
type OpenAlexWork struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// DOI is in URL form, e.g. "https://doi.org/10.1234/abcd".
	DOI string `json:"doi"`
}

// OpenAlex queries the OpenAlex Works search API.
type OpenAlex struct {
	Client *http.Client
	Config types.HTTPConfig
	// Contact is sent as the mailto parameter for polite pool access.
	Contact string
	Cache   *Cache
}

// Search performs a free-text search over works. Failures yield an empty
// slice.
func (o *OpenAlex) Search(ctx context.Context, title string, rows int) []OpenAlexWork {
	key := cacheKey("openalex.search", title, fmt.Sprintf("%d", rows))
	if v, ok := o.Cache.get(key); ok {
		return v.([]OpenAlexWork)
	}

	params := url.Values{
		"search":   {title},
		"per-page": {fmt.Sprintf("%d", rows)},
	}
	if o.Contact != "" {
		params.Set("mailto", o.Contact)
	}

	var body struct {
		Results []OpenAlexWork `json:"results"`
	}
	reqURL := openAlexAPIBase + "?" + params.Encode()
	var results []OpenAlexWork
	if err := httputil.GetJSON(ctx, o.Client, reqURL, httputil.Header(o.Config.UserAgent), &body); err == nil {
		results = body.Results
	}
	o.Cache.put(key, results)
	return results
}
