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

// crossrefAPIBase is the Crossref REST endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org"

// CrossrefWork mirrors the fields of the Crossref "message" object that
// the format converters consume.
type CrossrefWork struct {
	Title           []string         `json:"title"`
	ContainerTitle  []string         `json:"container-title"`
	Author          []CrossrefAuthor `json:"author"`
	Type            string           `json:"type"`
	DOI             string           `json:"DOI"`
	URL             string           `json:"URL"`
	Volume          string           `json:"volume"`
	Issue           string           `json:"issue"`
	Page            string           `json:"page"`
	Publisher       string           `json:"publisher"`
	Issued          CrossrefDate     `json:"issued"`
	Created         CrossrefDate     `json:"created"`
	PublishedPrint  CrossrefDate     `json:"published-print"`
	PublishedOnline CrossrefDate     `json:"published-online"`
}

// CrossrefAuthor holds one contributor. Personal names carry Family and
// Given; organizations carry only Name.
type CrossrefAuthor struct {
	Family string `json:"family"`
	Given  string `json:"given"`
	Name   string `json:"name"`
}

// CrossrefDate is Crossref's date-parts representation: the first inner
// slice holds [year], [year, month], or [year, month, day].
type CrossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

// Crossref queries the Crossref REST API.
type Crossref struct {
	Client *http.Client
	Config types.HTTPConfig
	Cache  *Cache
}

// Work fetches one work by DOI. A miss or any request failure yields nil.
func (c *Crossref) Work(ctx context.Context, doi string) *CrossrefWork {
	key := cacheKey("crossref.work", doi)
	if v, ok := c.Cache.get(key); ok {
		return v.(*CrossrefWork)
	}

	var body struct {
		Message CrossrefWork `json:"message"`
	}
	reqURL := crossrefAPIBase + "/works/" + doi
	var work *CrossrefWork
	if err := httputil.GetJSON(ctx, c.Client, reqURL, httputil.Header(c.Config.UserAgent), &body); err == nil {
		work = &body.Message
	}
	c.Cache.put(key, work)
	return work
}

// SearchTitle performs a free-text title search over the works collection.
// Failures yield an empty slice.
func (c *Crossref) SearchTitle(ctx context.Context, title string, rows int) []CrossrefWork {
	key := cacheKey("crossref.searchtitle", title, fmt.Sprintf("%d", rows))
	if v, ok := c.Cache.get(key); ok {
		return v.([]CrossrefWork)
	}

	params := url.Values{
		"query.title": {title},
		"rows":        {fmt.Sprintf("%d", rows)},
	}
	var body struct {
		Message struct {
			Items []CrossrefWork `json:"items"`
		} `json:"message"`
	}
	reqURL := crossrefAPIBase + "/works?" + params.Encode()
	var items []CrossrefWork
	if err := httputil.GetJSON(ctx, c.Client, reqURL, httputil.Header(c.Config.UserAgent), &body); err == nil {
		items = body.Message.Items
	}
	c.Cache.put(key, items)
	return items
}
