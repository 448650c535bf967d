// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleOpenAlexSearch = `{
  "results": [
    {
      "id": "https://openalex.org/W2741809807",
      "title": "Attention Is All You Need",
      "doi": "https://doi.org/10.5555/3295222.3295349"
    },
    {
      "id": "https://openalex.org/W3210812345",
      "title": "BERT: Pre-training of Deep Bidirectional Transformers",
      "doi": ""
    }
  ]
}`

func TestOpenAlexSearch(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, sampleOpenAlexSearch)
	}))
	defer srv.Close()

	orig := openAlexAPIBase
	openAlexAPIBase = srv.URL
	defer func() { openAlexAPIBase = orig }()

	o := &OpenAlex{
		Client:  srv.Client(),
		Config:  testHTTPConfig(),
		Contact: "user@example.com",
		Cache:   NewCache(0),
	}
	results := o.Search(context.Background(), "attention is all you need", 10)

	if got := gotQuery["search"]; len(got) != 1 || got[0] != "attention is all you need" {
		t.Errorf("search param = %v", got)
	}
	if got := gotQuery["per-page"]; len(got) != 1 || got[0] != "10" {
		t.Errorf("per-page param = %v, want 10", got)
	}
	if got := gotQuery["mailto"]; len(got) != 1 || got[0] != "user@example.com" {
		t.Errorf("mailto param = %v, want contact address", got)
	}

	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].DOI != "https://doi.org/10.5555/3295222.3295349" {
		t.Errorf("DOI = %q, want URL form preserved", results[0].DOI)
	}
	if results[1].DOI != "" {
		t.Errorf("second DOI = %q, want empty", results[1].DOI)
	}
}

func TestOpenAlexOmitsEmptyContact(t *testing.T) {
	var hasMailto bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hasMailto = r.URL.Query().Has("mailto")
		fmt.Fprint(w, `{"results": []}`)
	}))
	defer srv.Close()

	orig := openAlexAPIBase
	openAlexAPIBase = srv.URL
	defer func() { openAlexAPIBase = orig }()

	o := &OpenAlex{Client: srv.Client(), Config: testHTTPConfig(), Cache: NewCache(0)}
	o.Search(context.Background(), "anything", 5)
	if hasMailto {
		t.Error("mailto param should be omitted when no contact is configured")
	}
}

func TestOpenAlexFailureContainment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	orig := openAlexAPIBase
	openAlexAPIBase = srv.URL
	defer func() { openAlexAPIBase = orig }()

	o := &OpenAlex{Client: srv.Client(), Config: testHTTPConfig(), Cache: NewCache(0)}
	if results := o.Search(context.Background(), "anything", 10); len(results) != 0 {
		t.Errorf("Search() = %d results, want none on HTTP 503", len(results))
	}
}
