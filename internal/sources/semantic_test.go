// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleSemanticSearch = `{
  "total": 2,
  "data": [
    {
      "paperId": "abc123",
      "title": "Attention Is All You Need",
      "year": 2017,
      "venue": "NeurIPS",
      "url": "https://www.semanticscholar.org/paper/abc123",
      "authors": [{"authorId": "1", "name": "Ashish Vaswani"}],
      "externalIds": {"DOI": "10.5555/3295222.3295349", "ArXiv": "1706.03762"}
    },
    {
      "paperId": "def456",
      "title": "A Paper Without External IDs",
      "year": 2020,
      "authors": [],
      "externalIds": {}
    }
  ]
}`

func TestSemanticScholarSearch(t *testing.T) {
	var gotQuery map[string][]string
	var gotAPIKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotAPIKey = r.Header.Get("x-api-key")
		fmt.Fprint(w, sampleSemanticSearch)
	}))
	defer srv.Close()

	orig := semanticAPIBase
	semanticAPIBase = srv.URL
	defer func() { semanticAPIBase = orig }()

	s := &SemanticScholar{
		Client: srv.Client(),
		Config: testHTTPConfig(),
		APIKey: "sk_test",
		Cache:  NewCache(0),
	}
	papers := s.Search(context.Background(), "attention is all you need", 10)

	if got := gotQuery["fields"]; len(got) != 1 || got[0] != "title,year,authors,venue,externalIds,url" {
		t.Errorf("fields param = %v", got)
	}
	if got := gotQuery["limit"]; len(got) != 1 || got[0] != "10" {
		t.Errorf("limit param = %v, want 10", got)
	}
	if gotAPIKey != "sk_test" {
		t.Errorf("x-api-key = %q, want sk_test", gotAPIKey)
	}

	if len(papers) != 2 {
		t.Fatalf("len(papers) = %d, want 2", len(papers))
	}
	if papers[0].ExternalIDs.ArXiv != "1706.03762" || papers[0].ExternalIDs.DOI != "10.5555/3295222.3295349" {
		t.Errorf("ExternalIDs = %+v", papers[0].ExternalIDs)
	}
	if papers[1].ExternalIDs.ArXiv != "" || papers[1].ExternalIDs.DOI != "" {
		t.Errorf("empty externalIds should decode to empty strings, got %+v", papers[1].ExternalIDs)
	}
}

func TestSemanticScholarFailureContainment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	orig := semanticAPIBase
	semanticAPIBase = srv.URL
	defer func() { semanticAPIBase = orig }()

	s := &SemanticScholar{Client: srv.Client(), Config: testHTTPConfig(), Cache: NewCache(0)}
	if papers := s.Search(context.Background(), "anything", 10); len(papers) != 0 {
		t.Errorf("Search() = %d papers, want none on HTTP 429", len(papers))
	}
}

func TestSemanticScholarCaching(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, sampleSemanticSearch)
	}))
	defer srv.Close()

	orig := semanticAPIBase
	semanticAPIBase = srv.URL
	defer func() { semanticAPIBase = orig }()

	s := &SemanticScholar{Client: srv.Client(), Config: testHTTPConfig(), Cache: NewCache(0)}
	s.Search(context.Background(), "same query", 10)
	s.Search(context.Background(), "same query", 10)
	if hits != 1 {
		t.Errorf("server hits = %d, want 1", hits)
	}

	// A different limit is a different cache key.
	s.Search(context.Background(), "same query", 5)
	if hits != 2 {
		t.Errorf("server hits = %d, want 2 after different limit", hits)
	}
}
