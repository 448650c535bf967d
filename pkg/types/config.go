// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by the source adapters.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout (default 15 s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with outbound requests
	// (e.g. "bibgen/0.1 (mailto:user@example.com)").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// Threshold bounds for fuzzy title matching. The resolver accepts a match
// only when its token-set score reaches the configured threshold; later
// cascade tiers loosen it (see resolve package).
const (
	MinThreshold     = 60
	MaxThreshold     = 95
	DefaultThreshold = 85
)

// ResolveConfig holds settings for the resolution cascade.
type ResolveConfig struct {
	HTTPConfig `yaml:",inline"`

	// Threshold is the fuzzy match acceptance threshold (60-95, default 85).
	Threshold int `json:"threshold" yaml:"threshold"`

	// Contact is an email address identifying the caller to the polite
	// pools of OpenAlex and Semantic Scholar.
	Contact string `json:"contact,omitempty" yaml:"contact,omitempty"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// CacheTTL is the lifetime of cached adapter responses (default 24 h).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`

	// ArxivResults is the result count for arXiv title queries (default 12).
	ArxivResults int `json:"arxiv_results" yaml:"arxiv_results"`

	// SearchRows is the result count for the broader-recall sources
	// (Semantic Scholar, OpenAlex, Crossref title search; default 10).
	SearchRows int `json:"search_rows" yaml:"search_rows"`
}

// DefaultResolveConfig returns a ResolveConfig with all defaults applied.
func DefaultResolveConfig() ResolveConfig {
	return ResolveConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   15 * time.Second,
			UserAgent: "bibgen/0.1",
		},
		Threshold:    DefaultThreshold,
		CacheTTL:     24 * time.Hour,
		ArxivResults: 12,
		SearchRows:   10,
	}
}
