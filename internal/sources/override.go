// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

// OverrideAPIBases points every source endpoint at base (an httptest
// server URL) and returns a function restoring the originals. Only tests
// call this; the handler can dispatch on the path prefixes below.
func OverrideAPIBases(base string) func() {
	origArxiv := arxivAPIBase
	origCrossref := crossrefAPIBase
	origOpenAlex := openAlexAPIBase
	origSemantic := semanticAPIBase

	arxivAPIBase = base + "/arxiv/api/query"
	crossrefAPIBase = base + "/crossref"
	openAlexAPIBase = base + "/openalex/works"
	semanticAPIBase = base + "/semantic/search"

	return func() {
		arxivAPIBase = origArxiv
		crossrefAPIBase = origCrossref
		openAlexAPIBase = origOpenAlex
		semanticAPIBase = origSemantic
	}
}
