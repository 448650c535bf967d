// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls identifying signals out of unstructured citation
// text: DOIs, arXiv identifiers, and best-guess titles. It also builds
// citation keys and segments multi-entry pastes.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	// doiRe matches DOIs embedded in prose: "10.1145/1234567.1234568".
	doiRe = regexp.MustCompile(`(?i)\b10\.\d{4,9}/[-._;()/:A-Z0-9]+\b`)

	// arxivNewRe matches new-style arXiv IDs: "2110.14051", "2301.07041v2".
	arxivNewRe = regexp.MustCompile(`\b\d{4}\.\d{4,5}(?:v\d+)?\b`)

	// arxivOldRe matches old-style archive/number IDs: "hep-th/9901001v2".
	arxivOldRe = regexp.MustCompile(`(?i)\b[a-z\-]+/\d{7}(?:v\d+)?\b`)

	arxivNewFullRe = regexp.MustCompile(`^\d{4}\.\d{4,5}(?:v\d+)?$`)
	arxivOldFullRe = regexp.MustCompile(`(?i)^[a-z\-]+/\d{7}(?:v\d+)?$`)

	// arxivPrefixRe captures the token following an explicit "arXiv:" label.
	arxivPrefixRe = regexp.MustCompile(`(?i)arxiv\s*:\s*(\S+)`)

	// arxivURLRe captures the path component of an arxiv.org abs/pdf URL.
	arxivURLRe = regexp.MustCompile(`(?i)arxiv\.org/(?:abs|pdf)/([^\s?#]+)`)

	// enumMarkerRe matches leading reference-list numbering: "[1] " or "1. ".
	enumMarkerRe = regexp.MustCompile(`^\s*(?:\[\d+\]|\d+\.)\s*`)

	// arxivTailRe strips everything from the word "arxiv" onward.
	arxivTailRe = regexp.MustCompile(`(?is)\barxiv\b.*$`)

	urlRe = regexp.MustCompile(`https?://\S+`)

	// quotedRe captures a span between straight or curly quotes.
	quotedRe = regexp.MustCompile("[\"'“”‘’](.+?)[\"'“”‘’]")

	nonAlnumSpaceRe = regexp.MustCompile(`[^a-z0-9\s]`)
	nonAlnumRe      = regexp.MustCompile(`[^a-z0-9]`)
	spaceRe         = regexp.MustCompile(`\s+`)
)

// ExtractDOI returns the first DOI found in text, with trailing periods
// stripped, or "" if none is present.
func ExtractDOI(text string) string {
	m := doiRe.FindString(text)
	if m == "" {
		return ""
	}
	return strings.TrimRight(m, ".")
}

// ExtractArxivID returns the first arXiv identifier found in text, or "".
// It tries, in order: an explicit "arXiv:" prefix, an arxiv.org/abs or
// /pdf URL, a bare new-style ID, and a bare old-style ID.
func ExtractArxivID(text string) string {
	if text == "" {
		return ""
	}
	if m := arxivPrefixRe.FindStringSubmatch(text); m != nil {
		if id := cleanArxivCandidate(m[1]); id != "" {
			return id
		}
	}
	if m := arxivURLRe.FindStringSubmatch(text); m != nil {
		if id := cleanArxivCandidate(m[1]); id != "" {
			return id
		}
	}
	if m := arxivNewRe.FindString(text); m != "" {
		return m
	}
	return arxivOldRe.FindString(text)
}

// cleanArxivCandidate strips URL path noise from a candidate token and
// validates it against the identifier grammar. Returns "" when invalid.
func cleanArxivCandidate(cand string) string {
	cand = strings.ReplaceAll(cand, "abs/", "")
	cand = strings.ReplaceAll(cand, "pdf/", "")
	cand = strings.ReplaceAll(cand, ".pdf", "")
	cand = strings.TrimRight(strings.TrimSpace(cand), ".")
	if arxivNewFullRe.MatchString(cand) || arxivOldFullRe.MatchString(cand) {
		return cand
	}
	return ""
}

// GuessTitle extracts a title candidate from a messy citation string.
// Reference strings vary wildly in punctuation conventions; the cascade
// trades precision for coverage and always produces some candidate.
func GuessTitle(text string) string {
	if text == "" {
		return ""
	}
	t := strings.TrimSpace(text)
	t = enumMarkerRe.ReplaceAllString(t, "")
	t = strings.TrimSpace(arxivTailRe.ReplaceAllString(t, ""))
	t = strings.TrimSpace(urlRe.ReplaceAllString(t, ""))

	// A quoted span is the strongest signal.
	if m := quotedRe.FindStringSubmatch(t); m != nil && utf8.RuneCountInString(m[1]) >= 6 {
		return strings.TrimRight(strings.TrimSpace(m[1]), ".")
	}

	// Common pattern: "Authors. Title. Venue, Year." — take the longest
	// sentence-like chunk, unless it is too short to be a title.
	if parts := splitNonEmpty(t, ".;"); len(parts) > 0 {
		cand := longest(parts)
		if len(cand) > 15 {
			return strings.TrimRight(cand, ".")
		}
	}

	// Comma heuristic: the title is often the longest comma segment.
	if strings.Contains(t, ",") {
		if chunks := splitNonEmpty(t, ","); len(chunks) > 0 {
			return strings.TrimRight(longest(chunks), ".")
		}
	}

	return strings.TrimRight(t, ".")
}

// splitNonEmpty splits s on any of the runes in seps and drops empty chunks.
func splitNonEmpty(s, seps string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(seps, r)
	})
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// longest returns the first maximal-length element of parts.
func longest(parts []string) string {
	best := parts[0]
	for _, p := range parts[1:] {
		if len(p) > len(best) {
			best = p
		}
	}
	return best
}

// Normalize lowercases s, strips non-alphanumeric characters, and
// collapses whitespace. Shared by the fuzzy matcher and the key builder.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnumSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// CitationKey builds a BibTeX key of the form
// {firstAuthorLastName}{year}{firstTitleWord}, e.g. "doe2022a".
// Missing authors fall back to "paper", a missing year to "noyear", and a
// title with no normalized words to "work".
func CitationKey(authors []string, year int, title string) string {
	last := "paper"
	if len(authors) > 0 {
		if fields := strings.Fields(authors[0]); len(fields) > 0 {
			last = nonAlnumRe.ReplaceAllString(strings.ToLower(fields[len(fields)-1]), "")
			if last == "" {
				last = "paper"
			}
		}
	}
	y := "noyear"
	if year != 0 {
		y = strconv.Itoa(year)
	}
	first := "work"
	if words := strings.Fields(Normalize(title)); len(words) > 0 {
		first = words[0]
	}
	return last + y + first
}
