// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
)

// splitMarkerRe matches an enumeration marker that starts a new entry
// within a multi-entry paste: "[12] Foo" or "3. Bar".
var splitMarkerRe = regexp.MustCompile(`^\s*(?:\[\d+\]|\d+\.)\s+`)

// SplitEntries segments a multi-entry block of text into individual
// citation strings. Non-blank lines accumulate into the running entry; a
// line with a leading enumeration marker flushes the previous entry. When
// the input has several non-blank lines but no markers produced a split,
// it is treated as one entry per line instead.
func SplitEntries(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var entries []string
	var cur string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if splitMarkerRe.MatchString(line) && cur != "" {
			entries = append(entries, cur)
			cur = line
		} else if cur == "" {
			cur = line
		} else {
			cur = cur + " " + line
		}
	}
	if cur != "" {
		entries = append(entries, cur)
	}

	// Unnumbered line-delimited paste: one entry per line.
	if len(entries) == 1 && strings.Contains(raw, "\n") {
		var lines []string
		for _, line := range strings.Split(raw, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) >= 2 {
			return lines
		}
	}
	return entries
}
