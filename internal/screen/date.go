// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package screen holds the screening heuristics: publication-date
// normalization, email harvesting, affiliation classification, and the
// per-article extractor that ties them together.
package screen

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/pdiddy/pubmed-screen/pkg/types"
)

// DateUnknown is the sentinel for an unparseable publication date.
// Articles carrying it are dropped during screening.
const DateUnknown = "Unknown"

var yearPattern = regexp.MustCompile(`\d{4}`)

// NormalizeDate converts a PubMed publication date to YYYY-MM-DD. Structured
// Year/Month/Day parts win; a free-text MedlineDate contributes only its
// first four-digit year ("Summer 2020" becomes "2020-01-01"). It returns
// DateUnknown when no year can be found, never an error.
func NormalizeDate(d types.PubDate) string {
	if d.Year != "" {
		return composeDate(d.Year, d.Month, d.Day)
	}
	if d.MedlineDate != "" {
		if year := yearPattern.FindString(d.MedlineDate); year != "" {
			return year + "-01-01"
		}
	}
	return DateUnknown
}

func composeDate(year, month, day string) string {
	if isAlphabetic(month) {
		// Full English month name; anything unrecognized falls back to
		// January rather than discarding the whole date.
		if t, err := time.Parse("January", month); err == nil {
			month = fmt.Sprintf("%02d", int(t.Month()))
		} else {
			month = "01"
		}
	}
	return fmt.Sprintf("%s-%s-%s", year, zeroPad(month), zeroPad(day))
}

// zeroPad left-pads a numeric date part to two digits, defaulting an empty
// or non-numeric part to "01".
func zeroPad(part string) string {
	n, err := strconv.Atoi(part)
	if err != nil {
		return "01"
	}
	return fmt.Sprintf("%02d", n)
}

func isAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
