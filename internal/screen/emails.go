// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package screen

import (
	"regexp"
	"sort"
	"strings"
)

// Affiliation blocks bury addresses in several shapes: bare, behind an
// "Email:"/"E-mail:" label, or wrapped in brackets, parentheses, or angle
// brackets. Each pattern is applied independently; the result is a union.
var emailPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`),
	regexp.MustCompile(`[Ee]mail:\s*([\w.-]+@[\w.-]+\.\w+)`),
	regexp.MustCompile(`[Ee]-mail:\s*([\w.-]+@[\w.-]+\.\w+)`),
	regexp.MustCompile(`\[([\w.-]+@[\w.-]+\.\w+)\]`),
	regexp.MustCompile(`\(([\w.-]+@[\w.-]+\.\w+)\)`),
	regexp.MustCompile(`<([\w.-]+@[\w.-]+\.\w+)>`),
}

var strictEmail = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

const emailTrimCutset = ".,()<>[]{}"

// EmailSet is a deduplicating collector for harvested addresses.
type EmailSet map[string]struct{}

// NewEmailSet returns an empty set.
func NewEmailSet() EmailSet { return make(EmailSet) }

// Add harvests every address-shaped substring of text into the set.
// Candidates are stripped of surrounding punctuation, lowercased, and
// re-validated before being accepted; anything that fails the strict shape
// after stripping is discarded.
func (s EmailSet) Add(text string) {
	if text == "" {
		return
	}
	for _, pattern := range emailPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			candidate := match[0]
			if len(match) > 1 {
				candidate = match[1]
			}
			candidate = strings.ToLower(strings.Trim(candidate, emailTrimCutset))
			if strictEmail.MatchString(candidate) {
				s[candidate] = struct{}{}
			}
		}
	}
}

// Sorted returns the set as a sorted slice, nil when empty.
func (s EmailSet) Sorted() []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// HarvestEmails is the one-shot form of EmailSet: it scans text and returns
// the sorted set of valid addresses found.
func HarvestEmails(text string) []string {
	s := NewEmailSet()
	s.Add(text)
	return s.Sorted()
}
