// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package screen

import (
	"regexp"
	"strings"
)

// The two rule sets are checked in order and the ordering is load-bearing:
// any academic indicator short-circuits to "not a company", no matter what
// company-sounding terms also appear. "Pfizer Inc., Drug Discovery Division"
// is therefore academic ("division" wins), while a bare "XYZ Research Group"
// is a company ("research" with no academic keyword). Do not merge the sets
// into one pattern.
var academicIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:university|college|institut\w*|academy|school)\b`),
	regexp.MustCompile(`(?i)\b(?:hospital|medical center|clinic)\b`),
	regexp.MustCompile(`(?i)\b(?:research center|laboratory|department)\b`),
	regexp.MustCompile(`(?i)\b(?:faculty|division)\b`),
}

var companyIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:pharma|pharmaceutical|biotech|biotechnology)\b`),
	regexp.MustCompile(`(?i)\b(?:therapeutics|biosciences|biologics)\b`),
	regexp.MustCompile(`(?i)\b(?:inc|corp|ltd|gmbh|s\.a\.|llc|co\.|company|plc)\b`),
	regexp.MustCompile(`(?i)\b(?:drug discovery|r&d)\b`),
	regexp.MustCompile(`(?i)\b(?:labs|laboratories)\b`),
	regexp.MustCompile(`(?i)\b(?:research|development)\b`),
}

// IsCompanyAffiliation reports whether an affiliation string reads as a
// for-profit company rather than an academic or clinical institution.
// An empty string, or one matching neither rule set, is not a company.
func IsCompanyAffiliation(affiliation string) bool {
	clean := strings.Join(strings.Fields(strings.ToLower(affiliation)), " ")
	for _, indicator := range academicIndicators {
		if indicator.MatchString(clean) {
			return false
		}
	}
	for _, indicator := range companyIndicators {
		if indicator.MatchString(clean) {
			return true
		}
	}
	return false
}
