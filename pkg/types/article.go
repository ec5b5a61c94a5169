// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pubmed-screen pipeline.
package types

// PubDate is the publication date of an article as PubMed reports it:
// either structured Year/Month/Day parts (Month may be a number or an
// English month name) or a free-text MedlineDate fallback such as
// "Summer 2020" or "1998 Dec-1999 Jan".
type PubDate struct {
	Year        string `json:"year,omitempty" yaml:"year,omitempty"`
	Month       string `json:"month,omitempty" yaml:"month,omitempty"`
	Day         string `json:"day,omitempty" yaml:"day,omitempty"`
	MedlineDate string `json:"medline_date,omitempty" yaml:"medline_date,omitempty"`
}

// Author is one entry of an article's author list. An author with a
// missing ForeName or LastName is skipped during screening.
type Author struct {
	ForeName     string   `json:"forename" yaml:"forename"`
	LastName     string   `json:"lastname" yaml:"lastname"`
	Affiliations []string `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`
}

// FullName returns "ForeName LastName" with surrounding whitespace removed.
func (a Author) FullName() string {
	switch {
	case a.ForeName == "":
		return a.LastName
	case a.LastName == "":
		return a.ForeName
	default:
		return a.ForeName + " " + a.LastName
	}
}

// RawArticle is the fetcher's view of one PubMed record: the subset of the
// efetch payload the screening stage reads. It is never mutated after the
// client returns it.
type RawArticle struct {
	// PMID is the PubMed identifier.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// Journal is the journal title, kept for run metadata.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// PubDate is the structured or free-text publication date.
	PubDate PubDate `json:"pub_date" yaml:"pub_date"`

	// ContactEmail is the article-level electronic mail address, present
	// on a minority of records; author affiliations carry most emails.
	ContactEmail string `json:"contact_email,omitempty" yaml:"contact_email,omitempty"`

	// Authors lists the article authors in source order.
	Authors []Author `json:"authors,omitempty" yaml:"authors,omitempty"`
}

// ScreenedArticle is a qualifying article: at least one author was
// classified as company-affiliated. Both NonAcademicAuthors and
// CompanyAffiliations are non-empty on every value the screener emits.
type ScreenedArticle struct {
	// PMID is the PubMed identifier.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// PubDate is the normalized YYYY-MM-DD publication date.
	PubDate string `json:"pub_date" yaml:"pub_date"`

	// NonAcademicAuthors lists company-affiliated author names in author
	// order. Duplicate names are kept.
	NonAcademicAuthors []string `json:"non_academic_authors" yaml:"non_academic_authors"`

	// CompanyAffiliations is the deduplicated set of affiliation strings
	// that classified as company, in first-seen order.
	CompanyAffiliations []string `json:"company_affiliations" yaml:"company_affiliations"`

	// Emails is the deduplicated set of harvested contact emails, sorted.
	Emails []string `json:"emails,omitempty" yaml:"emails,omitempty"`
}
