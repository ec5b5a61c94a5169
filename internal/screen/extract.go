// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package screen

import (
	"log/slog"

	"github.com/pdiddy/pubmed-screen/pkg/types"
)

// ExtractArticle screens one fetched record. It returns nil for any
// non-qualifying article: missing PMID or title, an unparseable publication
// date, or no company-affiliated author. A nil result is a normal outcome,
// not an error; the only observable failures are log lines.
func ExtractArticle(raw types.RawArticle, log *slog.Logger) (result *types.ScreenedArticle) {
	// Heuristics over remote free-text should never take the batch down.
	defer func() {
		if r := recover(); r != nil {
			log.Error("article extraction failed", "pmid", raw.PMID, "panic", r)
			result = nil
		}
	}()

	if raw.PMID == "" || raw.Title == "" {
		log.Debug("skipping article with missing identifier or title", "pmid", raw.PMID)
		return nil
	}

	pubDate := NormalizeDate(raw.PubDate)
	if pubDate == DateUnknown {
		log.Debug("skipping article with unparseable date", "pmid", raw.PMID)
		return nil
	}

	emails := NewEmailSet()
	emails.Add(raw.ContactEmail)

	var nonAcademicAuthors []string
	var companyAffiliations []string
	seenAffiliation := make(map[string]struct{})

	for _, author := range raw.Authors {
		if author.ForeName == "" || author.LastName == "" {
			continue
		}

		hasCompany := false
		for _, affiliation := range author.Affiliations {
			if affiliation == "" {
				continue
			}
			emails.Add(affiliation)
			if IsCompanyAffiliation(affiliation) {
				hasCompany = true
				if _, dup := seenAffiliation[affiliation]; !dup {
					seenAffiliation[affiliation] = struct{}{}
					companyAffiliations = append(companyAffiliations, affiliation)
				}
			}
		}

		if hasCompany {
			nonAcademicAuthors = append(nonAcademicAuthors, author.FullName())
		}
	}

	if len(nonAcademicAuthors) == 0 || len(companyAffiliations) == 0 {
		return nil
	}

	return &types.ScreenedArticle{
		PMID:                raw.PMID,
		Title:               raw.Title,
		PubDate:             pubDate,
		NonAcademicAuthors:  nonAcademicAuthors,
		CompanyAffiliations: companyAffiliations,
		Emails:              emails.Sorted(),
	}
}
