// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report serializes screened articles to CSV and writes a YAML
// metadata sidecar describing the run.
package report

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-screen/internal/screen"
	"github.com/pdiddy/pubmed-screen/pkg/types"
)

// Columns is the fixed CSV schema, header order included.
var Columns = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"Non-academic Authors",
	"Company Affiliations",
	"Corresponding Author Email",
}

// NoEmailMarker fills the email column when no address was harvested. The
// email column is the only one an empty value does not disqualify a row.
const NoEmailMarker = "Not available"

const fieldSeparator = "; "

// Row flattens a ScreenedArticle into the six CSV columns.
func Row(a types.ScreenedArticle) []string {
	email := strings.Join(a.Emails, fieldSeparator)
	if email == "" {
		email = NoEmailMarker
	}
	return []string{
		a.PMID,
		a.Title,
		a.PubDate,
		strings.Join(a.NonAcademicAuthors, fieldSeparator),
		strings.Join(a.CompanyAffiliations, fieldSeparator),
		email,
	}
}

// complete reports whether every column except the email is present and not
// the unknown-date sentinel.
func complete(a types.ScreenedArticle) bool {
	for _, field := range []string{a.PMID, a.Title, a.PubDate} {
		if field == "" || field == screen.DateUnknown {
			return false
		}
	}
	return len(a.NonAcademicAuthors) > 0 && len(a.CompanyAffiliations) > 0
}

// Filter drops incomplete articles.
func Filter(articles []types.ScreenedArticle) []types.ScreenedArticle {
	var valid []types.ScreenedArticle
	for _, a := range articles {
		if complete(a) {
			valid = append(valid, a)
		}
	}
	return valid
}

// Write filters the articles and writes them as a UTF-8 CSV with a header
// row. When nothing survives the filter it logs a warning and writes no
// file; that is not an error. The returned count is the number of rows
// written.
func Write(path string, articles []types.ScreenedArticle, log *slog.Logger) (int, error) {
	valid := Filter(articles)
	if len(valid) == 0 {
		log.Warn("no valid articles to write", "path", path)
		return 0, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}
	for _, a := range valid {
		if err := w.Write(Row(a)); err != nil {
			return 0, fmt.Errorf("writing row for PMID %s: %w", a.PMID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("flushing report: %w", err)
	}

	log.Info("report written", "path", path, "rows", len(valid))
	return len(valid), nil
}

// RunMetadata summarizes one screening run for the YAML sidecar.
type RunMetadata struct {
	Query     string        `yaml:"query"`
	Started   time.Time     `yaml:"started"`
	Duration  time.Duration `yaml:"duration"`
	Fetched   int           `yaml:"fetched"`
	Qualified int           `yaml:"qualified"`
	Output    string        `yaml:"output"`
}

// WriteMetadata writes the run summary YAML to path.
func WriteMetadata(path string, meta RunMetadata) error {
	data, err := yaml.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("marshaling run metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run metadata: %w", err)
	}
	return nil
}
