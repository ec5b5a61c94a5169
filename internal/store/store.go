// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists screening runs to a SQLite database so past
// results can be listed and re-exported without re-querying PubMed.
package store

import (
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-screen/pkg/types"
)

const fieldSeparator = "; "

// Store manages the run-history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Run is one recorded screening run.
type Run struct {
	ID        int64     `json:"id" yaml:"id"`
	Query     string    `json:"query" yaml:"query"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Articles  int       `json:"articles" yaml:"articles"`
}

// NewStore opens or creates the database at cfg.DBPath and creates the
// schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "pubmed-screen.db"
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS articles (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			pmid TEXT NOT NULL,
			title TEXT NOT NULL,
			pub_date TEXT NOT NULL,
			non_academic_authors TEXT NOT NULL,
			company_affiliations TEXT NOT NULL,
			emails TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_run_id ON articles(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_pmid ON articles(pmid)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun records a completed screening run and its qualifying articles in
// one transaction, returning the new run ID.
func (s *Store) SaveRun(query string, articles []types.ScreenedArticle) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (query, created_at) VALUES (?, ?)`,
		query, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO articles
		(run_id, pmid, title, pub_date, non_academic_authors, company_affiliations, emails)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing article insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range articles {
		if _, err := stmt.Exec(
			runID, a.PMID, a.Title, a.PubDate,
			strings.Join(a.NonAcademicAuthors, fieldSeparator),
			strings.Join(a.CompanyAffiliations, fieldSeparator),
			strings.Join(a.Emails, fieldSeparator),
		); err != nil {
			return 0, fmt.Errorf("inserting article %s: %w", a.PMID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs with per-run article counts, newest
// first. A limit of 0 uses the configured default.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.Query(`
		SELECT r.id, r.query, r.created_at, COUNT(a.rowid)
		FROM runs r
		LEFT JOIN articles a ON a.run_id = r.id
		GROUP BY r.id
		ORDER BY r.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.Query, &created, &r.Articles); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, created); parseErr == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunArticles returns the stored articles of one run, rehydrated into
// ScreenedArticle values.
func (s *Store) RunArticles(runID int64) ([]types.ScreenedArticle, error) {
	rows, err := s.db.Query(`
		SELECT pmid, title, pub_date, non_academic_authors, company_affiliations, emails
		FROM articles WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying articles for run %d: %w", runID, err)
	}
	defer rows.Close()

	var articles []types.ScreenedArticle
	for rows.Next() {
		var a types.ScreenedArticle
		var authors, affiliations, emails string
		if err := rows.Scan(&a.PMID, &a.Title, &a.PubDate, &authors, &affiliations, &emails); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		a.NonAcademicAuthors = splitJoined(authors)
		a.CompanyAffiliations = splitJoined(affiliations)
		a.Emails = splitJoined(emails)
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// ExportYAML writes every stored run with its articles to w as YAML.
func (s *Store) ExportYAML(w io.Writer) error {
	runs, err := s.ListRuns(0)
	if err != nil {
		return err
	}

	type runExport struct {
		Run      Run                     `yaml:"run"`
		Articles []types.ScreenedArticle `yaml:"articles"`
	}

	var export []runExport
	for _, r := range runs {
		articles, err := s.RunArticles(r.ID)
		if err != nil {
			return err
		}
		export = append(export, runExport{Run: r, Articles: articles})
	}

	data, err := yaml.Marshal(export)
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

func splitJoined(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, fieldSeparator)
}
