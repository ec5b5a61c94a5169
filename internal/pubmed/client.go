// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed queries the NCBI E-utilities API: esearch resolves a query
// to a list of PMIDs, efetch resolves PMIDs to article records.
package pubmed

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/pubmed-screen/pkg/types"
)

// API endpoints. Declared as vars so tests can substitute httptest servers.
var (
	esearchAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	efetchAPIBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
)

// Client talks to the E-utilities API.
type Client struct {
	HTTP *http.Client
	Cfg  types.PubMedConfig
}

// NewClient returns a Client with a timeout-configured http.Client.
func NewClient(cfg types.PubMedConfig) *Client {
	return &Client{
		HTTP: &http.Client{Timeout: cfg.Timeout},
		Cfg:  cfg,
	}
}

// policyParams returns the identification parameters the E-utilities usage
// policy asks every caller to send.
func (c *Client) policyParams() url.Values {
	params := url.Values{"db": {"pubmed"}}
	if c.Cfg.Tool != "" {
		params.Set("tool", c.Cfg.Tool)
	}
	if c.Cfg.Email != "" {
		params.Set("email", c.Cfg.Email)
	}
	if c.Cfg.APIKey != "" {
		params.Set("api_key", c.Cfg.APIKey)
	}
	return params
}

func (c *Client) get(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Cfg.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("E-utilities request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("E-utilities returned HTTP %d", resp.StatusCode)
	}
	return resp, nil
}

// esearch JSON response shape.
type esearchResponse struct {
	Result struct {
		Count  string   `json:"count"`
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// Search resolves a free-text query to at most MaxResults PMIDs.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty PubMed query")
	}

	maxResults := c.Cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 100
	}

	params := c.policyParams()
	params.Set("term", query)
	params.Set("retmax", fmt.Sprintf("%d", maxResults))
	params.Set("retmode", "json")

	resp, err := c.get(ctx, esearchAPIBase+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var sr esearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}
	return sr.Result.IDList, nil
}

// efetch XML structures, following the PubMed DTD element names.
type pubmedArticleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID    string         `xml:"PMID"`
	Article articleElement `xml:"Article"`
}

type articleElement struct {
	Title        string       `xml:"ArticleTitle"`
	Journal      journal      `xml:"Journal"`
	ContactEmail string       `xml:"ElectronicMailAddress"`
	Authors      []authorElem `xml:"AuthorList>Author"`
}

type journal struct {
	Title string  `xml:"Title"`
	Issue pubDate `xml:"JournalIssue>PubDate"`
}

type pubDate struct {
	Year        string `xml:"Year"`
	Month       string `xml:"Month"`
	Day         string `xml:"Day"`
	MedlineDate string `xml:"MedlineDate"`
}

type authorElem struct {
	LastName     string   `xml:"LastName"`
	ForeName     string   `xml:"ForeName"`
	Affiliations []string `xml:"AffiliationInfo>Affiliation"`
}

// Fetch resolves PMIDs to RawArticle records via efetch. An empty PMID list
// is not an error; it returns no articles without a network call.
func (c *Client) Fetch(ctx context.Context, pmids []string) ([]types.RawArticle, error) {
	if len(pmids) == 0 {
		return nil, nil
	}

	params := c.policyParams()
	params.Set("id", strings.Join(pmids, ","))
	params.Set("retmode", "xml")
	params.Set("rettype", "abstract")

	resp, err := c.get(ctx, efetchAPIBase+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var set pubmedArticleSet
	if err := xml.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing efetch response: %w", err)
	}

	articles := make([]types.RawArticle, 0, len(set.Articles))
	for _, pa := range set.Articles {
		articles = append(articles, toRawArticle(pa))
	}
	return articles, nil
}

// toRawArticle maps one decoded efetch record onto the screening stage's view.
func toRawArticle(pa pubmedArticle) types.RawArticle {
	art := pa.Citation.Article
	raw := types.RawArticle{
		PMID:         strings.TrimSpace(pa.Citation.PMID),
		Title:        strings.TrimSpace(art.Title),
		Journal:      strings.TrimSpace(art.Journal.Title),
		ContactEmail: strings.TrimSpace(art.ContactEmail),
		PubDate: types.PubDate{
			Year:        art.Journal.Issue.Year,
			Month:       art.Journal.Issue.Month,
			Day:         art.Journal.Issue.Day,
			MedlineDate: art.Journal.Issue.MedlineDate,
		},
	}
	for _, a := range art.Authors {
		raw.Authors = append(raw.Authors, types.Author{
			ForeName:     strings.TrimSpace(a.ForeName),
			LastName:     strings.TrimSpace(a.LastName),
			Affiliations: a.Affiliations,
		})
	}
	return raw
}
