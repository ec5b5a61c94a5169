// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/pdiddy/pubmed-screen/pkg/types"
)

func testCfg() types.PubMedConfig {
	return types.PubMedConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		Tool:       "pubmed-screen-test",
		Email:      "tester@example.com",
		MaxResults: 20,
	}
}

const esearchBody = `{
	"esearchresult": {
		"count": "3",
		"idlist": ["11111111", "22222222", "33333333"]
	}
}`

const efetchBody = `<?xml version="1.0" ?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>11111111</PMID>
      <Article>
        <Journal>
          <Title>Journal of Testing</Title>
          <JournalIssue>
            <PubDate>
              <Year>2021</Year>
              <Month>Apr</Month>
              <Day>7</Day>
            </PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle>A qualifying article</ArticleTitle>
        <AuthorList>
          <Author>
            <LastName>Doe</LastName>
            <ForeName>Jane</ForeName>
            <AffiliationInfo>
              <Affiliation>XYZ Therapeutics Inc. jane@xyz.com</Affiliation>
            </AffiliationInfo>
            <AffiliationInfo>
              <Affiliation>Department of Biology, Somewhere University</Affiliation>
            </AffiliationInfo>
          </Author>
          <Author>
            <LastName>Consortium</LastName>
          </Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>22222222</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate>
              <MedlineDate>Summer 2020</MedlineDate>
            </PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle>A medline-dated article</ArticleTitle>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func TestSearch(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(esearchBody))
	}))
	defer server.Close()

	oldBase := esearchAPIBase
	esearchAPIBase = server.URL
	defer func() { esearchAPIBase = oldBase }()

	cfg := testCfg()
	cfg.APIKey = "nk_test"
	client := NewClient(cfg)

	pmids, err := client.Search(context.Background(), "cancer immunotherapy")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if want := []string{"11111111", "22222222", "33333333"}; !reflect.DeepEqual(pmids, want) {
		t.Errorf("Search() = %v, want %v", pmids, want)
	}

	// Usage-policy identification must ride along on every request.
	for param, want := range map[string]string{
		"db":      "pubmed",
		"term":    "cancer immunotherapy",
		"retmax":  "20",
		"retmode": "json",
		"tool":    "pubmed-screen-test",
		"email":   "tester@example.com",
		"api_key": "nk_test",
	} {
		if got := gotQuery.Get(param); got != want {
			t.Errorf("query param %s = %q, want %q", param, got, want)
		}
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	client := NewClient(testCfg())
	if _, err := client.Search(context.Background(), "   "); err == nil {
		t.Error("Search() with blank query: expected error, got nil")
	}
}

func TestSearchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusBadGateway)
	}))
	defer server.Close()

	oldBase := esearchAPIBase
	esearchAPIBase = server.URL
	defer func() { esearchAPIBase = oldBase }()

	client := NewClient(testCfg())
	if _, err := client.Search(context.Background(), "anything"); err == nil {
		t.Error("Search() on HTTP 502: expected error, got nil")
	}
}

func TestFetch(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "text/xml")
		w.Write([]byte(efetchBody))
	}))
	defer server.Close()

	oldBase := efetchAPIBase
	efetchAPIBase = server.URL
	defer func() { efetchAPIBase = oldBase }()

	client := NewClient(testCfg())
	articles, err := client.Fetch(context.Background(), []string{"11111111", "22222222"})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if got := gotQuery.Get("id"); got != "11111111,22222222" {
		t.Errorf("id param = %q, want comma-joined PMIDs", got)
	}
	if got := gotQuery.Get("retmode"); got != "xml" {
		t.Errorf("retmode param = %q, want %q", got, "xml")
	}

	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want 2", len(articles))
	}

	first := articles[0]
	if first.PMID != "11111111" {
		t.Errorf("PMID = %q, want %q", first.PMID, "11111111")
	}
	if first.Title != "A qualifying article" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Journal != "Journal of Testing" {
		t.Errorf("Journal = %q", first.Journal)
	}
	wantDate := types.PubDate{Year: "2021", Month: "Apr", Day: "7"}
	if first.PubDate != wantDate {
		t.Errorf("PubDate = %+v, want %+v", first.PubDate, wantDate)
	}
	if len(first.Authors) != 2 {
		t.Fatalf("len(Authors) = %d, want 2", len(first.Authors))
	}
	if got := first.Authors[0].FullName(); got != "Jane Doe" {
		t.Errorf("author name = %q, want %q", got, "Jane Doe")
	}
	if got := len(first.Authors[0].Affiliations); got != 2 {
		t.Errorf("len(Affiliations) = %d, want 2", got)
	}
	// Collective-name authors arrive without a ForeName; the mapping keeps
	// them and the screening stage decides what to skip.
	if got := first.Authors[1].ForeName; got != "" {
		t.Errorf("collective author ForeName = %q, want empty", got)
	}

	second := articles[1]
	if second.PubDate.MedlineDate != "Summer 2020" {
		t.Errorf("MedlineDate = %q, want %q", second.PubDate.MedlineDate, "Summer 2020")
	}
}

func TestFetchNoPMIDs(t *testing.T) {
	// No network call should happen; a reachable server is deliberately absent.
	oldBase := efetchAPIBase
	efetchAPIBase = "http://127.0.0.1:0"
	defer func() { efetchAPIBase = oldBase }()

	client := NewClient(testCfg())
	articles, err := client.Fetch(context.Background(), nil)
	if err != nil {
		t.Fatalf("Fetch(nil) error: %v", err)
	}
	if articles != nil {
		t.Errorf("Fetch(nil) = %v, want nil", articles)
	}
}

func TestFetchMalformedXML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<PubmedArticleSet><unclosed"))
	}))
	defer server.Close()

	oldBase := efetchAPIBase
	efetchAPIBase = server.URL
	defer func() { efetchAPIBase = oldBase }()

	client := NewClient(testCfg())
	if _, err := client.Fetch(context.Background(), []string{"1"}); err == nil {
		t.Error("Fetch() on malformed XML: expected error, got nil")
	}
}
