package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-screen/internal/pubmed"
	"github.com/pdiddy/pubmed-screen/internal/report"
	"github.com/pdiddy/pubmed-screen/internal/screen"
	"github.com/pdiddy/pubmed-screen/internal/store"
	"github.com/pdiddy/pubmed-screen/pkg/types"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultUserAgent  = "pubmed-screen/0.1"
	defaultTool       = "pubmed-screen"
	defaultMaxResults = 100
	defaultOutput     = "pubmed_results.csv"
)

var screenCmd = &cobra.Command{
	Use:   "screen <query>",
	Short: "Screen PubMed search results for company-affiliated authors",
	Long: `Screen runs the full pipeline: esearch resolves the query to PMIDs, efetch
retrieves the article records, each article is screened in parallel for
company-affiliated authors, and the qualifying articles are written to a CSV
report with a YAML run-metadata sidecar.

Data-quality problems never fail the run: fetch errors, malformed records,
and unparseable dates are logged and the affected articles dropped. The
command exits 0 whether or not any article qualified.`,
	Args: cobra.ExactArgs(1),
	RunE: runScreen,
}

func init() {
	screenCmd.Flags().StringP("file", "f", defaultOutput, "CSV file to write results to")
	screenCmd.Flags().StringP("email", "e", "", "contact email sent to NCBI per the E-utilities usage policy")
	screenCmd.Flags().Int("max-results", 0, "maximum number of articles to fetch (default 100)")
	screenCmd.Flags().Int("workers", 0, "extraction worker pool size (default 4)")
	screenCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	screenCmd.Flags().Bool("save", false, "save the run to the history database")

	rootCmd.AddCommand(screenCmd)
}

func pubmedConfig(cmd *cobra.Command) types.PubMedConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("pubmed.timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults == 0 {
		maxResults = viper.GetInt("pubmed.max_results")
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	email, _ := cmd.Flags().GetString("email")

	return types.PubMedConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Tool:       defaultTool,
		Email:      secretDefault("ncbi-email", email),
		APIKey:     secretDefault("ncbi-api-key", viper.GetString("pubmed.api_key")),
		MaxResults: maxResults,
	}
}

func runScreen(cmd *cobra.Command, args []string) error {
	query := args[0]
	outPath, _ := cmd.Flags().GetString("file")
	workers, _ := cmd.Flags().GetInt("workers")
	if workers == 0 {
		workers = viper.GetInt("screen.workers")
	}
	save, _ := cmd.Flags().GetBool("save")

	cfg := pubmedConfig(cmd)
	client := pubmed.NewClient(cfg)
	ctx := context.Background()

	logger.Info("starting PubMed search", "query", query, "max_results", cfg.MaxResults)
	started := time.Now()

	// A failed fetch degrades to zero articles, not a non-zero exit.
	var articles []types.RawArticle
	pmids, err := client.Search(ctx, query)
	if err != nil {
		logger.Error("PubMed search failed", "error", err)
	} else if len(pmids) == 0 {
		logger.Info("no results found for the query")
	} else {
		logger.Info("found articles, fetching details", "count", len(pmids))
		articles, err = client.Fetch(ctx, pmids)
		if err != nil {
			logger.Error("fetching article details failed", "error", err)
		}
	}

	screened := screen.Screen(articles, types.ScreenConfig{Workers: workers}, logger)

	rows, err := report.Write(outPath, screened, logger)
	if err != nil {
		logger.Error("writing report failed", "error", err)
	}
	if rows > 0 {
		meta := report.RunMetadata{
			Query:     query,
			Started:   started.UTC(),
			Duration:  time.Since(started).Round(time.Millisecond),
			Fetched:   len(articles),
			Qualified: rows,
			Output:    outPath,
		}
		if err := report.WriteMetadata(outPath+".meta.yaml", meta); err != nil {
			logger.Warn("writing run metadata failed", "error", err)
		}
	}

	if save {
		if err := saveRun(query, screened); err != nil {
			logger.Error("saving run failed", "error", err)
		}
	}

	return nil
}

func saveRun(query string, screened []types.ScreenedArticle) error {
	s, err := store.NewStore(storeConfig())
	if err != nil {
		return err
	}
	defer s.Close()

	runID, err := s.SaveRun(query, screened)
	if err != nil {
		return err
	}
	logger.Info("run saved", "run_id", runID, "articles", len(screened))
	return nil
}

func storeConfig() types.StoreConfig {
	return types.StoreConfig{
		DBPath:     viper.GetString("store.db_path"),
		MaxResults: viper.GetInt("store.max_results"),
	}
}
