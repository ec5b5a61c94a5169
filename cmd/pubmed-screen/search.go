package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-screen/internal/pubmed"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "List PMIDs matching a query without screening them",
	Long: `Search runs only the esearch step and prints the matching PubMed
identifiers, one per line, without fetching or screening the articles.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringP("email", "e", "", "contact email sent to NCBI per the E-utilities usage policy")
	searchCmd.Flags().Int("max-results", 0, "maximum number of identifiers to return (default 100)")
	searchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	searchCmd.Flags().Bool("json", false, "output identifiers as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	client := pubmed.NewClient(pubmedConfig(cmd))

	pmids, err := client.Search(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("PubMed search: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(pmids)
	}

	if len(pmids) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	for _, pmid := range pmids {
		fmt.Println(pmid)
	}
	fmt.Fprintf(os.Stderr, "%d identifiers\n", len(pmids))
	return nil
}
