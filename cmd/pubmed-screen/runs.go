package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-screen/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List saved screening runs",
	Long: `Runs lists screening runs previously saved with "screen --save", newest
first, with their article counts. With --export the whole history is written
to stdout as YAML.`,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().Int("limit", 0, "maximum number of runs to list (default 20)")
	runsCmd.Flags().Bool("json", false, "output runs as JSON")
	runsCmd.Flags().Bool("export", false, "export all runs and articles as YAML")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	s, err := store.NewStore(storeConfig())
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer s.Close()

	if export, _ := cmd.Flags().GetBool("export"); export {
		return s.ExportYAML(os.Stdout)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := s.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No saved runs.")
		return nil
	}

	fmt.Printf("%-5s  %-40s  %-20s  %s\n", "ID", "Query", "Created", "Articles")
	for _, r := range runs {
		query := r.Query
		if len(query) > 40 {
			query = query[:37] + "..."
		}
		fmt.Printf("%-5d  %-40s  %-20s  %d\n",
			r.ID, query, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Articles)
	}
	return nil
}
