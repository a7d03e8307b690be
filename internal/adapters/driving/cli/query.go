package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsearch/internal/core/domain"
)

var queryCmd = &cobra.Command{
	Use:   "query [document] [query]",
	Short: "Find the passages of a document closest to a query",
	Long: `Embed the query and return the most similar chunks of one ingested
document, best first.

Examples:
  docsearch query handbook.pdf "how many vacation days"
  docsearch query handbook.pdf "remote work policy" -k 5 --json`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

var (
	queryTopK int
	queryJSON bool
)

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", domain.DefaultTopK, "number of results")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "print the response as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}
	if err := domain.ValidateTopK(queryTopK); err != nil {
		return err
	}

	resp, err := queryService.Query(cmd.Context(), domain.QueryRequest{
		DocumentName: args[0],
		Query:        args[1],
		TopK:         queryTopK,
	})
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode response: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(resp.Results) == 0 {
		cmd.Printf("No results in %s for: %s\n", args[0], resp.Query)
		return nil
	}

	cmd.Printf("Results in %s for: %s\n\n", args[0], resp.Query)
	for i, r := range resp.Results {
		cmd.Printf("%d. chunk %d  score %.3f\n", i+1, r.ChunkID, r.SimilarityScore)
		cmd.Printf("   %s\n\n", strings.Join(strings.Fields(r.Text), " "))
	}
	return nil
}
