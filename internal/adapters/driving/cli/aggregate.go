package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsearch/internal/core/domain"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate [document] [field] [max|min|sum|avg]",
	Short: "Aggregate a numeric field of a JSON document",
	Long: `Compute max, min, sum or avg of a field across the records of an ingested
JSON document. Records where the field is missing or not numeric are skipped.`,
	Args: cobra.ExactArgs(3),
	RunE: runAggregate,
}

func init() {
	rootCmd.AddCommand(aggregateCmd)
}

func runAggregate(cmd *cobra.Command, args []string) error {
	if aggregationService == nil {
		return errors.New("aggregation service not configured")
	}

	result, err := aggregationService.Aggregate(cmd.Context(), domain.AggregationRequest{
		DocumentName: args[0],
		Field:        args[1],
		Operation:    args[2],
	})
	if err != nil {
		return fmt.Errorf("aggregation failed: %w", err)
	}

	cmd.Printf("%s(%s) over %s = %s\n",
		result.Operation, result.Field, result.Document,
		strconv.FormatFloat(result.Result, 'f', -1, 64))
	return nil
}
