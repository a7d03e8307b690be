package domain

import (
	"fmt"
	"strings"
)

// AggregationOp is a numeric summary computed over a JSON field.
type AggregationOp string

// Available aggregation operations.
const (
	AggregationMax AggregationOp = "max"
	AggregationMin AggregationOp = "min"
	AggregationSum AggregationOp = "sum"
	AggregationAvg AggregationOp = "avg"
)

// ParseAggregationOp validates an operation name.
func ParseAggregationOp(op string) (AggregationOp, error) {
	switch a := AggregationOp(strings.ToLower(strings.TrimSpace(op))); a {
	case AggregationMax, AggregationMin, AggregationSum, AggregationAvg:
		return a, nil
	default:
		return "", fmt.Errorf("%w: supported operations are: max, min, sum, avg", ErrInvalidOperation)
	}
}

// Apply computes the operation over values.
// Callers must pass at least one value.
func (a AggregationOp) Apply(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	result := values[0]
	switch a {
	case AggregationMax:
		for _, v := range values[1:] {
			if v > result {
				result = v
			}
		}
	case AggregationMin:
		for _, v := range values[1:] {
			if v < result {
				result = v
			}
		}
	case AggregationSum, AggregationAvg:
		for _, v := range values[1:] {
			result += v
		}
		if a == AggregationAvg {
			result /= float64(len(values))
		}
	}
	return result
}

// String returns the string representation.
func (a AggregationOp) String() string {
	return string(a)
}

// AggregationRequest asks for a summary of a field across a JSON document.
type AggregationRequest struct {
	DocumentName string
	Field        string
	Operation    string
}

// AggregationResult is the outcome of an aggregation.
type AggregationResult struct {
	Document  string  `json:"document"`
	Field     string  `json:"field"`
	Operation string  `json:"operation"`
	Result    float64 `json:"result"`
}
