package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAggregationOp(t *testing.T) {
	for _, op := range []string{"max", "min", "sum", "avg", "MAX", " avg "} {
		t.Run(op, func(t *testing.T) {
			_, err := ParseAggregationOp(op)
			assert.NoError(t, err)
		})
	}

	_, err := ParseAggregationOp("median")
	require.ErrorIs(t, err, ErrInvalidOperation)
	assert.Contains(t, err.Error(), "max, min, sum, avg")
}

func TestAggregationOp_Apply(t *testing.T) {
	values := []float64{4, -2, 10, 0}

	tests := []struct {
		op       AggregationOp
		expected float64
	}{
		{AggregationMax, 10},
		{AggregationMin, -2},
		{AggregationSum, 12},
		{AggregationAvg, 3},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.op.Apply(values), 1e-9)
		})
	}
}

func TestAggregationOp_ApplySingleValue(t *testing.T) {
	for _, op := range []AggregationOp{AggregationMax, AggregationMin, AggregationSum, AggregationAvg} {
		assert.Equal(t, 7.5, op.Apply([]float64{7.5}), op.String())
	}
}
