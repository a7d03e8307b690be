package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are distinct
func TestErrors_Existence(t *testing.T) {
	all := []error{
		ErrNotFound,
		ErrAlreadyExists,
		ErrInvalidInput,
		ErrUnsupportedFormat,
		ErrMalformedInput,
		ErrDecoding,
		ErrInvalidConfiguration,
		ErrInvalidOperation,
		ErrNotJSONDocument,
		ErrFieldNotFound,
		ErrNonNumericField,
		ErrEmbeddingUnavailable,
		ErrVectorStoreUnavailable,
	}

	for i, err := range all {
		t.Run(err.Error(), func(t *testing.T) {
			assert.NotEmpty(t, err.Error())
			for j, other := range all {
				if i != j {
					assert.False(t, errors.Is(err, other), "%v must not match %v", err, other)
				}
			}
		})
	}
}

// TestErrors_Wrapped tests that wrapped errors still match their sentinel
func TestErrors_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("extract report.pdf: %w", ErrMalformedInput)

	assert.True(t, errors.Is(wrapped, ErrMalformedInput))
	assert.False(t, errors.Is(wrapped, ErrDecoding))
	assert.Contains(t, wrapped.Error(), "malformed input")
}
