package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsearch/internal/core/domain"
)

// MockQueryService implements driving.QueryService for testing.
type MockQueryService struct {
	QueryFunc func(ctx context.Context, req domain.QueryRequest) (*domain.QueryResponse, error)
}

func (m *MockQueryService) Query(ctx context.Context, req domain.QueryRequest) (*domain.QueryResponse, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, req)
	}
	return &domain.QueryResponse{Query: req.Query}, nil
}

// MockDocumentService implements driving.DocumentService for testing.
type MockDocumentService struct {
	ListFunc   func(ctx context.Context) ([]domain.Document, error)
	DeleteFunc func(ctx context.Context, name string) error
}

func (m *MockDocumentService) List(ctx context.Context) ([]domain.Document, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.Document{}, nil
}

func (m *MockDocumentService) Get(_ context.Context, name string) (*domain.Document, error) {
	return &domain.Document{Name: name}, nil
}

func (m *MockDocumentService) Delete(ctx context.Context, name string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, name)
	}
	return nil
}

func TestNewPorts(t *testing.T) {
	q := &MockQueryService{}
	d := &MockDocumentService{}

	ports := NewPorts(q, d)

	require.NotNil(t, ports)
	assert.Equal(t, q, ports.Query)
	assert.Equal(t, d, ports.Document)
	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"nil ports", nil, ErrMissingQueryService},
		{"missing query", &Ports{Document: &MockDocumentService{}}, ErrMissingQueryService},
		{"missing document", &Ports{Query: &MockQueryService{}}, ErrMissingDocumentService},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.ports.Validate(), tt.want)
		})
	}
}
