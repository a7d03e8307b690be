package mcp

import (
	"context"

	"github.com/custodia-labs/docsearch/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	response *domain.QueryResponse
	err      error
	req      domain.QueryRequest
}

func (m *mockQueryService) Query(_ context.Context, req domain.QueryRequest) (*domain.QueryResponse, error) {
	m.req = req
	return m.response, m.err
}

// mockAggregationService is a mock implementation of driving.AggregationService.
type mockAggregationService struct {
	result *domain.AggregationResult
	err    error
}

func (m *mockAggregationService) Aggregate(
	_ context.Context,
	_ domain.AggregationRequest,
) (*domain.AggregationResult, error) {
	return m.result, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	document  *domain.Document
	err       error
	requested string
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, name string) (*domain.Document, error) {
	m.requested = name
	return m.document, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, _ string) error {
	return m.err
}
