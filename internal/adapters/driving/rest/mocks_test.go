package rest

import (
	"context"

	"github.com/custodia-labs/docsearch/internal/core/domain"
)

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	result   *domain.IngestResult
	err      error
	filename string
	content  []byte
}

func (m *mockIngestService) Ingest(_ context.Context, filename string, content []byte) (*domain.IngestResult, error) {
	m.filename = filename
	m.content = content
	return m.result, m.err
}

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
	req    domain.AggregationRequest
}

func (m *mockAggregationService) Aggregate(
	_ context.Context,
	req domain.AggregationRequest,
) (*domain.AggregationResult, error) {
	m.req = req
	return m.result, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	document  *domain.Document
	err       error
	deleted   string
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, name string) error {
	m.deleted = name
	return m.err
}

// mockHealthService is a mock implementation of driving.HealthService.
type mockHealthService struct {
	status domain.HealthStatus
}

func (m *mockHealthService) Check(_ context.Context) domain.HealthStatus {
	return m.status
}

type testPorts struct {
	ingest      *mockIngestService
	query       *mockQueryService
	aggregation *mockAggregationService
	document    *mockDocumentService
	health      *mockHealthService
}

func newTestPorts() *testPorts {
	return &testPorts{
		ingest:      &mockIngestService{},
		query:       &mockQueryService{},
		aggregation: &mockAggregationService{},
		document:    &mockDocumentService{},
		health:      &mockHealthService{status: domain.HealthStatus{Status: domain.HealthHealthy}},
	}
}

func (p *testPorts) ports() *Ports {
	return &Ports{
		Ingest:      p.ingest,
		Query:       p.query,
		Aggregation: p.aggregation,
		Document:    p.document,
		Health:      p.health,
	}
}
