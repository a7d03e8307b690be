package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/docsearch/internal/core/domain"
	"github.com/custodia-labs/docsearch/internal/core/ports/driving"
)

// Ensure mocks implement the driving ports.
var (
	_ driving.IngestService      = (*mockIngestService)(nil)
	_ driving.QueryService       = (*mockQueryService)(nil)
	_ driving.AggregationService = (*mockAggregationService)(nil)
	_ driving.DocumentService    = (*mockDocumentService)(nil)
	_ driving.HealthService      = (*mockHealthService)(nil)
	_ driving.SettingsService    = (*mockSettingsService)(nil)
)

var testTime = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

type mockIngestService struct {
	calls []string
	err   map[string]error
}

func (m *mockIngestService) Ingest(_ context.Context, filename string, content []byte) (*domain.IngestResult, error) {
	m.calls = append(m.calls, filename)
	if err := m.err[filename]; err != nil {
		return nil, err
	}
	return &domain.IngestResult{
		Document: domain.Document{Name: filename, ChunkCount: 2, SizeBytes: int64(len(content))},
		Message:  filename + " uploaded and processed successfully. 2 chunks were created and indexed.",
	}, nil
}

type mockQueryService struct {
	last *domain.QueryRequest
	err  error
}

func (m *mockQueryService) Query(_ context.Context, req domain.QueryRequest) (*domain.QueryResponse, error) {
	m.last = &req
	if m.err != nil {
		return nil, m.err
	}
	if req.Query == "nothing" {
		return &domain.QueryResponse{Query: req.Query, Results: []domain.QueryResult{}}, nil
	}
	return &domain.QueryResponse{
		Query: req.Query,
		Results: []domain.QueryResult{
			{Text: "Employees get\n25 vacation days.", ChunkID: 4, SimilarityScore: 0.912, DocumentName: req.DocumentName, VectorID: "v-4"},
			{Text: "Unused days carry over.", ChunkID: 5, SimilarityScore: 0.7, DocumentName: req.DocumentName, VectorID: "v-5"},
		},
	}, nil
}

type mockAggregationService struct {
	last *domain.AggregationRequest
	err  error
}

func (m *mockAggregationService) Aggregate(_ context.Context, req domain.AggregationRequest) (*domain.AggregationResult, error) {
	m.last = &req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.AggregationResult{
		Document:  req.DocumentName,
		Field:     req.Field,
		Operation: req.Operation,
		Result:    42.5,
	}, nil
}

type mockDocumentService struct {
	docs    []domain.Document
	deleted []string
	err     error
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.docs, nil
}

func (m *mockDocumentService) Get(_ context.Context, name string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.docs {
		if m.docs[i].Name == name {
			return &m.docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) Delete(_ context.Context, name string) error {
	if m.err != nil {
		return m.err
	}
	if _, err := m.Get(context.Background(), name); err != nil {
		return err
	}
	m.deleted = append(m.deleted, name)
	return nil
}

type mockHealthService struct{}

func (m *mockHealthService) Check(_ context.Context) domain.HealthStatus {
	return domain.HealthStatus{Status: domain.HealthHealthy, VectorStoreConnection: "ok"}
}

type mockSettingsService struct {
	settings *domain.AppSettings
	saved    map[string]any
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.settings, nil
}

func (m *mockSettingsService) Set(key string, value any) error {
	if m.err != nil {
		return m.err
	}
	m.saved[key] = value
	return nil
}

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	ingest      *mockIngestService
	query       *mockQueryService
	aggregation *mockAggregationService
	document    *mockDocumentService
	settings    *mockSettingsService
}

// setupTestServices installs mock services and returns a cleanup function
// restoring the previous state.
func setupTestServices() func() {
	_, cleanup := setupTestServicesWithMocks()
	return cleanup
}

func setupTestServicesWithMocks() (*testServices, func()) {
	settings := domain.DefaultAppSettings()
	settings.Embedding.APIKey = "sk-test-1234567890"

	ts := &testServices{
		ingest:      &mockIngestService{err: map[string]error{}},
		query:       &mockQueryService{},
		aggregation: &mockAggregationService{},
		document: &mockDocumentService{docs: []domain.Document{
			{Name: "handbook.pdf", Format: domain.FormatPDF, ChunkCount: 12, SizeBytes: 20480, CreatedAt: testTime},
			{Name: "sales.json", Format: domain.FormatJSON, ChunkCount: 3, SizeBytes: 512, CreatedAt: testTime},
		}},
		settings: &mockSettingsService{settings: &settings, saved: map[string]any{}},
	}

	prev := struct {
		ingest      driving.IngestService
		query       driving.QueryService
		aggregation driving.AggregationService
		document    driving.DocumentService
		health      driving.HealthService
		settings    driving.SettingsService
		app         *domain.AppSettings
		configured  bool
	}{ingestService, queryService, aggregationService, documentService, healthService, settingsService, appSettings, configured}

	ingestService = ts.ingest
	queryService = ts.query
	aggregationService = ts.aggregation
	documentService = ts.document
	healthService = &mockHealthService{}
	settingsService = ts.settings
	appSettings = &settings
	configured = true

	return ts, func() {
		ingestService = prev.ingest
		queryService = prev.query
		aggregationService = prev.aggregation
		documentService = prev.document
		healthService = prev.health
		settingsService = prev.settings
		appSettings = prev.app
		configured = prev.configured

		queryTopK = domain.DefaultTopK
		queryJSON = false
	}
}
