package query

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsearch/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docsearch/internal/core/domain"
)

type mockQueryService struct {
	req  domain.QueryRequest
	resp *domain.QueryResponse
	err  error
}

func (m *mockQueryService) Query(_ context.Context, req domain.QueryRequest) (*domain.QueryResponse, error) {
	m.req = req
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func twoResults() *domain.QueryResponse {
	return &domain.QueryResponse{
		Query: "refund policy",
		Results: []domain.QueryResult{
			{Text: "Refunds within 30 days.", ChunkID: 4, SimilarityScore: 0.88, DocumentName: "terms.pdf"},
			{Text: "Contact support.", ChunkID: 9, SimilarityScore: 0.41, DocumentName: "terms.pdf"},
		},
	}
}

func typeText(v *View, text string) {
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil, 5)

	require.NotNil(t, v)
	assert.True(t, v.InputFocused())
	assert.False(t, v.QueryFocused())
	assert.Equal(t, status.StateReady, v.Status())
	assert.False(t, v.Ready())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_TabSwitchesFields(t *testing.T) {
	v := NewView(nil, nil, nil, 0)

	typeText(v, "terms.pdf")
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(v, "refunds")

	assert.Equal(t, "terms.pdf", v.Document())
	assert.Equal(t, "refunds", v.Query())
	assert.True(t, v.QueryFocused())

	v.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.False(t, v.QueryFocused())
	assert.True(t, v.InputFocused())
}

func TestView_EnterOnDocumentMovesToQuery(t *testing.T) {
	v := NewView(nil, nil, &mockQueryService{}, 0)
	typeText(v, "terms.pdf")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.True(t, v.QueryFocused())
}

func TestView_SubmitValidation(t *testing.T) {
	t.Run("missing document", func(t *testing.T) {
		v := NewView(nil, nil, &mockQueryService{}, 0)
		v.SetQuery("refunds")

		_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.Nil(t, cmd)
		assert.Equal(t, "Enter a document name", v.StatusMessage())
		assert.False(t, v.QueryFocused())
	})

	t.Run("missing query", func(t *testing.T) {
		v := NewView(nil, nil, &mockQueryService{}, 0)
		v.SetDocument("terms.pdf")

		_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.Nil(t, cmd)
		assert.Equal(t, "Enter a query", v.StatusMessage())
		assert.True(t, v.QueryFocused())
	})
}

func TestView_SubmitRunsQuery(t *testing.T) {
	svc := &mockQueryService{resp: twoResults()}
	v := NewView(nil, nil, svc, 7)
	v.SetDocument(" terms.pdf ")
	v.SetQuery("refund policy")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, status.StateQuerying, v.Status())

	msg := cmd()
	completed, ok := msg.(messages.QueryCompleted)
	require.True(t, ok)
	assert.Equal(t, domain.QueryRequest{DocumentName: "terms.pdf", Query: "refund policy", TopK: 7}, svc.req)

	v.Update(completed)

	assert.Equal(t, status.StateResults, v.Status())
	assert.Len(t, v.Results(), 2)
	assert.False(t, v.InputFocused())
	assert.NoError(t, v.Err())
}

func TestView_QueryError(t *testing.T) {
	svc := &mockQueryService{err: domain.ErrNotFound}
	v := NewView(nil, nil, svc, 0)
	v.SetDocument("missing.pdf")
	v.SetQuery("anything")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.ErrorIs(t, v.Err(), domain.ErrNotFound)
	assert.Equal(t, status.StateError, v.Status())
	assert.True(t, v.InputFocused())
}

func TestView_NilService(t *testing.T) {
	v := NewView(nil, nil, nil, 0)
	v.SetDocument("terms.pdf")
	v.SetQuery("anything")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	occurred, ok := msg.(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, occurred.Err, ErrNoQueryService)

	v.Update(msg)
	assert.Equal(t, status.StateError, v.Status())
}

func TestView_EmptyResultsKeepInputFocus(t *testing.T) {
	v := NewView(nil, nil, nil, 0)

	v.Update(messages.QueryCompleted{Response: &domain.QueryResponse{Query: "q"}})

	assert.Equal(t, status.StateResults, v.Status())
	assert.True(t, v.InputFocused())
	assert.Empty(t, v.Results())
}

func TestView_ResultsNavigation(t *testing.T) {
	v := NewView(nil, nil, nil, 0)
	v.SetDocument("terms.pdf")
	v.SetQuery("refund policy")
	v.Update(messages.QueryCompleted{Response: twoResults()})

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 1, v.SelectedIndex())

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.SelectedIndex())

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.True(t, v.QueryFocused())
	assert.Equal(t, "", v.Query())
	assert.Equal(t, "terms.pdf", v.Document())
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := NewView(nil, nil, nil, 0)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_ViewRendersResults(t *testing.T) {
	v := NewView(nil, nil, nil, 0)
	v.SetDimensions(120, 40)
	v.SetDocument("terms.pdf")
	v.Update(messages.QueryCompleted{Response: twoResults()})

	out := v.View()

	assert.Contains(t, out, "Document:")
	assert.Contains(t, out, "Query:")
	assert.Contains(t, out, "Results (2)")
	assert.Contains(t, out, "Refunds within 30 days.")
}

func TestView_ViewShowsError(t *testing.T) {
	v := NewView(nil, nil, nil, 0)
	v.SetDimensions(120, 40)
	v.Update(messages.ErrorOccurred{Err: errors.New("connection refused")})

	assert.Contains(t, v.View(), "Error: connection refused")
}

func TestView_Reset(t *testing.T) {
	v := NewView(nil, nil, nil, 0)
	v.SetDocument("terms.pdf")
	v.SetQuery("refund policy")
	v.Update(messages.QueryCompleted{Response: twoResults()})

	v.Reset()

	assert.Equal(t, "terms.pdf", v.Document())
	assert.Equal(t, "", v.Query())
	assert.Empty(t, v.Results())
	assert.Equal(t, status.StateReady, v.Status())
	assert.True(t, v.QueryFocused())

	v.document.SetValue("")
	v.Reset()
	assert.False(t, v.QueryFocused())
	assert.True(t, v.InputFocused())
}

func TestView_WithContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), struct{}{}, "x")
	v := NewView(nil, nil, nil, 0).WithContext(ctx)
	assert.Equal(t, ctx, v.ctx)
}
