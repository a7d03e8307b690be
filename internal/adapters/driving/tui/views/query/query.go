// Package query provides the document query view for the TUI.
package query

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docsearch/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docsearch/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docsearch/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docsearch/internal/core/domain"
	"github.com/custodia-labs/docsearch/internal/core/ports/driving"
)

// Input focus positions.
const (
	focusDocument = iota
	focusQuery
	focusResults
)

// View has two inputs (document, query), a results list and a status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	document  *input.Field
	query     *input.Field
	list      *list.ResultList
	statusbar *status.Bar

	queryService driving.QueryService
	ctx          context.Context
	topK         int

	width  int
	height int
	ready  bool
	err    error
	focus  int
}

// NewView creates a new query view. topK <= 0 uses the service default.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	queryService driving.QueryService,
	topK int,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:       s,
		keymap:       km,
		document:     input.NewField(s, "Document", "report.pdf"),
		query:        input.NewField(s, "Query", "What is this document about?"),
		list:         list.NewResultList(s),
		statusbar:    status.NewBar(s, km),
		queryService: queryService,
		ctx:          context.Background(),
		topK:         topK,
		width:        80,
		height:       24,
	}
	v.setFocus(focusDocument)
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.document.Init()
}

// Update handles messages for the query view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.QueryCompleted:
		v.handleQueryCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	// Forward blink and other ticks to the focused input.
	var cmd tea.Cmd
	switch v.focus {
	case focusDocument:
		v.document, cmd = v.document.Update(msg)
	case focusQuery:
		v.query, cmd = v.query.Update(msg)
	}
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focus == focusResults {
		return v.handleResultsKey(msg)
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab:
		if v.focus == focusDocument {
			v.setFocus(focusQuery)
		} else {
			v.setFocus(focusDocument)
		}
		return v, nil

	case tea.KeyEnter:
		// Enter on the document field moves on to the query.
		if v.focus == focusDocument && strings.TrimSpace(v.query.Value()) == "" {
			v.setFocus(focusQuery)
			return v, nil
		}
		return v, v.submit()
	}

	var cmd tea.Cmd
	if v.focus == focusDocument {
		v.document, cmd = v.document.Update(msg)
	} else {
		v.query, cmd = v.query.Update(msg)
	}
	return v, cmd
}

// handleResultsKey navigates results.
func (v *View) handleResultsKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		v.list.MoveUp()
	case "down", "j":
		v.list.MoveDown()
	case "n", "tab":
		v.setFocus(focusQuery)
		v.query.SetValue("")
	}
	return v, nil
}

// submit validates the inputs and starts a query.
func (v *View) submit() tea.Cmd {
	document := strings.TrimSpace(v.document.Value())
	query := strings.TrimSpace(v.query.Value())

	switch {
	case document == "":
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("Enter a document name")
		v.setFocus(focusDocument)
		return nil
	case query == "":
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("Enter a query")
		v.setFocus(focusQuery)
		return nil
	}

	v.statusbar.SetState(status.StateQuerying)
	return v.performQuery(domain.QueryRequest{DocumentName: document, Query: query, TopK: v.topK})
}

// performQuery runs the query through the service.
func (v *View) performQuery(req domain.QueryRequest) tea.Cmd {
	return func() tea.Msg {
		if v.queryService == nil {
			return messages.ErrorOccurred{Err: ErrNoQueryService}
		}

		resp, err := v.queryService.Query(v.ctx, req)
		return messages.QueryCompleted{Response: resp, Err: err}
	}
}

// handleQueryCompleted processes query results.
func (v *View) handleQueryCompleted(msg messages.QueryCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	var results []domain.QueryResult
	if msg.Response != nil {
		results = msg.Response.Results
	}
	v.list.SetResults(results)
	v.statusbar.SetMessage("")
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetDocument(strings.TrimSpace(v.document.Value()))
	v.statusbar.SetResultCount(len(results))

	if len(results) > 0 {
		v.setFocus(focusResults)
	}
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

func (v *View) setFocus(focus int) {
	v.focus = focus
	v.document.Blur()
	v.query.Blur()
	switch focus {
	case focusDocument:
		v.document.Focus()
	case focusQuery:
		v.query.Focus()
	}
}

// View renders the query view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections,
		v.styles.Title.Render("docsearch"), "",
		v.document.View(),
		v.query.View(), "",
	)

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.document.SetWidth(width)
	v.query.SetWidth(width)
	v.list.SetDimensions(width, height-12) // header, two inputs, status
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// SetDocument pre-fills the document input and focuses the query.
func (v *View) SetDocument(name string) {
	v.document.SetValue(name)
	v.setFocus(focusQuery)
}

// Document returns the document input value.
func (v *View) Document() string {
	return v.document.Value()
}

// Query returns the query input value.
func (v *View) Query() string {
	return v.query.Value()
}

// SetQuery sets the query input value.
func (v *View) SetQuery(query string) {
	v.query.SetValue(query)
}

// Results returns the current results.
func (v *View) Results() []domain.QueryResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Status returns the status bar state.
func (v *View) Status() status.State {
	return v.statusbar.State()
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}

// InputFocused returns whether one of the inputs has focus.
func (v *View) InputFocused() bool {
	return v.focus != focusResults
}

// QueryFocused returns whether the query input has focus.
func (v *View) QueryFocused() bool {
	return v.focus == focusQuery
}

// Reset clears the inputs and results. The document name is kept.
func (v *View) Reset() {
	v.query.SetValue("")
	v.list.SetResults(nil)
	v.err = nil
	v.statusbar.Clear()
	if strings.TrimSpace(v.document.Value()) == "" {
		v.setFocus(focusDocument)
	} else {
		v.setFocus(focusQuery)
	}
}
