// Package search provides the search screen of the TUI: a query box with
// language and collection filters, the ranked results and a document pane.
package search

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/hadith-search/internal/adapters/driving/tui/components/detail"
	"github.com/custodia-labs/hadith-search/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/hadith-search/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/hadith-search/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/hadith-search/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/hadith-search/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/hadith-search/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driving"
	"github.com/custodia-labs/hadith-search/internal/logger"
)

// chromeHeight is the number of lines used by the title, query box and status bar.
const chromeHeight = 6

// View is the search screen.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	detail    *detail.Pane
	statusbar *status.Bar

	retrieval driving.RetrievalService
	catalogue driving.CatalogueService
	ctx       context.Context
	topK      int

	// pending is the query whose results are awaited. Responses for any
	// other query are stale and dropped.
	pending *domain.Query

	width      int
	height     int
	err        error
	focusInput bool // true = typing a query, false = browsing results
}

// NewView creates a new search view. catalogue may be nil, in which case
// the collection filter only offers all collections.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	retrieval driving.RetrievalService,
	catalogue driving.CatalogueService,
	topK int,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if topK <= 0 {
		topK = domain.DefaultTopK
	}

	v := &View{
		styles:     s,
		keymap:     km,
		input:      input.NewSearchInput(s),
		list:       list.NewResultList(s),
		detail:     detail.NewPane(s),
		statusbar:  status.NewBar(s, km),
		retrieval:  retrieval,
		catalogue:  catalogue,
		ctx:        context.Background(),
		topK:       topK,
		focusInput: true,
	}
	v.SetDimensions(80, 24)
	return v
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the cursor blink and loads health and collections.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.loadHealth(), v.loadCollections())
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		v.detail, cmd = v.detail.Update(msg)
		return v, cmd

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.HealthLoaded:
		v.statusbar.SetHealth(msg.Health)
		return v, nil

	case messages.CollectionsLoaded:
		if msg.Err != nil {
			logger.Debug("tui: collections unavailable: %v", msg.Err)
			return v, nil
		}
		ids := make([]string, 0, len(msg.Collections))
		for _, c := range msg.Collections {
			ids = append(ids, c.ID)
		}
		v.input.SetCollections(ids)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	if v.focusInput {
		switch {
		case keymap.Matches(keyStr, v.keymap.Search):
			query := strings.TrimSpace(v.input.Value())
			if query == "" {
				return v, nil
			}
			v.focusInput = false
			v.input.Blur()
			return v, v.performSearch(query)
		case keymap.Matches(keyStr, v.keymap.Back):
			v.input.Reset()
			return v, nil
		case keymap.Matches(keyStr, v.keymap.Language):
			v.input.CycleLanguage()
			return v, nil
		case keymap.Matches(keyStr, v.keymap.Collection):
			v.input.CycleCollection()
			return v, nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch {
	case keyStr == "q":
		return v, tea.Quit
	case keymap.Matches(keyStr, v.keymap.Up):
		v.list.MoveUp()
		v.detail.SetResult(v.list.SelectedResult())
	case keymap.Matches(keyStr, v.keymap.Down):
		v.list.MoveDown()
		v.detail.SetResult(v.list.SelectedResult())
	case keymap.Matches(keyStr, v.keymap.ScrollUp):
		v.detail.ScrollUp()
	case keymap.Matches(keyStr, v.keymap.ScrollDown):
		v.detail.ScrollDown()
	case keymap.Matches(keyStr, v.keymap.NewSearch):
		v.input.Reset()
		return v, v.focus()
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, v.focus()
	}
	return v, nil
}

func (v *View) focus() tea.Cmd {
	v.focusInput = true
	return v.input.Focus()
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if v.pending == nil || msg.Query != *v.pending {
		return
	}
	v.pending = nil

	if msg.Err != nil {
		v.list.SetResults(nil)
		v.detail.SetResult(nil)
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.list.SetResults(msg.Results)
	v.detail.SetResult(v.list.SelectedResult())
	v.statusbar.SetMessage("")
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(msg.Results))
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// performSearch issues the query with the current filters.
func (v *View) performSearch(text string) tea.Cmd {
	query := domain.Query{
		Text:       text,
		Language:   v.input.Language(),
		TopK:       v.topK,
		Collection: v.input.Collection(),
	}
	v.pending = &query
	v.statusbar.SetState(status.StateSearching)

	if v.retrieval == nil {
		err := ErrNoRetrievalService
		return func() tea.Msg {
			return messages.SearchCompleted{Query: query, Err: err}
		}
	}

	svc, ctx := v.retrieval, v.ctx
	return func() tea.Msg {
		results, err := svc.Retrieve(ctx, query)
		return messages.SearchCompleted{Query: query, Results: results, Err: err}
	}
}

func (v *View) loadHealth() tea.Cmd {
	if v.retrieval == nil {
		return nil
	}
	svc, ctx := v.retrieval, v.ctx
	return func() tea.Msg {
		return messages.HealthLoaded{Health: svc.Health(ctx)}
	}
}

func (v *View) loadCollections() tea.Cmd {
	if v.catalogue == nil {
		return nil
	}
	svc, ctx := v.catalogue, v.ctx
	return func() tea.Msg {
		collections, err := svc.Collections(ctx)
		return messages.CollectionsLoaded{Collections: collections, Err: err}
	}
}

// View renders the search screen.
func (v *View) View() string {
	title := v.styles.Title.Render("hadith-search")
	body := lipgloss.JoinHorizontal(lipgloss.Top, v.list.View(), " ", v.detail.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		v.input.View(),
		body,
		v.statusbar.View(),
	)
}

// SetDimensions lays out the list on the left and the document pane on the right.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height

	bodyHeight := max(height-chromeHeight, 4)
	listWidth := width * 2 / 5
	v.input.SetWidth(width)
	v.list.SetDimensions(listWidth, bodyHeight)
	v.detail.SetDimensions(width-listWidth-1, bodyHeight)
	v.statusbar.SetWidth(width)
}

// Query returns the text in the query box.
func (v *View) Query() string {
	return v.input.Value()
}

// Results returns the current results.
func (v *View) Results() []domain.Result {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Selected returns the result shown in the document pane.
func (v *View) Selected() *domain.Result {
	return v.detail.Result()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// InputFocused reports whether the query box has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Status returns the status bar state.
func (v *View) Status() status.State {
	return v.statusbar.State()
}

// Language returns the active language hint.
func (v *View) Language() string {
	return v.input.Language()
}

// Collection returns the active collection filter.
func (v *View) Collection() string {
	return v.input.Collection()
}
