package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hadith-search/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

func newTestApp(t *testing.T, svc *MockRetrievalService) *App {
	t.Helper()
	app, err := NewApp(&Ports{
		Retrieval: svc,
		Catalogue: &MockCatalogueService{Items: []domain.Collection{{ID: "bukhari"}}},
	})
	require.NoError(t, err)
	return app
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t, &MockRetrievalService{})

	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
	assert.NotNil(t, app.SearchView())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})
	assert.ErrorIs(t, err, ErrMissingRetrievalService)
	assert.Nil(t, app)

	app, err = NewApp(nil)
	assert.ErrorIs(t, err, ErrInvalidPorts)
	assert.Nil(t, app)
}

func TestApp_Init(t *testing.T) {
	app := newTestApp(t, &MockRetrievalService{})
	assert.NotNil(t, app.Init())
}

func TestApp_WindowSize(t *testing.T) {
	app := newTestApp(t, &MockRetrievalService{})

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Nil(t, cmd)
	assert.Same(t, app, model)
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "hadith-search")
}

func TestApp_Quit(t *testing.T) {
	app := newTestApp(t, &MockRetrievalService{})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = app.Update(messages.Quit{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_SearchRoundTrip(t *testing.T) {
	var got domain.Query
	svc := &MockRetrievalService{
		RetrieveFunc: func(_ context.Context, q domain.Query) ([]domain.Result, error) {
			got = q
			return []domain.Result{{
				Document:        domain.Document{ID: "1", SourceText: "انما الاعمال بالنيات"},
				CollectionID:    "bukhari",
				Score:           0.9,
				MatchedLanguage: domain.LanguageArabic,
			}}, nil
		},
	}
	app := newTestApp(t, svc)
	app.SetDimensions(100, 30)

	for _, r := range "نية" {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, "نية", got.Text)
	assert.Equal(t, domain.DefaultTopK, got.TopK)
	require.Len(t, app.SearchView().Results(), 1)
	assert.Contains(t, app.View(), "bukhari #1")
}

func TestApp_WithContext(t *testing.T) {
	app := newTestApp(t, &MockRetrievalService{})

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")
	assert.Same(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}
