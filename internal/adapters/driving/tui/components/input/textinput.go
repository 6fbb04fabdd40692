// Package input provides the query input component for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/hadith-search/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

// languageCycle is the order the language hint rotates through.
// The empty hint means detect from the query text.
var languageCycle = []domain.Language{"", domain.LanguageArabic, domain.LanguageEnglish}

// SearchInput wraps a bubbles textinput with the query filters.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int

	language    int
	collections []string
	collection  int
}

// NewSearchInput creates a new search input component.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Search hadith in Arabic or English..."
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 50

	return &SearchInput{
		textinput:   ti,
		styles:      s,
		width:       50,
		collections: []string{""},
	}
}

// Init initialises the search input.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the query box followed by the active filters.
func (s *SearchInput) View() string {
	label := s.styles.Title.Render("Search: ")
	box := s.styles.InputField.Render(s.textinput.View())
	filters := lipgloss.JoinVertical(lipgloss.Left,
		s.styles.Indicator.Render("lang: "+s.LanguageLabel()),
		s.styles.Indicator.Render("in: "+s.CollectionLabel()),
	)
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, box, filters)
}

// Value returns the current input value.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// Language returns the language hint, empty for auto-detect.
func (s *SearchInput) Language() string {
	return string(languageCycle[s.language])
}

// LanguageLabel returns the hint for display.
func (s *SearchInput) LanguageLabel() string {
	if l := s.Language(); l != "" {
		return l
	}
	return "auto"
}

// CycleLanguage advances to the next language hint.
func (s *SearchInput) CycleLanguage() {
	s.language = (s.language + 1) % len(languageCycle)
}

// SetCollections sets the collection ids the filter cycles through.
// The current selection is kept if it is still present.
func (s *SearchInput) SetCollections(ids []string) {
	current := s.Collection()
	s.collections = append([]string{""}, ids...)
	s.collection = 0
	for i, id := range s.collections {
		if id == current {
			s.collection = i
			break
		}
	}
}

// Collection returns the collection filter, empty for all collections.
func (s *SearchInput) Collection() string {
	return s.collections[s.collection]
}

// CollectionLabel returns the filter for display.
func (s *SearchInput) CollectionLabel() string {
	if c := s.Collection(); c != "" {
		return c
	}
	return "all"
}

// CycleCollection advances to the next collection filter.
func (s *SearchInput) CycleCollection() {
	s.collection = (s.collection + 1) % len(s.collections)
}

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the width of the input.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	// label and filter badges
	inputWidth := width - 30
	if inputWidth < 20 {
		inputWidth = 20
	}
	s.textinput.Width = inputWidth
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the query text. Filters are kept.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
}
