// Package list provides the result list component for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/hadith-search/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

// linesPerResult is the height of one rendered result.
const linesPerResult = 2

// ResultList displays retrieval results in a navigable list.
type ResultList struct {
	results  []domain.Result
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the visible window of results around the selection.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(r.results)*linesPerResult+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results))), "")

	visible := (r.height - 2) / linesPerResult
	if visible < 1 {
		visible = 1
	}
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.results))

	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}
	return strings.Join(lines, "\n")
}

// renderResult formats the heading line and a one-line preview.
func (r *ResultList) renderResult(index int, result *domain.Result) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	heading := fmt.Sprintf("%s #%s", result.CollectionID, result.Document.ID)
	if result.ChapterName != nil {
		heading += " · " + *result.ChapterName
	}
	headingWidth := max(r.width-12, 10)
	heading = runewidth.FillRight(runewidth.Truncate(heading, headingWidth, "..."), headingWidth)
	score := fmt.Sprintf("%.3f", result.Score)

	var headingLine string
	if index == r.selected {
		headingLine = r.styles.Selected.Render(indicator + heading + "  " + score)
	} else {
		headingLine = r.styles.Chapter.Render(indicator+heading+"  ") + r.styles.Score.Render(score)
	}

	preview := strings.Join(strings.Fields(result.DisplayText()), " ")
	preview = runewidth.Truncate(preview, max(r.width-6, 20), "...")

	return headingLine + "\n" + r.styles.Muted.Render("    "+preview)
}

// SetResults replaces the results and selects the first.
func (r *ResultList) SetResults(results []domain.Result) {
	r.results = results
	r.selected = 0
}

// Results returns the current results.
func (r *ResultList) Results() []domain.Result {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index. Out of range indexes are ignored.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.Result {
	if len(r.results) == 0 || r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
