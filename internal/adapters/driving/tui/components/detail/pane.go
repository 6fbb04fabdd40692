// Package detail renders the full text of the selected result in a
// scrollable pane.
package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/hadith-search/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

// Pane shows one result: metadata, Arabic source, narrator and translation.
type Pane struct {
	viewport viewport.Model
	styles   *styles.Styles
	result   *domain.Result
}

// NewPane creates an empty pane.
func NewPane(s *styles.Styles) *Pane {
	if s == nil {
		s = styles.DefaultStyles()
	}
	p := &Pane{
		viewport: viewport.New(40, 10),
		styles:   s,
	}
	p.refresh()
	return p
}

// Init initialises the pane.
func (p *Pane) Init() tea.Cmd {
	return nil
}

// Update handles mouse wheel scrolling. Keys are handled by the owning view.
func (p *Pane) Update(msg tea.Msg) (*Pane, tea.Cmd) {
	if _, ok := msg.(tea.MouseMsg); !ok {
		return p, nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// View renders the pane inside its border.
func (p *Pane) View() string {
	return p.styles.Detail.Render(p.viewport.View())
}

// SetResult shows result and scrolls to the top. A nil result clears the pane.
func (p *Pane) SetResult(result *domain.Result) {
	p.result = result
	p.refresh()
	p.viewport.GotoTop()
}

// Result returns the result on display.
func (p *Pane) Result() *domain.Result {
	return p.result
}

// ScrollDown moves one page down.
func (p *Pane) ScrollDown() {
	p.viewport.LineDown(p.viewport.Height)
}

// ScrollUp moves one page up.
func (p *Pane) ScrollUp() {
	p.viewport.LineUp(p.viewport.Height)
}

// Offset returns the first visible line.
func (p *Pane) Offset() int {
	return p.viewport.YOffset
}

// SetDimensions sets the outer size of the pane including its border.
func (p *Pane) SetDimensions(width, height int) {
	fw, fh := p.styles.Detail.GetFrameSize()
	p.viewport.Width = max(width-fw, 10)
	p.viewport.Height = max(height-fh, 3)
	p.refresh()
}

// Content returns the rendered document before viewport clipping.
func (p *Pane) Content() string {
	return p.render()
}

func (p *Pane) refresh() {
	p.viewport.SetContent(p.render())
}

func (p *Pane) render() string {
	if p.result == nil {
		return p.styles.Muted.Render("Select a result to read it in full.")
	}

	r := p.result
	doc := r.Document
	width := p.viewport.Width
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(p.styles.Title.Render(fmt.Sprintf("%s #%s", r.CollectionID, doc.ID)))
	b.WriteString("  ")
	b.WriteString(p.styles.Score.Render(fmt.Sprintf("%.3f", r.Score)))
	b.WriteString(p.styles.Muted.Render(" matched " + r.MatchedLanguage.String()))
	b.WriteString("\n")

	meta := []string{doc.CollectionTitle}
	if r.ChapterName != nil {
		meta = append(meta, *r.ChapterName)
	} else if doc.ChapterID != 0 {
		meta = append(meta, fmt.Sprintf("chapter %d", doc.ChapterID))
	}
	b.WriteString(p.styles.Chapter.Render(strings.Join(nonEmpty(meta), " · ")))
	b.WriteString("\n\n")

	if doc.SourceText != "" {
		b.WriteString(p.styles.Source.Width(width).Render(doc.SourceText))
		b.WriteString("\n\n")
	}
	if doc.Translation != nil {
		if doc.Translation.Narrator != "" {
			b.WriteString(p.styles.Narrator.Width(width).Render(doc.Translation.Narrator))
			b.WriteString("\n")
		}
		b.WriteString(wrap.Render(doc.Translation.Text))
	} else {
		b.WriteString(p.styles.Muted.Render("No English translation."))
	}
	return b.String()
}

func nonEmpty(parts []string) []string {
	out := parts[:0]
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
