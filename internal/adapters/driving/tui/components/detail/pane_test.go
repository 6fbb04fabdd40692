package detail

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

func testResult() *domain.Result {
	chapter := "Revelation"
	return &domain.Result{
		Document: domain.Document{
			ID:              "1",
			SourceText:      "انما الاعمال بالنيات",
			Translation:     &domain.Translation{Narrator: "Narrated Umar:", Text: "Actions are by intentions."},
			ChapterID:       1,
			CollectionTitle: "Sahih al-Bukhari",
		},
		CollectionID:    "bukhari",
		ChapterName:     &chapter,
		Score:           0.9123,
		MatchedLanguage: domain.LanguageEnglish,
	}
}

func TestNewPane(t *testing.T) {
	p := NewPane(nil)

	require.NotNil(t, p)
	assert.Nil(t, p.Result())
	assert.Nil(t, p.Init())
	assert.Contains(t, p.View(), "Select a result")
}

func TestPane_SetResult(t *testing.T) {
	p := NewPane(nil)
	p.SetDimensions(80, 20)
	p.SetResult(testResult())

	content := p.Content()
	assert.Contains(t, content, "bukhari #1")
	assert.Contains(t, content, "0.912")
	assert.Contains(t, content, "matched english")
	assert.Contains(t, content, "Sahih al-Bukhari · Revelation")
	assert.Contains(t, content, "انما الاعمال بالنيات")
	assert.Contains(t, content, "Narrated Umar:")
	assert.Contains(t, content, "Actions are by intentions.")

	p.SetResult(nil)
	assert.Contains(t, p.Content(), "Select a result")
}

func TestPane_WithoutChapterOrTranslation(t *testing.T) {
	p := NewPane(nil)
	p.SetDimensions(80, 20)
	p.SetResult(&domain.Result{
		Document:        domain.Document{ID: "7", SourceText: "الدين النصيحة", ChapterID: 4},
		CollectionID:    "muslim",
		MatchedLanguage: domain.LanguageArabic,
	})

	content := p.Content()
	assert.Contains(t, content, "chapter 4")
	assert.Contains(t, content, "No English translation.")
}

func TestPane_Scroll(t *testing.T) {
	p := NewPane(nil)
	p.SetDimensions(40, 6)

	long := testResult()
	long.Document.Translation.Text = strings.Repeat("Actions are by intentions. ", 40)
	p.SetResult(long)
	require.Equal(t, 0, p.Offset())

	p.ScrollDown()
	assert.Positive(t, p.Offset())

	p.ScrollUp()
	assert.Equal(t, 0, p.Offset())

	p.ScrollDown()
	p.SetResult(testResult())
	assert.Equal(t, 0, p.Offset(), "new result starts at the top")
}

func TestPane_IgnoresKeys(t *testing.T) {
	p := NewPane(nil)
	p.SetDimensions(40, 6)
	long := testResult()
	long.Document.Translation.Text = strings.Repeat("word ", 200)
	p.SetResult(long)

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, p.Offset())
}
