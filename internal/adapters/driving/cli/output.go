package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

const defaultWidth = 80

var (
	heading = color.New(color.FgGreen, color.Bold).SprintFunc()
	accent  = color.New(color.FgYellow).SprintFunc()
	faint   = color.New(color.Faint).SprintFunc()
	italic  = color.New(color.Italic).SprintFunc()
	bad     = color.New(color.FgRed, color.Bold).SprintFunc()
	good    = color.New(color.FgGreen).SprintFunc()
)

// terminalWidth returns the width of stdout, or defaultWidth when it is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// indent wraps text to width and prefixes every line.
func indent(text, prefix string, width int) string {
	wrapped := lipgloss.NewStyle().Width(max(width-len(prefix), 20)).Render(text)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = prefix + strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return nil
}

// jsonDocument is the JSON shape of a document in command output.
type jsonDocument struct {
	ID              string  `json:"document_id"`
	SourceText      string  `json:"source_text"`
	TranslatedText  string  `json:"translated_text,omitempty"`
	Narrator        string  `json:"narrator,omitempty"`
	CollectionID    string  `json:"collection_id"`
	CollectionTitle string  `json:"collection_title,omitempty"`
	ChapterID       int     `json:"chapter_id"`
	ChapterName     *string `json:"chapter_name,omitempty"`
}

func toJSONDocument(doc *domain.Document, collectionID string, chapterName *string) jsonDocument {
	out := jsonDocument{
		ID:              doc.ID,
		SourceText:      doc.SourceText,
		CollectionID:    collectionID,
		CollectionTitle: doc.CollectionTitle,
		ChapterID:       doc.ChapterID,
		ChapterName:     chapterName,
	}
	if doc.Translation != nil {
		out.TranslatedText = doc.Translation.Text
		out.Narrator = doc.Translation.Narrator
	}
	return out
}

// jsonResult is the JSON shape of a search result.
type jsonResult struct {
	jsonDocument
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Score    float64 `json:"score"`
}

// printDocument writes the metadata line followed by the texts.
func printDocument(cmd *cobra.Command, doc *domain.Document, width int) {
	if doc.SourceText != "" {
		cmd.Println(indent(doc.SourceText, "    ", width))
	}
	if doc.Translation == nil {
		return
	}
	if doc.Translation.Narrator != "" {
		cmd.Println(italic(indent(doc.Translation.Narrator, "    ", width)))
	}
	cmd.Println(indent(doc.Translation.Text, "    ", width))
}

func chapterLabel(doc *domain.Document, chapterName *string) string {
	if chapterName != nil {
		return *chapterName
	}
	if doc.ChapterID != 0 {
		return fmt.Sprintf("chapter %d", doc.ChapterID)
	}
	return ""
}
