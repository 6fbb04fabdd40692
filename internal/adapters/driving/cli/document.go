package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var documentJSON bool

var documentCmd = &cobra.Command{
	Use:     "document [id]",
	Aliases: []string{"doc"},
	Short:   "Show one hadith by document id",
	Long: `Prints the full Arabic text, the English translation with its narrator,
and the collection and chapter of a document. Ids are the document_id values
returned by search.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocument,
}

func init() {
	documentCmd.Flags().BoolVar(&documentJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(documentCmd)
}

func runDocument(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		details, err := a.documents.GetDetails(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get document: %w", err)
		}

		doc := &details.Document
		if documentJSON {
			return writeJSON(cmd, toJSONDocument(doc, details.CollectionID, details.ChapterName))
		}

		title := fmt.Sprintf("%s #%s", details.CollectionID, doc.ID)
		if label := chapterLabel(doc, details.ChapterName); label != "" {
			title += " · " + label
		}
		cmd.Println(heading(title))
		if doc.CollectionTitle != "" {
			cmd.Println(faint(doc.CollectionTitle))
		}
		cmd.Println()
		printDocument(cmd, doc, terminalWidth())
		return nil
	})
}
