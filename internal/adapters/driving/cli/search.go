package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

var (
	searchTopK       int
	searchLanguage   string
	searchCollection string
	searchJSON       bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search hadith by meaning",
	Long: `Embeds the query and returns the most similar hadith, one result per
document, ranked by the best-matching Arabic or English chunk.

The query language is detected from its script unless --language is given.

Examples:
  hadith-search search "actions are judged by intentions"
  hadith-search search -n 3 --collection bukhari "fasting while travelling"
  hadith-search search --language arabic "الدين النصيحة"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "n", 0, "maximum number of results (default from settings)")
	searchCmd.Flags().StringVarP(&searchLanguage, "language", "l", "", "query language: arabic, english, ar, en")
	searchCmd.Flags().StringVarP(&searchCollection, "collection", "c", "", "restrict to one collection id")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		query := domain.Query{
			Text:       strings.Join(args, " "),
			Language:   searchLanguage,
			TopK:       a.settings.Retrieval.DefaultTopK,
			Collection: searchCollection,
		}
		if cmd.Flags().Changed("top-k") {
			query.TopK = searchTopK
		}

		results, err := a.retrieval.Retrieve(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if searchJSON {
			return outputSearchJSON(cmd, results)
		}
		outputSearchText(cmd, results)
		return nil
	})
}

func outputSearchJSON(cmd *cobra.Command, results []domain.Result) error {
	out := make([]jsonResult, 0, len(results))
	for i := range results {
		r := &results[i]
		out = append(out, jsonResult{
			jsonDocument: toJSONDocument(&r.Document, r.CollectionID, r.ChapterName),
			Text:         r.DisplayText(),
			Language:     r.MatchedLanguage.String(),
			Score:        r.Score,
		})
	}
	return writeJSON(cmd, map[string]any{"results": out})
}

func outputSearchText(cmd *cobra.Command, results []domain.Result) {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return
	}

	width := terminalWidth()
	for i := range results {
		r := &results[i]
		title := fmt.Sprintf("[%d] %s #%s", i+1, r.CollectionID, r.Document.ID)
		if label := chapterLabel(&r.Document, r.ChapterName); label != "" {
			title += " · " + label
		}
		cmd.Printf("%s  %s\n", heading(title), faint(fmt.Sprintf("%.3f %s", r.Score, r.MatchedLanguage)))
		printDocument(cmd, &r.Document, width)
		cmd.Println()
	}
}
