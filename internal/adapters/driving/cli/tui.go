package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hadith-search/internal/adapters/driving/tui"
	"github.com/custodia-labs/hadith-search/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal interface for hadith search.

Type a query and press Enter. The selected result is shown in full on the
right.

Controls:
  Enter      - Search
  Ctrl+L     - Cycle language (auto, arabic, english)
  Tab        - Cycle collection filter
  ↑/k, ↓/j   - Navigate results
  PgUp/PgDn  - Scroll the document
  /          - New search
  Esc        - Back to the query / clear it
  q, Ctrl+C  - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	return withApp(cmd, func(a *app) error {
		app, err := tui.NewApp(&tui.Ports{
			Retrieval:   a.retrieval,
			Catalogue:   a.catalogue,
			DefaultTopK: a.settings.Retrieval.DefaultTopK,
		})
		if err != nil {
			return fmt.Errorf("failed to create TUI: %w", err)
		}

		// Log lines would corrupt the alternate screen.
		logger.SetOutput(io.Discard)
		defer logger.SetOutput(os.Stderr)

		return app.WithContext(cmd.Context()).Run()
	})
}
