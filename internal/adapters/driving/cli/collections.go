package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var collectionsJSON bool

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List the collections available for filtering",
	Long: `Lists the canonical collection ids accepted by --collection.

Names and authors come from the chapter database when it is configured and
from the built-in alias table otherwise.`,
	Args: cobra.NoArgs,
	RunE: runCollections,
}

func init() {
	collectionsCmd.Flags().BoolVar(&collectionsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(collectionsCmd)
}

func runCollections(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(a *app) error {
		collections, err := a.catalogue.Collections(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list collections: %w", err)
		}

		if collectionsJSON {
			type item struct {
				ID     string `json:"id"`
				Name   string `json:"name"`
				Author string `json:"author,omitempty"`
			}
			out := make([]item, 0, len(collections))
			for _, c := range collections {
				out = append(out, item{ID: c.ID, Name: c.Name, Author: c.Author})
			}
			return writeJSON(cmd, out)
		}

		if len(collections) == 0 {
			cmd.Println("No collections found.")
			return nil
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("ID", "NAME", "AUTHOR")
		for _, c := range collections {
			t.Row(c.ID, c.Name, c.Author)
		}
		cmd.Println(t.String())
		return nil
	})
}
