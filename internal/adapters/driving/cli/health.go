package cli

import (
	"errors"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

var healthJSON bool

// errUnhealthy makes the command exit non-zero when a mandatory resource is missing.
var errUnhealthy = errors.New("service is unhealthy")

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Load every resource and report its state",
	Long: `Loads the index, chunk map, corpus and embedding provider the same way
"serve" does and prints what was loaded.

The status is healthy when everything loaded, degraded when only the
chapter database is unavailable, and unhealthy otherwise.`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

func init() {
	healthCmd.Flags().BoolVar(&healthJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(a *app) error {
		h := a.retrieval.Health(cmd.Context())

		if healthJSON {
			if err := writeJSON(cmd, map[string]any{
				"status":     h.Status,
				"index":      h.Index,
				"mapping":    h.Mapping,
				"embedding":  h.Embedding,
				"enrichment": h.Enrichment,
				"vectors":    h.Vectors,
				"mappings":   h.Mappings,
				"documents":  h.Documents,
			}); err != nil {
				return err
			}
		} else {
			printHealth(cmd, h)
		}

		if h.Status == domain.HealthUnhealthy {
			return errUnhealthy
		}
		return nil
	})
}

func printHealth(cmd *cobra.Command, h domain.Health) {
	var status string
	switch h.Status {
	case domain.HealthHealthy:
		status = good(string(h.Status))
	case domain.HealthDegraded:
		status = accent(string(h.Status))
	default:
		status = bad(string(h.Status))
	}
	cmd.Printf("Status: %s\n\n", status)
	cmd.Printf("  Vector index:   %s (%s vectors)\n", mark(h.Index), humanize.Comma(int64(h.Vectors)))
	cmd.Printf("  Chunk map:      %s (%s entries)\n", mark(h.Mapping), humanize.Comma(int64(h.Mappings)))
	cmd.Printf("  Corpus:         %s documents\n", humanize.Comma(int64(h.Documents)))
	cmd.Printf("  Embedding:      %s\n", mark(h.Embedding))
	cmd.Printf("  Chapter names:  %s\n", mark(h.Enrichment))
}

func mark(ok bool) string {
	if ok {
		return good("ok")
	}
	return bad("unavailable")
}
