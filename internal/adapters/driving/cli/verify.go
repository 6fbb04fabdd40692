package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
)

// maxListed bounds how many offending ids verify prints per problem.
const maxListed = 10

// errAuditFailed makes the command exit non-zero when the audit finds problems.
var errAuditFailed = errors.New("artifacts are inconsistent")

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the index, chunk map and corpus agree",
	Long: `Loads every artifact and cross-checks them:

  - the chunk map and vector index have the same number of entries
  - no index position is mapped twice or lies outside the index
  - every mapped document id exists in the corpus
  - every collection id in the chunk map is a canonical id
  - every collection id in the chunk map matches the document's title

Exits non-zero when a problem is found.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(a *app) error {
		report, err := a.audit.Audit(cmd.Context())
		if err != nil {
			return fmt.Errorf("audit failed: %w", err)
		}
		printAudit(cmd, report)
		if !report.OK() {
			return errAuditFailed
		}
		return nil
	})
}

func printAudit(cmd *cobra.Command, r domain.AuditReport) {
	cmd.Printf("Chunk map entries: %d\n", r.Entries)
	cmd.Printf("Index vectors:     %d\n", r.Vectors)
	cmd.Printf("Corpus documents:  %d\n", r.Documents)
	cmd.Println()

	if r.SizeMismatch() {
		cmd.Println(bad("✗"), "chunk map and index sizes differ")
	}
	printProblem(cmd, "duplicate positions", positions(r.DuplicatePositions))
	printProblem(cmd, "positions outside the index", positions(r.OutOfRange))
	printProblem(cmd, "document ids missing from the corpus", r.MissingDocuments)
	printProblem(cmd, "non-canonical collection ids", r.NonCanonicalCollections)
	printProblem(cmd, "chunk map collection ids that disagree with the document title", mismatches(r.CollectionMismatches))

	if r.OK() {
		cmd.Println(good("✓"), "all checks passed")
	}
}

func printProblem(cmd *cobra.Command, what string, items []string) {
	if len(items) == 0 {
		return
	}
	shown := items
	if len(shown) > maxListed {
		shown = shown[:maxListed]
	}
	line := fmt.Sprintf("%d %s: %s", len(items), what, strings.Join(shown, ", "))
	if len(items) > maxListed {
		line += ", ..."
	}
	cmd.Println(bad("✗"), line)
}

func positions(ps []int64) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = fmt.Sprint(p)
	}
	return out
}

func mismatches(ms []domain.CollectionMismatch) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = fmt.Sprintf("%s != %s (document %s)", m.MapID, m.TitleID, m.DocumentID)
	}
	return out
}
