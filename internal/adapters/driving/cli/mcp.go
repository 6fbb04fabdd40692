package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hadith-search/internal/adapters/driving/mcp"
	"github.com/custodia-labs/hadith-search/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search hadith.

Tools:
  search_hadith   semantic search with optional language, top_k and collection
  health          resource status

Resources:
  hadith://collections
  hadith://documents/{documentId}

By default the server speaks JSON-RPC over stdio. Use --port to serve the
streamable HTTP transport instead.

Examples:
  # Stdio mode (default, for desktop assistants)
  hadith-search mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  hadith-search mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "hadith-search": {
        "command": "/path/to/hadith-search",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	return withApp(cmd, func(a *app) error {
		server, err := mcp.NewServer(&mcp.Ports{
			Retrieval:   a.retrieval,
			Catalogue:   a.catalogue,
			Documents:   a.documents,
			DefaultTopK: a.settings.Retrieval.DefaultTopK,
		})
		if err != nil {
			return err
		}

		if port > 0 {
			addr := fmt.Sprintf(":%d", port)
			fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
			return server.RunHTTP(ctx, addr)
		}

		logger.Debug("mcp: serving over stdio")
		return server.Run(ctx)
	})
}
