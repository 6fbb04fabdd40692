package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hadith-search/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/hadith-search/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP search API",
	Long: `Loads every resource and serves the HTTP API:

  POST /search   {"query": "...", "language": "en", "top_k": 5, "collection": "bukhari"}
  GET  /search   ?q=...&language=...&top_k=...&collection=...
  GET  /health

Startup fails if the index, chunk map, corpus or embedding provider cannot be
loaded. A missing chapter database only disables chapter names.

Requests are logged with --verbose.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings, :8000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger.SetTimestamps(true)
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	return withApp(cmd, func(a *app) error {
		srv, err := httpapi.NewServer(a.retrieval, httpapi.Config{
			DefaultTopK:  a.settings.Retrieval.DefaultTopK,
			ReadTimeout:  a.settings.Server.ReadTimeout,
			WriteTimeout: a.settings.Server.WriteTimeout,
		})
		if err != nil {
			return err
		}

		addr := a.settings.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		h := a.retrieval.Health(ctx)
		logger.Info("serving %d documents (%s)", h.Documents, h.Status)
		return srv.Run(ctx, addr)
	})
}
