// Package cli implements the hadith-search command line. Each command lives
// in its own file and registers itself on rootCmd from init.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hadith-search/internal/adapters/driven/config/file"
	"github.com/custodia-labs/hadith-search/internal/bootstrap"
	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driving"
	"github.com/custodia-labs/hadith-search/internal/core/services"
	"github.com/custodia-labs/hadith-search/internal/logger"
)

var (
	version = "dev"

	configPath string
	verbose    bool

	// settingsService is created from --config on first use.
	settingsService driving.SettingsService

	// openApp loads the runtime. Tests replace it.
	openApp = openRuntime
)

// errSettingsNotConfigured is returned when no settings service could be set up.
var errSettingsNotConfigured = errors.New("settings service not configured")

// app is the set of services a command runs against.
type app struct {
	settings  domain.AppSettings
	retrieval driving.RetrievalService
	catalogue driving.CatalogueService
	documents driving.DocumentService
	audit     driving.AuditService
	closer    io.Closer
}

// Close releases the resources behind the services.
func (a *app) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

var rootCmd = &cobra.Command{
	Use:   "hadith-search",
	Short: "Semantic search over hadith collections",
	Long: `hadith-search answers natural-language questions in Arabic or English
with the most relevant hadith from the major collections.

It loads a prebuilt vector index, its chunk map and the hadith corpus, embeds
each query with the configured provider and returns ranked, deduplicated
documents. Chapter names are added when a chapter database is configured.

Settings are read from ~/.hadith-search/config.toml and may be overridden by
HADITH_SEARCH_* environment variables, for example
HADITH_SEARCH_EMBEDDING_PROVIDER=openai.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.hadith-search/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the command line.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if settingsService != nil {
		return nil
	}

	store, err := file.NewConfigStore(configPath)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService = services.NewSettingsService(store)
	return nil
}

// loadApp reads the settings and loads every resource.
func loadApp(cmd *cobra.Command) (*app, error) {
	if settingsService == nil {
		return nil, errSettingsNotConfigured
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	logger.Debug("config: %s", settingsService.Path())
	return openApp(cmd.Context(), *settings)
}

func openRuntime(ctx context.Context, settings domain.AppSettings) (*app, error) {
	rt, err := bootstrap.Load(ctx, settings)
	if err != nil {
		return nil, err
	}
	return &app{
		settings:  rt.Settings,
		retrieval: rt.Retrieval,
		catalogue: rt.Catalogue,
		documents: rt.Documents,
		audit:     rt.Audit,
		closer:    rt,
	}, nil
}

// withApp runs fn against a loaded app and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(*app) error) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			logger.Warn("closing resources: %v", cerr)
		}
	}()
	return fn(a)
}
