package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hadith-search/internal/adapters/driven/ai"
	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driven"
	"github.com/custodia-labs/hadith-search/internal/core/services"
)

// embeddingValidator pings the provider. Tests replace it.
var embeddingValidator driven.AIConfigValidator = ai.NewConfigValidator()

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the settings stored in the config file.

Environment variables named HADITH_SEARCH_<KEY> override the file, with dots
replaced by underscores: HADITH_SEARCH_INDEX_BACKEND=hnsw.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set one setting",
	Long: `Set one setting and save it to the config file.

Run 'hadith-search settings keys' for the list of keys.

Examples:
  hadith-search settings set index.backend hnsw
  hadith-search settings set enrichment.path ./hadith.db
  hadith-search settings set retrieval.embed_timeout 5s`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the settable keys",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, k := range services.KnownSettingKeys() {
			cmd.Println(k)
		}
	},
}

var settingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the settings and ping the embedding provider",
	Args:  cobra.NoArgs,
	RunE:  runSettingsValidate,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure the embedding provider",
	Long: `Interactively choose the embedding provider and model, then ping it.

The model must be the one the index was built with.`,
	Args: cobra.NoArgs,
	RunE: runSettingsEmbedding,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsValidateCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Printf("File: %s\n", settingsService.Path())
	cmd.Println()

	e := settings.Embedding
	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", e.Provider.Description())
	cmd.Printf("  Model: %s\n", e.Model)
	if e.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", e.BaseURL)
	}
	if e.Provider.RequiresAPIKey() {
		if e.APIKey != "" {
			cmd.Printf("  API Key ($%s): %s\n", e.APIKeyEnv, maskAPIKey(e.APIKey))
		} else {
			cmd.Printf("  API Key ($%s): (not set)\n", e.APIKeyEnv)
		}
	}
	if e.RequestsPerSecond > 0 {
		cmd.Printf("  Rate limit: %g/s\n", e.RequestsPerSecond)
	}
	cmd.Println()

	idx := settings.Index
	cmd.Println("[Index]")
	cmd.Printf("  Backend: %s\n", idx.Backend)
	switch idx.Backend {
	case domain.IndexBackendQdrant:
		cmd.Printf("  Qdrant: %s/%s\n", idx.QdrantAddr, idx.QdrantCollection)
	case domain.IndexBackendHNSW:
		cmd.Printf("  Path: %s\n", idx.Path)
		cmd.Printf("  HNSW: M=%d ef=%d\n", idx.HNSWM, idx.HNSWEfSearch)
	default:
		cmd.Printf("  Path: %s\n", idx.Path)
	}
	cmd.Printf("  Chunk map: %s (%s)\n", settings.Mapping.Path, settings.Mapping.Schema)
	cmd.Printf("  Corpus: %s\n", settings.Corpus.Path)
	cmd.Println()

	cmd.Println("[Enrichment]")
	if settings.Enrichment.IsConfigured() {
		cmd.Printf("  Chapter database: %s\n", settings.Enrichment.Path)
		cmd.Printf("  Timeout: %s, cache: %d\n", settings.Enrichment.Timeout, settings.Enrichment.CacheSize)
	} else {
		cmd.Println("  Chapter database: (disabled)")
	}
	cmd.Println()

	r := settings.Retrieval
	cmd.Println("[Retrieval]")
	cmd.Printf("  Default top_k: %d\n", r.DefaultTopK)
	cmd.Printf("  Over-fetch factor: %d\n", r.OverfetchFactor)
	cmd.Printf("  Embed timeout: %s\n", r.EmbedTimeout)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'hadith-search settings embedding' to fix the embedding configuration.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runSettingsValidate(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	if err := settingsService.Validate(); err != nil {
		return err
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Print("Pinging embedding provider... ")
	if err := embeddingValidator.ValidateEmbedding(cmd.Context(), &settings.Embedding); err != nil {
		cmd.Println("FAILED")
		return err
	}
	cmd.Println("OK")
	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	return configureEmbeddingProvider(cmd, bufio.NewReader(cmd.InOrStdin()))
}

func configureEmbeddingProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select Embedding Provider")
	providers := domain.AllEmbeddingProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	provider := providers[idx-1]

	defaultModel := domain.DefaultEmbeddingModels()[provider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	cmd.Print("Enter base URL (empty for the provider default): ")
	baseURL := readLine(reader)

	updates := [][2]string{
		{"embedding.provider", provider.String()},
		{"embedding.model", model},
		{"embedding.base_url", baseURL},
	}
	if provider.RequiresAPIKey() {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		cmd.Printf("Environment variable holding the API key [%s]: ", settings.Embedding.APIKeyEnv)
		if env := readLine(reader); env != "" {
			updates = append(updates, [2]string{"embedding.api_key_env", env})
		}
	}

	for _, u := range updates {
		if err := settingsService.Set(u[0], u[1]); err != nil {
			return fmt.Errorf("failed to configure embedding provider: %w", err)
		}
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	cmd.Print("Validating configuration... ")
	if err := embeddingValidator.ValidateEmbedding(cmd.Context(), &settings.Embedding); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("embedding configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("Embedding provider configured: %s (%s)\n", provider.Description(), model)
	return nil
}

// Helper functions.

func readLine(reader *bufio.Reader) string {
	input, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return ""
	}
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
