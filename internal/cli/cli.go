// Package cli implements the mindmap command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/buildinfo"
	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/config"
	"github.com/matzehuels/mindmap/pkg/extract"
	"github.com/matzehuels/mindmap/pkg/integrations/serper"
	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/research"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mindmap"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded once in the root command's PersistentPreRunE.
	Config config.Config

	configFile string
	envFile    string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Mindmap turns free-form text into mind-map diagrams",
		Long:         `Mindmap extracts concepts and relationships from text with a language model, arranges them into a tree and renders the result as a Mermaid flowchart, Graphviz DOT, SVG or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.LoadOptions{
				ConfigFile: c.configFile,
				EnvFile:    c.envFile,
			})
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/mindmap/config.toml)")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", "", "dotenv file (default .env)")

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// runnerOpts selects how a runner is assembled.
type runnerOpts struct {
	noCache bool // disable caching entirely
	refresh bool // bypass cached search results
}

// newRunner creates a pipeline runner from the loaded configuration.
// The extractor falls back to the offline illustrative maps when no backend
// credential is configured.
func (c *CLI) newRunner(ctx context.Context, opts runnerOpts) (*pipeline.Runner, error) {
	store, err := newCache(ctx, c.Config, opts.noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Config.CachePrefix)
	extractor := extract.NewAdapter(c.Config, c.Logger)
	runner := pipeline.NewRunner(extractor, newSearcher(c.Config, store, opts.refresh, c.Logger), store, keyer, c.Logger)
	if c.Config.CacheTTL > 0 {
		runner.ExtractionTTL = c.Config.CacheTTL
	}
	return runner, nil
}

// newSearcher returns the Serper searcher, or nil when search is not
// configured.
func newSearcher(cfg config.Config, store cache.Cache, refresh bool, logger *log.Logger) research.Searcher {
	if !cfg.SearchEnabled() {
		return nil
	}
	client := serper.NewClient(cfg.SerperAPIKey, cfg.SerperBaseURL, store, serper.CacheTTL)
	return research.NewSerperSearcher(client, research.SerperOptions{
		Results: cfg.SearchResults,
		Timeout: cfg.SearchTimeout,
		Refresh: refresh,
		Logger:  logger,
	})
}

// newCache prefers Redis when configured and falls back to the file cache.
func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cfg.RedisURL != "" {
		return cache.NewRedisCache(ctx, cfg.RedisURL)
	}
	dir, err := cacheDir(cfg.CacheDir)
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns override when set, otherwise the XDG cache directory
// (~/.cache/mindmap/).
func cacheDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
