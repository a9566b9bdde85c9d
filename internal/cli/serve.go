package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/internal/api"
	"github.com/matzehuels/mindmap/pkg/config"
	"github.com/matzehuels/mindmap/pkg/observability"
	"github.com/matzehuels/mindmap/pkg/store"
	"github.com/matzehuels/mindmap/pkg/store/mongostore"
	"github.com/matzehuels/mindmap/pkg/store/neo4jstore"
)

const (
	closeTimeout = 10 * time.Second

	// memoryHistory bounds the in-memory map history.
	memoryHistory = 1000
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address; overrides the configured one
	noCache bool   // disable caching entirely
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the mind-map HTTP API.

Collaborators are chosen from the configuration: Redis caching when
MINDMAP_REDIS_URL is set (file cache otherwise), MongoDB map history when
MINDMAP_MONGO_URI is set (in-memory otherwise), and a Neo4j graph export
when MINDMAP_NEO4J_URI is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8000)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)
	cfg := c.Config
	if opts.addr != "" {
		cfg.Addr = opts.addr
	}

	collector := observability.NewCollector(appName)
	observability.SetPipelineHooks(collector)
	observability.SetCacheHooks(collector)
	observability.SetHTTPHooks(collector)
	defer observability.Reset()

	runner, err := c.newRunner(ctx, runnerOpts{noCache: opts.noCache})
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer runner.Close()

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeWith(st.Close)

	var exporter api.Exporter
	if cfg.Neo4jURI != "" {
		exec, err := openNeo4j(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeWith(exec.Close)
		exporter = neo4jstore.NewExporter(exec)
		logger.Info("exporting maps to neo4j", "uri", cfg.Neo4jURI, "database", cfg.Neo4jDatabase)
	}

	if cfg.OfflineMode() {
		printWarning("No backend credentials configured; serving offline illustrative maps")
	}
	printInfo("Listening on %s", StyleHighlight.Render(cfg.Addr))

	srv := api.New(api.Deps{
		Config:    cfg,
		Runner:    runner,
		Store:     st,
		Exporter:  exporter,
		Collector: collector,
		Logger:    logger,
	})
	return srv.ListenAndServe(ctx)
}

// openStore connects to MongoDB when configured and falls back to an
// in-memory history.
func openStore(ctx context.Context, cfg config.Config, logger *log.Logger) (store.Store, error) {
	if cfg.MongoURI == "" {
		return store.NewMemory(memoryHistory), nil
	}
	st, err := mongostore.Open(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, fmt.Errorf("mongo: %w", err)
	}
	logger.Info("storing maps in mongodb", "database", cfg.MongoDatabase)
	return st, nil
}

func openNeo4j(ctx context.Context, cfg config.Config) (*neo4jstore.Executor, error) {
	exec, err := neo4jstore.NewExecutor(cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
	if err != nil {
		return nil, fmt.Errorf("neo4j: %w", err)
	}
	if err := exec.Verify(ctx); err != nil {
		_ = exec.Close(ctx)
		return nil, fmt.Errorf("neo4j: %w", err)
	}
	return exec, nil
}

// closeWith runs a context-aware close after the serve context is gone.
func closeWith(close func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	_ = close(ctx)
}
