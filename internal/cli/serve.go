package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/annotext/spanviz/pkg/cache"
	"github.com/annotext/spanviz/pkg/pipeline"
	"github.com/annotext/spanviz/pkg/server"
	"github.com/annotext/spanviz/pkg/store"
)

// Environment variables selecting the serve command's backends.
const (
	envRedisAddr = "SPANVIZ_REDIS_ADDR"
	envMongoURI  = "SPANVIZ_MONGO_URI"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and render API over HTTP",
		Long: `Serve the layout and render API over HTTP.

The API accepts inline documents for layout and rendering, and manages
stored documents with cached reads. By default the server runs with the
local file cache and an in-memory store. Set ` + envRedisAddr + ` to use a
shared Redis cache and ` + envMongoURI + ` to persist documents in MongoDB.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe assembles the backends and runs the HTTP server until the
// context is canceled.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	cch, keyer, err := c.serveCache(ctx, noCache)
	if err != nil {
		return err
	}

	st, err := c.serveStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	srv := server.New(server.Config{
		Runner: pipeline.NewRunner(cch, keyer, c.Logger),
		Store:  st,
		Cache:  cch,
		Keyer:  keyer,
		Logger: c.Logger,
	})

	return srv.ListenAndServe(ctx, addr)
}

// serveCache picks the cache backend: Redis when configured, the local
// file cache otherwise. Redis keys get an application prefix so the
// instance can share a database.
func (c *CLI) serveCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer, error) {
	keyer := cache.NewDefaultKeyer()

	if noCache {
		return cache.NewNullCache(), keyer, nil
	}

	if addr := os.Getenv(envRedisAddr); addr != "" {
		c.Logger.Info("Using Redis cache", "addr", addr)
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: addr})
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return rc, cache.NewScopedKeyer(keyer, appName+":"), nil
	}

	fc, err := newCache(false)
	if err != nil {
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}
	return fc, keyer, nil
}

// serveStore picks the document store: MongoDB when configured, memory
// otherwise.
func (c *CLI) serveStore(ctx context.Context) (store.Store, error) {
	if uri := os.Getenv(envMongoURI); uri != "" {
		c.Logger.Info("Using MongoDB store", "uri", uri)
		ms, err := store.NewMongoStore(ctx, store.MongoConfig{URI: uri})
		if err != nil {
			return nil, fmt.Errorf("connect mongodb: %w", err)
		}
		return ms, nil
	}

	c.Logger.Info("Using in-memory store")
	return store.NewMemoryStore(), nil
}
