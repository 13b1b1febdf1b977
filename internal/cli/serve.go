package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitlanes/gitlanes/internal/api"
	"github.com/gitlanes/gitlanes/pkg/cache"
	"github.com/gitlanes/gitlanes/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

Exposes the layout pipeline over HTTP. With --redis, layouts and
artifacts are cached in Redis so multiple instances share a cache;
otherwise the local file cache is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Config.Serve.Addr, "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", c.Config.Serve.RedisAddr, "redis address for shared caching (e.g. localhost:6379)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the cache backend and runs the server until ctx is
// cancelled.
func (c *CLI) runServe(ctx context.Context, addr, redisAddr string, noCache bool) error {
	logger := loggerFromContext(ctx)

	backend, err := c.serveCache(ctx, redisAddr, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	runner := pipeline.NewRunner(backend, nil, logger)
	defer runner.Close()

	server := api.NewServer(runner, logger)
	return server.ListenAndServe(ctx, addr)
}

func (c *CLI) serveCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		return cache.NewRedisCache(ctx, redisAddr)
	}
	return c.newCache(false)
}
