// Package cli implements the buntab command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"buntab/pkg/buildinfo"
	"buntab/pkg/cache"
	"buntab/pkg/config"
	"buntab/pkg/suggest"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
	redisAddr  string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "buntab",
		Short:        "Buntab suggests completions for bun command lines",
		Long:         `Buntab turns a partially-typed bun command line into completion suggestions: subcommands, flags, registry packages and versions, installed dependencies, linked packages, and run scripts.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file path")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the response cache")
	root.PersistentFlags().StringVar(&c.redisAddr, "redis", "", "redis address for a shared response cache")

	// Register all subcommands
	root.AddCommand(c.suggestCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.versionsCommand())
	root.AddCommand(c.depsCommand())
	root.AddCommand(c.linksCommand())
	root.AddCommand(c.scriptsCommand())
	root.AddCommand(c.specCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newEngine creates a suggestion engine from the loaded config and the
// selected cache backend.
func (c *CLI) newEngine(ctx context.Context) (*suggest.Engine, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	store, err := c.newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return suggest.New(cfg, store, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	if c.redisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: c.redisAddr})
	}
	dir, err := c.cacheDir(cfg)
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir resolves the file cache directory: the configured one if set,
// otherwise the XDG default (~/.cache/buntab/).
func (c *CLI) cacheDir(cfg config.Config) (string, error) {
	if cfg.CacheDir != "" {
		return cfg.CacheDir, nil
	}
	return config.DefaultCacheDir()
}
