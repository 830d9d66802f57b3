// Package config holds the explicit configuration for suggestion lookups.
//
// All paths and hosts are resolved here once and passed into the lookup
// functions, so the library packages never read ambient global state and
// stay testable with injected values.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"buntab/pkg/errors"
)

const appName = "buntab"

// Default hosts for the npm registry and the npms.io search API.
const (
	DefaultRegistry = "https://registry.npmjs.org"
	DefaultSearch   = "https://api.npms.io"
)

// MaxResults caps the number of results requested from the search endpoints.
const MaxResults = 20

// Duration wraps time.Duration for TOML decoding ("1h30m" style values).
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Config holds all settings for suggestion lookups.
type Config struct {
	// Registry is the package metadata host.
	Registry string `toml:"registry"`

	// Search is the package search host.
	Search string `toml:"search"`

	// InstallRoot is the bun install root containing global packages.
	// Resolved from $BUN_INSTALL when empty, falling back to ~/.bun.
	InstallRoot string `toml:"install_root"`

	// CacheDir is the response cache directory.
	// Defaults to the XDG cache location when empty.
	CacheDir string `toml:"cache_dir"`

	// CacheTTL is the time-to-live for cached registry responses.
	CacheTTL Duration `toml:"cache_ttl"`
}

// Default returns a Config with all defaults applied, including the
// environment-resolved install root.
func Default() Config {
	return Config{
		Registry:    DefaultRegistry,
		Search:      DefaultSearch,
		InstallRoot: installRoot(),
		CacheTTL:    Duration{24 * time.Hour},
	}
}

// Load reads a TOML config file and merges it over the defaults.
// A missing file is not an error; defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if cfg.InstallRoot == "" {
		cfg.InstallRoot = installRoot()
	}
	return cfg, nil
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/buntab/config.toml).
func DefaultPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// DefaultCacheDir returns the cache directory using the XDG standard
// (~/.cache/buntab/).
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// GlobalDir returns the directory holding the global package manifest.
func (c Config) GlobalDir() string {
	return filepath.Join(c.InstallRoot, "install", "global")
}

// GlobalModulesDir returns the node_modules directory for globally linked
// packages.
func (c Config) GlobalModulesDir() string {
	return filepath.Join(c.GlobalDir(), "node_modules")
}

// installRoot resolves the bun install root from $BUN_INSTALL, falling back
// to ~/.bun.
func installRoot() string {
	if root := os.Getenv("BUN_INSTALL"); root != "" {
		return root
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bun")
}
