package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/levelupinstalling/levelup/internal/config"
	"github.com/levelupinstalling/levelup/internal/content"
	"github.com/levelupinstalling/levelup/internal/logging"
	"github.com/levelupinstalling/levelup/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `levelup init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// loadContent loads the site content named by cfg, falling back to the
// built-in content when no file is configured or present.
func loadContent(cfg *config.Config) (*content.Content, error) {
	c, err := content.Load(cfg.ContentFile)
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content %s: %w", cfg.ContentFile, err)
	}
	return c, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log.Level, verbose, cfg.Log.Development)
}

// siteOptions maps the config onto the site's rendering options.
func siteOptions(cfg *config.Config, logger *zap.Logger) site.Options {
	return site.Options{
		ScrollThreshold: cfg.ScrollThreshold,
		NavBreakpoint:   cfg.NavBreakpoint,
		AssetsDir:       cfg.Assets.Dir,
		Assets: site.AssetFilter{
			Include: cfg.Assets.Include,
			Exclude: cfg.Assets.Exclude,
		},
		Logger: logger,
	}
}
