package config

import (
	"time"

	"github.com/levelupinstalling/levelup/internal/interaction"
)

// DefaultConfigFile is where init writes and every command reads.
const DefaultConfigFile = ".levelup.yml"

// DefaultAssetExcludes are glob patterns never served or exported.
var DefaultAssetExcludes = []string{
	"**/.*",
	"**/*.psd",
	"**/*.sketch",
	"**/Thumbs.db",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:            8080,
		ContentFile:     "content.yml",
		OutputDir:       "dist",
		ScrollThreshold: interaction.DefaultScrollThreshold,
		NavBreakpoint:   768,
		SessionTTL:      30 * time.Minute,
		AllowedOrigins:  []string{"http://localhost:*", "http://127.0.0.1:*"},
		Assets: AssetsConfig{
			Dir:     "public",
			Include: []string{"**/*"},
			Exclude: append([]string(nil), DefaultAssetExcludes...),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
