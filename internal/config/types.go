package config

import "time"

// Config is the top-level levelup configuration, corresponding to .levelup.yml.
type Config struct {
	Port            int           `yaml:"port" koanf:"port"`
	ContentFile     string        `yaml:"content_file" koanf:"content_file"`
	OutputDir       string        `yaml:"output_dir" koanf:"output_dir"`
	ScrollThreshold float64       `yaml:"scroll_threshold" koanf:"scroll_threshold"`
	NavBreakpoint   int           `yaml:"nav_breakpoint" koanf:"nav_breakpoint"`
	SessionTTL      time.Duration `yaml:"session_ttl" koanf:"session_ttl"`
	AllowAllOrigins bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	AllowedOrigins  []string      `yaml:"allowed_origins" koanf:"allowed_origins"`
	WatchContent    bool          `yaml:"watch_content" koanf:"watch_content"`
	Assets          AssetsConfig  `yaml:"assets" koanf:"assets"`
	Log             LogConfig     `yaml:"log" koanf:"log"`
}

// AssetsConfig selects the static files served under /assets and copied by
// the static export.
type AssetsConfig struct {
	Dir     string   `yaml:"dir" koanf:"dir"`
	Include []string `yaml:"include" koanf:"include"`
	Exclude []string `yaml:"exclude" koanf:"exclude"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `yaml:"level" koanf:"level"`
	Development bool   `yaml:"development" koanf:"development"`
}
