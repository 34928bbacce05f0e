package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config carries every externally-tunable setting. Nothing in the pipeline
// reads process-wide constants; the original script's hardcoded paths all
// live here.
type Config struct {
	UVPath        string  `toml:"uv_path"`
	TrackingStore string  `toml:"tracking_store"`
	WorkspaceRoot string  `toml:"workspace_root"`
	CacheDir      string  `toml:"cache_dir"`
	ConflictDir   string  `toml:"conflict_dir"`
	MaxLineLength int     `toml:"max_line_length"`
	Exclude       Exclude `toml:"exclude"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

// Default returns the built-in configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	home, _ := os.UserHomeDir()

	if c.UVPath == "" {
		c.UVPath = "uv"
	}
	if c.WorkspaceRoot == "" {
		c.WorkspaceRoot = home
	}
	if c.TrackingStore == "" {
		c.TrackingStore = filepath.Join(c.WorkspaceRoot, ".uplift", "repos.yaml")
	}
	if c.CacheDir == "" {
		c.CacheDir = filepath.Join(home, ".cache", "uplift", "uv")
	}
	if c.ConflictDir == "" {
		c.ConflictDir = "before"
	}
	if c.MaxLineLength == 0 {
		c.MaxLineLength = 88
	}
	if len(c.Exclude.Dirs) == 0 {
		c.Exclude.Dirs = []string{
			".venv", "__pycache__", ".git",
			".mypy_cache", ".pytest_cache", ".ruff_cache",
		}
	}
}
