package config

import "path/filepath"

// Config is the complete contextmap configuration. It can be loaded from
// .contextmap/config.yml with environment variable overrides.
type Config struct {
	Paths  PathsConfig  `yaml:"paths" mapstructure:"paths"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
}

// PathsConfig narrows which files are scanned. The built-in directory
// exclusions (.git, node_modules, dist, build, target, hidden dirs) always
// apply; Ignore adds glob patterns matched against relative slash paths.
type PathsConfig struct {
	Ignore []string `yaml:"ignore" mapstructure:"ignore"`
}

// OutputConfig controls the rendered context map.
type OutputConfig struct {
	File        string `yaml:"file" mapstructure:"file"`                 // output path relative to root
	LayoutDepth int    `yaml:"layout_depth" mapstructure:"layout_depth"` // repository layout section depth
}

// CacheConfig controls the content-hash extraction cache.
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Location string `yaml:"location" mapstructure:"location"` // override default <root>/.contextmap/cache.db
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Ignore: []string{},
		},
		Output: OutputConfig{
			File:        "context-map.md",
			LayoutDepth: 3,
		},
		Cache: CacheConfig{
			Enabled:  true,
			Location: "",
		},
	}
}

// CacheLocation resolves the cache database path for a scan root.
func (c *Config) CacheLocation(root string) string {
	if c.Cache.Location != "" {
		return c.Cache.Location
	}
	return filepath.Join(root, ".contextmap", "cache.db")
}

// OutputPath resolves the rendered map's path for a scan root.
func (c *Config) OutputPath(root string) string {
	if filepath.IsAbs(c.Output.File) {
		return c.Output.File
	}
	return filepath.Join(root, c.Output.File)
}
