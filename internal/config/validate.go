package config

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Validate checks a loaded configuration for values that would fail later
// in the run, so bad input surfaces at startup instead of mid-scan.
func Validate(cfg *Config) error {
	if cfg.Output.File == "" {
		return fmt.Errorf("output.file must not be empty")
	}

	if cfg.Output.LayoutDepth < 1 {
		return fmt.Errorf("output.layout_depth must be at least 1, got %d", cfg.Output.LayoutDepth)
	}

	for _, pattern := range cfg.Paths.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
	}

	return nil
}
