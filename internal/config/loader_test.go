package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, root, content string) {
	t.Helper()
	dir := filepath.Join(root, ".contextmap")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(content), 0644))
}

func TestLoad_DefaultsWhenNoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromDir(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "context-map.md", cfg.Output.File)
	assert.Equal(t, 3, cfg.Output.LayoutDepth)
	assert.True(t, cfg.Cache.Enabled)
	assert.Empty(t, cfg.Paths.Ignore)
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, root, `
paths:
  ignore:
    - "**/*.test.ts"
output:
  file: docs/map.md
  layout_depth: 5
cache:
  enabled: false
`)

	cfg, err := LoadFromDir(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"**/*.test.ts"}, cfg.Paths.Ignore)
	assert.Equal(t, "docs/map.md", cfg.Output.File)
	assert.Equal(t, 5, cfg.Output.LayoutDepth)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "output:\n  file: from-file.md\n")

	t.Setenv("CONTEXTMAP_OUTPUT_FILE", "from-env.md")

	cfg, err := LoadFromDir(root)
	require.NoError(t, err)

	assert.Equal(t, "from-env.md", cfg.Output.File)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, root, "output: [unbalanced\n")

	_, err := LoadFromDir(root)
	assert.Error(t, err)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Output.LayoutDepth = 0
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Output.File = ""
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Paths.Ignore = []string{"[unclosed"}
	assert.Error(t, Validate(cfg))
}

func TestCacheLocation_DefaultAndOverride(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, filepath.Join("/repo", ".contextmap", "cache.db"), cfg.CacheLocation("/repo"))

	cfg.Cache.Location = "/var/cache/contextmap.db"
	assert.Equal(t, "/var/cache/contextmap.db", cfg.CacheLocation("/repo"))
}

func TestOutputPath_RelativeAndAbsolute(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, filepath.Join("/repo", "context-map.md"), cfg.OutputPath("/repo"))

	cfg.Output.File = "/tmp/out.md"
	assert.Equal(t, "/tmp/out.md", cfg.OutputPath("/repo"))
}
