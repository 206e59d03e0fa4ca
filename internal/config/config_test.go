package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitals-sh/vitals/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, "cpu", cfg.Sort)
	assert.Equal(t, 0, cfg.ProcessLimit)
	assert.Equal(t, 60, cfg.History)
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
interval: 2s
sort: mem
process_limit: 25
history: 120
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Interval)
	assert.Equal(t, "mem", cfg.Sort)
	assert.Equal(t, 25, cfg.ProcessLimit)
	assert.Equal(t, 120, cfg.History)
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "sort: pid\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "pid", cfg.Sort)
	assert.Equal(t, time.Second, cfg.Interval, "unset keys fall back to defaults")
	assert.Equal(t, 60, cfg.History)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "interval: [not: valid\n")

	_, err := Load(path)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoad_InvalidSortKey(t *testing.T) {
	path := writeConfig(t, "sort: priority\n")

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "priority")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("VITALS_INTERVAL", "250ms")
	t.Setenv("VITALS_SORT", "pid")

	path := writeConfig(t, "interval: 5s\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Interval, "env beats file")
	assert.Equal(t, "pid", cfg.Sort)
}

func TestFind_ExplicitPath(t *testing.T) {
	path := writeConfig(t, "sort: cpu\n")

	found, err := Find(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestFind_ExplicitPathMissing(t *testing.T) {
	_, err := Find(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFind_CurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("sort: cpu\n"), 0644))
	t.Chdir(dir)

	found, err := Find("")
	require.NoError(t, err)
	assert.Equal(t, ConfigFileName, filepath.Base(found))
}

func TestFind_ParentDirectory(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("sort: cpu\n"), 0644))

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	t.Chdir(nested)

	found, err := Find("")
	require.NoError(t, err)
	assert.Equal(t, ConfigFileName, filepath.Base(found))
}

func TestLoadOrDefault_NoConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadOrDefault()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"zero interval", func(c *Config) { c.Interval = 0 }, "interval"},
		{"negative interval", func(c *Config) { c.Interval = -time.Second }, "interval"},
		{"bad sort key", func(c *Config) { c.Sort = "name" }, "sort"},
		{"negative process limit", func(c *Config) { c.ProcessLimit = -1 }, "limit"},
		{"zero history", func(c *Config) { c.History = 0 }, "History"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
