package cli

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitals-sh/vitals/internal/config"
	"github.com/vitals-sh/vitals/internal/errors"
)

func TestInitCommand_CreatesLoadableConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, initCommand(false))

	cfg, err := config.Load(config.ConfigFileName)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg, "generated file round-trips to defaults")

	data, err := os.ReadFile(config.ConfigFileName)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# vitals configuration")
	assert.Contains(t, string(data), "interval: 1s", "interval is written human-readable")
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, initCommand(false))

	err := initCommand(false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "--force")
}

func TestInitCommand_ForceOverwrites(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, os.WriteFile(config.ConfigFileName, []byte("sort: pid\n"), 0644))
	require.NoError(t, initCommand(true))

	cfg, err := config.Load(config.ConfigFileName)
	require.NoError(t, err)
	assert.Equal(t, "cpu", cfg.Sort, "force rewrites the file with defaults")
	assert.Equal(t, time.Second, cfg.Interval)
}
