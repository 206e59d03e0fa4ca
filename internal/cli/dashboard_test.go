package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitals-sh/vitals/internal/config"
	"github.com/vitals-sh/vitals/internal/errors"
)

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name    string
		opts    dashboardOptions
		check   func(t *testing.T, cfg *config.Config)
		wantErr bool
	}{
		{
			name: "no flags keeps config values",
			opts: dashboardOptions{},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, time.Second, cfg.Interval)
				assert.Equal(t, "cpu", cfg.Sort)
			},
		},
		{
			name: "interval flag overrides",
			opts: dashboardOptions{Interval: "2s", intervalChanged: true},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 2*time.Second, cfg.Interval)
			},
		},
		{
			name:    "malformed interval",
			opts:    dashboardOptions{Interval: "fast", intervalChanged: true},
			wantErr: true,
		},
		{
			name:    "interval below minimum",
			opts:    dashboardOptions{Interval: "10ms", intervalChanged: true},
			wantErr: true,
		},
		{
			name: "sort flag overrides",
			opts: dashboardOptions{Sort: "mem", sortChanged: true},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "mem", cfg.Sort)
			},
		},
		{
			name:    "invalid sort flag",
			opts:    dashboardOptions{Sort: "priority", sortChanged: true},
			wantErr: true,
		},
		{
			name: "limit flag overrides",
			opts: dashboardOptions{ProcessLimit: 15, limitChanged: true},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 15, cfg.ProcessLimit)
			},
		},
		{
			name:    "negative limit flag",
			opts:    dashboardOptions{ProcessLimit: -1, limitChanged: true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()

			err := applyOverrides(cfg, tt.opts)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_NoFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoadConfig_ExplicitMissingFile(t *testing.T) {
	_, err := loadConfig("/nonexistent/vitals.yaml")

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}
