package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vitals-sh/vitals/internal/config"
	"github.com/vitals-sh/vitals/internal/errors"
)

// configHeader is prepended to generated config files.
const configHeader = `# vitals configuration
# All keys are optional; missing keys use the defaults shown here.
# Every key can also be set via environment, e.g. VITALS_INTERVAL=2s.

# interval: how often to sample system metrics
# sort: initial process ordering (cpu, mem, or pid)
# process_limit: max rows in the process table (0 fits the screen)
# history: samples kept for the sparkline graphs

`

// initCommand writes a starter .vitals.yaml in the current directory.
func initCommand(force bool) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Config file already exists: %s", configPath),
			"Use --force to overwrite")
	}

	// Durations marshal as nanosecond integers, so the starter file
	// carries the interval as a human-readable string instead.
	defaults := config.DefaultConfig()
	starter := struct {
		Interval     string `yaml:"interval"`
		Sort         string `yaml:"sort"`
		ProcessLimit int    `yaml:"process_limit"`
		History      int    `yaml:"history"`
	}{
		Interval:     defaults.Interval.String(),
		Sort:         defaults.Sort,
		ProcessLimit: defaults.ProcessLimit,
		History:      defaults.History,
	}

	data, err := yaml.Marshal(starter)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	content := configHeader + string(data)

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Printf("Created %s\n", configPath)
	fmt.Println("Run 'vitals' to start the dashboard.")

	return nil
}
