package config

import (
	"fmt"

	"github.com/vitals-sh/vitals/internal/errors"
	"github.com/vitals-sh/vitals/internal/metrics"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Interval <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Sample interval must be positive, got %s", cfg.Interval),
			"Set 'interval' to a duration like 1s or 500ms")
	}

	if _, ok := metrics.ParseSortKey(cfg.Sort); !ok {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown sort key '%s'", cfg.Sort),
			"Set 'sort' to cpu, mem, or pid")
	}

	if cfg.ProcessLimit < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Process limit cannot be negative, got %d", cfg.ProcessLimit),
			"Set 'process_limit' to 0 to fit the table to the screen")
	}

	if cfg.History <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("History size must be positive, got %d", cfg.History),
			"Set 'history' to the number of samples to keep, e.g. 60")
	}

	return nil
}
