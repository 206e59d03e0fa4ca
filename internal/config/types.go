package config

import "time"

// Config represents the complete .vitals.yaml configuration file.
type Config struct {
	// Interval is how often the collector samples system metrics.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Sort is the initial process table ordering: cpu, mem, or pid.
	Sort string `yaml:"sort" mapstructure:"sort"`

	// ProcessLimit caps how many processes the table shows.
	// Zero means fit to the terminal height.
	ProcessLimit int `yaml:"process_limit" mapstructure:"process_limit"`

	// History is how many samples the sparkline buffers keep.
	History int `yaml:"history" mapstructure:"history"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Interval:     time.Second,
		Sort:         "cpu",
		ProcessLimit: 0,
		History:      60,
	}
}
