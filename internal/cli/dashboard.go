package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/vitals-sh/vitals/internal/collector"
	"github.com/vitals-sh/vitals/internal/config"
	"github.com/vitals-sh/vitals/internal/errors"
	"github.com/vitals-sh/vitals/internal/logger"
	"github.com/vitals-sh/vitals/internal/metrics"
	"github.com/vitals-sh/vitals/internal/monitor"
)

// minInterval guards against sample rates fast enough to make the
// dashboard itself the top CPU consumer.
const minInterval = 100 * time.Millisecond

// dashboardOptions holds the resolved root command flags.
type dashboardOptions struct {
	ConfigPath   string
	Interval     string
	Sort         string
	ProcessLimit int
	NoColor      bool

	intervalChanged bool
	sortChanged     bool
	limitChanged    bool
}

// dashboardCommand starts the TUI dashboard.
func dashboardCommand(opts dashboardOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	if err := applyOverrides(cfg, opts); err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrTerminal,
			"Standard output is not a terminal",
			"Run vitals from an interactive terminal, not a pipe or redirect")
	}

	if opts.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	// Sort key is validated by config.Validate above.
	sortKey, _ := metrics.ParseSortKey(cfg.Sort)

	// The TUI owns the terminal, so the collector logs nothing. Set
	// VITALS_DEBUG and redirect stderr to capture diagnostics instead.
	log := logger.Noop()
	if os.Getenv("VITALS_DEBUG") != "" {
		log = logger.NewEnvLogger("[collector]")
	}

	c := collector.New(metrics.NewSystemProvider(), cfg.Interval,
		collector.WithSortKey(sortKey),
		collector.WithLogger(log),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	model := monitor.NewModel(c, sortKey, cfg.History).LimitProcesses(cfg.ProcessLimit)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"Dashboard exited unexpectedly",
			"Check that your terminal supports the alternate screen")
	}

	return nil
}

// loadConfig resolves the config file and loads it, falling back to
// defaults plus environment overrides when no file exists.
func loadConfig(explicit string) (*config.Config, error) {
	if explicit != "" {
		path, err := config.Find(explicit)
		if err != nil {
			return nil, err
		}
		return config.Load(path)
	}
	return config.LoadOrDefault()
}

// applyOverrides layers explicit command-line flags over the loaded
// config, then re-validates the result.
func applyOverrides(cfg *config.Config, opts dashboardOptions) error {
	if opts.intervalChanged {
		parsed, err := time.ParseDuration(opts.Interval)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Invalid interval: %s", opts.Interval),
				"Use a valid duration like 500ms, 1s, or 5s")
		}
		cfg.Interval = parsed
	}

	if opts.sortChanged {
		cfg.Sort = opts.Sort
	}

	if opts.limitChanged {
		cfg.ProcessLimit = opts.ProcessLimit
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	if cfg.Interval < minInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval too short: %s", cfg.Interval),
			fmt.Sprintf("Minimum interval is %s to keep sampling overhead low", minInterval))
	}

	return nil
}
