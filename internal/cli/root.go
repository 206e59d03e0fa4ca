package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	configFlag   string
	intervalFlag string
	sortFlag     string
	limitFlag    int
	noColorFlag  bool
	initForce    bool
)

// rootCmd runs the dashboard when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "vitals",
	Short: "Live system resource dashboard",
	Long: `vitals is a terminal dashboard showing live CPU, memory, disk,
network, and process metrics for the local machine.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  k           Kill selected process (with confirmation)
  /           Filter processes by name
  s / Tab     Cycle sort order (CPU/memory/PID)
  up/down     Move selection
  ?           Show help

Examples:
  vitals
  vitals --interval 2s
  vitals --sort mem`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(dashboardOptions{
			ConfigPath:      configFlag,
			Interval:        intervalFlag,
			Sort:            sortFlag,
			ProcessLimit:    limitFlag,
			NoColor:         noColorFlag,
			intervalChanged: cmd.Flags().Changed("interval"),
			sortChanged:     cmd.Flags().Changed("sort"),
			limitChanged:    cmd.Flags().Changed("limit"),
		})
	},
}

// initCmd creates a new .vitals.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .vitals.yaml configuration",
	Long: `Initialize a new vitals configuration file.

Creates a .vitals.yaml file in the current directory with the default
settings written out and commented, ready to edit.

Examples:
  vitals init
  vitals init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for vitals.

Examples:
  # Bash
  vitals completion bash > /etc/bash_completion.d/vitals

  # Zsh
  vitals completion zsh > "${fpath[1]}/_vitals"

  # Fish
  vitals completion fish > ~/.config/fish/completions/vitals.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		default:
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")

	rootCmd.Flags().StringVar(&intervalFlag, "interval", "", "sample interval (e.g., 500ms, 1s, 5s)")
	rootCmd.Flags().StringVar(&sortFlag, "sort", "", "process sort order: cpu, mem, or pid")
	rootCmd.Flags().IntVar(&limitFlag, "limit", 0, "max process rows (0 fits the screen)")
	rootCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")

	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
