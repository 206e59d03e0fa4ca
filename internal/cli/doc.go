// Package cli implements the vitals command-line interface.
//
// The root command starts the dashboard directly, with subcommands for
// supporting operations:
//
//	vitals              - Start the live dashboard
//	vitals init         - Create a .vitals.yaml config file
//	vitals version      - Show version information
//	vitals completion   - Generate shell completions
//
// Flags layer over the config file: --interval, --sort, and --limit
// override the corresponding config keys for a single run.
package cli
