// Package cli implements the radar command line: the HTTP server, terminal
// reports over a seeded dataset, and seed file validation.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tbourn/priority-radar/internal/calendar"
	"github.com/tbourn/priority-radar/internal/config"
	"github.com/tbourn/priority-radar/internal/sysutil"
)

// Options tunes the command tree. Zero values use the environment.
type Options struct {
	Version string
	// Calendar overrides the one described by the configuration.
	Calendar *calendar.Calendar
	// LogOutput receives structured logs; nil is stderr.
	LogOutput io.Writer
}

type app struct {
	opts Options
	cfg  config.Config
}

func (a *app) calendar() *calendar.Calendar {
	if a.opts.Calendar != nil {
		return a.opts.Calendar
	}
	return a.cfg.Calendar()
}

// NewRootCmd builds the radar command tree.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:   "radar",
		Short: "Priority Radar - daily priorities, check-ins and team insights",
		Long: `Priority Radar tracks each team member's daily priorities and check-ins
and derives personal, team and weekly insights from them.

Configuration comes from the environment, an optional .env file (ENV_FILE)
and an optional YAML/JSON config file (CONFIG_FILE).

Examples:
  # Run the HTTP API
  radar serve

  # Print the team dashboard for the built-in dataset
  radar report team

  # Validate a seed file before deploying it
  radar seed check ./seed.yaml`,
		Version:       opts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			a.cfg = cfg
			sysutil.SetupLogger(cfg.LogLevel, cfg.LogPretty, opts.LogOutput)
			return nil
		},
	}

	root.AddCommand(newServeCmd(a), newReportCmd(a), newSeedCmd(a))
	return root
}

// Execute runs the command tree against os.Args and returns the exit code.
func Execute(version string) int {
	cmd := NewRootCmd(Options{Version: version})
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
