package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/chemistry"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/config"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/logging"
)

// errInvalid makes the process exit non-zero without printing anything more
var errInvalid = errors.New("problem has errors")

// app is the state shared by all subcommands, filled before any of them runs
type app struct {
	configPath string
	cfg        *config.Config
	logger     logging.Logger
	catalog    *chemistry.Catalog
}

func rootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "pfdcheck",
		Short: "Check process flow diagrams and their balance equations",
		Long: `pfdcheck validates a problem file: a process flow diagram plus the
material and energy balance equations written for it.

Settings come from ./pfdcheck.yaml (or --config) and PFDCHECK_* variables.

Examples:
  pfdcheck validate separator.yaml
  pfdcheck validate separator.yaml --format json
  pfdcheck validate -w 8 problems/*.yaml
  pfdcheck abstract separator.yaml
  pfdcheck compounds --element carbon`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./pfdcheck.yaml)")
	cmd.PersistentFlags().String("format", "", "output format: text or json")
	cmd.PersistentFlags().Bool("downstream-only", false, "grow abstractions along outgoing streams only")

	cmd.AddCommand(a.validateCmd())
	cmd.AddCommand(a.abstractCmd())
	cmd.AddCommand(a.compoundsCmd())
	return cmd
}

// load reads the config, applies explicitly set flags and opens the catalog
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("downstream-only") {
		cfg.DownstreamOnly, _ = flags.GetBool("downstream-only")
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile, _ = flags.GetString("metrics-file")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = cfg.Logger(cmd.ErrOrStderr())
	a.catalog = catalog
	return nil
}
