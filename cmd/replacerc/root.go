package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/replacerc/cmd/replacerc/commands"
	"github.com/walteh/replacerc/cmd/replacerc/opts"
)

// newRootCmd builds the root command with shared flags and subcommands
func newRootCmd() *cobra.Command {
	o := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:          "replacerc",
		Short:        "Reversible, template-driven search and replace across a file tree",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(o.Debug)
		},
	}

	addRootFlags(cmd, o)

	cmd.AddCommand(
		commands.NewApplyCmd(o),
		commands.NewReverseCmd(o),
		commands.NewValidateCmd(o),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", ".replacerc.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&o.RootDir, "root", "", "override the tree root from the config")
	cmd.PersistentFlags().BoolVar(&o.Async, "async", false, "rewrite files concurrently")
	cmd.PersistentFlags().IntVar(&o.Workers, "workers", 0, "concurrency bound when --async is set")
}

// setupLogging configures zerolog based on flags
func setupLogging(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
