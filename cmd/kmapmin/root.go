package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// newRootCmd builds the kmapmin command tree, grounded on the teacher's
// main.go flag set (verbose mode, a single subcommand doing the real
// work) but reimplemented with cobra/pflag instead of the stdlib flag
// package, per SPEC_FULL.md §4.9.
func newRootCmd() *cobra.Command {
	var verbose bool
	logger := logrus.New()

	cmd := &cobra.Command{
		Use:          "kmapmin",
		Short:        "Quine-McCluskey Boolean function minimizer",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "raise log level to debug")
	cmd.AddCommand(newMinimizeCmd(logger))
	return cmd
}
