package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metricgov/metricgov/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "metricgov",
	Short: "Metricgov - schema-governed metrics toolchain",
	Long: `Metricgov compiles a declarative YAML schema of metric namespaces,
tags, and definitions, then puts it to work three ways:

  - Validate metric emissions at runtime against the schema
  - Lint schema files for structural defects before deployment
  - Estimate the billable cardinality of everything the schema declares

For more information, visit: https://github.com/metricgov/metricgov`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Commands that classify their failures
// return a cli.ExitError carrying the process exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
