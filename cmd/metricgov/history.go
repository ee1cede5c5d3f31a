package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/metricgov/metricgov/pkg/analyzer/retention"
	"github.com/metricgov/metricgov/pkg/analyzer/storage"
	"github.com/metricgov/metricgov/pkg/cli"
	"github.com/metricgov/metricgov/pkg/config"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect stored analysis runs",
	Long: `Inspect the history of cardinality analysis runs recorded with
"metricgov analyze --save". The storage backend and retention policy
come from the configuration file.`,
}

var historyListFlags struct {
	limit int
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored analysis runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := historyStorage()
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns(cmd.Context(), historyListFlags.limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no analysis runs stored")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RUN ID\tGENERATED\tMETRICS\tCOMBINATIONS")
		for _, run := range runs {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\n",
				run.RunID,
				run.GeneratedAt.Format(time.RFC3339),
				run.TotalUniqueMetrics,
				run.TotalPossibleCustomMetrics,
			)
		}
		return w.Flush()
	},
}

var historyShowFlags struct {
	format string
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the full breakdown of a stored run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cli.ParseOutputFormat(historyShowFlags.format)
		if err != nil {
			return err
		}

		store, err := historyStorage()
		if err != nil {
			return err
		}
		defer store.Close()

		result, err := store.GetRun(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return cli.NewFormatter(format).FormatTo(os.Stdout, result)
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Apply the retention policy now",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
		if err != nil {
			return err
		}

		store, err := openStorage(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		pruner := retention.NewPruner(store, cfg.History.Retention, nil)
		deleted, err := pruner.Prune(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("pruned %d analysis run(s)\n", deleted)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyPruneCmd)

	historyListCmd.Flags().IntVarP(&historyListFlags.limit, "limit", "n", 20, "maximum runs to list")
	historyShowCmd.Flags().StringVar(&historyShowFlags.format, "format", "text", "output format: text, json, yaml")
}

// historyStorage opens the configured history backend.
func historyStorage() (storage.Storage, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, err
	}
	return openStorage(cfg)
}
