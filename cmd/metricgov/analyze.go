package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/metricgov/metricgov/pkg/analyzer"
	"github.com/metricgov/metricgov/pkg/analyzer/storage"
	"github.com/metricgov/metricgov/pkg/cli"
	"github.com/metricgov/metricgov/pkg/config"
	"github.com/metricgov/metricgov/pkg/schema/builder"
	"github.com/metricgov/metricgov/pkg/validator"
)

var analyzeFlags struct {
	files  []string
	dir    string
	format string
	save   bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Estimate the cardinality cost of a schema",
	Long: `Compile schema files and estimate the number of billable custom
metrics they can produce: per-metric tag-combination counts, backend
series expansion, and schema-wide totals.

Exit codes:
  0  analysis completed
  1  an input file is missing or unreadable
  2  the schema failed structural validation

Examples:
  # Analyze a single schema file
  metricgov analyze --file metrics-schema.yaml

  # Analyze every schema in a directory, as JSON
  metricgov analyze --dir schemas/ --format json

  # Analyze and record the run in history storage
  metricgov analyze --file metrics-schema.yaml --save`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringSliceVarP(&analyzeFlags.files, "file", "f", nil, "schema file to analyze (repeatable)")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.dir, "dir", "d", "", "directory of schema files")
	analyzeCmd.Flags().StringVar(&analyzeFlags.format, "format", "text", "output format: text, json, yaml")
	analyzeCmd.Flags().BoolVar(&analyzeFlags.save, "save", false, "record the run in history storage")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(analyzeFlags.format)
	if err != nil {
		return err
	}

	files, err := collectSchemaFiles(analyzeFlags.files, analyzeFlags.dir)
	if err != nil {
		return cli.NewExitError(cli.ExitInputError, err)
	}

	compiled, err := compileSchema(files)
	if err != nil {
		return err
	}

	result := analyzer.New(compiled.Root).Analyze()

	if analyzeFlags.save {
		if err := saveRun(cmd.Context(), result); err != nil {
			return fmt.Errorf("failed to save analysis run: %w", err)
		}
		fmt.Fprintf(os.Stderr, "analysis run %s saved\n", result.RunID)
	}

	return cli.NewFormatter(format).FormatTo(os.Stdout, result)
}

// collectSchemaFiles resolves the --file and --dir flags into a list of
// schema paths, verifying each exists.
func collectSchemaFiles(files []string, dir string) ([]string, error) {
	out := append([]string(nil), files...)

	if dir != "" {
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				return nil, fmt.Errorf("failed to list schema files: %w", err)
			}
			out = append(out, matches...)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no schema files specified: use --file or --dir")
	}

	for _, path := range out {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("schema file %q is not readable: %w", path, err)
		}
	}

	return out, nil
}

// compileSchema parses the files and runs structural validation,
// classifying failures into exit codes.
func compileSchema(files []string) (*builder.Schema, error) {
	parser := builder.NewParser()
	compiled, err := parser.ParseMulti(files)
	if err != nil {
		return nil, cli.NewExitError(cli.ExitValidationError, err)
	}

	defects := validator.NewStructuralValidator().Validate(compiled.Root)
	defects.Errors = append(defects.Errors, compiled.Defects.Errors...)
	if defects.HasErrors() {
		for _, e := range defects.Errors {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return nil, cli.NewExitError(cli.ExitValidationError,
			fmt.Errorf("schema validation failed with %d defect(s)", defects.Count()))
	}

	return compiled, nil
}

// saveRun opens the configured history backend and records the result.
func saveRun(ctx context.Context, result *analyzer.Result) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return err
	}

	store, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.SaveRun(ctx, result)
}

// openStorage constructs the history backend from configuration.
func openStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.History.Backend {
	case "memory":
		return storage.NewMemoryStorage(), nil
	case "sqlite":
		sqliteCfg := storage.DefaultSQLiteConfig()
		sqliteCfg.Path = cfg.History.SQLitePath
		return storage.NewSQLiteStorage(sqliteCfg)
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.History.Backend)
	}
}
