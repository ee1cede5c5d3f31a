package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metricgov/metricgov/pkg/cli"
	"github.com/metricgov/metricgov/pkg/schema/builder"
	schemaErrors "github.com/metricgov/metricgov/pkg/schema/errors"
	"github.com/metricgov/metricgov/pkg/validator"
)

var lintFlags struct {
	files  []string
	dir    string
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate schema files",
	Long: `Validate metric schema files for syntax and structural errors.

The lint command parses each schema file and performs full validation:
  - YAML syntax validation
  - Tag and metric structure validation (types, restrictions, patterns)
  - Tag reference validation (allowed and required tags must resolve)

Exit codes:
  0  all files valid
  1  an input file is missing or unreadable
  2  at least one file failed validation

Examples:
  # Lint a single file
  metricgov lint --file metrics-schema.yaml

  # Lint a directory
  metricgov lint --dir schemas/

  # JSON output for CI/CD
  metricgov lint --file metrics-schema.yaml --format json`,
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringSliceVarP(&lintFlags.files, "file", "f", nil, "schema file to validate (repeatable)")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of schema files")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// LintResult is the validation result for a single schema file.
type LintResult struct {
	File   string      `json:"file"`
	Valid  bool        `json:"valid"`
	Errors []LintError `json:"errors,omitempty"`
}

// LintError is one problem found in a schema file.
type LintError struct {
	Line        int      `json:"line,omitempty"`
	Column      int      `json:"column,omitempty"`
	Kind        string   `json:"kind,omitempty"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func runLint(cmd *cobra.Command, args []string) error {
	files, err := collectSchemaFiles(lintFlags.files, lintFlags.dir)
	if err != nil {
		return cli.NewExitError(cli.ExitInputError, err)
	}

	results := make([]LintResult, 0, len(files))
	for _, file := range files {
		results = append(results, lintSchemaFile(file))
	}

	if lintFlags.format == "json" {
		if err := lintOutputJSON(results); err != nil {
			return err
		}
	} else {
		lintOutputText(results)
	}

	for _, result := range results {
		if !result.Valid {
			return cli.NewExitError(cli.ExitValidationError,
				fmt.Errorf("schema validation failed"))
		}
	}
	return nil
}

func lintSchemaFile(path string) LintResult {
	result := LintResult{File: path, Valid: true}

	compiled, err := builder.NewParser().Parse(path)
	if err != nil {
		result.Valid = false
		result.Errors = appendLintErrors(result.Errors, err)
		return result
	}

	defects := validator.NewStructuralValidator().Validate(compiled.Root)
	if defects.HasErrors() {
		result.Valid = false
		for _, e := range defects.Errors {
			result.Errors = append(result.Errors, toLintError(e))
		}
	}

	return result
}

// appendLintErrors unpacks aggregated schema errors into lint entries.
func appendLintErrors(entries []LintError, err error) []LintError {
	var list *schemaErrors.ErrorList
	if errors.As(err, &list) {
		for _, e := range list.Errors {
			entries = append(entries, toLintError(e))
		}
		return entries
	}

	var single *schemaErrors.Error
	if errors.As(err, &single) {
		return append(entries, toLintError(single))
	}

	return append(entries, LintError{Message: err.Error()})
}

func toLintError(e *schemaErrors.Error) LintError {
	return LintError{
		Line:        e.Location.Line,
		Column:      e.Location.Column,
		Kind:        string(e.Kind),
		Message:     e.Message,
		Suggestions: e.Suggestions,
	}
}

func lintOutputText(results []LintResult) {
	totalErrors := 0

	for _, result := range results {
		fmt.Printf("Validating %s...\n", result.File)

		if result.Valid {
			fmt.Println("✓ Schema valid")
		}

		for _, e := range result.Errors {
			fmt.Printf("✗ Error: %s", e.Message)
			if e.Line > 0 {
				fmt.Printf(" (line %d", e.Line)
				if e.Column > 0 {
					fmt.Printf(", col %d", e.Column)
				}
				fmt.Print(")")
			}
			if e.Kind != "" {
				fmt.Printf(" [%s]", e.Kind)
			}
			fmt.Println()
			for _, s := range e.Suggestions {
				fmt.Printf("  did you mean: %s\n", s)
			}
			totalErrors++
		}

		fmt.Println()
	}

	fmt.Println("Summary:")
	fmt.Printf("  %d error(s)\n", totalErrors)
}

func lintOutputJSON(results []LintResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}
