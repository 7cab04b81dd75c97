package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/rfp-proposal/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON artifact against a JSON Schema",
	Long: "Validates a JSON artifact against a JSON Schema. --schema may name a schema file or one of " +
		"the built-in artifact schemas, e.g. gap_analysis.schema.json.",
	RunE: runValidate,
}

var (
	validateSchemaPath string
	validateJSONPath   string
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchemaPath, "schema", "s", "", "Path to JSON Schema file (required)")
	validateCmd.Flags().StringVarP(&validateJSONPath, "json", "j", "", "Path to JSON file to validate (required)")

	if err := validateCmd.MarkFlagRequired("schema"); err != nil {
		panic(fmt.Sprintf("failed to mark schema flag as required: %v", err))
	}
	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	err := schemas.ValidateJSON(validateSchemaPath, validateJSONPath)
	if err == nil {
		_, _ = fmt.Fprintf(os.Stdout, "Validation passed: %s\n", validateJSONPath)
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprintf(os.Stdout, "Validation failed: %d error(s)\n", len(validationErr.Errors))
		for _, fe := range validationErr.Errors {
			_, _ = fmt.Fprintf(os.Stdout, "  - %s: %s\n", fe.Field, fe.Message)
		}
	}
	return err
}
