package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seqlab/framecast/internal/manifest"
)

// ValidationResult holds validation results for a manifest directory.
type ValidationResult struct {
	Valid        bool     `json:"valid"`
	Documents    int      `json:"documents"`
	Compositions int      `json:"compositions,omitempty"`
	Problems     []string `json:"problems,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <manifest-dir>",
		Short: "Validate manifests without rendering",
		Long: `Load, schema-check and compile every manifest in a directory without
rendering anything. All schema violations in a file are reported together;
compilation stops at the first bad document.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, manifestDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	docs, err := manifest.LoadDir(manifestDir)
	if err != nil {
		var schemaErr *manifest.SchemaError
		if errors.As(err, &schemaErr) {
			return outputInvalid(opts, formatter, cmd, &ValidationResult{
				Valid:    false,
				Problems: schemaErr.Problems,
			})
		}
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "load manifests", err)
	}

	result := &ValidationResult{Valid: true, Documents: len(docs)}
	for _, doc := range docs {
		comps, err := manifest.Compile(doc)
		if err != nil {
			return outputInvalid(opts, formatter, cmd, &ValidationResult{
				Valid:     false,
				Documents: len(docs),
				Problems:  []string{err.Error()},
			})
		}
		result.Compositions += len(comps)
	}

	formatter.VerboseLog("validated %d document(s), %d composition(s)", result.Documents, result.Compositions)

	if opts.Format == "json" {
		return formatter.JSON(result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "OK: %d document(s), %d composition(s)\n",
		result.Documents, result.Compositions)
	return nil
}

func outputInvalid(opts *RootOptions, formatter *OutputFormatter, cmd *cobra.Command, result *ValidationResult) error {
	if opts.Format == "json" {
		formatter.JSON(result)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "INVALID: %d problem(s)\n", len(result.Problems))
		for _, p := range result.Problems {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", p)
		}
	}
	return NewExitError(ExitFailure, "manifest validation failed")
}
