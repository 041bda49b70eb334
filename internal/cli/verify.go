package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seqlab/framecast/internal/store"
)

// VerifyResult holds the digest audit of a frame cache.
type VerifyResult struct {
	Clean    bool               `json:"clean"`
	Checked  int                `json:"checked"`
	Diverged []store.Divergence `json:"diverged,omitempty"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		manifestDir string
		dbPath      string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Audit a frame cache against fresh renders",
		Long: `Re-render every frame recorded in a cache database and compare digests.

A clean audit means the cache and the current catalog agree byte for
byte. Divergence indicates the catalog changed since the cache was
written, or a non-deterministic component.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(rootOpts, cmd, manifestDir, dbPath)
		},
	}

	cmd.Flags().StringVar(&manifestDir, "manifest", "", "directory of manifest YAML files to include")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite frame cache to audit")
	cmd.MarkFlagRequired("db")

	return cmd
}

func runVerify(opts *RootOptions, cmd *cobra.Command, manifestDir, dbPath string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// Auditing a database that does not exist is a command error, not an
	// empty-but-clean result; store.Open would silently create it.
	if _, err := os.Stat(dbPath); err != nil {
		formatter.Error(ErrCodeStoreUnreadable, err.Error(), nil)
		return WrapExitError(ExitCommandError, "open store", err)
	}

	eng, err := buildEngine(manifestDir)
	if err != nil {
		formatter.Error(ErrCodeManifestInvalid, err.Error(), nil)
		return WrapExitError(ExitCommandError, "build catalog", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		formatter.Error(ErrCodeStoreUnreadable, err.Error(), nil)
		return WrapExitError(ExitCommandError, "open store", err)
	}
	defer st.Close()

	checked := 0
	diverged, err := st.Verify(cmd.Context(), func(compositionID string, frame int) (string, error) {
		checked++
		_, digest, err := eng.RenderDigest(compositionID, frame)
		return digest, err
	})
	if err != nil {
		formatter.Error(ErrCodeRenderFailed, err.Error(), nil)
		return WrapExitError(ExitFailure, "verify", err)
	}

	result := VerifyResult{
		Clean:    len(diverged) == 0,
		Checked:  checked,
		Diverged: diverged,
	}

	if opts.Format == "json" {
		if err := formatter.JSON(result); err != nil {
			return err
		}
	} else if result.Clean {
		fmt.Fprintf(cmd.OutOrStdout(), "OK: %d frame(s) verified\n", checked)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "DIVERGED: %d of %d frame(s)\n", len(diverged), checked)
		for _, d := range diverged {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s frame %d: stored %s, computed %s\n",
				d.CompositionID, d.Frame, d.Stored, d.Computed)
		}
	}

	if !result.Clean {
		return NewExitError(ExitFailure, "cache diverged")
	}
	return nil
}
