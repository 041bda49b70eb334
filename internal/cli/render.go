package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seqlab/framecast/internal/farm"
	"github.com/seqlab/framecast/internal/scene"
	"github.com/seqlab/framecast/internal/store"
)

// RenderResult is the render command's output payload.
type RenderResult struct {
	Composition string         `json:"composition"`
	From        int            `json:"from"`
	To          int            `json:"to"`
	Rendered    int            `json:"rendered"`
	Skipped     int            `json:"skipped"`
	Digests     map[int]string `json:"digests"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		manifestDir string
		dbPath      string
		frame       int
		from        int
		to          int
		workers     int
	)

	cmd := &cobra.Command{
		Use:   "render <composition>",
		Short: "Render frames of a composition",
		Long: `Render one frame or a frame range of a registered composition.

With --db, rendered frames are persisted to the SQLite cache; frames
already cached are skipped. Output digests are identical for the same
inputs regardless of --workers.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("frame") {
				if cmd.Flags().Changed("from") || cmd.Flags().Changed("to") {
					return NewExitError(ExitCommandError, "--frame conflicts with --from/--to")
				}
				from, to = frame, frame
			}
			return runRender(rootOpts, cmd, args[0], manifestDir, dbPath, from, to, workers)
		},
	}

	cmd.Flags().StringVar(&manifestDir, "manifest", "", "directory of manifest YAML files to include")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite frame cache to write to")
	cmd.Flags().IntVar(&frame, "frame", 0, "single frame to render")
	cmd.Flags().IntVar(&from, "from", 0, "first frame of the range")
	cmd.Flags().IntVar(&to, "to", -1, "last frame of the range (default: composition end)")
	cmd.Flags().IntVar(&workers, "workers", 0, "render concurrency (default: GOMAXPROCS)")

	return cmd
}

func runRender(opts *RootOptions, cmd *cobra.Command, compositionID, manifestDir, dbPath string, from, to, workers int) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	eng, err := buildEngine(manifestDir)
	if err != nil {
		formatter.Error(ErrCodeManifestInvalid, err.Error(), nil)
		return WrapExitError(ExitCommandError, "build catalog", err)
	}

	comp, err := eng.Registry().Lookup(compositionID)
	if err != nil {
		formatter.Error(ErrCodeUnknownComp, err.Error(), nil)
		return WrapExitError(ExitCommandError, "lookup composition", err)
	}
	if to < 0 {
		to = comp.DurationInFrames - 1
	}

	var st *store.Store
	if dbPath != "" {
		st, err = store.Open(dbPath)
		if err != nil {
			formatter.Error(ErrCodeStoreUnreadable, err.Error(), nil)
			return WrapExitError(ExitCommandError, "open store", err)
		}
		defer st.Close()
	}

	formatter.VerboseLog("rendering %s frames %d..%d", compositionID, from, to)

	report, err := farm.RenderRange(cmd.Context(), eng, st, compositionID, from, to, farm.Options{
		Workers: workers,
	})
	if err != nil {
		code := ErrCodeRenderFailed
		if scene.IsConfigError(err) {
			code = ErrCodeManifestInvalid
		}
		formatter.Error(code, err.Error(), nil)
		return WrapExitError(ExitFailure, "render", err)
	}

	result := RenderResult{
		Composition: report.CompositionID,
		From:        report.From,
		To:          report.To,
		Rendered:    report.Rendered,
		Skipped:     report.Skipped,
		Digests:     report.Digests,
	}

	if opts.Format == "json" {
		return formatter.JSON(result)
	}

	if from == to {
		fmt.Fprintf(cmd.OutOrStdout(), "%s frame %d: %s\n", compositionID, from, result.Digests[from])
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s frames %d..%d: %d rendered, %d skipped\n",
		compositionID, from, to, result.Rendered, result.Skipped)
	return nil
}
