package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// CompositionInfo is one row of list output.
type CompositionInfo struct {
	ID               string `json:"id"`
	DurationInFrames int    `json:"duration_in_frames"`
	FPS              int    `json:"fps"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var manifestDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered compositions",
		Long: `List every composition the engine can render: the built-in catalog
plus any compositions declared in manifest files.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, manifestDir, cmd)
		},
	}

	cmd.Flags().StringVar(&manifestDir, "manifest", "", "directory of manifest YAML files to include")

	return cmd
}

func runList(opts *RootOptions, manifestDir string, cmd *cobra.Command) error {
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

	var infos []CompositionInfo
	for comp := range eng.Registry().List() {
		infos = append(infos, CompositionInfo{
			ID:               comp.ID,
			DurationInFrames: comp.DurationInFrames,
			FPS:              comp.FPS,
			Width:            comp.Width,
			Height:           comp.Height,
		})
	}

	if opts.Format == "json" {
		return formatter.JSON(infos)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFRAMES\tFPS\tSIZE")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%d\t%d\t%dx%d\n",
			info.ID, info.DurationInFrames, info.FPS, info.Width, info.Height)
	}
	return w.Flush()
}
