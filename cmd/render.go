package cmd

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tally.dev/pkg/tally/internal/domain"
	m "tally.dev/pkg/tally/internal/model"
)

var renderParallelFlag int

// renderCmd represents the render command.
var renderCmd = newRenderCmd()

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [run files...]",
		Short: "Render recorded runs to HTML reports",
		Long: `Render one or more recorded runs (YAML run files or .gob journals) to
self-contained HTML reports under the output directory. With no
arguments, {output}/run.yaml is rendered.`,
		RunE: func(_ *cobra.Command, args []string) error {
			outputDir := viper.GetString(outputFlagName)

			runs := parsePaths(args)
			if len(runs) == 0 {
				runs = []m.Path{m.Path(filepath.Join(outputDir, "run.yaml"))}
			}

			return workflow.Render(context.Background(), domain.RenderArgs{
				Runs:      runs,
				OutputDir: m.Path(outputDir),
				Title:     viper.GetString(titleFlagName),
				Parallel:  viper.GetInt(runParallelConfigKey),
			})
		},
	}

	configureRenderFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func configureRenderFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&renderParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of runs to render in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)
}
