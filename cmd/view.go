package cmd

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"tally.dev/pkg/tally/internal/domain"
	m "tally.dev/pkg/tally/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [run file]",
		Short: "Browse a recorded run in the terminal",
		Long:  "Browse the results of a recorded run interactively, with status filtering and text search.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			runPath := m.Path(filepath.Join(viper.GetString(outputFlagName), "run.yaml"))
			if len(args) == 1 {
				runPath = m.Path(args[0])
			}

			return workflow.View(context.Background(), domain.ViewArgs{
				Run:   runPath,
				Title: viper.GetString(titleFlagName),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
