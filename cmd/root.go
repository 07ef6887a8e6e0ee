// Package cmd provides the root command and CLI setup for tally.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"tally.dev/pkg/tally/internal/adapter"
	"tally.dev/pkg/tally/internal/controller"
	"tally.dev/pkg/tally/internal/domain"
	m "tally.dev/pkg/tally/internal/model"
)

var runStore adapter.RunStore
var workflow domain.Workflow
var ui controller.UI

// outputDirFlag is a root-level flag shared by commands that write reports.
var outputDirFlag string

// reportTitleFlag overrides the report page title.
var reportTitleFlag string

// verboseFlag switches file logging to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	runStore = adapter.NewRunStore()
	workflow = domain.NewWorkflow(runStore, ui, os.Stdout)
}

const rootLongDescription = `Tally renders static HTML reports for test runs. A host test runner
records per-test results as they complete; tally aggregates them and
produces a single self-contained report page with summary statistics,
per-project grouping, and a filterable results table.

Recorded runs are YAML run files or .gob journals written while the
run was in flight.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tally",
		Short: "Static HTML test run reporter",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for the rendered report",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().
		StringVarP(
			&reportTitleFlag, titleFlagName, "t",
			viper.GetString(titleFlagName),
			"title of the report page",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(titleFlagName), titleFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "enable debug logging")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
