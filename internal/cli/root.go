package cli

import (
	"github.com/mgpai22/subkit/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "subkit",
	Short: "Parse, inspect and convert subtitle files",
	Long: `Subkit is a CLI tool for working with subtitle files.

It reads a dozen subtitle formats (SubRip, WebVTT, SubStation Alpha,
TTML, SAMI and more), detects the format automatically, and can pull
embedded subtitle tracks out of video containers.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("config", "c", "", "Path to YAML options file")
}
