package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mgpai22/subkit/pkg/subtitle"
	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect [subtitle_file]",
	Short: "Detect the format of a subtitle file",
	Long: `Detect the format of a subtitle file without reading all of it.

Detection commits to the first format that yields a valid cue, so large
files are not parsed to the end.

Examples:
  subkit detect movie.srt
  subkit detect mystery.txt -e windows-1250`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	addParseFlags(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	path := args[0]

	opts, err := gatherParseOptions(cmd)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open subtitle file: %w", err)
	}
	defer file.Close()

	if byExt, ok := subtitle.ByExtension(filepath.Ext(path)); ok {
		logger.Debugw("extension suggests format", "format", byExt)
	}

	result, err := subtitle.Stream(context.Background(), file, opts...)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	fmt.Println(result.Format)
	return nil
}
