package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mgpai22/subkit/pkg/subtitle"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [subtitle_file]",
	Short: "Parse a subtitle file and print its cues",
	Long: `Parse a subtitle file, auto-detecting its format, and print every cue
with its timing.

Examples:
  subkit inspect movie.srt
  subkit inspect movie.sub --fps 23.976
  subkit inspect movie.smi --language ENCC
  subkit inspect captions.xml -f ttml`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	addParseFlags(inspectCmd)
	inspectCmd.Flags().Bool("summary", false, "Print cue count and span only")
}

func runInspect(cmd *cobra.Command, args []string) error {
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

	result, err := subtitle.Parse(context.Background(), file, opts...)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	fmt.Printf("Format: %s\n", result.Format)
	if result.Detected.FrameRate > 0 {
		fmt.Printf("Frame rate: %g\n", result.Detected.FrameRate)
	}
	if result.Detected.Language != "" {
		fmt.Printf("Language: %s\n", result.Detected.Language)
	}

	if summary, _ := cmd.Flags().GetBool("summary"); summary {
		fmt.Printf("Cues: %d\n", len(result.Cues))
		if n := len(result.Cues); n > 0 {
			fmt.Printf("Span: %s - %s\n",
				formatMillis(result.Cues[0].StartMs),
				formatMillis(result.Cues[n-1].EndMs),
			)
		}
		return nil
	}

	for i, cue := range result.Cues {
		fmt.Printf("%d. %s -> %s\n",
			i+1, formatMillis(cue.StartMs), formatMillis(cue.EndMs))
		for _, line := range cue.Lines {
			fmt.Printf("   %s\n", line)
		}
	}

	return nil
}

// renders a millisecond offset as HH:MM:SS.mmm, or "?" when unknown
func formatMillis(ms int64) string {
	if ms == subtitle.TimeUnknown {
		return "?"
	}
	d := time.Duration(ms) * time.Millisecond
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms%1000)
}
