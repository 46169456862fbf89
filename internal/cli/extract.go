package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mgpai22/subkit/internal/media"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "Extract an embedded subtitle track from a video file",
	Long: `Extract one subtitle track from a video container and save it as a
standalone subtitle file.

Supports multiple output formats: srt, ass, webvtt.

Examples:
  subkit extract movie.mkv
  subkit extract movie.mkv -o movie.srt
  subkit extract movie.mkv --track 1 --format ass`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().
		IntP("track", "t", 0, "Subtitle track index within the container")
	extractCmd.Flags().
		StringP("format", "f", "srt", "Output subtitle format (srt, ass, webvtt)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	videoPath := args[0]

	track, _ := cmd.Flags().GetInt("track")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	validFormats := map[string]string{
		"srt":    "srt",
		"ass":    "ass",
		"webvtt": "vtt",
	}
	ext, ok := validFormats[format]
	if !ok {
		return fmt.Errorf(
			"invalid format %q: supported formats are srt, ass, webvtt",
			format,
		)
	}

	if outputPath == "" {
		base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
		outputPath = base + "." + ext
	}

	logger.Infow("Extracting subtitle track",
		"video", videoPath,
		"output", outputPath,
		"track", track,
		"format", format,
	)

	extractor := media.NewExtractor()

	opts := media.ExtractOptions{
		Track:  track,
		Format: format,
	}

	ctx := context.Background()
	if err := extractor.ExtractSubtitle(
		ctx,
		videoPath,
		outputPath,
		opts,
	); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitle extracted successfully: %s\n", absOutput)

	return nil
}
