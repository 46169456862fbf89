// Package media extracts embedded subtitle tracks from video containers.
package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// holds options for subtitle extraction
type ExtractOptions struct {
	Track  int    // Subtitle track index within the container (0-based)
	Format string // Output subtitle codec (srt, ass, webvtt)
}

// returns sensible defaults for subtitle extraction
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		Track:  0,
		Format: "srt",
	}
}

// defines interface for media extraction operations
type Extractor interface {
	// extracts one subtitle track from a video file
	ExtractSubtitle(ctx context.Context, videoPath, outputPath string, opts ExtractOptions) error
}

// default implementation using ffmpeg
type DefaultExtractor struct{}

func NewExtractor() *DefaultExtractor {
	return &DefaultExtractor{}
}

// extracts one subtitle track from a video file
func (e *DefaultExtractor) ExtractSubtitle(
	ctx context.Context,
	videoPath, outputPath string,
	opts ExtractOptions,
) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	codec := opts.Format
	if codec == "" {
		codec = "srt"
	}

	kwargs := ffmpeg.KwArgs{
		"map":    fmt.Sprintf("0:s:%d", opts.Track),
		"scodec": codec,
		"vn":     "", // No video
		"an":     "", // No audio
	}

	err := ffmpeg.Input(videoPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		Run()

	if err != nil {
		return fmt.Errorf("ffmpeg subtitle extraction failed: %w", err)
	}

	return nil
}
