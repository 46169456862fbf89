package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeOptionsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "options.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write options file: %v", err)
	}
	return path
}

func TestLoadOptions(t *testing.T) {
	path := writeOptionsFile(t, `
encoding: windows-1250
frame_rate: 23.976
language: ENCC
formats:
  - SubRip
  - MicroDVD
`)

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions() error = %v", err)
	}
	if opts.Encoding != "windows-1250" {
		t.Errorf("Encoding = %q, want windows-1250", opts.Encoding)
	}
	if opts.FrameRate != 23.976 {
		t.Errorf("FrameRate = %v, want 23.976", opts.FrameRate)
	}
	if opts.Language != "ENCC" {
		t.Errorf("Language = %q, want ENCC", opts.Language)
	}
	if len(opts.Formats) != 2 {
		t.Errorf("Formats = %v, want 2 entries", opts.Formats)
	}

	parsed, err := opts.ParseOptions()
	if err != nil {
		t.Fatalf("ParseOptions() error = %v", err)
	}
	if len(parsed) != 4 {
		t.Errorf("ParseOptions() returned %d options, want 4", len(parsed))
	}
}

func TestLoadOptionsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "encoding: [unterminated"},
		{"unknown encoding", "encoding: not-a-charset"},
		{"unknown format", "formats:\n  - NotAFormat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeOptionsFile(t, tt.content)
			if _, err := LoadOptions(path); err == nil {
				t.Error("LoadOptions() expected error, got nil")
			}
		})
	}
}

func TestLoadOptionsMissingFile(t *testing.T) {
	if _, err := LoadOptions(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadOptions() expected error for missing file, got nil")
	}
}
