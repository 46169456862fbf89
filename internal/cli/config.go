package cli

import (
	"fmt"
	"os"

	"github.com/mgpai22/subkit/pkg/subtitle"
	"golang.org/x/text/encoding/htmlindex"
	"gopkg.in/yaml.v3"
)

// Options is the YAML options file loaded with --config.
type Options struct {
	// Encoding is an IANA charset name (e.g. utf-8, windows-1250).
	// Empty means UTF-8 with BOM sniffing.
	Encoding string `yaml:"encoding,omitempty"`

	// FrameRate forces the frame rate for frame-based formats.
	FrameRate float64 `yaml:"frame_rate,omitempty"`

	// Language forces the language class for multi-language documents.
	Language string `yaml:"language,omitempty"`

	// Formats narrows auto-detection to the named formats.
	Formats []string `yaml:"formats,omitempty"`
}

// LoadOptions reads and validates a YAML options file.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file: %w", err)
	}

	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("failed to parse options file: %w", err)
	}

	if opts.Encoding != "" {
		if _, err := htmlindex.Get(opts.Encoding); err != nil {
			return nil, fmt.Errorf("unknown encoding %q: %w", opts.Encoding, err)
		}
	}
	for _, name := range opts.Formats {
		if _, ok := subtitle.ByName(name); !ok {
			return nil, fmt.Errorf("unknown format %q", name)
		}
	}

	return &opts, nil
}

// ParseOptions converts the file options into library parse options.
func (o *Options) ParseOptions() ([]subtitle.ParseOption, error) {
	var opts []subtitle.ParseOption

	if o.Encoding != "" {
		enc, err := htmlindex.Get(o.Encoding)
		if err != nil {
			return nil, fmt.Errorf("unknown encoding %q: %w", o.Encoding, err)
		}
		opts = append(opts, subtitle.WithEncoding(enc))
	}
	if o.FrameRate > 0 {
		opts = append(opts, subtitle.WithFrameRate(o.FrameRate))
	}
	if o.Language != "" {
		opts = append(opts, subtitle.WithLanguage(o.Language))
	}
	if len(o.Formats) > 0 {
		formats := make([]subtitle.Format, 0, len(o.Formats))
		for _, name := range o.Formats {
			f, ok := subtitle.ByName(name)
			if !ok {
				return nil, fmt.Errorf("unknown format %q", name)
			}
			formats = append(formats, f)
		}
		opts = append(opts, subtitle.WithFormats(formats...))
	}

	return opts, nil
}
