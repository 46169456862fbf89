package cli

import (
	"fmt"

	"github.com/mgpai22/subkit/pkg/subtitle"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/htmlindex"
)

// gathers parse options from the optional config file and command flags;
// flags win over the file
func gatherParseOptions(cmd *cobra.Command) ([]subtitle.ParseOption, error) {
	var opts []subtitle.ParseOption

	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		fileOpts, err := LoadOptions(configPath)
		if err != nil {
			return nil, err
		}
		parsed, err := fileOpts.ParseOptions()
		if err != nil {
			return nil, err
		}
		opts = append(opts, parsed...)
	}

	if enc, _ := cmd.Flags().GetString("encoding"); enc != "" {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("unknown encoding %q: %w", enc, err)
		}
		opts = append(opts, subtitle.WithEncoding(e))
	}
	if fps, _ := cmd.Flags().GetFloat64("fps"); fps > 0 {
		opts = append(opts, subtitle.WithFrameRate(fps))
	}
	if lang, _ := cmd.Flags().GetString("language"); lang != "" {
		opts = append(opts, subtitle.WithLanguage(lang))
	}
	if name, _ := cmd.Flags().GetString("format"); name != "" {
		f, ok := subtitle.ByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown format %q", name)
		}
		opts = append(opts, subtitle.WithFormats(f))
	}

	opts = append(opts, subtitle.WithLogger(logger))
	return opts, nil
}

// registers the flags shared by commands that parse subtitle input
func addParseFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "Force a single candidate format")
	cmd.Flags().StringP("encoding", "e", "", "Input text encoding (IANA name)")
	cmd.Flags().Float64P("fps", "r", 0, "Frame rate for frame-based formats")
	cmd.Flags().StringP("language", "l", "", "Language class for multi-language files")
}
