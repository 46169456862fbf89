package subtitle

import (
	"bufio"
	"context"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
)

// WebVTT timing line: hours are optional, fractions use a dot
var vttTimingRegex = regexp.MustCompile(
	`(?:(\d+):)?(\d{2}):(\d{2})\.(\d{1,3})\s*(?:-->|- >|->)\s*(?:(\d+):)?(\d{2}):(\d{2})\.(\d{1,3})`,
)

// reads WebVTT (.vtt) subtitles
type WebVTT struct{}

func (p WebVTT) Parse(ctx context.Context, r io.ReadSeeker) ([]Cue, error) {
	return parseAll(ctx, p, r, Config{}, "WebVTT")
}

func (p WebVTT) Stream(ctx context.Context, r io.ReadSeeker, cfg Config) (CueStream, error) {
	sc, err := newLineScanner(r, cfg.Encoding)
	if err != nil {
		return nil, err
	}
	return &vttStream{sc: sc}, nil
}

type vttStream struct {
	sc           *bufio.Scanner
	headerParsed bool
	firstLine    bool
	done         bool
}

func (s *vttStream) Next(ctx context.Context) (Cue, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Cue{}, err
		}
		block, err := s.nextBlock()
		if err != nil {
			return Cue{}, err
		}
		if !s.headerParsed {
			if !strings.HasPrefix(strings.TrimSpace(block.lines[0]), "WEBVTT") {
				return Cue{}, fmt.Errorf("WebVTT: missing WEBVTT header: %w", ErrMalformed)
			}
			s.headerParsed = true
			continue
		}
		// comment and style blocks carry no cues
		head := strings.TrimSpace(block.lines[0])
		if strings.HasPrefix(head, "NOTE") || strings.HasPrefix(head, "STYLE") {
			continue
		}
		if cue, ok := cueFromVTTBlock(block); ok {
			return cue, nil
		}
	}
}

func (s *vttStream) nextBlock() (srtBlock, error) {
	if s.done {
		return srtBlock{}, io.EOF
	}
	var block srtBlock
	for s.sc.Scan() {
		line := s.sc.Text()
		if !s.firstLine {
			s.firstLine = true
			line = stripBOM(line)
		}
		if strings.TrimSpace(line) == "" {
			if len(block.lines) > 0 {
				return block, nil
			}
			continue
		}
		block.lines = append(block.lines, line)
	}
	s.done = true
	if err := s.sc.Err(); err != nil {
		return srtBlock{}, fmt.Errorf("error reading WebVTT input: %w", err)
	}
	if len(block.lines) > 0 {
		return block, nil
	}
	return srtBlock{}, io.EOF
}

// cueFromVTTBlock converts one cue block: optional identifier line, the
// timing line (settings after it are ignored), then text lines which are
// HTML-decoded before tag stripping.
func cueFromVTTBlock(block srtBlock) (Cue, bool) {
	for i, line := range block.lines {
		m := vttTimingRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if i > 1 {
			return Cue{}, false
		}
		cue := Cue{
			StartMs: vttTimestamp(m[1], m[2], m[3], m[4]),
			EndMs:   vttTimestamp(m[5], m[6], m[7], m[8]),
		}
		if cue.StartMs < 0 || cue.EndMs < 0 {
			return Cue{}, false
		}
		for _, text := range block.lines[i+1:] {
			text = strings.TrimSpace(stripTags(html.UnescapeString(text)))
			if text != "" {
				cue.Lines = append(cue.Lines, text)
			}
		}
		if len(cue.Lines) == 0 {
			return Cue{}, false
		}
		return cue, true
	}
	return Cue{}, false
}

func vttTimestamp(hours, minutes, seconds, millis string) int64 {
	if hours == "" {
		hours = "0"
	}
	return srtTimestamp(hours, minutes, seconds, millis)
}
