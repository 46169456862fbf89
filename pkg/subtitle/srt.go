package subtitle

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// timing line, tolerating dot millisecond separators and the sloppy arrow
// spellings ("-->", "- >", "->") found in the wild
var srtTimingRegex = regexp.MustCompile(
	`(\d+):(\d{2}):(\d{2})[,.](\d{1,3})\s*(?:-->|- >|->)\s*(\d+):(\d{2}):(\d{2})[,.](\d{1,3})`,
)

// reads SubRip (.srt) subtitles
type SubRip struct{}

func (p SubRip) Parse(ctx context.Context, r io.ReadSeeker) ([]Cue, error) {
	return parseAll(ctx, p, r, Config{}, "SubRip")
}

func (p SubRip) Stream(ctx context.Context, r io.ReadSeeker, cfg Config) (CueStream, error) {
	sc, err := newLineScanner(r, cfg.Encoding)
	if err != nil {
		return nil, err
	}
	return &srtStream{sc: sc}, nil
}

// raw blank-line-delimited block of an SRT file
type srtBlock struct {
	lines []string
}

type srtStream struct {
	sc       *bufio.Scanner
	blockNum int
	done     bool
}

func (s *srtStream) Next(ctx context.Context) (Cue, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Cue{}, err
		}
		block, err := s.nextBlock()
		if err != nil {
			return Cue{}, err
		}
		s.blockNum++
		if s.blockNum == 1 && strings.HasPrefix(strings.TrimSpace(block.lines[0]), "WEBVTT") {
			return Cue{}, fmt.Errorf("SubRip: input is WebVTT: %w", ErrMalformed)
		}
		if cue, ok := cueFromSRTBlock(block); ok {
			return cue, nil
		}
	}
}

// nextBlock lexes the next non-empty block, or io.EOF.
func (s *srtStream) nextBlock() (srtBlock, error) {
	if s.done {
		return srtBlock{}, io.EOF
	}
	var block srtBlock
	for s.sc.Scan() {
		line := s.sc.Text()
		if s.blockNum == 0 && len(block.lines) == 0 {
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
		return srtBlock{}, fmt.Errorf("error reading SubRip input: %w", err)
	}
	if len(block.lines) > 0 {
		return block, nil
	}
	return srtBlock{}, io.EOF
}

// cueFromSRTBlock converts one block: optional numeric counter, the
// timing line, then text lines with inline {...}/<...> tags stripped.
func cueFromSRTBlock(block srtBlock) (Cue, bool) {
	for i, line := range block.lines {
		m := srtTimingRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		// everything before the timing line may only be the counter
		if i > 1 {
			return Cue{}, false
		}
		if i == 1 {
			if _, err := strconv.Atoi(strings.TrimSpace(block.lines[0])); err != nil {
				return Cue{}, false
			}
		}
		cue := Cue{
			StartMs: srtTimestamp(m[1], m[2], m[3], m[4]),
			EndMs:   srtTimestamp(m[5], m[6], m[7], m[8]),
		}
		if cue.StartMs < 0 || cue.EndMs < 0 {
			return Cue{}, false
		}
		for _, text := range block.lines[i+1:] {
			text = strings.TrimSpace(stripTags(text))
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

func srtTimestamp(hours, minutes, seconds, millis string) int64 {
	h, err := strconv.Atoi(hours)
	if err != nil {
		return TimeUnknown
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return TimeUnknown
	}
	s, err := strconv.Atoi(seconds)
	if err != nil {
		return TimeUnknown
	}
	ms := fractionMillis(millis)
	if ms < 0 {
		return TimeUnknown
	}
	return int64(h)*3600000 + int64(m)*60000 + int64(s)*1000 + ms
}
