package subtitle

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
)

const subViewerHeaderBudget = 20

var subViewerBreakRegex = regexp.MustCompile(`(?i)\[br\]`)

// reads SubViewer1/2 (.sub) subtitles: "HH:MM:SS.mmm,HH:MM:SS.mmm" blocks
type SubViewer struct{}

func (p SubViewer) Parse(ctx context.Context, r io.ReadSeeker) ([]Cue, error) {
	return parseAll(ctx, p, r, Config{}, "SubViewer")
}

func (p SubViewer) Stream(ctx context.Context, r io.ReadSeeker, cfg Config) (CueStream, error) {
	sc, err := newLineScanner(r, cfg.Encoding)
	if err != nil {
		return nil, err
	}
	return &subViewerStream{sc: sc}, nil
}

// one timestamp-delimited block
type subViewerPart struct {
	startMs int64
	endMs   int64
	lines   []string
}

type subViewerStream struct {
	sc      *bufio.Scanner
	started bool
	scanned int
	// pendingTimes holds the timestamp line that terminated the previous
	// block so the next call starts from it
	pendingStart int64
	pendingEnd   int64
	havePending  bool
	done         bool
}

func (s *subViewerStream) Next(ctx context.Context) (Cue, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Cue{}, err
		}
		part, err := s.nextPart(ctx)
		if err != nil {
			return Cue{}, err
		}
		cue := Cue{StartMs: part.startMs, EndMs: part.endMs}
		for _, line := range part.lines {
			for _, text := range subViewerBreakRegex.Split(line, -1) {
				text = strings.TrimSpace(text)
				if text != "" {
					cue.Lines = append(cue.Lines, text)
				}
			}
		}
		if len(cue.Lines) == 0 {
			continue
		}
		return cue, nil
	}
}

// nextPart lexes one block. SubViewer1 headers like [INFORMATION] and
// [SUBTITLE] are tolerated within a fixed line budget before the first
// timestamp line; after that, a bad timestamp line aborts the parse.
func (s *subViewerStream) nextPart(ctx context.Context) (subViewerPart, error) {
	if s.done && !s.havePending {
		return subViewerPart{}, io.EOF
	}

	var part subViewerPart
	inBlock := s.havePending
	if s.havePending {
		part.startMs, part.endMs = s.pendingStart, s.pendingEnd
		s.havePending = false
	}

	for !s.done {
		if err := ctx.Err(); err != nil {
			return subViewerPart{}, err
		}
		if !s.sc.Scan() {
			s.done = true
			break
		}
		line := stripBOM(strings.TrimSpace(s.sc.Text()))

		start, end, isTiming, err := lexSubViewerTiming(line, s.started)
		if err != nil {
			s.done = true
			return subViewerPart{}, err
		}
		if isTiming {
			s.started = true
			if inBlock {
				// the next block's timestamp closes this one
				s.pendingStart, s.pendingEnd = start, end
				s.havePending = true
				return part, nil
			}
			part.startMs, part.endMs = start, end
			inBlock = true
			continue
		}

		if !inBlock {
			s.scanned++
			if s.scanned > subViewerHeaderBudget {
				s.done = true
				return subViewerPart{}, fmt.Errorf("SubViewer: no timestamp within %d lines: %w", subViewerHeaderBudget, ErrMalformed)
			}
			continue
		}
		if line != "" {
			part.lines = append(part.lines, line)
		}
	}

	if err := s.sc.Err(); err != nil {
		return subViewerPart{}, fmt.Errorf("error reading SubViewer input: %w", err)
	}
	if inBlock {
		return part, nil
	}
	return subViewerPart{}, io.EOF
}

// lexSubViewerTiming recognizes "start,end" timestamp lines. Once the
// format is established, a line shaped like a timestamp pair that fails
// to parse is a structural error.
func lexSubViewerTiming(line string, started bool) (start, end int64, ok bool, err error) {
	first, second, found := strings.Cut(line, ",")
	if !found {
		return 0, 0, false, nil
	}
	start = parseTimecode(first)
	end = parseTimecode(second)
	if start >= 0 && end >= 0 {
		return start, end, true, nil
	}
	// two colon-bearing halves means it was meant as a timestamp line
	if started && strings.Count(first, ":") == 2 && strings.Count(second, ":") == 2 {
		return 0, 0, false, fmt.Errorf("SubViewer: invalid timestamp line %q: %w", line, ErrMalformed)
	}
	return 0, 0, false, nil
}
