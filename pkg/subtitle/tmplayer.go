package subtitle

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// reads TMPlayer (.txt) subtitles: one "HH:MM:SS:text" cue per line
type TMPlayer struct{}

func (p TMPlayer) Parse(ctx context.Context, r io.ReadSeeker) ([]Cue, error) {
	return parseAll(ctx, p, r, Config{}, "TMPlayer")
}

func (p TMPlayer) Stream(ctx context.Context, r io.ReadSeeker, cfg Config) (CueStream, error) {
	sc, err := newLineScanner(r, cfg.Encoding)
	if err != nil {
		return nil, err
	}
	return &tmPlayerStream{sc: sc}, nil
}

type tmPlayerPart struct {
	startMs int64
	lines   []string
}

type tmPlayerStream struct {
	sc      *bufio.Scanner
	started bool
	pending *Cue
	done    bool
}

func (s *tmPlayerStream) Next(ctx context.Context) (Cue, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Cue{}, err
		}
		part, err := s.nextPart()
		if err == io.EOF {
			if s.pending != nil {
				cue := *s.pending
				s.pending = nil
				return cue, nil
			}
			return Cue{}, io.EOF
		}
		if err != nil {
			return Cue{}, err
		}

		var out *Cue
		if s.pending != nil {
			s.pending.EndMs = part.startMs
			out = s.pending
			s.pending = nil
		}
		if len(part.lines) > 0 {
			s.pending = &Cue{StartMs: part.startMs, EndMs: TimeUnknown, Lines: part.lines}
		}
		if out != nil {
			return *out, nil
		}
	}
}

// nextPart lexes the next cue line. The very first line decides whether
// the input is TMPlayer at all; later unparsable lines are skipped.
func (s *tmPlayerStream) nextPart() (tmPlayerPart, error) {
	if s.done {
		return tmPlayerPart{}, io.EOF
	}
	for s.sc.Scan() {
		line := stripBOM(strings.TrimSpace(s.sc.Text()))
		if line == "" {
			continue
		}
		part, ok := lexTMPlayerLine(line)
		if !ok {
			if !s.started {
				s.done = true
				return tmPlayerPart{}, fmt.Errorf("TMPlayer: first line is not HH:MM:SS:text: %w", ErrMalformed)
			}
			continue
		}
		s.started = true
		return part, nil
	}
	s.done = true
	if err := s.sc.Err(); err != nil {
		return tmPlayerPart{}, fmt.Errorf("error reading TMPlayer input: %w", err)
	}
	return tmPlayerPart{}, io.EOF
}

func lexTMPlayerLine(line string) (tmPlayerPart, bool) {
	parts := strings.SplitN(line, ":", 4)
	if len(parts) < 4 {
		return tmPlayerPart{}, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || h < 0 {
		return tmPlayerPart{}, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 {
		return tmPlayerPart{}, false
	}
	sec, err := strconv.Atoi(parts[2])
	if err != nil || sec < 0 {
		return tmPlayerPart{}, false
	}

	part := tmPlayerPart{startMs: int64(h)*3600000 + int64(m)*60000 + int64(sec)*1000}
	for _, text := range strings.Split(parts[3], "|") {
		text = strings.TrimSpace(text)
		if text != "" {
			part.lines = append(part.lines, text)
		}
	}
	return part, true
}
