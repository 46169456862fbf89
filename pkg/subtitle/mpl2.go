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

var mpl2LineRegex = regexp.MustCompile(`^\[(\d+)\]\[(\d+)\](.*)$`)

// reads MPL2 (.mpl) subtitles: "[start][end]text" with second counts
type MPL2 struct{}

func (p MPL2) Parse(ctx context.Context, r io.ReadSeeker) ([]Cue, error) {
	return parseAll(ctx, p, r, Config{}, "MPL2")
}

func (p MPL2) Stream(ctx context.Context, r io.ReadSeeker, cfg Config) (CueStream, error) {
	sc, err := newLineScanner(r, cfg.Encoding)
	if err != nil {
		return nil, err
	}
	return &mpl2Stream{sc: sc}, nil
}

type mpl2Stream struct {
	sc   *bufio.Scanner
	done bool
}

// Next lexes one bracket-pair line and converts it. The format has no
// other distinguishing markers, so any line that fails the pattern aborts
// the whole parse instead of being skipped.
func (s *mpl2Stream) Next(ctx context.Context) (Cue, error) {
	if s.done {
		return Cue{}, io.EOF
	}
	for {
		if err := ctx.Err(); err != nil {
			return Cue{}, err
		}
		if !s.sc.Scan() {
			s.done = true
			if err := s.sc.Err(); err != nil {
				return Cue{}, fmt.Errorf("error reading MPL2 input: %w", err)
			}
			return Cue{}, io.EOF
		}
		line := stripBOM(strings.TrimSpace(s.sc.Text()))
		if line == "" {
			continue
		}
		m := mpl2LineRegex.FindStringSubmatch(line)
		if m == nil {
			s.done = true
			return Cue{}, fmt.Errorf("MPL2: invalid line %q: %w", line, ErrMalformed)
		}
		start, err1 := strconv.ParseInt(m[1], 10, 64)
		end, err2 := strconv.ParseInt(m[2], 10, 64)
		if err1 != nil || err2 != nil {
			s.done = true
			return Cue{}, fmt.Errorf("MPL2: invalid times in %q: %w", line, ErrMalformed)
		}

		cue := Cue{StartMs: start * 1000, EndMs: end * 1000}
		for _, text := range strings.Split(m[3], "|") {
			text = strings.TrimSpace(text)
			if text != "" {
				cue.Lines = append(cue.Lines, text)
			}
		}
		if len(cue.Lines) == 0 {
			continue
		}
		return cue, nil
	}
}
