package subtitle

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	// official [mm:ss.xx] tag plus the unofficial [hh:mm:ss.xx] variant
	lrcLongTagRegex  = regexp.MustCompile(`^\[(\d+):(\d{2}):(\d{2})\.(\d{1,3})\]`)
	lrcShortTagRegex = regexp.MustCompile(`^\[(\d+):(\d{2})(?:\.(\d{1,3}))?\]`)

	// enhanced (A2) karaoke word markers inside the lyric text
	lrcKaraokeRegex = regexp.MustCompile(`<\d+:\d{2}(?:\.\d{1,3})?>`)
)

const lrcDefaultScanBudget = 20

// reads LRC (.lrc) lyric subtitles
type LRC struct{}

func (p LRC) Parse(ctx context.Context, r io.ReadSeeker) ([]Cue, error) {
	cues, _, err := p.ParseConfig(ctx, r, Config{})
	return cues, err
}

func (p LRC) ParseConfig(ctx context.Context, r io.ReadSeeker, cfg Config) ([]Cue, Detected, error) {
	cues, err := parseAll(ctx, p, r, cfg, "LRC")
	return cues, Detected{}, err
}

func (p LRC) Stream(ctx context.Context, r io.ReadSeeker, cfg Config) (CueStream, error) {
	sc, err := newLineScanner(r, cfg.Encoding)
	if err != nil {
		return nil, err
	}
	return &lrcStream{sc: sc, budget: cfg.scanBudget(lrcDefaultScanBudget)}, nil
}

// one timestamped lyric line
type lrcPart struct {
	startMs int64
	text    string
}

type lrcStream struct {
	sc      *bufio.Scanner
	budget  int
	started bool
	scanned int
	pending *Cue
	done    bool
}

// Next emits the previous lyric once the following timestamp is known;
// the final lyric keeps an unknown end time.
func (s *lrcStream) Next(ctx context.Context) (Cue, error) {
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
		if part.text != "" {
			s.pending = &Cue{StartMs: part.startMs, EndMs: TimeUnknown, Lines: []string{part.text}}
		}
		if out != nil {
			return *out, nil
		}
	}
}

// nextPart lexes the next timestamped line, skipping metadata tags and,
// before the first hit, giving up once the scan budget is spent.
func (s *lrcStream) nextPart() (lrcPart, error) {
	if s.done {
		return lrcPart{}, io.EOF
	}
	for s.sc.Scan() {
		line := stripBOM(strings.TrimSpace(s.sc.Text()))
		part, ok := lexLRCLine(line)
		if !ok {
			if !s.started {
				s.scanned++
				if s.scanned > s.budget {
					s.done = true
					return lrcPart{}, fmt.Errorf("LRC: no timestamp within %d lines: %w", s.budget, ErrMalformed)
				}
			}
			continue
		}
		s.started = true
		return part, nil
	}
	s.done = true
	if err := s.sc.Err(); err != nil {
		return lrcPart{}, fmt.Errorf("error reading LRC input: %w", err)
	}
	return lrcPart{}, io.EOF
}

func lexLRCLine(line string) (lrcPart, bool) {
	var startMs int64 = TimeUnknown
	rest := line

	// several time tags may prefix one lyric; the first one wins
	for {
		if m := lrcLongTagRegex.FindStringSubmatch(rest); m != nil {
			ms := srtTimestamp(m[1], m[2], m[3], m[4])
			if startMs == TimeUnknown {
				startMs = ms
			}
			rest = rest[len(m[0]):]
			continue
		}
		if m := lrcShortTagRegex.FindStringSubmatch(rest); m != nil {
			ms := srtTimestamp("0", m[1], m[2], m[3])
			if startMs == TimeUnknown {
				startMs = ms
			}
			rest = rest[len(m[0]):]
			continue
		}
		break
	}
	if startMs == TimeUnknown || startMs < 0 {
		return lrcPart{}, false
	}

	text := lrcKaraokeRegex.ReplaceAllString(rest, "")
	return lrcPart{startMs: startMs, text: strings.TrimSpace(text)}, true
}
