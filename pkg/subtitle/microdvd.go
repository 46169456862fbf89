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

var microDVDLineRegex = regexp.MustCompile(`^\{(\d+)\}\{(\d+)\}(.*)$`)

const (
	microDVDDefaultFrameRate  = 25.0
	microDVDDefaultScanBudget = 20
)

// reads MicroDVD (.sub) subtitles: frame-numbered "{start}{end}text" lines
type MicroDVD struct{}

func (p MicroDVD) Parse(ctx context.Context, r io.ReadSeeker) ([]Cue, error) {
	cues, _, err := p.ParseConfig(ctx, r, Config{})
	return cues, err
}

// ParseConfig honors a forced frame rate from cfg and reports the rate
// actually used, auto-detected or not, in Detected.
func (p MicroDVD) ParseConfig(ctx context.Context, r io.ReadSeeker, cfg Config) ([]Cue, Detected, error) {
	cs, err := p.Stream(ctx, r, cfg)
	if err != nil {
		return nil, Detected{}, err
	}
	stream := cs.(*microDVDStream)
	cues, err := drainStream(ctx, stream)
	if err != nil {
		return nil, Detected{}, err
	}
	if len(cues) == 0 {
		return nil, Detected{}, fmt.Errorf("MicroDVD: %w", ErrNoCues)
	}
	return cues, Detected{FrameRate: stream.frameRate}, nil
}

func (p MicroDVD) Stream(ctx context.Context, r io.ReadSeeker, cfg Config) (CueStream, error) {
	sc, err := newLineScanner(r, cfg.Encoding)
	if err != nil {
		return nil, err
	}
	return &microDVDStream{
		sc:        sc,
		log:       cfg.logger(),
		budget:    cfg.scanBudget(microDVDDefaultScanBudget),
		frameRate: cfg.FrameRate,
		forced:    cfg.FrameRate > 0,
	}, nil
}

// one frame-numbered line
type microDVDPart struct {
	startFrame int64
	endFrame   int64
	payload    string
}

type microDVDStream struct {
	sc        *bufio.Scanner
	log       Logger
	budget    int
	scanned   int
	frameRate float64
	forced    bool
	started   bool
	done      bool
}

func (s *microDVDStream) Next(ctx context.Context) (Cue, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Cue{}, err
		}
		part, err := s.nextPart()
		if err != nil {
			return Cue{}, err
		}

		first := !s.started
		s.started = true
		if first {
			// a bare-number payload on the first line declares the frame
			// rate instead of being a cue; a forced rate still consumes
			// the marker but ignores its value
			if rate, ok := parseFrameRate(part.payload); ok {
				if !s.forced {
					s.frameRate = rate
				}
				continue
			}
			if !s.forced {
				s.frameRate = microDVDDefaultFrameRate
				s.log.Warnw("frame rate not detected, using default",
					"frameRate", microDVDDefaultFrameRate)
			}
		}

		cue := Cue{
			StartMs: framesToMs(part.startFrame, s.frameRate),
			EndMs:   framesToMs(part.endFrame, s.frameRate),
		}
		for _, text := range strings.Split(part.payload, "|") {
			text = strings.TrimSpace(stripTags(text))
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

// nextPart lexes the next "{start}{end}payload" line. Leading garbage is
// tolerated within the scan budget; once the format is established, any
// invalid line aborts the parse.
func (s *microDVDStream) nextPart() (microDVDPart, error) {
	if s.done {
		return microDVDPart{}, io.EOF
	}
	for s.sc.Scan() {
		line := stripBOM(strings.TrimSpace(s.sc.Text()))
		if line == "" {
			continue
		}
		m := microDVDLineRegex.FindStringSubmatch(line)
		if m == nil {
			if s.started {
				s.done = true
				return microDVDPart{}, fmt.Errorf("MicroDVD: invalid line %q: %w", line, ErrMalformed)
			}
			s.scanned++
			if s.scanned > s.budget {
				s.done = true
				return microDVDPart{}, fmt.Errorf("MicroDVD: no cue line within %d lines: %w", s.budget, ErrMalformed)
			}
			continue
		}
		start, err1 := strconv.ParseInt(m[1], 10, 64)
		end, err2 := strconv.ParseInt(m[2], 10, 64)
		if err1 != nil || err2 != nil {
			s.done = true
			return microDVDPart{}, fmt.Errorf("MicroDVD: invalid frame numbers in %q: %w", line, ErrMalformed)
		}
		return microDVDPart{startFrame: start, endFrame: end, payload: m[3]}, nil
	}
	s.done = true
	if err := s.sc.Err(); err != nil {
		return microDVDPart{}, fmt.Errorf("error reading MicroDVD input: %w", err)
	}
	return microDVDPart{}, io.EOF
}

func parseFrameRate(payload string) (float64, bool) {
	payload = strings.Replace(strings.TrimSpace(payload), ",", ".", 1)
	rate, err := strconv.ParseFloat(payload, 64)
	if err != nil || rate <= 0 {
		return 0, false
	}
	return rate, true
}

func framesToMs(frame int64, fps float64) int64 {
	return int64(float64(frame) * 1000.0 / fps)
}
