package subtitle

import (
	"context"
	"fmt"
	"html"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var (
	samiSyncRegex  = regexp.MustCompile(`(?i)<sync[^>]*\bstart\s*=\s*"?(-?\d+)"?[^>]*>`)
	samiParaRegex  = regexp.MustCompile(`(?i)<p(\s[^>]*)?>`)
	samiClassRegex = regexp.MustCompile(`(?i)\bclass\s*=\s*"?([^\s">]+)"?`)
	samiBreakRegex = regexp.MustCompile(`(?i)<br\s*/?>`)
)

// reads SAMI (.smi) subtitles. SAMI markup is HTML-like and rarely
// well-formed, so blocks are scanned textually instead of with an XML
// decoder.
type SAMI struct{}

func (p SAMI) Parse(ctx context.Context, r io.ReadSeeker) ([]Cue, error) {
	cues, _, err := p.ParseConfig(ctx, r, Config{})
	return cues, err
}

// ParseConfig honors a forced language class from cfg and reports the
// language actually used in Detected.
func (p SAMI) ParseConfig(ctx context.Context, r io.ReadSeeker, cfg Config) ([]Cue, Detected, error) {
	cs, err := p.Stream(ctx, r, cfg)
	if err != nil {
		return nil, Detected{}, err
	}
	stream := cs.(*samiStream)
	cues, err := drainStream(ctx, stream)
	if err != nil {
		return nil, Detected{}, err
	}
	if len(cues) == 0 {
		return nil, Detected{}, fmt.Errorf("SAMI: %w", ErrNoCues)
	}
	return cues, Detected{Language: stream.language}, nil
}

func (p SAMI) Stream(ctx context.Context, r io.ReadSeeker, cfg Config) (CueStream, error) {
	tr, err := newTextReader(r, cfg.Encoding)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(tr)
	if err != nil {
		return nil, fmt.Errorf("error reading SAMI input: %w", err)
	}
	content := string(data)
	lower := strings.ToLower(content)
	if !strings.Contains(lower, "<sami") && !strings.Contains(lower, "<body") {
		return nil, fmt.Errorf("SAMI: missing <SAMI> or <BODY> markup: %w", ErrMalformed)
	}
	return &samiStream{
		content:  content,
		syncs:    samiSyncRegex.FindAllStringSubmatchIndex(content, -1),
		language: cfg.Language,
	}, nil
}

// one <SYNC> block: start time plus the raw markup until the next sync
type samiSyncBlock struct {
	startMs int64
	markup  string
}

type samiStream struct {
	content  string
	syncs    [][]int
	next     int
	language string
	pending  *Cue
	done     bool
}

// Next emits a cue once the following sync block supplies its end time;
// the final cue keeps an unknown end time.
func (s *samiStream) Next(ctx context.Context) (Cue, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Cue{}, err
		}
		block, err := s.nextBlock()
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
			s.pending.EndMs = block.startMs
			out = s.pending
			s.pending = nil
		}
		if lines := s.blockLines(block.markup); len(lines) > 0 {
			s.pending = &Cue{StartMs: block.startMs, EndMs: TimeUnknown, Lines: lines}
		}
		if out != nil {
			return *out, nil
		}
	}
}

func (s *samiStream) nextBlock() (samiSyncBlock, error) {
	if s.done || s.next >= len(s.syncs) {
		s.done = true
		return samiSyncBlock{}, io.EOF
	}
	loc := s.syncs[s.next]
	s.next++

	startMs, err := strconv.ParseInt(s.content[loc[2]:loc[3]], 10, 64)
	if err != nil || startMs < 0 {
		// skip the broken block but keep its boundary out of the chain
		return s.nextBlock()
	}

	end := len(s.content)
	if s.next < len(s.syncs) {
		end = s.syncs[s.next][0]
	} else if i := strings.Index(strings.ToLower(s.content[loc[1]:]), "</body"); i >= 0 {
		end = loc[1] + i
	}
	return samiSyncBlock{startMs: startMs, markup: s.content[loc[1]:end]}, nil
}

// blockLines extracts the visible lines of the target language from one
// sync block. The first language class seen anywhere in the file becomes
// the target; paragraphs in other classes are dropped silently.
func (s *samiStream) blockLines(markup string) []string {
	paras := samiParaRegex.FindAllStringSubmatchIndex(markup, -1)
	var lines []string

	appendText := func(raw string) {
		raw = samiBreakRegex.ReplaceAllString(raw, "\n")
		raw = html.UnescapeString(stripTags(raw))
		for _, line := range strings.Split(raw, "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				lines = append(lines, line)
			}
		}
	}

	if len(paras) == 0 {
		appendText(markup)
		return lines
	}

	for i, loc := range paras {
		attrs := ""
		if loc[2] >= 0 {
			attrs = markup[loc[2]:loc[3]]
		}
		class := ""
		if m := samiClassRegex.FindStringSubmatch(attrs); m != nil {
			class = m[1]
		}
		if class != "" {
			if s.language == "" {
				s.language = class
			}
			if !strings.EqualFold(class, s.language) {
				continue
			}
		}
		end := len(markup)
		if i+1 < len(paras) {
			end = paras[i+1][0]
		}
		appendText(markup[loc[1]:end])
	}
	return lines
}
