package subtitle

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var ssaOverrideTagRegex = regexp.MustCompile(`\{[^}]*\}`)

// reads SubStation Alpha (.ssa/.ass) subtitles
type SubStationAlpha struct{}

func (p SubStationAlpha) Parse(ctx context.Context, r io.ReadSeeker) ([]Cue, error) {
	return parseAll(ctx, p, r, Config{}, "SubStation Alpha")
}

func (p SubStationAlpha) Stream(ctx context.Context, r io.ReadSeeker, cfg Config) (CueStream, error) {
	sc, err := newLineScanner(r, cfg.Encoding)
	if err != nil {
		return nil, err
	}
	return &ssaStream{sc: sc, startCol: -1, endCol: -1, textCol: -1}, nil
}

// one Dialogue row from the [Events] section
type ssaEvent struct {
	startMs int64
	endMs   int64
	text    string
}

type ssaStream struct {
	sc        *bufio.Scanner
	firstLine bool
	inEvents  bool
	sawEvents bool
	// column positions from the Format: header, not assumed fixed
	startCol  int
	endCol    int
	textCol   int
	columns   int
	wrapStyle string
	done      bool
}

func (s *ssaStream) Next(ctx context.Context) (Cue, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Cue{}, err
		}
		event, err := s.nextEvent()
		if err != nil {
			return Cue{}, err
		}
		if cue, ok := s.cueFromEvent(event); ok {
			return cue, nil
		}
	}
}

// nextEvent lexes the next Dialogue row, tracking sections and the
// Format: column header on the way. Malformed rows are skipped; a missing
// or incomplete Format: header is a structural error.
func (s *ssaStream) nextEvent() (ssaEvent, error) {
	if s.done {
		return ssaEvent{}, io.EOF
	}
	for s.sc.Scan() {
		line := s.sc.Text()
		if !s.firstLine {
			s.firstLine = true
			line = stripBOM(line)
		}
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(trimmed, "["), "]"))
			s.inEvents = section == "events"
			if s.inEvents {
				s.sawEvents = true
			}
			continue
		}

		if !s.inEvents {
			if rest, ok := strings.CutPrefix(trimmed, "WrapStyle:"); ok {
				s.wrapStyle = strings.TrimSpace(rest)
			}
			continue
		}

		if rest, ok := strings.CutPrefix(trimmed, "Format:"); ok {
			if err := s.readFormatHeader(rest); err != nil {
				s.done = true
				return ssaEvent{}, err
			}
			continue
		}

		if rest, ok := strings.CutPrefix(trimmed, "Dialogue:"); ok {
			if s.columns == 0 {
				s.done = true
				return ssaEvent{}, fmt.Errorf("SubStation Alpha: Dialogue before Format header: %w", ErrMalformed)
			}
			if event, ok := s.lexDialogue(rest); ok {
				return event, nil
			}
		}
	}
	s.done = true
	if err := s.sc.Err(); err != nil {
		return ssaEvent{}, fmt.Errorf("error reading SubStation Alpha input: %w", err)
	}
	if !s.sawEvents {
		return ssaEvent{}, fmt.Errorf("SubStation Alpha: missing [Events] section: %w", ErrMalformed)
	}
	return ssaEvent{}, io.EOF
}

func (s *ssaStream) readFormatHeader(rest string) error {
	columns := strings.Split(rest, ",")
	for i, col := range columns {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "start":
			s.startCol = i
		case "end":
			s.endCol = i
		case "text":
			s.textCol = i
		}
	}
	s.columns = len(columns)
	if s.startCol < 0 || s.endCol < 0 || s.textCol < 0 {
		return fmt.Errorf("SubStation Alpha: Format header missing Start/End/Text columns: %w", ErrMalformed)
	}
	return nil
}

func (s *ssaStream) lexDialogue(rest string) (ssaEvent, bool) {
	fields := splitSSAFields(strings.TrimSpace(rest), s.columns)
	if len(fields) < s.columns {
		return ssaEvent{}, false
	}
	start := parseTimecode(fields[s.startCol])
	end := parseTimecode(fields[s.endCol])
	if start < 0 || end < 0 {
		return ssaEvent{}, false
	}
	return ssaEvent{startMs: start, endMs: end, text: fields[s.textCol]}, true
}

func (s *ssaStream) cueFromEvent(event ssaEvent) (Cue, bool) {
	text := ssaOverrideTagRegex.ReplaceAllString(event.text, "")
	text = strings.ReplaceAll(text, `\N`, "\n")
	// soft breaks only break under wrap style 2 ("no wrapping"); smart
	// wrap styles render \n as a space
	if s.wrapStyle == "2" {
		text = strings.ReplaceAll(text, `\n`, "\n")
	} else {
		text = strings.ReplaceAll(text, `\n`, " ")
	}
	text = strings.ReplaceAll(text, `\h`, " ")

	cue := Cue{StartMs: event.startMs, EndMs: event.endMs}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			cue.Lines = append(cue.Lines, line)
		}
	}
	if len(cue.Lines) == 0 {
		return Cue{}, false
	}
	return cue, true
}

// splitSSAFields splits a Dialogue row into exactly numFields fields,
// keeping commas inside the trailing text field intact.
func splitSSAFields(content string, numFields int) []string {
	if numFields <= 0 {
		return nil
	}
	parts := make([]string, 0, numFields)
	remaining := content
	for i := 0; i < numFields-1; i++ {
		idx := strings.Index(remaining, ",")
		if idx == -1 {
			parts = append(parts, remaining)
			remaining = ""
			break
		}
		parts = append(parts, remaining[:idx])
		remaining = remaining[idx+1:]
	}
	parts = append(parts, remaining)
	return parts
}
