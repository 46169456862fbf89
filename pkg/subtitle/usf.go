package subtitle

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// reads USF (.usf) subtitles
type USF struct{}

func (p USF) Parse(ctx context.Context, r io.ReadSeeker) ([]Cue, error) {
	return parseAll(ctx, p, r, Config{}, "USF")
}

func (p USF) Stream(ctx context.Context, r io.ReadSeeker, cfg Config) (CueStream, error) {
	tr, err := newTextReader(r, cfg.Encoding)
	if err != nil {
		return nil, err
	}
	return &usfStream{dec: newXMLDecoder(tr)}, nil
}

// one <subtitle> element's timing attributes and text
type usfPart struct {
	start string
	stop  string
	dur   string
	lines []string
}

type usfStream struct {
	dec      *xml.Decoder
	rootSeen bool
	done     bool
}

func (s *usfStream) Next(ctx context.Context) (Cue, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Cue{}, err
		}
		part, err := s.nextPart()
		if err != nil {
			return Cue{}, err
		}
		if cue, ok := cueFromUSFPart(part); ok {
			return cue, nil
		}
	}
}

// nextPart lexes the next <subtitle> element after validating that the
// document root is <USFSubtitles>. Malformed subtitles are skipped.
func (s *usfStream) nextPart() (usfPart, error) {
	if s.done {
		return usfPart{}, io.EOF
	}
	for {
		tok, err := s.dec.Token()
		if err == io.EOF {
			s.done = true
			if !s.rootSeen {
				return usfPart{}, fmt.Errorf("USF: missing <USFSubtitles> root: %w", ErrMalformed)
			}
			return usfPart{}, io.EOF
		}
		if err != nil {
			s.done = true
			return usfPart{}, fmt.Errorf("USF: %w: %s", ErrMalformed, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if !s.rootSeen {
			if !strings.EqualFold(start.Name.Local, "USFSubtitles") {
				s.done = true
				return usfPart{}, fmt.Errorf("USF: root element is <%s>, not <USFSubtitles>: %w", start.Name.Local, ErrMalformed)
			}
			s.rootSeen = true
			continue
		}

		if !strings.EqualFold(start.Name.Local, "subtitle") {
			continue
		}
		part := usfPart{}
		for _, attr := range start.Attr {
			switch strings.ToLower(attr.Name.Local) {
			case "start":
				part.start = attr.Value
			case "stop":
				part.stop = attr.Value
			case "duration":
				part.dur = attr.Value
			}
		}
		lines, err := usfLines(s.dec, start)
		if err != nil {
			s.done = true
			return usfPart{}, fmt.Errorf("USF: %w: %s", ErrMalformed, err)
		}
		part.lines = lines
		return part, nil
	}
}

// usfLines reads one <subtitle> element's children. Each <text> or
// <karaoke> child is a visual line of its own; character data sitting
// directly under <subtitle> forms one more line.
func usfLines(dec *xml.Decoder, start xml.StartElement) ([]string, error) {
	var lines []string
	var stray strings.Builder

	flushStray := func() {
		if s := strings.Join(strings.Fields(stray.String()), " "); s != "" {
			lines = append(lines, s)
		}
		stray.Reset()
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch strings.ToLower(t.Name.Local) {
			case "text", "karaoke":
				flushStray()
				inner, err := readInnerText(dec, t)
				if err != nil {
					return nil, err
				}
				lines = append(lines, inner...)
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.CharData:
			stray.Write(t)
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				flushStray()
				return trimEmptyLines(lines), nil
			}
		}
	}
}

// cueFromUSFPart converts one subtitle; stop takes priority over
// start+duration.
func cueFromUSFPart(part usfPart) (Cue, bool) {
	if len(part.lines) == 0 {
		return Cue{}, false
	}
	start := usfTime(part.start)
	if start < 0 {
		return Cue{}, false
	}
	end := TimeUnknown
	if part.stop != "" {
		end = usfTime(part.stop)
	} else if part.dur != "" {
		if dur := usfTime(part.dur); dur >= 0 {
			end = start + dur
		}
	} else {
		end = start
	}
	if end < 0 {
		return Cue{}, false
	}
	return Cue{StartMs: start, EndMs: end, Lines: part.lines}, true
}

// usfTime reads either a HH:MM:SS.mmm timecode or a bare second count,
// integral or fractional.
func usfTime(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return TimeUnknown
	}
	if strings.Contains(s, ":") {
		return parseTimecode(s)
	}
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil || sec < 0 {
		return TimeUnknown
	}
	return int64(sec * 1000)
}
