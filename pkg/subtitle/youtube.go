package subtitle

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"
)

// reads YouTube timedtext XML (srv1/srv2/srv3) subtitles
type YoutubeXml struct{}

func (p YoutubeXml) Parse(ctx context.Context, r io.ReadSeeker) ([]Cue, error) {
	return parseAll(ctx, p, r, Config{}, "YouTube XML")
}

func (p YoutubeXml) Stream(ctx context.Context, r io.ReadSeeker, cfg Config) (CueStream, error) {
	tr, err := newTextReader(r, cfg.Encoding)
	if err != nil {
		return nil, err
	}
	return &youtubeStream{dec: newXMLDecoder(tr)}, nil
}

// one <p> or <text> element's timing attributes and text
type youtubePart struct {
	startMs int64
	durMs   int64
	lines   []string
}

type youtubeStream struct {
	dec      *xml.Decoder
	rootSeen bool
	done     bool
}

func (s *youtubeStream) Next(ctx context.Context) (Cue, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Cue{}, err
		}
		part, err := s.nextPart()
		if err != nil {
			return Cue{}, err
		}
		cue := Cue{StartMs: part.startMs, EndMs: part.startMs + part.durMs}
		for _, line := range part.lines {
			line = strings.TrimSpace(html.UnescapeString(line))
			if line != "" {
				cue.Lines = append(cue.Lines, line)
			}
		}
		if len(cue.Lines) == 0 {
			continue
		}
		return cue, nil
	}
}

// nextPart lexes the next timed element. srv2/srv3 carry t/d attributes
// in milliseconds; srv1 falls back to start/dur attributes in seconds.
// Elements with no usable timing are skipped.
func (s *youtubeStream) nextPart() (youtubePart, error) {
	if s.done {
		return youtubePart{}, io.EOF
	}
	for {
		tok, err := s.dec.Token()
		if err == io.EOF {
			s.done = true
			return youtubePart{}, io.EOF
		}
		if err != nil {
			s.done = true
			return youtubePart{}, fmt.Errorf("YouTube XML: %w: %s", ErrMalformed, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if !s.rootSeen {
			name := strings.ToLower(start.Name.Local)
			if name != "transcript" && name != "timedtext" {
				s.done = true
				return youtubePart{}, fmt.Errorf("YouTube XML: unexpected root <%s>: %w", start.Name.Local, ErrMalformed)
			}
			s.rootSeen = true
			continue
		}

		if start.Name.Local != "p" && start.Name.Local != "text" {
			continue
		}
		part, hasTiming := readYoutubeAttrs(start)
		lines, err := readInnerText(s.dec, start)
		if err != nil {
			s.done = true
			return youtubePart{}, fmt.Errorf("YouTube XML: %w: %s", ErrMalformed, err)
		}
		if !hasTiming {
			continue
		}
		part.lines = lines
		return part, nil
	}
}

func readYoutubeAttrs(start xml.StartElement) (youtubePart, bool) {
	var part youtubePart
	var startStr, durStr string
	hasMs := false
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "t":
			if v, err := strconv.ParseInt(attr.Value, 10, 64); err == nil && v >= 0 {
				part.startMs = v
				hasMs = true
			}
		case "d":
			if v, err := strconv.ParseInt(attr.Value, 10, 64); err == nil && v >= 0 {
				part.durMs = v
			}
		case "start":
			startStr = attr.Value
		case "dur":
			durStr = attr.Value
		}
	}
	if hasMs {
		return part, true
	}
	if startStr == "" {
		return part, false
	}
	sec, err := strconv.ParseFloat(startStr, 64)
	if err != nil || sec < 0 {
		return part, false
	}
	part.startMs = int64(sec * 1000)
	if durStr != "" {
		if dur, err := strconv.ParseFloat(durStr, 64); err == nil && dur >= 0 {
			part.durMs = int64(dur * 1000)
		}
	}
	return part, true
}
