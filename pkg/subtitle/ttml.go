package subtitle

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// reads TTML/DFXP/ITT (.ttml/.dfxp/.itt/.xml) subtitles
type TTML struct{}

func (p TTML) Parse(ctx context.Context, r io.ReadSeeker) ([]Cue, error) {
	return parseAll(ctx, p, r, Config{}, "TTML")
}

func (p TTML) Stream(ctx context.Context, r io.ReadSeeker, cfg Config) (CueStream, error) {
	tr, err := newTextReader(r, cfg.Encoding)
	if err != nil {
		return nil, err
	}
	dec := newXMLDecoder(tr)
	return &ttmlStream{dec: dec}, nil
}

// document-level timing parameters declared on the <tt> element
type ttmlDoc struct {
	tickRate  int64
	frameRate float64
	smpte     bool
}

// raw attributes of one <p> element plus its extracted text
type ttmlPara struct {
	begin string
	end   string
	dur   string
	lines []string
}

type ttmlStream struct {
	dec      *xml.Decoder
	doc      ttmlDoc
	rootSeen bool
	done     bool
}

func (s *ttmlStream) Next(ctx context.Context) (Cue, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Cue{}, err
		}
		para, err := s.nextPara()
		if err != nil {
			return Cue{}, err
		}
		if cue, ok := s.cueFromPara(para); ok {
			return cue, nil
		}
	}
}

// nextPara lexes the next <p> element. The first start element must be
// <tt>, whose timing attributes apply to every subsequent paragraph.
func (s *ttmlStream) nextPara() (ttmlPara, error) {
	if s.done {
		return ttmlPara{}, io.EOF
	}
	for {
		tok, err := s.dec.Token()
		if err == io.EOF {
			s.done = true
			if !s.rootSeen {
				return ttmlPara{}, fmt.Errorf("TTML: missing <tt> root: %w", ErrMalformed)
			}
			return ttmlPara{}, io.EOF
		}
		if err != nil {
			s.done = true
			return ttmlPara{}, fmt.Errorf("TTML: %w: %s", ErrMalformed, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if !s.rootSeen {
			if start.Name.Local != "tt" {
				s.done = true
				return ttmlPara{}, fmt.Errorf("TTML: root element is <%s>, not <tt>: %w", start.Name.Local, ErrMalformed)
			}
			doc, err := readTTMLDocAttrs(start)
			if err != nil {
				s.done = true
				return ttmlPara{}, err
			}
			s.doc = doc
			s.rootSeen = true
			continue
		}

		if start.Name.Local != "p" {
			continue
		}
		para := ttmlPara{}
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "begin":
				para.begin = attr.Value
			case "end":
				para.end = attr.Value
			case "dur":
				para.dur = attr.Value
			}
		}
		lines, err := readInnerText(s.dec, start)
		if err != nil {
			s.done = true
			return ttmlPara{}, fmt.Errorf("TTML: %w: %s", ErrMalformed, err)
		}
		para.lines = lines
		return para, nil
	}
}

// cueFromPara converts one paragraph; end takes priority over begin+dur,
// and a paragraph with neither gets a zero-duration cue. Malformed
// paragraphs are skipped rather than failing the document.
func (s *ttmlStream) cueFromPara(para ttmlPara) (Cue, bool) {
	if len(para.lines) == 0 {
		return Cue{}, false
	}
	begin := s.doc.parseTime(para.begin)
	if begin < 0 {
		return Cue{}, false
	}
	end := TimeUnknown
	if para.end != "" {
		end = s.doc.parseTime(para.end)
	} else if para.dur != "" {
		if dur := s.doc.parseTime(para.dur); dur >= 0 {
			end = begin + dur
		}
	} else {
		end = begin
	}
	if end < 0 {
		return Cue{}, false
	}
	return Cue{StartMs: begin, EndMs: end, Lines: para.lines}, true
}

func readTTMLDocAttrs(tt xml.StartElement) (ttmlDoc, error) {
	doc := ttmlDoc{tickRate: 10000000, frameRate: 24}
	multiplier := 1.0
	for _, attr := range tt.Attr {
		switch attr.Name.Local {
		case "tickRate":
			rate, err := strconv.ParseInt(strings.TrimSpace(attr.Value), 10, 64)
			if err != nil || rate == 0 {
				return doc, fmt.Errorf("TTML: invalid tickRate %q: %w", attr.Value, ErrMalformed)
			}
			doc.tickRate = rate
		case "frameRate":
			rate, err := strconv.ParseFloat(strings.TrimSpace(attr.Value), 64)
			if err != nil || rate <= 0 {
				return doc, fmt.Errorf("TTML: invalid frameRate %q: %w", attr.Value, ErrMalformed)
			}
			doc.frameRate = rate
		case "frameRateMultiplier":
			// "numerator denominator" pair
			fields := strings.Fields(attr.Value)
			if len(fields) == 2 {
				num, err1 := strconv.ParseFloat(fields[0], 64)
				den, err2 := strconv.ParseFloat(fields[1], 64)
				if err1 == nil && err2 == nil && den != 0 {
					multiplier = num / den
				}
			}
		case "timeBase":
			doc.smpte = strings.EqualFold(strings.TrimSpace(attr.Value), "smpte")
		}
	}
	doc.frameRate *= multiplier
	return doc, nil
}

// parseTime converts a TTML time expression to milliseconds, -1 if
// invalid. Offset forms carry a metric suffix (t, f, ms, s, m, h); clock
// forms are HH:MM:SS:FF under an smpte time base, HH:MM:SS[.fff] otherwise.
func (d ttmlDoc) parseTime(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return TimeUnknown
	}

	switch {
	case strings.HasSuffix(s, "ms"):
		if v, err := strconv.ParseFloat(s[:len(s)-2], 64); err == nil && v >= 0 {
			return int64(v)
		}
		return TimeUnknown
	case strings.HasSuffix(s, "t"):
		ticks, err := strconv.ParseInt(s[:len(s)-1], 10, 64)
		if err != nil || ticks < 0 {
			return TimeUnknown
		}
		return ticks * 1000 / d.tickRate
	case strings.HasSuffix(s, "f"):
		frames, err := strconv.ParseFloat(s[:len(s)-1], 64)
		if err != nil || frames < 0 {
			return TimeUnknown
		}
		return int64(frames * 1000 / d.frameRate)
	case strings.HasSuffix(s, "s"):
		if v, err := strconv.ParseFloat(s[:len(s)-1], 64); err == nil && v >= 0 {
			return int64(v * 1000)
		}
		return TimeUnknown
	case strings.HasSuffix(s, "m"):
		if v, err := strconv.ParseFloat(s[:len(s)-1], 64); err == nil && v >= 0 {
			return int64(v * 60000)
		}
		return TimeUnknown
	case strings.HasSuffix(s, "h"):
		if v, err := strconv.ParseFloat(s[:len(s)-1], 64); err == nil && v >= 0 {
			return int64(v * 3600000)
		}
		return TimeUnknown
	}

	if d.smpte {
		if ms := d.parseSMPTE(s); ms >= 0 {
			return ms
		}
	}
	return parseTimecode(s)
}

// parseSMPTE reads HH:MM:SS:FF where FF counts frames.
func (d ttmlDoc) parseSMPTE(s string) int64 {
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		return TimeUnknown
	}
	nums := make([]int64, 4)
	for i, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil || n < 0 {
			return TimeUnknown
		}
		nums[i] = n
	}
	frameMs := int64(float64(nums[3]) * 1000 / d.frameRate)
	return nums[0]*3600000 + nums[1]*60000 + nums[2]*1000 + frameMs
}
