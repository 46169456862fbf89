package subtitle

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, p Parser, input string) []Cue {
	t.Helper()
	cues, err := p.Parse(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	return cues
}

func TestSubRipParse(t *testing.T) {
	cues := mustParse(t, SubRip{}, `1
00:00:10,500 --> 00:00:13,000
Elephant's Dream
`)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].StartMs != 10500 {
		t.Errorf("expected start 10500, got %d", cues[0].StartMs)
	}
	if cues[0].EndMs != 13000 {
		t.Errorf("expected end 13000, got %d", cues[0].EndMs)
	}
	if len(cues[0].Lines) != 1 || cues[0].Lines[0] != "Elephant's Dream" {
		t.Errorf("unexpected lines: %q", cues[0].Lines)
	}
}

func TestSubRipMultipleBlocks(t *testing.T) {
	cues := mustParse(t, SubRip{}, `1
00:00:01,000 --> 00:00:04,000
Hello, world!

2
00:00:05,500 --> 00:00:08,200
This is a test.
With multiple lines.
`)
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if len(cues[1].Lines) != 2 {
		t.Fatalf("expected 2 lines in cue 1, got %q", cues[1].Lines)
	}
	if cues[1].Lines[1] != "With multiple lines." {
		t.Errorf("unexpected second line: %q", cues[1].Lines[1])
	}
}

func TestSubRipDotSeparatorAndSloppyArrow(t *testing.T) {
	cues := mustParse(t, SubRip{}, `1
00:00:01.000 - > 00:00:02.000
One

2
00:00:03,000 -> 00:00:04,000
Two
`)
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[0].StartMs != 1000 || cues[0].EndMs != 2000 {
		t.Errorf("cue 0 times: %d-%d", cues[0].StartMs, cues[0].EndMs)
	}
}

func TestSubRipStripsInlineTags(t *testing.T) {
	cues := mustParse(t, SubRip{}, `1
00:00:01,000 --> 00:00:02,000
<i>styled</i> {\an8}positioned
`)
	if cues[0].Lines[0] != "styled positioned" {
		t.Errorf("tags not stripped: %q", cues[0].Lines[0])
	}
}

func TestSubRipRejectsWebVTT(t *testing.T) {
	_, err := SubRip{}.Parse(context.Background(), strings.NewReader("WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nHello\n"))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for WebVTT input, got %v", err)
	}
}

func TestSubRipMissingCounter(t *testing.T) {
	cues := mustParse(t, SubRip{}, `00:00:01,000 --> 00:00:02,000
No counter here
`)
	if len(cues) != 1 || cues[0].Lines[0] != "No counter here" {
		t.Fatalf("unexpected result: %+v", cues)
	}
}

func TestSubRipEmptyInput(t *testing.T) {
	_, err := SubRip{}.Parse(context.Background(), strings.NewReader(""))
	if !errors.Is(err, ErrNoCues) {
		t.Fatalf("expected ErrNoCues, got %v", err)
	}
}
