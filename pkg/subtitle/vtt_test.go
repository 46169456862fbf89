package subtitle

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestWebVTTParse(t *testing.T) {
	cues := mustParse(t, WebVTT{}, `WEBVTT

1
00:00:01.000 --> 00:00:04.000
Hello, world!

00:10.500 --> 00:13.000
No identifier, short times.
`)
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[0].StartMs != 1000 || cues[0].EndMs != 4000 {
		t.Errorf("cue 0 times: %d-%d", cues[0].StartMs, cues[0].EndMs)
	}
	if cues[1].StartMs != 10500 || cues[1].EndMs != 13000 {
		t.Errorf("cue 1 times: %d-%d", cues[1].StartMs, cues[1].EndMs)
	}
}

func TestWebVTTRequiresHeader(t *testing.T) {
	_, err := WebVTT{}.Parse(context.Background(), strings.NewReader(`1
00:00:01,000 --> 00:00:02,000
SubRip content
`))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for SubRip input, got %v", err)
	}
}

func TestWebVTTSkipsNoteAndStyleBlocks(t *testing.T) {
	cues := mustParse(t, WebVTT{}, `WEBVTT

NOTE this is a comment
spanning two lines

STYLE
::cue { color: red }

00:00:01.000 --> 00:00:02.000
Visible
`)
	if len(cues) != 1 || cues[0].Lines[0] != "Visible" {
		t.Fatalf("unexpected cues: %+v", cues)
	}
}

func TestWebVTTDecodesEntitiesAndStripsTags(t *testing.T) {
	cues := mustParse(t, WebVTT{}, `WEBVTT

00:00:01.000 --> 00:00:02.000
<v Roger>Tom &amp; Jerry</v>
`)
	if cues[0].Lines[0] != "Tom & Jerry" {
		t.Errorf("unexpected text: %q", cues[0].Lines[0])
	}
}
