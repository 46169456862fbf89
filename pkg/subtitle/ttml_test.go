package subtitle

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTTMLTickTimes(t *testing.T) {
	cues := mustParse(t, TTML{}, `<?xml version="1.0" encoding="utf-8"?>
<tt xmlns="http://www.w3.org/ns/ttml" xmlns:ttp="http://www.w3.org/ns/ttml#parameter" ttp:tickRate="10000000">
  <body><div>
    <p begin="79249170t" end="118748420t">First</p>
  </div></body>
</tt>`)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].StartMs != 7924 {
		t.Errorf("expected start 7924, got %d", cues[0].StartMs)
	}
	if cues[0].EndMs != 11874 {
		t.Errorf("expected end 11874, got %d", cues[0].EndMs)
	}
}

func TestTTMLSecondsAndDuration(t *testing.T) {
	cues := mustParse(t, TTML{}, `<tt>
  <body>
    <p begin="5.0s" dur="2.5s">Duration based</p>
    <p begin="500ms" end="1500ms">Millisecond based</p>
  </body>
</tt>`)
	if cues[0].StartMs != 5000 || cues[0].EndMs != 7500 {
		t.Errorf("cue 0 times: %d-%d", cues[0].StartMs, cues[0].EndMs)
	}
	if cues[1].StartMs != 500 || cues[1].EndMs != 1500 {
		t.Errorf("cue 1 times: %d-%d", cues[1].StartMs, cues[1].EndMs)
	}
}

func TestTTMLEndWinsOverDuration(t *testing.T) {
	cues := mustParse(t, TTML{}, `<tt>
  <body><p begin="1s" end="2s" dur="10s">Text</p></body>
</tt>`)
	if cues[0].EndMs != 2000 {
		t.Errorf("end attribute should win over dur, got %d", cues[0].EndMs)
	}
}

func TestTTMLMissingEndDefaultsToStart(t *testing.T) {
	cues := mustParse(t, TTML{}, `<tt>
  <body><p begin="3s">Text</p></body>
</tt>`)
	if cues[0].EndMs != 3000 {
		t.Errorf("expected zero-duration cue, got end %d", cues[0].EndMs)
	}
}

func TestTTMLFrameTimes(t *testing.T) {
	cues := mustParse(t, TTML{}, `<tt xmlns:ttp="http://www.w3.org/ns/ttml#parameter" ttp:frameRate="25">
  <body><p begin="50f" end="100f">Frames</p></body>
</tt>`)
	if cues[0].StartMs != 2000 || cues[0].EndMs != 4000 {
		t.Errorf("cue times: %d-%d", cues[0].StartMs, cues[0].EndMs)
	}
}

func TestTTMLSMPTETimes(t *testing.T) {
	cues := mustParse(t, TTML{}, `<tt xmlns:ttp="http://www.w3.org/ns/ttml#parameter" ttp:timeBase="smpte" ttp:frameRate="25">
  <body><p begin="00:00:10:12" end="00:00:12:00">SMPTE</p></body>
</tt>`)
	if cues[0].StartMs != 10480 {
		t.Errorf("expected start 10480, got %d", cues[0].StartMs)
	}
	if cues[0].EndMs != 12000 {
		t.Errorf("expected end 12000, got %d", cues[0].EndMs)
	}
}

func TestTTMLInnerTextFormatting(t *testing.T) {
	cues := mustParse(t, TTML{}, `<tt>
  <body>
    <p begin="1s" end="2s">Plain <span>and styled</span><br/>new line</p>
    <p begin="3s" end="4s">Kept <metadata>dropped entirely</metadata> tail</p>
  </body>
</tt>`)
	if len(cues[0].Lines) != 2 || cues[0].Lines[0] != "Plain and styled" || cues[0].Lines[1] != "new line" {
		t.Errorf("unexpected lines: %q", cues[0].Lines)
	}
	if cues[1].Lines[0] != "Kept tail" {
		t.Errorf("unknown child element text should be discarded: %q", cues[1].Lines)
	}
}

func TestTTMLRejectsWrongRoot(t *testing.T) {
	_, err := TTML{}.Parse(context.Background(), strings.NewReader("<transcript><text start=\"1\">x</text></transcript>"))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestTTMLZeroTickRate(t *testing.T) {
	_, err := TTML{}.Parse(context.Background(), strings.NewReader(`<tt xmlns:ttp="x" ttp:tickRate="0"><body><p begin="1t">x</p></body></tt>`))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestTTMLSkipsMalformedParagraphs(t *testing.T) {
	cues := mustParse(t, TTML{}, `<tt>
  <body>
    <p begin="bogus" end="2s">Broken</p>
    <p begin="3s" end="4s">Good</p>
  </body>
</tt>`)
	if len(cues) != 1 || cues[0].Lines[0] != "Good" {
		t.Fatalf("unexpected cues: %+v", cues)
	}
}
