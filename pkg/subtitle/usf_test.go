package subtitle

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestUSFParse(t *testing.T) {
	cues := mustParse(t, USF{}, `<?xml version="1.0"?>
<USFSubtitles version="1.0">
  <metadata><title>Sample</title></metadata>
  <subtitles>
    <subtitle start="00:00:01.000" stop="00:00:04.000">
      <text>First cue</text>
    </subtitle>
    <subtitle start="10.5" duration="2">
      <text>Seconds based</text>
    </subtitle>
  </subtitles>
</USFSubtitles>`)
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[0].StartMs != 1000 || cues[0].EndMs != 4000 {
		t.Errorf("cue 0 times: %d-%d", cues[0].StartMs, cues[0].EndMs)
	}
	if cues[1].StartMs != 10500 || cues[1].EndMs != 12500 {
		t.Errorf("cue 1 times: %d-%d", cues[1].StartMs, cues[1].EndMs)
	}
}

func TestUSFSiblingTextElementsAreLines(t *testing.T) {
	cues := mustParse(t, USF{}, `<USFSubtitles>
  <subtitles>
    <subtitle start="1" stop="2">
      <text>First line</text>
      <text>Second line</text>
    </subtitle>
  </subtitles>
</USFSubtitles>`)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	want := []string{"First line", "Second line"}
	if len(cues[0].Lines) != len(want) {
		t.Fatalf("expected %d lines, got %v", len(want), cues[0].Lines)
	}
	for i, line := range want {
		if cues[0].Lines[i] != line {
			t.Errorf("line %d = %q, want %q", i, cues[0].Lines[i], line)
		}
	}
}

func TestUSFStopWinsOverDuration(t *testing.T) {
	cues := mustParse(t, USF{}, `<USFSubtitles>
  <subtitles>
    <subtitle start="1" stop="2" duration="30"><text>x</text></subtitle>
  </subtitles>
</USFSubtitles>`)
	if cues[0].EndMs != 2000 {
		t.Errorf("stop should win over duration, got %d", cues[0].EndMs)
	}
}

func TestUSFRejectsWrongRoot(t *testing.T) {
	_, err := USF{}.Parse(context.Background(), strings.NewReader("<tt><body><p begin=\"1s\">x</p></body></tt>"))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}
