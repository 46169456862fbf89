package subtitle

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestYoutubeXmlSrv3(t *testing.T) {
	cues := mustParse(t, YoutubeXml{}, `<timedtext format="3">
  <body>
    <p t="1000" d="2000">First <s>segmented</s></p>
    <p t="4000" d="1500">Second</p>
  </body>
</timedtext>`)
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[0].StartMs != 1000 || cues[0].EndMs != 3000 {
		t.Errorf("cue 0 times: %d-%d", cues[0].StartMs, cues[0].EndMs)
	}
	if cues[0].Lines[0] != "First segmented" {
		t.Errorf("unexpected text: %q", cues[0].Lines[0])
	}
}

func TestYoutubeXmlSrv1SecondsFallback(t *testing.T) {
	cues := mustParse(t, YoutubeXml{}, `<transcript>
  <text start="9.75" dur="2.5">Seconds &amp;amp; fractions</text>
</transcript>`)
	if cues[0].StartMs != 9750 || cues[0].EndMs != 12250 {
		t.Errorf("cue times: %d-%d", cues[0].StartMs, cues[0].EndMs)
	}
	// srv1 double-encodes entities
	if cues[0].Lines[0] != "Seconds & fractions" {
		t.Errorf("unexpected text: %q", cues[0].Lines[0])
	}
}

func TestYoutubeXmlRejectsWrongRoot(t *testing.T) {
	_, err := YoutubeXml{}.Parse(context.Background(), strings.NewReader("<tt><body><p begin=\"1s\">x</p></body></tt>"))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestYoutubeXmlSkipsUntimedElements(t *testing.T) {
	cues := mustParse(t, YoutubeXml{}, `<timedtext>
  <body>
    <p>No timing at all</p>
    <p t="500" d="500">Timed</p>
  </body>
</timedtext>`)
	if len(cues) != 1 || cues[0].Lines[0] != "Timed" {
		t.Fatalf("unexpected cues: %+v", cues)
	}
}
