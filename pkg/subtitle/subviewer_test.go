package subtitle

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSubViewer2Parse(t *testing.T) {
	cues := mustParse(t, SubViewer{}, `[INFORMATION]
[TITLE]Sample
[END INFORMATION]

00:00:01.000,00:00:04.000
First cue[br]second line

00:00:05.500,00:00:08.200
Second cue
`)
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[0].StartMs != 1000 || cues[0].EndMs != 4000 {
		t.Errorf("cue 0 times: %d-%d", cues[0].StartMs, cues[0].EndMs)
	}
	if len(cues[0].Lines) != 2 || cues[0].Lines[1] != "second line" {
		t.Errorf("[br] not split: %q", cues[0].Lines)
	}
	if cues[1].StartMs != 5500 || cues[1].EndMs != 8200 {
		t.Errorf("cue 1 times: %d-%d", cues[1].StartMs, cues[1].EndMs)
	}
}

func TestSubViewer1PhysicalLines(t *testing.T) {
	cues := mustParse(t, SubViewer{}, `00:00:01.000,00:00:02.000
line one
line two
`)
	if len(cues[0].Lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", cues[0].Lines)
	}
}

func TestSubViewerHeaderBudget(t *testing.T) {
	input := strings.Repeat("filler header line\n", 25) + "00:00:01.000,00:00:02.000\nText\n"
	_, err := SubViewer{}.Parse(context.Background(), strings.NewReader(input))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestSubViewerInvalidTimestampAborts(t *testing.T) {
	_, err := SubViewer{}.Parse(context.Background(), strings.NewReader(`00:00:01.000,00:00:02.000
Fine

00:00:xx.000,00:00:04.000
Broken
`))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}
