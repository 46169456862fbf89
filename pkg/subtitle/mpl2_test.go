package subtitle

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMPL2Parse(t *testing.T) {
	cues := mustParse(t, MPL2{}, "[604][640]Sample 1\n")
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].StartMs != 604000 {
		t.Errorf("expected start 604000, got %d", cues[0].StartMs)
	}
	if cues[0].EndMs != 640000 {
		t.Errorf("expected end 640000, got %d", cues[0].EndMs)
	}
	if cues[0].Lines[0] != "Sample 1" {
		t.Errorf("unexpected text: %q", cues[0].Lines[0])
	}
}

func TestMPL2PipeSplitsLines(t *testing.T) {
	cues := mustParse(t, MPL2{}, "[1][5]First line|Second line\n")
	if len(cues[0].Lines) != 2 || cues[0].Lines[1] != "Second line" {
		t.Errorf("pipe separator not split: %q", cues[0].Lines)
	}
}

func TestMPL2AbortsOnAnyBadLine(t *testing.T) {
	_, err := MPL2{}.Parse(context.Background(), strings.NewReader("[1][5]Fine\nnot a cue\n[10][15]Never parsed\n"))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}
