package subtitle

import "testing"

func TestByExtension(t *testing.T) {
	cases := []struct {
		ext  string
		want Format
	}{
		{"srt", FormatSubRip},
		{".srt", FormatSubRip},
		{"ASS", FormatSubStationAlpha},
		{"vtt", FormatWebVTT},
		{"lrc", FormatLRC},
		// ".sub" is ambiguous; registry order says SubViewer wins
		{"sub", FormatSubViewer},
	}
	for _, c := range cases {
		got, ok := ByExtension(c.ext)
		if !ok || got != c.want {
			t.Errorf("ByExtension(%q) = %v, %v; want %v", c.ext, got, ok, c.want)
		}
	}
	if _, ok := ByExtension("docx"); ok {
		t.Error("ByExtension(docx) should not match")
	}
}

func TestByName(t *testing.T) {
	got, ok := ByName("substation alpha")
	if !ok || got != FormatSubStationAlpha {
		t.Errorf("ByName(substation alpha) = %v, %v", got, ok)
	}
	if _, ok := ByName("nope"); ok {
		t.Error("ByName(nope) should not match")
	}
}

func TestGetManyPreservesRegistryOrder(t *testing.T) {
	// caller order is deliberately ignored
	got := GetMany(FormatLRC, FormatSubRip, FormatTTML)
	if len(got) != 3 {
		t.Fatalf("expected 3 descriptors, got %d", len(got))
	}
	if got[0].Format != FormatSubRip || got[1].Format != FormatTTML || got[2].Format != FormatLRC {
		t.Errorf("unexpected order: %v, %v, %v", got[0].Format, got[1].Format, got[2].Format)
	}
}

func TestGetManyEmptyMeansAll(t *testing.T) {
	if len(GetMany()) != len(Formats()) {
		t.Error("GetMany() should return the full registry")
	}
}

func TestRegistryConsistency(t *testing.T) {
	seen := make(map[Format]bool)
	for _, d := range Formats() {
		if seen[d.Format] {
			t.Errorf("duplicate format %s", d.Format)
		}
		seen[d.Format] = true
		if d.Parser == nil {
			t.Errorf("%s has no parser", d.Format)
		}
		if d.Name == "" || len(d.Extensions) == 0 {
			t.Errorf("%s descriptor incomplete", d.Format)
		}
		if got, ok := Get(d.Format); !ok || got.Name != d.Name {
			t.Errorf("Get(%s) inconsistent", d.Format)
		}
	}
}
