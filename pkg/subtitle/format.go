package subtitle

import "strings"

// represents supported subtitle formats
type Format string

const (
	FormatSubRip          Format = "SubRip"
	FormatSubViewer       Format = "SubViewer"
	FormatSubStationAlpha Format = "SubStationAlpha"
	FormatTTML            Format = "TTML"
	FormatWebVTT          Format = "WebVTT"
	FormatSAMI            Format = "SAMI"
	FormatYoutubeXml      Format = "YoutubeXml"
	FormatMicroDVD        Format = "MicroDVD"
	FormatMPL2            Format = "MPL2"
	FormatTMPlayer        Format = "TMPlayer"
	FormatLRC             Format = "LRC"
	FormatUSF             Format = "USF"
)

// describes one registered subtitle format
type Descriptor struct {
	Format     Format
	Name       string
	Extensions []string
	Parser     Parser
}

// registry holds every supported format in priority order. Formats with
// strong structural markers come first; bare line formats (MicroDVD, MPL2,
// TMPlayer, LRC) come last so they cannot claim structured input. The
// dispatch facade tries candidates in exactly this order.
var registry = []Descriptor{
	{FormatSubRip, "SubRip", []string{"srt"}, SubRip{}},
	{FormatSubViewer, "SubViewer", []string{"sub", "sbv"}, SubViewer{}},
	{FormatSubStationAlpha, "SubStation Alpha", []string{"ssa", "ass"}, SubStationAlpha{}},
	{FormatTTML, "TTML", []string{"ttml", "dfxp", "itt", "xml"}, TTML{}},
	{FormatWebVTT, "WebVTT", []string{"vtt"}, WebVTT{}},
	{FormatSAMI, "SAMI", []string{"smi", "sami"}, SAMI{}},
	{FormatYoutubeXml, "YouTube XML", []string{"srv1", "srv2", "srv3", "ytt"}, YoutubeXml{}},
	{FormatMicroDVD, "MicroDVD", []string{"sub"}, MicroDVD{}},
	{FormatMPL2, "MPL2", []string{"mpl", "mpl2"}, MPL2{}},
	{FormatTMPlayer, "TMPlayer", []string{"txt"}, TMPlayer{}},
	{FormatLRC, "LRC", []string{"lrc"}, LRC{}},
	{FormatUSF, "USF", []string{"usf"}, USF{}},
}

// Formats returns every registered format descriptor in registry order.
func Formats() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}

// Get returns the descriptor for a format identifier.
func Get(f Format) (Descriptor, bool) {
	for _, d := range registry {
		if d.Format == f {
			return d, true
		}
	}
	return Descriptor{}, false
}

// GetMany resolves a set of identifiers to descriptors, preserving
// registry order rather than caller order so that dispatch priority stays
// consistent with the full-registry path. Unknown identifiers are skipped.
func GetMany(formats ...Format) []Descriptor {
	if len(formats) == 0 {
		return Formats()
	}
	want := make(map[Format]bool, len(formats))
	for _, f := range formats {
		want[f] = true
	}
	var out []Descriptor
	for _, d := range registry {
		if want[d.Format] {
			out = append(out, d)
		}
	}
	return out
}

// ByExtension returns the first format whose extension set contains ext.
// The match is case-insensitive and a leading dot is tolerated. Extensions
// are not unique proof of format (".sub" is SubViewer or MicroDVD, ".xml"
// could be anything), so a match is a likely candidate, not authoritative.
func ByExtension(ext string) (Format, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, d := range registry {
		for _, e := range d.Extensions {
			if e == ext {
				return d.Format, true
			}
		}
	}
	return "", false
}

// ByName returns the format whose identifier or display name matches,
// ignoring case.
func ByName(name string) (Format, bool) {
	for _, d := range registry {
		if strings.EqualFold(d.Name, name) || strings.EqualFold(string(d.Format), name) {
			return d.Format, true
		}
	}
	return "", false
}
