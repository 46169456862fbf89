package subtitle

import (
	"encoding/xml"
	"io"
	"strings"
)

// newXMLDecoder builds a decoder for text that newTextReader already
// converted to UTF-8, so charset declarations in the prolog are ignored.
func newXMLDecoder(r io.Reader) *xml.Decoder {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	return dec
}

// inline formatting elements whose descendants contribute visible text.
// Text under any other child element is discarded, matching how players
// ignore unknown markup.
var inlineTextTags = map[string]bool{
	"span":    true,
	"font":    true,
	"b":       true,
	"u":       true,
	"i":       true,
	"s":       true,
	"p":       true,
	"br":      true,
	"string":  true,
	"text":    true,
	"karaoke": true,
	"k":       true,
}

// readInnerText consumes tokens from dec until the end tag matching start,
// concatenating the text of every descendant inline-formatting element.
// A <br> starts a new output line. Returns one trimmed string per visual
// line with leading and trailing empty lines dropped; the result is empty
// if nothing legible was read.
func readInnerText(dec *xml.Decoder, start xml.StartElement) ([]string, error) {
	var lines []string
	var cur strings.Builder

	flush := func() {
		lines = append(lines, strings.Join(strings.Fields(cur.String()), " "))
		cur.Reset()
	}

	// depth tracks nesting of elements with the same name as start, so a
	// <p> inside a <p> does not end the walk early.
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			name := strings.ToLower(t.Name.Local)
			switch {
			case name == "br":
				flush()
			case inlineTextTags[name]:
				if t.Name.Local == start.Name.Local {
					depth++
				}
			default:
				// unknown child: drop its whole subtree
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				if depth == 0 {
					flush()
					return trimEmptyLines(lines), nil
				}
				depth--
			}
		case xml.CharData:
			cur.Write(t)
		}
	}
}

func trimEmptyLines(lines []string) []string {
	start := 0
	for start < len(lines) && lines[start] == "" {
		start++
	}
	end := len(lines)
	for end > start && lines[end-1] == "" {
		end--
	}
	return lines[start:end]
}
