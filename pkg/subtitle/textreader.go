package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// newTextReader rewinds r and wraps it so that reads yield UTF-8 text.
// A byte-order mark always wins over the declared encoding; with no BOM
// and a nil encoding the input is assumed to be UTF-8 already.
func newTextReader(r io.ReadSeeker, enc encoding.Encoding) (io.Reader, error) {
	if r == nil {
		return nil, ErrUnreadableStream
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind stream: %w", err)
	}
	if enc == nil {
		enc = unicode.UTF8
	}
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}

// newLineScanner rewinds r and returns a line scanner over decoded text.
func newLineScanner(r io.ReadSeeker, enc encoding.Encoding) (*bufio.Scanner, error) {
	tr, err := newTextReader(r, enc)
	if err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(tr)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return sc, nil
}

// stripBOM removes a leading UTF-8 BOM that survived decoding, which
// happens when the input was plain UTF-8 with an explicit marker.
func stripBOM(line string) string {
	return strings.TrimPrefix(line, "\ufeff")
}

// stripTags removes every <...> and {...} run from s. Unterminated tags
// swallow the rest of the line, matching how players render them.
func stripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	depth := 0
	var closer byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case depth > 0:
			if c == closer {
				depth--
			}
		case c == '<':
			depth, closer = 1, '>'
		case c == '{':
			depth, closer = 1, '}'
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
