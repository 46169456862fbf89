package subtitle

import "errors"

var (
	// ErrUnreadableStream means the input stream does not support reading.
	ErrUnreadableStream = errors.New("stream does not support reading")

	// ErrNoCues means a parser ran to completion but produced zero valid
	// cues: wrong format, or valid but empty input.
	ErrNoCues = errors.New("no valid cues found")

	// ErrMalformed means a structural violation was detected while the
	// parser believed it was reading the right format.
	ErrMalformed = errors.New("malformed input")

	// ErrUnknownFormat means a format identifier is not in the registry.
	ErrUnknownFormat = errors.New("unknown subtitle format")
)

// IsFormatMismatch reports whether err means "this input is not this
// format" and the dispatch facade should try the next candidate.
func IsFormatMismatch(err error) bool {
	return errors.Is(err, ErrNoCues) || errors.Is(err, ErrMalformed)
}
