package subtitle

import (
	"strconv"
	"strings"
)

// parseTimecode parses a generic H:MM:SS[.fraction] style duration and
// returns milliseconds, or TimeUnknown if the text is not a timecode.
// The fraction separator may be '.' or ','; one- and two-digit fractions
// are scaled (tenths, centiseconds) rather than read as milliseconds.
func parseTimecode(text string) int64 {
	text = strings.TrimSpace(text)
	parts := strings.Split(text, ":")
	if len(parts) != 3 {
		return TimeUnknown
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 {
		return TimeUnknown
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 {
		return TimeUnknown
	}

	sec := parts[2]
	if i := strings.IndexByte(sec, ','); i >= 0 {
		sec = sec[:i] + "." + sec[i+1:]
	}
	secPart, fracPart, hasFrac := strings.Cut(sec, ".")
	seconds, err := strconv.Atoi(secPart)
	if err != nil || seconds < 0 {
		return TimeUnknown
	}

	var millis int64
	if hasFrac {
		millis = fractionMillis(fracPart)
		if millis == TimeUnknown {
			return TimeUnknown
		}
	}

	return int64(hours)*3600000 + int64(minutes)*60000 + int64(seconds)*1000 + millis
}

// fractionMillis converts the digits after the separator to milliseconds,
// honoring their positional value ("5" is 500ms, "05" is 50ms).
func fractionMillis(frac string) int64 {
	if frac == "" {
		return 0
	}
	if len(frac) > 3 {
		frac = frac[:3]
	}
	n, err := strconv.Atoi(frac)
	if err != nil || n < 0 {
		return TimeUnknown
	}
	for i := len(frac); i < 3; i++ {
		n *= 10
	}
	return int64(n)
}
