// Package subtitle parses subtitle files of many textual formats into a
// single unified representation: an ordered sequence of timed text cues.
package subtitle

import (
	"context"
	"io"

	"golang.org/x/text/encoding"
)

// TimeUnknown marks a start or end time that could not be determined.
// It legitimately occurs for the final cue of formats that derive a cue's
// end time from the next cue's start (LRC, TMPlayer, SAMI).
const TimeUnknown int64 = -1

// represents single timed unit of subtitle text
type Cue struct {
	StartMs int64
	EndMs   int64
	Lines   []string
}

// parse outcome of the dispatch facade
type Result struct {
	Format   Format
	Cues     []Cue
	Detected Detected
}

// per-call parser configuration, always taken by value
type Config struct {
	// Encoding of the input stream. Nil means UTF-8 with BOM sniffing.
	Encoding encoding.Encoding

	// FrameRate forces the MicroDVD frame rate instead of auto-detection.
	FrameRate float64

	// Language forces the SAMI language class instead of first-seen.
	Language string

	// ScanBudget caps how many leading non-cue lines a parser scans
	// before giving up (LRC, MicroDVD, SubViewer). 0 means the default.
	ScanBudget int

	// Logger receives debug/warn events. Nil means silent.
	Logger Logger
}

// values a parser auto-detected while reading the input
type Detected struct {
	FrameRate float64
	Language  string
}

// interface for buffered parsing of one subtitle format
type Parser interface {
	Parse(ctx context.Context, r io.ReadSeeker) ([]Cue, error)
}

// interface for parsers that accept per-call configuration and report
// auto-detected values instead of mutating the config
type ConfigParser interface {
	Parser
	ParseConfig(ctx context.Context, r io.ReadSeeker, cfg Config) ([]Cue, Detected, error)
}

// interface for parsers that can produce cues lazily
type Streamer interface {
	Stream(ctx context.Context, r io.ReadSeeker, cfg Config) (CueStream, error)
}

// CueStream yields cues one at a time.
// Next returns io.EOF when no more cues are available. Implementations are
// forward-only and single-pass; re-iterating requires a fresh Stream call.
type CueStream interface {
	Next(ctx context.Context) (Cue, error)
}

// Logger is the optional leveled logging sink. The method shapes match
// zap's SugaredLogger so one can be passed in directly.
type Logger interface {
	Debugw(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
}

type nopLogger struct{}

func (nopLogger) Debugw(string, ...any) {}
func (nopLogger) Warnw(string, ...any)  {}

func (c Config) logger() Logger {
	if c.Logger == nil {
		return nopLogger{}
	}
	return c.Logger
}

func (c Config) scanBudget(def int) int {
	if c.ScanBudget > 0 {
		return c.ScanBudget
	}
	return def
}
