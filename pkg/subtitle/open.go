package subtitle

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
)

// lazily parsed subtitle stream handed to the caller
type StreamResult struct {
	Format Format
	Cues   CueStream
}

type parseOptions struct {
	formats []Format
	cfg     Config
}

// configures a Parse or Stream call
type ParseOption func(*parseOptions)

// WithFormats narrows dispatch to the given candidate formats. Candidates
// are still tried in registry order, not caller order.
func WithFormats(formats ...Format) ParseOption {
	return func(o *parseOptions) {
		o.formats = append(o.formats, formats...)
	}
}

// WithEncoding declares the text encoding of the input stream. A byte
// order mark in the stream takes precedence.
func WithEncoding(enc encoding.Encoding) ParseOption {
	return func(o *parseOptions) {
		o.cfg.Encoding = enc
	}
}

// WithFrameRate forces the frame rate used by frame-based formats
// instead of auto-detection.
func WithFrameRate(fps float64) ParseOption {
	return func(o *parseOptions) {
		o.cfg.FrameRate = fps
	}
}

// WithLanguage forces the language class selected from multi-language
// documents instead of the first one seen.
func WithLanguage(lang string) ParseOption {
	return func(o *parseOptions) {
		o.cfg.Language = lang
	}
}

// WithLogger installs a logging sink for dispatch and parser diagnostics.
func WithLogger(l Logger) ParseOption {
	return func(o *parseOptions) {
		o.cfg.Logger = l
	}
}

// Parse reads a subtitle stream of unknown format and returns the first
// successful interpretation. Candidates are tried in registry order; on
// success no further candidate is tried, and when every candidate fails
// the last failure is returned.
func Parse(ctx context.Context, r io.Reader, opts ...ParseOption) (*Result, error) {
	o := buildOptions(opts)
	rs, err := prepare(r)
	if err != nil {
		return nil, err
	}

	log := o.cfg.logger()
	var lastErr error
	for _, d := range GetMany(o.formats...) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log.Debugw("trying parser", "format", d.Format)
		cues, det, err := parseCandidate(ctx, d, rs, o.cfg)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Debugw("parser rejected input", "format", d.Format, "error", err)
			lastErr = err
			continue
		}
		log.Debugw("parser accepted input", "format", d.Format, "cues", len(cues))
		return &Result{Format: d.Format, Cues: cues, Detected: det}, nil
	}
	if lastErr == nil {
		lastErr = ErrUnknownFormat
	}
	return nil, lastErr
}

// Stream is the lazy variant of Parse: it commits to the first format
// whose lexer yields at least one cue, then hands back a forward-only
// stream that lexes the rest of the input as the caller consumes it.
func Stream(ctx context.Context, r io.Reader, opts ...ParseOption) (*StreamResult, error) {
	o := buildOptions(opts)
	rs, err := prepare(r)
	if err != nil {
		return nil, err
	}

	log := o.cfg.logger()
	var lastErr error
	for _, d := range GetMany(o.formats...) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		streamer, ok := d.Parser.(Streamer)
		if !ok {
			continue
		}
		log.Debugw("trying parser", "format", d.Format)
		cs, err := streamer.Stream(ctx, rs, o.cfg)
		if err == nil {
			// peek one cue so a wrong format fails here, not at the
			// caller's first read
			var first Cue
			first, err = cs.Next(ctx)
			if err == nil {
				return &StreamResult{Format: d.Format, Cues: &peekedStream{first: &first, rest: cs}}, nil
			}
			if err == io.EOF {
				err = fmt.Errorf("%s: %w", d.Name, ErrNoCues)
			}
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Debugw("parser rejected input", "format", d.Format, "error", err)
		lastErr = err
	}
	if lastErr == nil {
		lastErr = ErrUnknownFormat
	}
	return nil, lastErr
}

func buildOptions(opts []ParseOption) parseOptions {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// prepare verifies the input is readable and makes it seekable, copying a
// non-seekable stream into an in-memory buffer scoped to this call.
func prepare(r io.Reader) (io.ReadSeeker, error) {
	if r == nil {
		return nil, ErrUnreadableStream
	}
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to buffer stream: %w", err)
	}
	return bytes.NewReader(data), nil
}

func parseCandidate(ctx context.Context, d Descriptor, rs io.ReadSeeker, cfg Config) ([]Cue, Detected, error) {
	if cp, ok := d.Parser.(ConfigParser); ok {
		return cp.ParseConfig(ctx, rs, cfg)
	}
	if s, ok := d.Parser.(Streamer); ok {
		cues, err := parseAll(ctx, s, rs, cfg, d.Name)
		return cues, Detected{}, err
	}
	cues, err := d.Parser.Parse(ctx, rs)
	return cues, Detected{}, err
}

// parseAll drains a parser's cue stream eagerly, turning an empty result
// into ErrNoCues.
func parseAll(ctx context.Context, s Streamer, r io.ReadSeeker, cfg Config, name string) ([]Cue, error) {
	cs, err := s.Stream(ctx, r, cfg)
	if err != nil {
		return nil, err
	}
	cues, err := drainStream(ctx, cs)
	if err != nil {
		return nil, err
	}
	if len(cues) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoCues)
	}
	return cues, nil
}

func drainStream(ctx context.Context, cs CueStream) ([]Cue, error) {
	var cues []Cue
	for {
		cue, err := cs.Next(ctx)
		if err == io.EOF {
			return cues, nil
		}
		if err != nil {
			return nil, err
		}
		cues = append(cues, cue)
	}
}

type peekedStream struct {
	first *Cue
	rest  CueStream
}

func (p *peekedStream) Next(ctx context.Context) (Cue, error) {
	if p.first != nil {
		cue := *p.first
		p.first = nil
		return cue, nil
	}
	return p.rest.Next(ctx)
}
