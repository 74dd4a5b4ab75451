package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Sink is where the dry run facility reports. Trace carries lifecycle
// events, Warn carries one line per simulated effect, and Append writes a
// payload verbatim beneath the most recent warning.
type Sink interface {
	Trace(msg string)
	Warn(msg string)
	Append(payload string)
	With(key, value string) Sink
}

type zerologSink struct {
	logger zerolog.Logger
	raw    io.Writer
}

// NewSink returns a Sink that writes events through logger and raw payloads
// straight to raw. raw should be the writer logger itself writes to.
func NewSink(logger zerolog.Logger, raw io.Writer) Sink {
	if raw == nil {
		raw = io.Discard
	}
	return &zerologSink{logger: logger, raw: raw}
}

// DefaultSink returns a Sink bound to the global logger outputs
func DefaultSink() Sink {
	return NewSink(GetLogger("dryrun"), Output())
}

func (s *zerologSink) Trace(msg string) {
	s.logger.Trace().Msg(msg)
}

func (s *zerologSink) Warn(msg string) {
	s.logger.Warn().Msg(msg)
}

func (s *zerologSink) Append(payload string) {
	if zerolog.GlobalLevel() > zerolog.WarnLevel || s.logger.GetLevel() > zerolog.WarnLevel {
		return
	}
	if !strings.HasSuffix(payload, "\n") {
		payload += "\n"
	}
	_, _ = io.WriteString(s.raw, payload)
}

func (s *zerologSink) With(key, value string) Sink {
	return &zerologSink{
		logger: s.logger.With().Str(key, value).Logger(),
		raw:    s.raw,
	}
}
