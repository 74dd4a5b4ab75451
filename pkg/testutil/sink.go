package testutil

import (
	"strings"
	"sync"

	"github.com/arthur-debert/whatif/pkg/logging"
)

// Level of a recorded event
type Level string

const (
	LevelTrace  Level = "trace"
	LevelWarn   Level = "warn"
	LevelAppend Level = "append"
)

// Event is one call made on a RecordingSink
type Event struct {
	Level   Level
	Message string
	Fields  map[string]string
}

type record struct {
	mu     sync.Mutex
	events []Event
}

// RecordingSink is a logging.Sink that records instead of writing
type RecordingSink struct {
	rec    *record
	fields map[string]string
}

var _ logging.Sink = (*RecordingSink)(nil)

// NewRecordingSink creates an empty recording sink
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{rec: &record{}, fields: map[string]string{}}
}

func (s *RecordingSink) Trace(msg string) { s.add(LevelTrace, msg) }

func (s *RecordingSink) Warn(msg string) { s.add(LevelWarn, msg) }

func (s *RecordingSink) Append(payload string) { s.add(LevelAppend, payload) }

// With returns a sink sharing this sink's record with an extra field
func (s *RecordingSink) With(key, value string) logging.Sink {
	fields := make(map[string]string, len(s.fields)+1)
	for k, v := range s.fields {
		fields[k] = v
	}
	fields[key] = value
	return &RecordingSink{rec: s.rec, fields: fields}
}

func (s *RecordingSink) add(level Level, msg string) {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	s.rec.events = append(s.rec.events, Event{Level: level, Message: msg, Fields: s.fields})
}

// Events returns every recorded event in order
func (s *RecordingSink) Events() []Event {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()

	out := make([]Event, len(s.rec.events))
	copy(out, s.rec.events)
	return out
}

// Messages returns the messages recorded at level
func (s *RecordingSink) Messages(level Level) []string {
	var msgs []string
	for _, e := range s.Events() {
		if e.Level == level {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// Warnings returns the recorded warnings
func (s *RecordingSink) Warnings() []string {
	return s.Messages(LevelWarn)
}

// Traces returns the recorded trace messages
func (s *RecordingSink) Traces() []string {
	return s.Messages(LevelTrace)
}

// Output renders warnings and payloads the way the log shows them, one
// warning per line with payloads verbatim beneath
func (s *RecordingSink) Output() string {
	var b strings.Builder
	for _, e := range s.Events() {
		switch e.Level {
		case LevelWarn:
			b.WriteString(e.Message)
			b.WriteString("\n")
		case LevelAppend:
			b.WriteString(e.Message)
			if !strings.HasSuffix(e.Message, "\n") {
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// Reset drops every recorded event
func (s *RecordingSink) Reset() {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	s.rec.events = nil
}
