package logging

import (
	"time"

	"github.com/eunmann/raintank/pkg/humanfmt"
	"github.com/rs/zerolog"
)

// CompletionEvent builds a consistent "something finished" log line.
type CompletionEvent struct {
	log     zerolog.Logger
	event   string
	phase   string
	elapsed time.Duration
	human   bool
	fields  map[string]interface{}
}

// NewCompletionEvent creates a completion event builder. When human is true,
// numeric fields get a readable "_h" companion.
func NewCompletionEvent(log zerolog.Logger, event, phase string, elapsed time.Duration, human bool) *CompletionEvent {
	return &CompletionEvent{
		log:     log,
		event:   event,
		phase:   phase,
		elapsed: elapsed,
		human:   human,
		fields:  make(map[string]interface{}),
	}
}

// PhaseComplete starts a phase_completed event.
func PhaseComplete(log zerolog.Logger, phase string, elapsed time.Duration, human bool) *CompletionEvent {
	return NewCompletionEvent(log, "phase_completed", phase, elapsed, human)
}

// Str adds a string field.
func (ce *CompletionEvent) Str(key, val string) *CompletionEvent {
	ce.fields[key] = val
	return ce
}

// Int adds an int field.
func (ce *CompletionEvent) Int(key string, val int) *CompletionEvent {
	ce.fields[key] = val
	return ce
}

// Float64 adds a float64 field.
func (ce *CompletionEvent) Float64(key string, val float64) *CompletionEvent {
	ce.fields[key] = val
	return ce
}

// Liters adds a volume with an optional human-readable companion.
func (ce *CompletionEvent) Liters(key string, liters float64) *CompletionEvent {
	ce.fields[key] = liters
	if ce.human {
		ce.fields[key+"_h"] = humanfmt.Liters(liters)
	}
	return ce
}

// Rainfall adds a rainfall depth in mm with an optional human-readable companion.
func (ce *CompletionEvent) Rainfall(key string, mm float64) *CompletionEvent {
	ce.fields[key] = mm
	if ce.human {
		ce.fields[key+"_h"] = humanfmt.Millimeters(mm)
	}
	return ce
}

// Days adds a day count with an optional human-readable companion.
func (ce *CompletionEvent) Days(key string, n int) *CompletionEvent {
	ce.fields[key] = n
	if ce.human {
		ce.fields[key+"_h"] = humanfmt.Days(n)
	}
	return ce
}

// Log emits the event at info level.
func (ce *CompletionEvent) Log(msg string) {
	ce.emit(ce.log.Info(), msg)
}

// LogDebug emits the event at debug level.
func (ce *CompletionEvent) LogDebug(msg string) {
	ce.emit(ce.log.Debug(), msg)
}

func (ce *CompletionEvent) emit(e *zerolog.Event, msg string) {
	e = e.Str("event", ce.event).
		Str("phase", ce.phase).
		Int64("duration_ms", ce.elapsed.Milliseconds())

	if ce.human {
		e = e.Str("duration_h", humanfmt.Duration(ce.elapsed))
	}

	for k, v := range ce.fields {
		e = e.Interface(k, v)
	}

	e.Msg(msg)
}
