package trace

import "github.com/katalvlaran/nrdiv/divider"

// Recorder collects the events of one division in arrival order.
type Recorder struct {
	events []divider.Event
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Hook returns the function to pass to divider.WithTrace.
func (r *Recorder) Hook() func(divider.Event) {
	return func(ev divider.Event) {
		r.events = append(r.events, ev)
	}
}

// Events returns a copy of every recorded event.
func (r *Recorder) Events() []divider.Event {
	out := make([]divider.Event, len(r.events))
	copy(out, r.events)

	return out
}

// Values returns the dividend register value before and after each shift,
// two values per cycle. This is the series a waveform plot draws.
func (r *Recorder) Values() []int64 {
	var out []int64
	for _, ev := range r.events {
		if ev.Kind == divider.EventPreShift || ev.Kind == divider.EventPostShift {
			out = append(out, ev.Dividend)
		}
	}

	return out
}

// Reset drops all recorded events so the Recorder can serve another run.
func (r *Recorder) Reset() {
	r.events = r.events[:0]
}
