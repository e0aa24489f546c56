package divider

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/nrdiv/datapath"
)

// Option configures a division via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation when the
// division runs.
type Option func(*Options)

// Options holds the resolved configuration of one division.
type Options struct {
	// Datapath performs the per-cycle add. Defaults to WordParallel.
	Datapath datapath.Datapath

	// OnEvent receives every trace Event. Defaults to a no-op.
	OnEvent func(Event)

	// Rule derives quotient bits. Defaults to QuotientFromSigns.
	Rule QuotientRule

	// RawCorrection disables the zero-remainder fix-up and leaves the bare
	// circuit's result (remainder ±divisor on exact negative division).
	RawCorrection bool

	// Logger receives Debug-level cycle logs. Defaults to a discarding logger.
	Logger logrus.FieldLogger

	traced bool
	err    error
}

var nopLogger = newNopLogger()

func newNopLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)

	return l
}

// DefaultOptions returns Options with a word-parallel datapath, the sign
// quotient rule, the zero-remainder fix-up on, no trace and no logging.
func DefaultOptions() Options {
	return Options{
		Datapath: datapath.WordParallel{},
		OnEvent:  func(Event) {},
		Rule:     QuotientFromSigns,
		Logger:   nopLogger,
	}
}

// WithDatapath selects the adder datapath. A nil datapath is a violation.
func WithDatapath(dp datapath.Datapath) Option {
	return func(o *Options) {
		if dp == nil {
			o.err = fmt.Errorf("%w: datapath is nil", ErrOptionViolation)
			return
		}
		o.Datapath = dp
	}
}

// WithTrace registers a hook that receives every trace Event.
// A nil hook is ignored.
func WithTrace(fn func(Event)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEvent = fn
			o.traced = true
		}
	}
}

// WithQuotientRule selects the quotient-bit rule.
func WithQuotientRule(rule QuotientRule) Option {
	return func(o *Options) {
		if !rule.valid() {
			o.err = fmt.Errorf("%w: %v", ErrOptionViolation, rule)
			return
		}
		o.Rule = rule
	}
}

// WithRawCorrection turns the zero-remainder fix-up off.
func WithRawCorrection() Option {
	return func(o *Options) { o.RawCorrection = true }
}

// WithLogger sets the logger for cycle-level Debug output. A nil logger is ignored.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// debugEnabled avoids building log fields per cycle when nobody listens.
func debugEnabled(l logrus.FieldLogger) bool {
	switch v := l.(type) {
	case *logrus.Logger:
		return v.IsLevelEnabled(logrus.DebugLevel)
	case *logrus.Entry:
		return v.Logger.IsLevelEnabled(logrus.DebugLevel)
	}

	return true
}
