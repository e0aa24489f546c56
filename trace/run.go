package trace

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/nrdiv/divider"
)

// Outcome is the serialisable part of a divider.Result.
type Outcome struct {
	Quotient       int64  `json:"quotient" yaml:"quotient"`
	Remainder      int64  `json:"remainder" yaml:"remainder"`
	Correction     string `json:"correction" yaml:"correction"`
	RemainderFixed bool   `json:"remainder_fixed" yaml:"remainder_fixed"`
	Overflow       bool   `json:"overflow" yaml:"overflow"`
	Cycles         int    `json:"cycles" yaml:"cycles"`
	Ticks          int    `json:"ticks" yaml:"ticks"`
}

// Run bundles the inputs, outcome and events of one traced division.
type Run struct {
	Width    int             `json:"width" yaml:"width"`
	Dividend int64           `json:"dividend" yaml:"dividend"`
	Divisor  int64           `json:"divisor" yaml:"divisor"`
	Datapath string          `json:"datapath" yaml:"datapath"`
	Outcome  Outcome         `json:"outcome" yaml:"outcome"`
	Events   []divider.Event `json:"events" yaml:"events"`
}

// NewRun assembles a Run from a finished division.
func NewRun(width int, dividend, divisor int64, res *divider.Result, events []divider.Event) Run {
	return Run{
		Width:    width,
		Dividend: dividend,
		Divisor:  divisor,
		Datapath: res.Datapath,
		Outcome: Outcome{
			Quotient:       res.Quotient,
			Remainder:      res.Remainder,
			Correction:     res.Correction.String(),
			RemainderFixed: res.RemainderFixed,
			Overflow:       res.Overflow,
			Cycles:         res.Cycles,
			Ticks:          res.Ticks,
		},
		Events: events,
	}
}

// Capture runs one division with a fresh Recorder attached and returns the
// bundle. opts must not contain another WithTrace; the last one wins.
func Capture(width int, dividend, divisor int64, opts ...divider.Option) (Run, error) {
	rec := NewRecorder()
	opts = append(opts[:len(opts):len(opts)], divider.WithTrace(rec.Hook()))
	res, err := divider.Divide(width, dividend, divisor, opts...)
	if err != nil {
		return Run{}, err
	}

	return NewRun(width, dividend, divisor, res, rec.Events()), nil
}

// WriteYAML encodes run as a YAML document with two-space indentation.
func WriteYAML(w io.Writer, run Run) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(run); err != nil {
		return fmt.Errorf("trace: yaml: %w", err)
	}

	return enc.Close()
}

// ReadYAML decodes a document written by WriteYAML.
func ReadYAML(r io.Reader) (Run, error) {
	var run Run
	if err := yaml.NewDecoder(r).Decode(&run); err != nil {
		return Run{}, fmt.Errorf("trace: yaml: %w", err)
	}

	return run, nil
}

// WriteJSON encodes run as indented JSON.
func WriteJSON(w io.Writer, run Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(run); err != nil {
		return fmt.Errorf("trace: json: %w", err)
	}

	return nil
}

// ReadJSON decodes a document written by WriteJSON.
func ReadJSON(r io.Reader) (Run, error) {
	var run Run
	if err := json.NewDecoder(r).Decode(&run); err != nil {
		return Run{}, fmt.Errorf("trace: json: %w", err)
	}

	return run, nil
}
