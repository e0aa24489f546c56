// Package trace turns the divider's trace hook into plain data.
//
// A Recorder collects every divider.Event of one run. The collected events
// can be rendered as a table (go-pretty) or bundled with the run's inputs
// and result into a Run and written as YAML or JSON.
//
//	rec := trace.NewRecorder()
//	res, err := divider.Divide(4, 13, 3, divider.WithTrace(rec.Hook()))
//	trace.RenderTable(os.Stdout, 4, rec.Events())
//
// Capture does the same in one call and returns the Run bundle.
//
// A Recorder is not safe for concurrent use; the hook is called
// synchronously by a single division.
package trace
