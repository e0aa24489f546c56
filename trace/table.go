package trace

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/katalvlaran/nrdiv/divider"
	"github.com/katalvlaran/nrdiv/register"
)

// TableStyle is the box style RenderTable uses. It carries no colors so the
// output stays readable when piped.
var TableStyle = table.StyleLight

// RenderTable writes one row per event: cycle, sub-cycle, kind, the
// dividend register as bits (upper half | lower half) and as a signed value,
// and for add events the operation, carry out and quotient bit.
// width is the divisor width n of the run.
func RenderTable(w io.Writer, width int, events []divider.Event) error {
	reg, err := register.New(2 * width)
	if err != nil {
		return fmt.Errorf("trace: table: %w", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(TableStyle)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.AppendHeader(table.Row{"cycle", "sub", "kind", "dividend", "value", "op", "carry", "q"})

	rows := make([]table.Row, 0, len(events))
	for _, ev := range events {
		reg.SetInt64(ev.Dividend)
		bits := reg.String()
		sub, op, carry, q := "", "", "", ""
		if ev.Kind == divider.EventSubCycle {
			sub = fmt.Sprint(ev.SubCycle)
		}
		if ev.Kind == divider.EventSubCycle || ev.Kind == divider.EventAdd {
			op = opName(ev.Op)
		}
		if ev.Kind == divider.EventAdd {
			carry, q = fmt.Sprint(ev.Carry), fmt.Sprint(ev.QuotientBit)
		}
		rows = append(rows, table.Row{
			ev.Cycle, sub, ev.Kind.String(),
			bits[:width] + " " + bits[width:], ev.Dividend,
			op, carry, q,
		})
	}
	t.AppendRows(rows)
	t.Render()

	return nil
}

func opName(op uint8) string {
	if op == 1 {
		return "add"
	}

	return "sub"
}
