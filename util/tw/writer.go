package tw

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Writer represents table writer
type Writer struct {
	table.Writer
}

// New returns new configured table writer, rendering to <out>
func New(out io.Writer) Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleLight)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Document", WidthMax: 40},
		{Name: "Path", WidthMax: 50},
		{Name: "Kind", WidthMax: 16},
		{Name: "Value", WidthMax: 70},
		{Name: "Position", WidthMax: 12},
		{Name: "Reason", WidthMax: 40},
	})

	return Writer{tw}
}

// Render renders table and resets it
func (w Writer) Render() {
	w.Writer.Render()
	w.ResetHeaders()
	w.ResetRows()
	w.ResetFooters()
}
