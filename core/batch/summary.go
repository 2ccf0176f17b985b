package batch

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Render prints the summary as a table, followed by one row per failed line.
func (s Summary) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	t.SetTitle("Batch summary")
	t.AppendHeader(table.Row{"Lines", "Succeeded", "Failed", "Malformed", "Files"})
	t.AppendRow(table.Row{s.Lines, s.Succeeded, s.Failed, s.Malformed, len(s.Files)})
	t.Render()

	if len(s.Errors) == 0 {
		return
	}

	f := table.NewWriter()
	f.SetStyle(table.StyleRounded)
	f.SetOutputMirror(w)
	f.AppendHeader(table.Row{"Line", "URL", "Error"})
	for _, e := range s.Errors {
		url := e.URL
		if e.Malformed {
			url = "(malformed)"
		}
		f.AppendRow(table.Row{strconv.Itoa(e.Line), url, e.Err.Error()})
	}
	f.Render()
}
