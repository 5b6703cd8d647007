package metrics

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Render writes the record as a two-column table.
func Render(w io.Writer, r Record) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Metric", "Value"})
	for _, e := range r.entries {
		t.AppendRow(table.Row{e.Name, formatFloat(e.Value)})
	}
	t.Render()
}

// RenderPredictions writes up to limit predictions as a table. A limit of
// zero or less renders every row.
func RenderPredictions(w io.Writer, preds []Prediction, limit int) {
	if len(preds) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}
	n := len(preds)
	if limit > 0 && limit < n {
		n = limit
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "PredictedLabel", "Score", "Probability"})
	for i := 0; i < n; i++ {
		p := preds[i]
		t.AppendRow(table.Row{i, p.PredictedLabel, formatFloat(p.Score), formatFloat(p.Probability)})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d of %d rows)\n", n, len(preds))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
