// Package render writes tabular command output as an aligned table, CSV or
// JSON. The top-level Render dispatcher selects the format.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Format constants matching --format flag values.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

// Table is a titled grid of pre-formatted cells.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
	// Right lists the column indexes aligned right in table output.
	Right []int
}

// Append adds a row.
func (t *Table) Append(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render writes t to w in the specified format; unknown formats fall back
// to the table layout.
func Render(w io.Writer, t Table, format string) error {
	switch format {
	case FormatCSV:
		return renderCSV(w, t)
	case FormatJSON:
		return renderJSON(w, t)
	default:
		return renderTable(w, t)
	}
}

func renderTable(w io.Writer, t Table) error {
	if t.Title != "" {
		if _, err := fmt.Fprintln(w, t.Title); err != nil {
			return err
		}
	}

	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.Header)
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)
	tw.SetAutoFormatHeaders(false)

	align := make([]int, len(t.Header))
	for i := range align {
		align[i] = tablewriter.ALIGN_LEFT
	}
	for _, i := range t.Right {
		if i >= 0 && i < len(align) {
			align[i] = tablewriter.ALIGN_RIGHT
		}
	}
	tw.SetColumnAlignment(align)

	tw.AppendBulk(t.Rows)
	tw.Render()
	return nil
}

func renderCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// jsonTable is the JSON shape of a Table: one object per row keyed by header.
type jsonTable struct {
	Title string              `json:"title,omitempty"`
	Rows  []map[string]string `json:"rows"`
}

func renderJSON(w io.Writer, t Table) error {
	out := jsonTable{Title: t.Title, Rows: make([]map[string]string, 0, len(t.Rows))}
	for _, row := range t.Rows {
		m := make(map[string]string, len(t.Header))
		for i, h := range t.Header {
			if i < len(row) {
				m[h] = row[i]
			}
		}
		out.Rows = append(out.Rows, m)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Float formats v with prec significant digits; NaN and infinities print as
// "NaN", "+Inf" and "-Inf".
func Float(v float64, prec int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(v, 'g', prec, 64)
}

// Complex formats z as "a+bi" with prec significant digits per part.
func Complex(z complex128, prec int) string {
	return strconv.FormatComplex(z, 'g', prec, 128)
}
