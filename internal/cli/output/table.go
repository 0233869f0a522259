package output

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// Table holds the rows of one listing. Commands append exactly the
// columns they want shown; wide mode is their decision, not ours.
type Table struct {
	Headers   []string
	Rows      [][]string
	NoHeaders bool
}

// AddRow appends one row. Short rows are padded when rendered.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render writes the table with tab-aligned columns.
func (t *Table) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !t.NoHeaders && len(t.Headers) > 0 {
		writeCells(tw, t.Headers)
	}
	for _, row := range t.Rows {
		writeCells(tw, row)
	}
	return tw.Flush()
}

func writeCells(w io.Writer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			io.WriteString(w, "\t")
		}
		io.WriteString(w, cell)
	}
	io.WriteString(w, "\n")
}

// KV renders labeled values in a single aligned block, the shape the
// status command uses.
type KV struct {
	rows [][2]string
}

// Add appends one labeled value.
func (k *KV) Add(label string, value any) {
	k.rows = append(k.rows, [2]string{label, fmt.Sprint(value)})
}

// Render writes "Label:  value" lines with aligned values.
func (k *KV) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, row := range k.rows {
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}

// TruncateID shortens session and workspace IDs so rows stay narrow;
// the full ID is always available through --output json.
func TruncateID(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[:13] + "..."
}

// Timestamp renders a Unix-millisecond timestamp the way listings show
// time. Zero means the field was never set.
func Timestamp(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}
