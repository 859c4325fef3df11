package pivot

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteText печатает таблицу выровненными колонками
func WriteText(w io.Writer, t *Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	if t.Title != "" {
		if _, err := fmt.Fprintln(w, t.Title); err != nil {
			return err
		}
	}
	if t.IsEmpty() {
		_, err := fmt.Fprintln(w, "Нет данных для отображения.")
		return err
	}

	writeLine := func(label string, cells []string) error {
		_, err := fmt.Fprintf(tw, "%s\t%s\t\n", label, strings.Join(cells, "\t"))
		return err
	}

	header := t.Header()
	if err := writeLine(header[0], header[1:]); err != nil {
		return err
	}
	for _, r := range t.Rows {
		if err := writeLine(r.Label, cellStrings(r.Cells)); err != nil {
			return err
		}
	}
	if err := writeLine(TotalLabel, cellStrings(t.Footer)); err != nil {
		return err
	}

	return tw.Flush()
}

func cellStrings(cells []Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.String()
	}
	return out
}
