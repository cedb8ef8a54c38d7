package stats

import (
	"bufio"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// column is one titled column of a report table.
type column struct {
	title string
	right bool
}

// table collects report rows and writes them aligned by terminal cell width,
// so wide runes in terms and meanings line up.
type table struct {
	cols []column
	rows [][]string
}

func newTable(cols ...column) *table {
	return &table{cols: cols}
}

// add appends a row. Missing cells render blank, extra cells are dropped.
func (t *table) add(cells ...string) {
	row := make([]string, len(t.cols))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

func (t *table) widths() []int {
	widths := make([]int, len(t.cols))
	for i, c := range t.cols {
		widths[i] = runewidth.StringWidth(c.title)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	return widths
}

// WriteTo writes the header, a rule under it, then every row.
func (t *table) WriteTo(w io.Writer) (int64, error) {
	if len(t.cols) == 0 {
		return 0, nil
	}
	widths := t.widths()
	cw := &countingWriter{w: bufio.NewWriter(w)}

	titles := make([]string, len(t.cols))
	rule := make([]string, len(t.cols))
	for i, c := range t.cols {
		titles[i] = c.title
		rule[i] = strings.Repeat("-", widths[i])
	}
	t.writeRow(cw, titles, widths)
	t.writeRow(cw, rule, widths)
	for _, row := range t.rows {
		t.writeRow(cw, row, widths)
	}
	if cw.err == nil {
		cw.err = cw.w.Flush()
	}
	return cw.n, cw.err
}

func (t *table) writeRow(cw *countingWriter, cells []string, widths []int) {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(' ')
		}
		if t.cols[i].right {
			b.WriteString(runewidth.FillLeft(cell, widths[i]))
		} else {
			b.WriteString(runewidth.FillRight(cell, widths[i]))
		}
	}
	cw.write(strings.TrimRight(b.String(), " ") + "\n")
}

type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (c *countingWriter) write(s string) {
	if c.err != nil {
		return
	}
	n, err := c.w.WriteString(s)
	c.n += int64(n)
	c.err = err
}
