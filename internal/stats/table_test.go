package stats

import (
	"bytes"
	"errors"
	"testing"
)

func TestTableAlignsColumns(t *testing.T) {
	tbl := newTable(column{title: "Date"}, column{title: "Words"}, column{title: "Count", right: true})
	tbl.add("14-10-2026", "cat", "12")
	tbl.add("15-10-2026", "ephemeral", "3")

	var buf bytes.Buffer
	n, err := tbl.WriteTo(&buf)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "Date       Words     Count\n" +
		"---------- --------- -----\n" +
		"14-10-2026 cat          12\n" +
		"15-10-2026 ephemeral     3\n"
	if buf.String() != want {
		t.Fatalf("unexpected table:\n%q\nwant\n%q", buf.String(), want)
	}
	if n != int64(len(want)) {
		t.Fatalf("expected %d bytes written, got %d", len(want), n)
	}
}

func TestTableWideRunes(t *testing.T) {
	tbl := newTable(column{title: "Term"}, column{title: "Meaning"})
	tbl.add("犬", "dog")
	tbl.add("cat", "猫")

	var buf bytes.Buffer
	if _, err := tbl.WriteTo(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "Term Meaning\n" +
		"---- -------\n" +
		"犬   dog\n" +
		"cat  猫\n"
	if buf.String() != want {
		t.Fatalf("unexpected table:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestTableRowShape(t *testing.T) {
	tbl := newTable(column{title: "A"}, column{title: "B"})
	tbl.add("only")
	tbl.add("x", "y", "dropped")

	var buf bytes.Buffer
	if _, err := tbl.WriteTo(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "A    B\n---- -\nonly\nx    y\n"
	if buf.String() != want {
		t.Fatalf("unexpected table:\n%q\nwant\n%q", buf.String(), want)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestTableWriteError(t *testing.T) {
	tbl := newTable(column{title: "Statistic"})
	tbl.add("Streak")
	if _, err := tbl.WriteTo(failingWriter{}); err == nil {
		t.Fatalf("expected write error")
	}
}
