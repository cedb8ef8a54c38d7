package tui

import "testing"

func TestWrapBreaksAtSpaces(t *testing.T) {
	got := Wrap("a small domesticated feline", 10)
	want := "a small\ndomesticat\ned feline"
	if got != want {
		t.Fatalf("unexpected wrap:\n%q\nwant\n%q", got, want)
	}
}

func TestWrapDropsLeadingSpace(t *testing.T) {
	got := Wrap("abcd efgh", 4)
	if got != "abcd\nefgh" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapWideRunes(t *testing.T) {
	got := Wrap("犬犬犬", 4)
	if got != "犬犬\n犬" {
		t.Fatalf("unexpected wide wrap: %q", got)
	}
}

func TestWrapKeepsNewlinesAndZeroWidth(t *testing.T) {
	if got := Wrap("one\ntwo", 10); got != "one\ntwo" {
		t.Fatalf("unexpected wrap: %q", got)
	}
	if got := Wrap("unchanged text", 0); got != "unchanged text" {
		t.Fatalf("expected passthrough for width 0, got %q", got)
	}
}
