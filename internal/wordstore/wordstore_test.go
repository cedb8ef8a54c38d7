package wordstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/verte-zerg/wordwise/internal/linestore"
	"github.com/verte-zerg/wordwise/internal/logger"
	"github.com/verte-zerg/wordwise/internal/model"
)

type failingLines struct {
	writes int
}

func (f *failingLines) ReadLines(context.Context, string) ([]string, error) {
	return nil, linestore.ErrNotExist
}

func (f *failingLines) WriteLines(context.Context, string, []string) error {
	f.writes++
	return os.ErrPermission
}

func newFileStore(t *testing.T) (*Store, *linestore.FileStore) {
	t.Helper()
	lines := linestore.NewFileStore(t.TempDir(), nil)
	return New(lines, logger.Nop()), lines
}

func collect(s *Store) [][2]string {
	var out [][2]string
	for term, meaning := range s.List() {
		out = append(out, [2]string{term, meaning})
	}
	return out
}

func TestParseLine(t *testing.T) {
	cases := []struct {
		line string
		want model.WordEntry
		ok   bool
	}{
		{"cat|a small domesticated feline", model.WordEntry{Term: "cat", Meaning: "a small domesticated feline"}, true},
		{"  Dog | canine  ", model.WordEntry{Term: "dog", Meaning: "canine"}, true},
		{"no delimiter", model.WordEntry{}, false},
		{"a|b|c", model.WordEntry{}, false},
		{"|meaning", model.WordEntry{}, false},
		{"term|", model.WordEntry{}, false},
		{"salt, pepper|seasoning", model.WordEntry{}, false},
		{"salt|sodium chloride, table salt", model.WordEntry{Term: "salt", Meaning: "sodium chloride, table salt"}, true},
		{"", model.WordEntry{}, false},
	}
	for _, tc := range cases {
		got, ok := ParseLine(tc.line)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseLine(%q) = %+v, %v; want %+v, %v", tc.line, got, ok, tc.want, tc.ok)
		}
	}
}

func TestAddSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	st, lines := newFileStore(t)
	if err := st.Add(ctx, "Cat", "a small domesticated feline"); err != nil {
		t.Fatalf("add cat: %v", err)
	}
	if err := st.Add(ctx, "ephemeral", "lasting a very short time"); err != nil {
		t.Fatalf("add ephemeral: %v", err)
	}

	reloaded := New(lines, logger.Nop())
	report, err := reloaded.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if report.Loaded != 2 || report.Skipped != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	want := [][2]string{
		{"cat", "a small domesticated feline"},
		{"ephemeral", "lasting a very short time"},
	}
	if got := collect(reloaded); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAddDuplicateKeepsMeaning(t *testing.T) {
	ctx := context.Background()
	st, _ := newFileStore(t)
	if err := st.Add(ctx, "cat", "feline"); err != nil {
		t.Fatalf("add: %v", err)
	}
	err := st.Add(ctx, "CAT", "dog")
	if !errors.Is(err, model.ErrDuplicateTerm) {
		t.Fatalf("expected ErrDuplicateTerm, got %v", err)
	}
	if meaning, _ := st.Meaning("cat"); meaning != "feline" {
		t.Fatalf("meaning overwritten: %q", meaning)
	}
	if st.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", st.Len())
	}
}

func TestAddValidation(t *testing.T) {
	ctx := context.Background()
	st, lines := newFileStore(t)
	for _, pair := range [][2]string{
		{"", "meaning"},
		{"   ", "meaning"},
		{"term", ""},
		{"pipe|term", "meaning"},
		{"term", "has|pipe"},
		{"term", "two\nlines"},
		{"salt, pepper", "seasoning"},
	} {
		if err := st.Add(ctx, pair[0], pair[1]); !errors.Is(err, model.ErrValidation) {
			t.Fatalf("Add(%q, %q): expected ErrValidation, got %v", pair[0], pair[1], err)
		}
	}
	if st.Len() != 0 {
		t.Fatalf("expected empty store, got %d", st.Len())
	}
	if _, err := os.Stat(lines.Path(Resource)); !os.IsNotExist(err) {
		t.Fatalf("expected no words file to be written, stat err=%v", err)
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	st, lines := newFileStore(t)
	for _, term := range []string{"alpha", "beta", "gamma"} {
		if err := st.Add(ctx, term, term+" meaning"); err != nil {
			t.Fatalf("add %s: %v", term, err)
		}
	}
	if err := st.Remove(ctx, "missing"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if st.Len() != 3 {
		t.Fatalf("remove of missing term changed size: %d", st.Len())
	}
	if err := st.Remove(ctx, "BETA"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !reflect.DeepEqual(st.Terms(), []string{"alpha", "gamma"}) {
		t.Fatalf("unexpected terms: %v", st.Terms())
	}
	persisted, err := lines.ReadLines(ctx, Resource)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(persisted, []string{"alpha|alpha meaning", "gamma|gamma meaning"}) {
		t.Fatalf("unexpected persisted lines: %q", persisted)
	}
}

func TestListIsRestartable(t *testing.T) {
	ctx := context.Background()
	st, _ := newFileStore(t)
	_ = st.Add(ctx, "one", "1")
	_ = st.Add(ctx, "two", "2")
	first := collect(st)
	second := collect(st)
	if !reflect.DeepEqual(first, second) || len(first) != 2 {
		t.Fatalf("list not restartable: %v vs %v", first, second)
	}
	for term := range st.List() {
		if term != "one" {
			t.Fatalf("unexpected first term %q", term)
		}
		break
	}
}

func TestLoadMissingResource(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	st := New(linestore.NewFileStore(t.TempDir(), nil), logger.FromZap(zap.New(core)))
	report, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if report.Loaded != 0 || st.Len() != 0 {
		t.Fatalf("expected empty store, got %+v len=%d", report, st.Len())
	}
	if logs.FilterMessageSnippet("not found").Len() != 1 {
		t.Fatalf("expected a not-found diagnostic, got %v", logs.All())
	}
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	content := "cat|feline\nbroken line\n\nDog|canine\nx|y|z\ncat|duplicate\n"
	if err := os.WriteFile(filepath.Join(dir, "words.txt"), []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	core, logs := observer.New(zapcore.DebugLevel)
	st := New(linestore.NewFileStore(dir, nil), logger.FromZap(zap.New(core)))
	report, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if report.Loaded != 2 || report.Skipped != 3 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if !reflect.DeepEqual(st.Terms(), []string{"cat", "dog"}) {
		t.Fatalf("unexpected terms: %v", st.Terms())
	}
	if logs.FilterMessageSnippet("skipping").Len() != 3 {
		t.Fatalf("expected one diagnostic per skipped line, got %d", logs.Len())
	}
}

func TestSaveFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	lines := &failingLines{}
	st := New(lines, logger.Nop())
	err := st.Add(ctx, "cat", "feline")
	if !errors.Is(err, model.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	if lines.writes != 1 {
		t.Fatalf("expected one write attempt, got %d", lines.writes)
	}
	if meaning, ok := st.Meaning("cat"); !ok || meaning != "feline" {
		t.Fatalf("in-memory entry lost after failed save")
	}
	if err := st.Add(ctx, "cat", "other"); !errors.Is(err, model.ErrDuplicateTerm) {
		t.Fatalf("expected ErrDuplicateTerm after failed save, got %v", err)
	}
}
