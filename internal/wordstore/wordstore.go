// Package wordstore keeps the term to meaning mapping and its text resource.
package wordstore

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/verte-zerg/wordwise/internal/linestore"
	"github.com/verte-zerg/wordwise/internal/logger"
	"github.com/verte-zerg/wordwise/internal/model"
)

// Resource is the line-store resource holding the word list.
const Resource = "words"

const delimiter = "|"

// termSeparator joins terms in the daily practice log, so terms cannot hold it.
const termSeparator = ","

// LoadReport counts what Load did with the resource lines.
type LoadReport struct {
	Loaded  int
	Skipped int
}

// Store is an insertion-ordered term to meaning mapping.
type Store struct {
	lines    linestore.Store
	log      *logger.Logger
	order    []string
	meanings map[string]string
}

// New returns an empty store backed by lines.
func New(lines linestore.Store, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		lines:    lines,
		log:      log.With("resource", Resource),
		meanings: map[string]string{},
	}
}

// ParseLine parses a `term|meaning` line. The term is lower-cased and must not
// contain a comma.
func ParseLine(line string) (model.WordEntry, bool) {
	line = strings.TrimSpace(line)
	if strings.Count(line, delimiter) != 1 {
		return model.WordEntry{}, false
	}
	term, meaning, _ := strings.Cut(line, delimiter)
	term = strings.ToLower(strings.TrimSpace(term))
	meaning = strings.TrimSpace(meaning)
	if term == "" || meaning == "" || strings.Contains(term, termSeparator) {
		return model.WordEntry{}, false
	}
	return model.WordEntry{Term: term, Meaning: meaning}, true
}

// FormatLine renders an entry as a resource line.
func FormatLine(entry model.WordEntry) string {
	return entry.Term + delimiter + entry.Meaning
}

// Load replaces the in-memory mapping with the resource content.
// A missing resource leaves the store empty.
func (s *Store) Load(ctx context.Context) (LoadReport, error) {
	var report LoadReport
	lines, err := s.lines.ReadLines(ctx, Resource)
	if err != nil {
		if errors.Is(err, linestore.ErrNotExist) {
			s.log.Warn("word list not found; starting with an empty word list")
			s.reset()
			return report, nil
		}
		return report, fmt.Errorf("failed to load words: %w: %w", model.ErrIO, err)
	}

	s.reset()
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, ok := ParseLine(line)
		if !ok {
			s.log.Warn("skipping malformed line", "line", i+1)
			report.Skipped++
			continue
		}
		if _, exists := s.meanings[entry.Term]; exists {
			s.log.Warn("skipping duplicate term", "line", i+1, "term", entry.Term)
			report.Skipped++
			continue
		}
		s.insert(entry)
		report.Loaded++
	}
	return report, nil
}

// Save writes every entry, replacing the resource.
func (s *Store) Save(ctx context.Context) error {
	lines := make([]string, 0, len(s.order))
	for term, meaning := range s.List() {
		lines = append(lines, FormatLine(model.WordEntry{Term: term, Meaning: meaning}))
	}
	if err := s.lines.WriteLines(ctx, Resource, lines); err != nil {
		s.log.Error("failed to save words", "error", err)
		return fmt.Errorf("failed to save words: %w: %w", model.ErrIO, err)
	}
	return nil
}

// Add inserts a new entry and saves. Existing terms are never overwritten.
// When the save fails the entry stays in memory and the error wraps model.ErrIO.
func (s *Store) Add(ctx context.Context, term, meaning string) error {
	entry, err := newEntry(term, meaning)
	if err != nil {
		return err
	}
	if _, exists := s.meanings[entry.Term]; exists {
		return fmt.Errorf("%q: %w", entry.Term, model.ErrDuplicateTerm)
	}
	s.insert(entry)
	return s.Save(ctx)
}

// Remove deletes a term and saves.
func (s *Store) Remove(ctx context.Context, term string) error {
	key := normalize(term)
	if _, exists := s.meanings[key]; !exists {
		return fmt.Errorf("%q: %w", key, model.ErrNotFound)
	}
	delete(s.meanings, key)
	for i, t := range s.order {
		if t == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return s.Save(ctx)
}

// List yields entries in insertion order. Each range over it starts afresh.
func (s *Store) List() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, term := range s.order {
			if !yield(term, s.meanings[term]) {
				return
			}
		}
	}
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.order)
}

// Terms returns the terms in insertion order.
func (s *Store) Terms() []string {
	return append([]string(nil), s.order...)
}

// Meaning looks up a term, case-insensitively.
func (s *Store) Meaning(term string) (string, bool) {
	meaning, ok := s.meanings[normalize(term)]
	return meaning, ok
}

func (s *Store) insert(entry model.WordEntry) {
	s.meanings[entry.Term] = entry.Meaning
	s.order = append(s.order, entry.Term)
}

func (s *Store) reset() {
	s.order = nil
	s.meanings = map[string]string{}
}

func newEntry(term, meaning string) (model.WordEntry, error) {
	entry := model.WordEntry{Term: normalize(term), Meaning: strings.TrimSpace(meaning)}
	if entry.Term == "" {
		return entry, fmt.Errorf("term must not be empty: %w", model.ErrValidation)
	}
	if entry.Meaning == "" {
		return entry, fmt.Errorf("meaning must not be empty: %w", model.ErrValidation)
	}
	if strings.Contains(entry.Term, termSeparator) {
		return entry, fmt.Errorf("term %q must not contain %q: %w", entry.Term, termSeparator, model.ErrValidation)
	}
	for _, field := range []string{entry.Term, entry.Meaning} {
		if strings.Contains(field, delimiter) {
			return entry, fmt.Errorf("%q must not contain %q: %w", field, delimiter, model.ErrValidation)
		}
		if strings.ContainsAny(field, "\r\n") {
			return entry, fmt.Errorf("%q must be a single line: %w", field, model.ErrValidation)
		}
	}
	return entry, nil
}

func normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
