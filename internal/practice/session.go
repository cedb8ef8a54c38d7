// Package practice runs the once-a-day practice attempt.
package practice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/verte-zerg/wordwise/internal/logger"
	"github.com/verte-zerg/wordwise/internal/model"
	"github.com/verte-zerg/wordwise/internal/stats"
)

// State is the position of a session in the practice cycle.
type State int

const (
	// Idle means no prompt is outstanding.
	Idle State = iota
	// Prompted means a term was chosen and an answer is awaited.
	Prompted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Prompted:
		return "prompted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// WordSource is the read-only view of the word list a session needs.
type WordSource interface {
	Len() int
	Terms() []string
	Meaning(term string) (string, bool)
}

// Selector picks an index in [0, n).
type Selector interface {
	Pick(n int) int
}

// AnswerSource asks the user for the meaning of term.
type AnswerSource interface {
	Answer(ctx context.Context, term string) (string, error)
}

// StatsSaver persists the statistics record.
type StatsSaver interface {
	Save(ctx context.Context, s model.Statistics) error
}

// Session owns the statistics record and guards the one-practice-per-day rule.
type Session struct {
	stats    model.Statistics
	saver    StatsSaver
	selector Selector
	log      *logger.Logger
	state    State
}

// NewSession wraps loaded statistics.
func NewSession(initial model.Statistics, saver StatsSaver, selector Selector, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	initial = initial.Clone()
	initial.Accuracy = stats.Accuracy(initial.CorrectAnswers, initial.TotalQuestions)
	return &Session{
		stats:    initial,
		saver:    saver,
		selector: selector,
		log:      log,
	}
}

// Stats returns a copy of the current statistics.
func (s *Session) Stats() model.Statistics {
	return s.stats.Clone()
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// PracticedOn reports whether date already has an accepted attempt.
func (s *Session) PracticedOn(date civil.Date) bool {
	_, ok := s.stats.DailyLog[date]
	return ok
}

// Attempt runs the practice for today.
//
// It fails with model.ErrEmptyStore or model.ErrAlreadyPracticedToday without
// touching the statistics. Dates before the last practiced day are rejected
// with model.ErrValidation. If the answer source fails the attempt is dropped and
// nothing is recorded. If saving fails the attempt stays recorded in memory and
// the result is returned together with an error wrapping model.ErrIO.
func (s *Session) Attempt(ctx context.Context, today civil.Date, words WordSource, answers AnswerSource) (model.PracticeResult, error) {
	if s.state != Idle {
		return model.PracticeResult{}, fmt.Errorf("practice already in progress")
	}
	if words.Len() == 0 {
		return model.PracticeResult{}, model.ErrEmptyStore
	}
	if s.PracticedOn(today) {
		return model.PracticeResult{}, fmt.Errorf("%s: %w", stats.FormatCivil(today), model.ErrAlreadyPracticedToday)
	}
	if last := s.stats.LastLearned; last != nil && today.Before(*last) {
		return model.PracticeResult{}, fmt.Errorf("date %s is before the last practice on %s: %w",
			stats.FormatCivil(today), stats.FormatCivil(*last), model.ErrValidation)
	}

	terms := words.Terms()
	idx := s.selector.Pick(len(terms))
	if idx < 0 || idx >= len(terms) {
		return model.PracticeResult{}, fmt.Errorf("selector picked %d of %d terms", idx, len(terms))
	}
	term := terms[idx]
	expected, ok := words.Meaning(term)
	if !ok {
		return model.PracticeResult{}, fmt.Errorf("%q: %w", term, model.ErrNotFound)
	}

	s.state = Prompted
	given, err := answers.Answer(ctx, term)
	s.state = Idle
	if err != nil {
		s.log.Debug("practice attempt abandoned", "term", term, "error", err)
		return model.PracticeResult{}, fmt.Errorf("failed to read answer: %w", err)
	}

	correct := Grade(given, expected)
	stats.Record(&s.stats, today, term, correct)
	result := model.PracticeResult{
		Term:     term,
		Expected: expected,
		Given:    given,
		Correct:  correct,
		Stats:    s.stats.Clone(),
	}
	// An answered attempt is kept even if the caller gives up meanwhile.
	if err := s.saver.Save(context.WithoutCancel(ctx), s.stats); err != nil {
		if !errors.Is(err, model.ErrIO) {
			err = fmt.Errorf("failed to save stats: %w: %w", model.ErrIO, err)
		}
		return result, err
	}
	return result, nil
}

// Grade compares an answer to the meaning, ignoring case and surrounding space.
func Grade(given, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(expected))
}
