package stats

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/verte-zerg/wordwise/internal/logger"
	"github.com/verte-zerg/wordwise/internal/model"
)

const (
	keyTotalQuestions = "total_questions"
	keyCorrectAnswers = "correct_answers"
	keyAccuracy       = "accuracy"
	keyStreak         = "streak"
	keyLastLearned    = "last_learned"
	noDate            = "None"
)

// ParseDate parses a DD-MM-YYYY date.
func ParseDate(value string) (civil.Date, error) {
	t, err := time.Parse(model.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q: %w", value, model.ErrValidation)
	}
	return civil.DateOf(t), nil
}

// Encode renders statistics as resource lines: key=value scalars followed by one
// `DD-MM-YYYY:term,term` line per practiced day, oldest first.
func Encode(s model.Statistics) []string {
	lines := []string{
		fmt.Sprintf("%s=%d", keyTotalQuestions, s.TotalQuestions),
		fmt.Sprintf("%s=%d", keyCorrectAnswers, s.CorrectAnswers),
		fmt.Sprintf("%s=%s", keyAccuracy, strconv.FormatFloat(Accuracy(s.CorrectAnswers, s.TotalQuestions), 'g', -1, 64)),
		fmt.Sprintf("%s=%d", keyStreak, s.Streak),
		fmt.Sprintf("%s=%s", keyLastLearned, FormatDate(s.LastLearned)),
	}
	for _, date := range s.LogDates() {
		lines = append(lines, FormatCivil(date)+":"+strings.Join(s.DailyLog[date], ","))
	}
	return lines
}

// Decode rebuilds statistics from resource lines. Scalars may be written as
// `key=value` or `key: value`. Accuracy is recomputed from the counters.
// Malformed lines are skipped with a warning and leave their defaults in place.
func Decode(lines []string, log *logger.Logger) model.Statistics {
	if log == nil {
		log = logger.Nop()
	}
	s := model.NewStatistics()
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if key, value, ok := splitScalar(line); ok {
			if err := applyScalar(&s, key, value); err != nil {
				log.Warn("skipping malformed stats value", "line", i+1, "error", err)
			}
			continue
		}
		datePart, termsPart, ok := strings.Cut(line, ":")
		if !ok {
			log.Warn("skipping malformed stats line", "line", i+1)
			continue
		}
		date, err := ParseDate(datePart)
		if err != nil {
			log.Warn("skipping stats line with bad date", "line", i+1, "value", datePart)
			continue
		}
		for _, term := range strings.Split(termsPart, ",") {
			if term = strings.TrimSpace(term); term != "" {
				s.DailyLog[date] = append(s.DailyLog[date], term)
			}
		}
		if _, seen := s.DailyLog[date]; !seen {
			// A practiced day with no recorded term still counts as practiced.
			s.DailyLog[date] = []string{}
		}
	}
	if s.CorrectAnswers > s.TotalQuestions {
		log.Warn("correct answers exceed total; clamping", "correct", s.CorrectAnswers, "total", s.TotalQuestions)
		s.CorrectAnswers = s.TotalQuestions
	}
	s.Accuracy = Accuracy(s.CorrectAnswers, s.TotalQuestions)
	return s
}

func splitScalar(line string) (key, value string, ok bool) {
	for _, sep := range []string{"=", ":"} {
		k, v, found := strings.Cut(line, sep)
		if !found {
			continue
		}
		k = strings.TrimSpace(k)
		if isScalarKey(k) {
			return k, strings.TrimSpace(v), true
		}
	}
	return "", "", false
}

func isScalarKey(key string) bool {
	switch key {
	case keyTotalQuestions, keyCorrectAnswers, keyAccuracy, keyStreak, keyLastLearned:
		return true
	}
	return false
}

func applyScalar(s *model.Statistics, key, value string) error {
	switch key {
	case keyTotalQuestions:
		return parseCounter(key, value, &s.TotalQuestions)
	case keyCorrectAnswers:
		return parseCounter(key, value, &s.CorrectAnswers)
	case keyStreak:
		return parseCounter(key, value, &s.Streak)
	case keyAccuracy:
		// Derived; the stored value is only validated.
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, value, model.ErrValidation)
		}
	case keyLastLearned:
		if value == "" || value == noDate {
			s.LastLearned = nil
			return nil
		}
		date, err := ParseDate(value)
		if err != nil {
			return err
		}
		s.LastLearned = &date
	}
	return nil
}

func parseCounter(key, value string, target *int) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fmt.Errorf("invalid %s %q: %w", key, value, model.ErrValidation)
	}
	*target = n
	return nil
}
