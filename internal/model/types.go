// Package model defines shared data structures.
package model

import (
	"sort"

	"cloud.google.com/go/civil"
)

// DateLayout is the on-disk and display format for calendar dates.
const DateLayout = "02-01-2006"

// WordEntry is a single vocabulary card.
type WordEntry struct {
	Term    string
	Meaning string
}

// Statistics holds the practice record of the single user.
type Statistics struct {
	TotalQuestions int
	CorrectAnswers int
	// Accuracy is derived from the counters and recomputed on every change.
	Accuracy    float64
	Streak      int
	LastLearned *civil.Date
	DailyLog    map[civil.Date][]string
}

// NewStatistics returns a fresh record for a user who never practiced.
func NewStatistics() Statistics {
	return Statistics{DailyLog: map[civil.Date][]string{}}
}

// Clone returns a deep copy of s.
func (s Statistics) Clone() Statistics {
	out := s
	if s.LastLearned != nil {
		d := *s.LastLearned
		out.LastLearned = &d
	}
	out.DailyLog = make(map[civil.Date][]string, len(s.DailyLog))
	for date, terms := range s.DailyLog {
		out.DailyLog[date] = append([]string(nil), terms...)
	}
	return out
}

// LogDates returns the daily log dates in ascending order.
func (s Statistics) LogDates() []civil.Date {
	dates := make([]civil.Date, 0, len(s.DailyLog))
	for date := range s.DailyLog {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	return dates
}

// PracticeResult is the graded outcome of a daily practice attempt.
type PracticeResult struct {
	Term     string
	Expected string
	Given    string
	Correct  bool
	Stats    Statistics
}

// Config defines practice settings resolved from flags, env, and the config file.
type Config struct {
	DataDir     string
	Backend     string
	Interactive bool
	Seed        int64
	LogLevel    string
}

// ImportResult summarizes a bulk word import.
type ImportResult struct {
	Processed  int
	Added      int
	Duplicates int
	Invalid    int
	Errors     []string
}
