// Package stats contains statistics calculations, persistence, and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/verte-zerg/wordwise/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Accuracy returns correct/total, or 0 when nothing was answered.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// NextStreak returns the streak after a practice on today.
//
// A practice on the day after last extends the streak; any larger gap, or no
// previous practice, starts over at 1. A second practice on the same day leaves
// the streak as is. Callers reject same-day practice before reaching this, so
// that branch only guards against double counting.
func NextStreak(streak int, last *civil.Date, today civil.Date) int {
	if last == nil {
		return 1
	}
	switch today.DaysSince(*last) {
	case 0:
		return streak
	case 1:
		return streak + 1
	default:
		return 1
	}
}

// Record applies one graded practice on today to s.
func Record(s *model.Statistics, today civil.Date, term string, correct bool) {
	if s.DailyLog == nil {
		s.DailyLog = map[civil.Date][]string{}
	}
	s.TotalQuestions++
	if correct {
		s.CorrectAnswers++
	}
	s.Accuracy = Accuracy(s.CorrectAnswers, s.TotalQuestions)
	s.DailyLog[today] = append(s.DailyLog[today], term)
	s.Streak = NextStreak(s.Streak, s.LastLearned, today)
	last := today
	s.LastLearned = &last
}

// Activity returns one value per day ending at end: 1 when practiced, 0 otherwise.
func Activity(s model.Statistics, end civil.Date, days int) []float64 {
	if days <= 0 {
		return nil
	}
	out := make([]float64, days)
	for i := 0; i < days; i++ {
		date := end.AddDays(i - days + 1)
		if _, ok := s.DailyLog[date]; ok {
			out[i] = 1
		}
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// FormatDate renders an optional date, "None" when nil.
func FormatDate(d *civil.Date) string {
	if d == nil {
		return "None"
	}
	return FormatCivil(*d)
}

// FormatCivil renders a date as DD-MM-YYYY.
func FormatCivil(d civil.Date) string {
	return fmt.Sprintf("%02d-%02d-%04d", d.Day, int(d.Month), d.Year)
}

// RenderSummary prints the statistics record.
func RenderSummary(w io.Writer, s model.Statistics) error {
	tbl := newTable(column{title: "Statistic"}, column{title: "Value", right: true})
	tbl.add("Total Questions", fmt.Sprintf("%d", s.TotalQuestions))
	tbl.add("Correct Answers", fmt.Sprintf("%d", s.CorrectAnswers))
	tbl.add("Accuracy", fmt.Sprintf("%.2f%%", s.Accuracy*100))
	tbl.add("Streak", fmt.Sprintf("%d", s.Streak))
	tbl.add("Last Learned Date", FormatDate(s.LastLearned))
	if _, err := fmt.Fprintln(w, "=== Your Statistics ==="); err != nil {
		return err
	}
	_, err := tbl.WriteTo(w)
	return err
}

// RenderHistory prints the daily log and an activity sparkline ending at today.
func RenderHistory(w io.Writer, s model.Statistics, today civil.Date, days int) error {
	dates := s.LogDates()
	if len(dates) == 0 {
		_, err := fmt.Fprintln(w, "No practice history yet.")
		return err
	}
	tbl := newTable(column{title: "Date"}, column{title: "Words"})
	for _, date := range dates {
		tbl.add(FormatCivil(date), strings.Join(s.DailyLog[date], ", "))
	}
	if _, err := tbl.WriteTo(w); err != nil {
		return err
	}
	if days > 0 {
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Last %d days: [%s]\n", days, Sparkline(Activity(s, today, days))); err != nil {
			return err
		}
	}
	return nil
}
